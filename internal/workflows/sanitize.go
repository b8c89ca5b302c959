package workflows

import (
	"context"
	"fmt"
	"path/filepath"
	"time"

	"github.com/PolarWolf314/scrub/internal/audit"
	"github.com/PolarWolf314/scrub/internal/configs"
	kerrors "github.com/PolarWolf314/scrub/internal/errors"
	"github.com/PolarWolf314/scrub/internal/gitrepo"
	logger "github.com/PolarWolf314/scrub/internal/logging"
	"github.com/PolarWolf314/scrub/internal/redact"
	"github.com/go-git/go-git/v5/plumbing"
)

// Cleanup step names, in the order they run.
const (
	CleanupPruneOriginalRefs = "prune-original-refs"
	CleanupExpireReflog      = "expire-reflog"
	CleanupGarbageCollect    = "gc"
)

// Repository is the version-control collaborator the sanitizer drives.
// *gitrepo.Repo implements it.
type Repository interface {
	Root() string
	GitDir() string
	CreateBranch(ctx context.Context, name string) (string, error)
	RewriteHistory(ctx context.Context, opts gitrepo.RewriteOptions) error
	PruneOriginalRefs(ctx context.Context) error
	ExpireReflog(ctx context.Context) error
	GarbageCollect(ctx context.Context) error
}

// SanitizeOptions configures the sanitize workflow.
type SanitizeOptions struct {
	// Mapping holds the secrets to replace. Empty means pass-through.
	Mapping redact.Mapping

	// TargetFile is relative to the repository root.
	TargetFile string

	// Executable is the scrub binary the tree filter invokes.
	Executable string

	// ScriptPath and MappingPath default to the fixed temp locations.
	ScriptPath  string
	MappingPath string

	// DryRun reports the plan without touching the repository or its run
	// history.
	DryRun bool

	// Now defaults to time.Now.
	Now func() time.Time

	Logger logger.Logger
}

// CleanupStep is the outcome of one post-rewrite maintenance command.
type CleanupStep struct {
	Name string
	Err  error
}

// SanitizeResult contains the outcome of a sanitize run.
type SanitizeResult struct {
	BackupBranch string
	BackupHash   string
	TargetFile   string
	ScriptPath   string
	SecretsCount int
	DryRun       bool

	// Rewritten is true once filter-branch succeeded.
	Rewritten bool

	// Cleanup has one entry per maintenance step that ran.
	Cleanup []CleanupStep
}

// CleanupComplete reports whether every cleanup step ran and succeeded.
func (r *SanitizeResult) CleanupComplete() bool {
	if !r.Rewritten || len(r.Cleanup) != 3 {
		return false
	}
	for _, step := range r.Cleanup {
		if step.Err != nil {
			return false
		}
	}
	return true
}

// FailedCleanup returns the names of cleanup steps that failed.
func (r *SanitizeResult) FailedCleanup() []string {
	var failed []string
	for _, step := range r.Cleanup {
		if step.Err != nil {
			failed = append(failed, step.Name)
		}
	}
	return failed
}

// Sanitize rewrites every ref except the new backup branch, replacing the
// mapping's secrets in the target file, then discards the old history that
// the backup branch does not keep alive.
//
// The steps run strictly in order:
//  1. create the backup branch at HEAD (ErrBackupFailed aborts)
//  2. write the mapping file and tree filter script
//  3. run filter-branch across all refs except the backup (ErrRewriteFailed aborts)
//  4. prune refs/original, expire reflogs, gc; failures are recorded only
//
// The returned result is non-nil whenever the mapping was valid, including
// on failure, so callers can report the backup branch.
func Sanitize(ctx context.Context, repo Repository, opts SanitizeOptions) (*SanitizeResult, error) {
	log := opts.Logger

	if err := opts.Mapping.Validate(); err != nil {
		return nil, err
	}
	if opts.TargetFile == "" {
		opts.TargetFile = configs.DefaultTargetFile
	}
	if filepath.IsAbs(opts.TargetFile) {
		return nil, fmt.Errorf("target file must be relative to the repository root: %s", opts.TargetFile)
	}
	if opts.ScriptPath == "" {
		opts.ScriptPath = configs.FilterScriptPath()
	}
	if opts.MappingPath == "" {
		opts.MappingPath = configs.FilterMappingPath()
	}
	if opts.Now == nil {
		opts.Now = time.Now
	}
	if opts.Executable == "" && !opts.DryRun {
		return nil, fmt.Errorf("no executable configured for the tree filter")
	}

	result := &SanitizeResult{
		BackupBranch: configs.BackupBranchName(opts.Now()),
		TargetFile:   filepath.ToSlash(opts.TargetFile),
		ScriptPath:   opts.ScriptPath,
		SecretsCount: len(opts.Mapping),
		DryRun:       opts.DryRun,
	}

	if opts.DryRun {
		log.Infof("Dry run: would create %s and rewrite %s", result.BackupBranch, result.TargetFile)
		return result, nil
	}

	entry := audit.NewEntry("sanitize")
	entry.TargetFile = result.TargetFile
	entry.SecretsCount = result.SecretsCount
	entry.Fingerprints = opts.Mapping.Fingerprints()
	entry.BackupBranch = result.BackupBranch

	log.Infof("Creating backup branch %s", result.BackupBranch)
	hash, err := repo.CreateBranch(ctx, result.BackupBranch)
	if err != nil {
		entry.Outcome = audit.OutcomeBackupFailed
		audit.Log(repo.GitDir(), entry)
		return result, fmt.Errorf("%w %s: %w", kerrors.ErrBackupFailed, result.BackupBranch, err)
	}
	result.BackupHash = hash
	entry.BackupHash = hash
	log.Debugf("Backup branch %s points at %s", result.BackupBranch, hash)

	log.Debugf("Writing mapping to %s", opts.MappingPath)
	mappingConfig := &configs.MappingConfig{File: result.TargetFile, Secrets: opts.Mapping}
	if err := configs.SaveMappingConfig(opts.MappingPath, mappingConfig); err != nil {
		entry.Outcome = audit.OutcomeRewriteFailed
		audit.Log(repo.GitDir(), entry)
		return result, fmt.Errorf("%w: preparing tree filter: %w", kerrors.ErrRewriteFailed, err)
	}

	log.Debugf("Writing tree filter script to %s", opts.ScriptPath)
	script := FilterScript(opts.Executable, opts.MappingPath, result.TargetFile)
	if err := writeFilterScript(opts.ScriptPath, script); err != nil {
		entry.Outcome = audit.OutcomeRewriteFailed
		audit.Log(repo.GitDir(), entry)
		return result, fmt.Errorf("%w: preparing tree filter: %w", kerrors.ErrRewriteFailed, err)
	}

	log.Infof("Running git filter-branch across all refs")
	rewrite := gitrepo.RewriteOptions{
		TreeFilter:    TreeFilterCommand(opts.ScriptPath),
		PruneEmpty:    true,
		TagNameFilter: "cat",
		Exclude:       []string{plumbing.NewBranchReferenceName(result.BackupBranch).String()},
	}
	if err := repo.RewriteHistory(ctx, rewrite); err != nil {
		entry.Outcome = audit.OutcomeRewriteFailed
		audit.Log(repo.GitDir(), entry)
		return result, fmt.Errorf("%w: %w", kerrors.ErrRewriteFailed, err)
	}
	result.Rewritten = true

	steps := []struct {
		name string
		run  func(context.Context) error
	}{
		{CleanupPruneOriginalRefs, repo.PruneOriginalRefs},
		{CleanupExpireReflog, repo.ExpireReflog},
		{CleanupGarbageCollect, repo.GarbageCollect},
	}
	for _, step := range steps {
		log.Infof("Cleanup: %s", step.name)
		err := step.run(ctx)
		if err != nil {
			log.Warnf("Cleanup step %s failed: %v", step.name, err)
		}
		result.Cleanup = append(result.Cleanup, CleanupStep{Name: step.name, Err: err})
	}

	entry.Outcome = audit.OutcomeSuccess
	entry.CleanupFailed = result.FailedCleanup()
	audit.Log(repo.GitDir(), entry)

	return result, nil
}
