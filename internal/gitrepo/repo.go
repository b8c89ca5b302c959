package gitrepo

import (
	"context"
	"errors"
	"fmt"
	"strings"

	kerrors "github.com/PolarWolf314/scrub/internal/errors"
	"github.com/go-git/go-git/v5"
	"github.com/go-git/go-git/v5/plumbing"
	"github.com/go-git/go-git/v5/storage/filesystem"
)

// OriginalRefsPrefix is where filter-branch keeps pointers to rewritten commits.
const OriginalRefsPrefix = "refs/original/"

// RewriteOptions configures a git filter-branch run.
type RewriteOptions struct {
	// TreeFilter is the shell command run against every commit's checked-out tree.
	TreeFilter string

	// PruneEmpty drops commits whose tree is unchanged from their parent after filtering.
	PruneEmpty bool

	// TagNameFilter rewrites tag names; "cat" keeps them as they are.
	TagNameFilter string

	// Refs selects what to rewrite. Defaults to --all.
	Refs []string

	// Exclude lists full ref names left untouched by --all.
	Exclude []string
}

// Args returns the filter-branch arguments for the options.
func (o RewriteOptions) Args() []string {
	args := []string{"filter-branch", "-f", "--tree-filter", o.TreeFilter}
	if o.PruneEmpty {
		args = append(args, "--prune-empty")
	}
	if o.TagNameFilter != "" {
		args = append(args, "--tag-name-filter", o.TagNameFilter)
	}
	args = append(args, "--")
	if len(o.Refs) == 0 {
		for _, ref := range o.Exclude {
			args = append(args, "--exclude="+ref)
		}
		return append(args, "--all")
	}
	return append(args, o.Refs...)
}

// Repo is a non-bare git repository on disk.
type Repo struct {
	root   string
	gitDir string
	repo   *git.Repository
}

// Open finds the repository containing path, searching parent directories.
// Returns ErrNotGitRepo when there is none or the repository is bare.
func Open(path string) (*Repo, error) {
	r, err := git.PlainOpenWithOptions(path, &git.PlainOpenOptions{
		DetectDotGit:          true,
		EnableDotGitCommonDir: true,
	})
	if err != nil {
		if errors.Is(err, git.ErrRepositoryNotExists) {
			return nil, fmt.Errorf("%w: %s", kerrors.ErrNotGitRepo, path)
		}
		return nil, fmt.Errorf("opening repository: %w", err)
	}

	wt, err := r.Worktree()
	if err != nil {
		return nil, fmt.Errorf("%w: %s has no working tree", kerrors.ErrNotGitRepo, path)
	}

	repo := &Repo{
		root: wt.Filesystem.Root(),
		repo: r,
	}
	if storage, ok := r.Storer.(*filesystem.Storage); ok {
		repo.gitDir = storage.Filesystem().Root()
	}

	return repo, nil
}

// Root returns the working tree root.
func (r *Repo) Root() string {
	return r.root
}

// GitDir returns the repository's .git directory.
func (r *Repo) GitDir() string {
	return r.gitDir
}

// HeadHash returns the commit HEAD points at.
// Returns ErrNoCommits for a repository without commits.
func (r *Repo) HeadHash() (string, error) {
	head, err := r.repo.Head()
	if err != nil {
		if errors.Is(err, plumbing.ErrReferenceNotFound) {
			return "", kerrors.ErrNoCommits
		}
		return "", fmt.Errorf("resolving HEAD: %w", err)
	}
	return head.Hash().String(), nil
}

// CurrentBranch returns the short name of the checked-out branch, or an empty
// string when HEAD is detached.
func (r *Repo) CurrentBranch() string {
	head, err := r.repo.Head()
	if err != nil || !head.Name().IsBranch() {
		return ""
	}
	return head.Name().Short()
}

// BranchHash returns the commit a local branch points at.
func (r *Repo) BranchHash(name string) (string, error) {
	ref, err := r.repo.Reference(plumbing.NewBranchReferenceName(name), true)
	if err != nil {
		return "", fmt.Errorf("resolving branch %s: %w", name, err)
	}
	return ref.Hash().String(), nil
}

// CreateBranch creates a branch pointing at HEAD and returns the commit hash.
// An existing branch with the same name is never overwritten.
func (r *Repo) CreateBranch(ctx context.Context, name string) (string, error) {
	if err := ctx.Err(); err != nil {
		return "", err
	}

	refName := plumbing.NewBranchReferenceName(name)
	if err := refName.Validate(); err != nil {
		return "", fmt.Errorf("invalid branch name %q: %w", name, err)
	}

	head, err := r.repo.Head()
	if err != nil {
		if errors.Is(err, plumbing.ErrReferenceNotFound) {
			return "", kerrors.ErrNoCommits
		}
		return "", fmt.Errorf("resolving HEAD: %w", err)
	}

	_, err = r.repo.Reference(refName, false)
	if err == nil {
		return "", fmt.Errorf("%w: %s", kerrors.ErrBranchExists, name)
	}
	if !errors.Is(err, plumbing.ErrReferenceNotFound) {
		return "", fmt.Errorf("checking branch %s: %w", name, err)
	}

	if err := r.repo.Storer.SetReference(plumbing.NewHashReference(refName, head.Hash())); err != nil {
		return "", fmt.Errorf("writing branch %s: %w", name, err)
	}

	return head.Hash().String(), nil
}

// RewriteHistory runs git filter-branch with the given options.
func (r *Repo) RewriteHistory(ctx context.Context, opts RewriteOptions) error {
	_, err := runGit(ctx, r.root, []string{"FILTER_BRANCH_SQUELCH_WARNING=1"}, opts.Args()...)
	return err
}

// OriginalRefs lists the refs filter-branch saved under refs/original/.
func (r *Repo) OriginalRefs() ([]string, error) {
	// filter-branch ran in another process; reopen to avoid stale ref caches.
	fresh, err := git.PlainOpenWithOptions(r.root, &git.PlainOpenOptions{EnableDotGitCommonDir: true})
	if err != nil {
		return nil, fmt.Errorf("reopening repository: %w", err)
	}
	r.repo = fresh

	iter, err := r.repo.References()
	if err != nil {
		return nil, fmt.Errorf("listing references: %w", err)
	}
	defer iter.Close()

	var names []string
	err = iter.ForEach(func(ref *plumbing.Reference) error {
		if strings.HasPrefix(ref.Name().String(), OriginalRefsPrefix) {
			names = append(names, ref.Name().String())
		}
		return nil
	})
	if err != nil {
		return nil, fmt.Errorf("listing references: %w", err)
	}
	return names, nil
}

// PruneOriginalRefs deletes every ref under refs/original/.
func (r *Repo) PruneOriginalRefs(ctx context.Context) error {
	names, err := r.OriginalRefs()
	if err != nil {
		return err
	}

	var errs []error
	for _, name := range names {
		if err := ctx.Err(); err != nil {
			return err
		}
		if err := r.repo.Storer.RemoveReference(plumbing.ReferenceName(name)); err != nil {
			errs = append(errs, fmt.Errorf("deleting %s: %w", name, err))
		}
	}
	return errors.Join(errs...)
}

// ExpireReflog expires every reflog entry immediately.
func (r *Repo) ExpireReflog(ctx context.Context) error {
	_, err := runGit(ctx, r.root, nil, "reflog", "expire", "--expire=now", "--all")
	return err
}

// GarbageCollect prunes unreachable objects immediately and repacks aggressively.
func (r *Repo) GarbageCollect(ctx context.Context) error {
	_, err := runGit(ctx, r.root, nil, "gc", "--prune=now", "--aggressive")
	return err
}
