package workflows

import (
	"context"
	"fmt"

	"github.com/PolarWolf314/scrub/internal/configs"
	"github.com/PolarWolf314/scrub/internal/gitrepo"
	logger "github.com/PolarWolf314/scrub/internal/logging"
	"github.com/PolarWolf314/scrub/internal/redact"
)

// ApplyOptions configures the per-commit tree transform.
type ApplyOptions struct {
	// MappingPath is the TOML mapping written by Sanitize.
	MappingPath string

	// TargetFile is relative to the current directory, which filter-branch
	// sets to the commit's checked-out tree.
	TargetFile string

	// Stage re-adds the file to the index. Defaults to gitrepo.StageFile.
	Stage func(ctx context.Context, path string) error

	Logger logger.Logger
}

// ApplyResult contains the outcome of transforming one tree.
type ApplyResult struct {
	Exists  bool
	Changed bool
	Staged  bool
}

// Apply replaces the mapping's secrets in the target file and stages it.
//
// A missing target file is not an error. A failed stage is logged and
// tolerated; filter-branch records the working tree either way.
func Apply(ctx context.Context, opts ApplyOptions) (*ApplyResult, error) {
	log := opts.Logger
	if opts.TargetFile == "" {
		opts.TargetFile = configs.DefaultTargetFile
	}
	if opts.Stage == nil {
		opts.Stage = gitrepo.StageFile
	}

	var mapping redact.Mapping
	if opts.MappingPath != "" {
		config, err := configs.LoadMappingConfig(opts.MappingPath)
		if err != nil {
			return nil, err
		}
		mapping = config.Mapping()
	}
	if err := mapping.Validate(); err != nil {
		return nil, err
	}

	result := &ApplyResult{}
	if !fileExistsCheck(opts.TargetFile) {
		log.Debugf("%s not present in this tree", opts.TargetFile)
		return result, nil
	}
	result.Exists = true

	changed, err := redact.ApplyFile(opts.TargetFile, mapping)
	if err != nil {
		return nil, fmt.Errorf("rewriting %s: %w", opts.TargetFile, err)
	}
	result.Changed = changed

	if err := opts.Stage(ctx, opts.TargetFile); err != nil {
		log.Debugf("Staging %s failed: %v", opts.TargetFile, err)
		return result, nil
	}
	result.Staged = true

	return result, nil
}
