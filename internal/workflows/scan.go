package workflows

import (
	"context"
	"path/filepath"

	"github.com/PolarWolf314/scrub/internal/configs"
	"github.com/PolarWolf314/scrub/internal/redact"
	"github.com/PolarWolf314/scrub/internal/scan"
)

// ScanOptions configures the scan workflow.
type ScanOptions struct {
	Root       string
	TargetFile string
	Mapping    redact.Mapping
}

// Scan checks the target file in the working tree for remaining secrets.
func Scan(ctx context.Context, opts ScanOptions) (*scan.Report, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}
	if opts.TargetFile == "" {
		opts.TargetFile = configs.DefaultTargetFile
	}

	path := opts.TargetFile
	if !filepath.IsAbs(path) {
		path = filepath.Join(opts.Root, path)
	}
	return scan.File(path, opts.Mapping)
}
