package workflows

import (
	"context"
	"fmt"

	"github.com/PolarWolf314/scrub/internal/audit"
)

// HistoryOptions configures reading the run history.
type HistoryOptions struct {
	// Limit keeps only the most recent entries. Zero means all.
	Limit int

	// Reverse lists the most recent entry first.
	Reverse bool
}

// History returns run history entries for the repository at gitDir.
func History(ctx context.Context, gitDir string, opts HistoryOptions) ([]audit.Entry, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}

	entries, err := audit.ReadEntries(gitDir)
	if err != nil {
		return nil, fmt.Errorf("reading run history: %w", err)
	}

	if opts.Limit > 0 && len(entries) > opts.Limit {
		entries = entries[len(entries)-opts.Limit:]
	}

	if opts.Reverse {
		for i, j := 0, len(entries)-1; i < j; i, j = i+1, j-1 {
			entries[i], entries[j] = entries[j], entries[i]
		}
	}

	return entries, nil
}
