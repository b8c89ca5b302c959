package configs

import (
	"fmt"
	"os"
	"path/filepath"
	"time"
)

const (
	// DefaultTargetFile is the file whose history is sanitized.
	DefaultTargetFile = "GOOGLE_CLOUD_SETUP.md"

	// DefaultMappingFile is looked up in the repository root when no
	// --mapping flag is given.
	DefaultMappingFile = ".scrub.toml"

	// BackupBranchPrefix is followed by the unix timestamp of the run.
	BackupBranchPrefix = "backup-before-secret-cleanup-"

	filterScriptName  = "git-filter-script.sh"
	filterMappingName = "git-filter-mapping.toml"
)

// FilterScriptPath is the fixed location of the per-commit tree filter script.
func FilterScriptPath() string {
	return filepath.Join(os.TempDir(), filterScriptName)
}

// FilterMappingPath is the fixed location of the mapping read by the tree filter.
func FilterMappingPath() string {
	return filepath.Join(os.TempDir(), filterMappingName)
}

// BackupBranchName returns the backup branch name for a run started at t.
func BackupBranchName(t time.Time) string {
	return fmt.Sprintf("%s%d", BackupBranchPrefix, t.Unix())
}
