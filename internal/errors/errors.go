package errors

import "errors"

// Run errors abort the sanitizer with a non-zero exit status.
var (
	// ErrBackupFailed indicates the backup branch could not be created. No
	// history has been rewritten when this is returned.
	ErrBackupFailed = errors.New("failed to create backup branch")

	// ErrRewriteFailed indicates git filter-branch exited non-zero. Cleanup
	// is not attempted when this is returned.
	ErrRewriteFailed = errors.New("failed to rewrite history")
)

// Repository errors indicate the working directory cannot be sanitized.
var (
	// ErrNotGitRepo indicates no git repository was found.
	ErrNotGitRepo = errors.New("not a git repository")

	// ErrNoCommits indicates the repository has no HEAD commit to back up.
	ErrNoCommits = errors.New("repository has no commits")

	// ErrBranchExists indicates the requested branch name is already taken.
	ErrBranchExists = errors.New("branch already exists")

	// ErrGitNotFound indicates the git binary is not on PATH.
	ErrGitNotFound = errors.New("git executable not found")
)

// Mapping errors indicate problems with the configured secret mapping.
var (
	// ErrMappingNotFound indicates an explicitly requested mapping file is missing.
	ErrMappingNotFound = errors.New("mapping file not found")

	// ErrInvalidMapping indicates the mapping cannot be applied safely.
	ErrInvalidMapping = errors.New("invalid secret mapping")
)

// Scan errors.
var (
	// ErrSecretsFound indicates a scan found secrets in the target file.
	ErrSecretsFound = errors.New("secrets found")
)
