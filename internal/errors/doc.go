// Package errors provides typed error values for scrub.
//
// Sentinel errors let the CLI layer decide how to report a failure with
// errors.Is() instead of matching on message text.
//
// # Error Categories
//
//   - Run errors: the sanitizer could not complete (ErrBackupFailed, ErrRewriteFailed)
//   - Repository errors: the working directory is unusable (ErrNotGitRepo, ErrNoCommits)
//   - Mapping errors: the secret mapping is missing or malformed (ErrMappingNotFound, ErrInvalidMapping)
//   - Scan errors: secrets are still present (ErrSecretsFound)
//
// # Usage
//
//	if err := repo.CreateBranch(ctx, name); err != nil {
//	    return nil, fmt.Errorf("%w: %v", errors.ErrBackupFailed, err)
//	}
package errors
