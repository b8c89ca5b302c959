// Package workflows provides the high-level orchestration behind scrub commands.
//
// The cmd/ package stays a thin layer that parses flags, calls a workflow and
// formats the result. Workflows own everything else: validating the mapping,
// driving the repository collaborator, and recording run history.
//
// # Available Workflows
//
//   - Sanitize: backs up, rewrites and compacts repository history
//   - Apply: the per-commit tree transform run by filter-branch
//   - Scan: reports secrets still present in the target file
//   - History: reads the run history of earlier sanitizer passes
//
// # Error Handling
//
// Workflows return typed errors from the internal/errors package so the CLI
// can report failures with errors.Is():
//
//	result, err := workflows.Sanitize(ctx, repo, opts)
//	if errors.Is(err, kerrors.ErrBackupFailed) {
//	    // nothing was rewritten
//	}
//
// # Context Usage
//
// Every workflow accepts a context.Context first. Cancelling it stops the git
// subprocess that is currently running.
package workflows
