// Package gitrepo is the version-control collaborator used by the sanitizer.
//
// Ref reads and writes (HEAD resolution, the backup branch, removal of the
// refs/original/ namespace left by filter-branch) go through go-git. History
// rewriting, reflog expiry and garbage collection have no go-git equivalent
// and shell out to the git binary found on PATH.
//
// Every command runs in the repository's working tree root and blocks until
// the child process exits or the context is cancelled.
package gitrepo
