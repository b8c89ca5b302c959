// Package audit records the history of sanitizer runs.
//
// Each run appends one JSON line to <git-dir>/scrub/audit.jsonl. Entries
// carry the backup branch and outcome so an operator can find the recovery
// point of an earlier rewrite. Secret values are never written; only the
// number of configured secrets.
//
// Logging is best-effort: a failure to write the history never fails the run.
package audit
