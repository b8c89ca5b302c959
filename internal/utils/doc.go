// Package utils provides small helpers shared across scrub packages.
//
// # System
//
// CurrentOperator identifies who ran a sanitizer pass, and on which host, for
// the run history.
//
// # Strings
//
// ShellQuote quotes a value for inclusion in a POSIX sh script.
//
// # Terminal
//
// IsTerminal reports whether a file is attached to a terminal, which decides
// whether spinners and banners are drawn.
package utils
