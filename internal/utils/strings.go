package utils

import "strings"

// ShellQuote wraps s in single quotes for a POSIX shell, escaping any single
// quotes it contains.
func ShellQuote(s string) string {
	return "'" + strings.ReplaceAll(s, "'", `'\''`) + "'"
}
