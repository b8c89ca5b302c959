// Package ui provides semantic text formatting for scrub's CLI output.
//
// Formatters colorize content when the terminal supports it. When NO_COLOR
// is set or colors are unavailable, text decorations (backticks, quotes) are
// used instead.
//
//	ui.Code.Sprint("git push -f origin main")  // Commands
//	ui.Path.Sprint("GOOGLE_CLOUD_SETUP.md")    // File paths
//	ui.Ref.Sprint("backup-before-...")         // Branch and ref names
//	ui.Success.Sprint("✓")                     // Success indicators
//	ui.Error.Sprint("✗")                       // Error indicators
//	ui.Warning.Sprint("!")                     // Warnings
//	ui.Info.Sprint("→")                        // Hints
//	ui.Muted.Sprint("abc123")                  // Secondary text
//
// Banner renders the large warning header shown before history is rewritten.
package ui
