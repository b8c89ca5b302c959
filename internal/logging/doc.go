// Package logger provides leveled console logging for scrub commands.
//
// Verbosity is controlled by two flags:
//
//   - --verbose: shows info messages
//   - --debug: shows info and debug messages
//
// Warnings and errors are always written to stderr.
//
// # Usage
//
//	log := Logger{Verbose: verbose, Debug: debug}
//	log.Infof("Rewriting history for %s", target)
//
// The root command builds the logger in its PersistentPreRun and passes it
// to the workflows it calls.
package logger
