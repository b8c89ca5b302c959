// Package redact applies a literal secret mapping to file contents.
//
// A Mapping pairs each secret literal with the text that replaces it.
// Substitution is a single left-to-right pass: at each position the longest
// matching secret wins, so overlapping secrets behave the same on every run
// regardless of map iteration order.
//
// Apply and ApplyFile are used by the per-commit tree filter. An empty
// mapping leaves content byte-identical.
package redact
