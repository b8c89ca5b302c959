// Package configs loads the secret mapping and run settings for scrub.
//
// The mapping lives in a TOML file, by default .scrub.toml at the
// repository root:
//
//	# Target file, relative to the repository root.
//	file = "GOOGLE_CLOUD_SETUP.md"
//
//	[secrets]
//	"1234-abcd.apps.googleusercontent.com" = "[Your OAuth Client ID]"
//	"GOCSPX-abc123" = "[Your OAuth Client Secret]"
//
// The same format is written to a temporary file so the per-commit tree
// filter can read the mapping from a separate process.
package configs
