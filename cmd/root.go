package cmd

import (
	logger "github.com/PolarWolf314/scrub/internal/logging"
	"github.com/spf13/cobra"
	"github.com/spf13/pflag"
)

var (
	verbose bool
	debug   bool
	Logger  logger.Logger

	mappingPath string
	secretArgs  map[string]string
	targetFile  string
	dryRun      bool

	RootCmd = &cobra.Command{
		Use:   "scrub",
		Short: "Remove secrets from a file across the whole git history",
		Long: `Scrub rewrites every commit in the current repository, replacing secret
literals in a single tracked file, then prunes the old objects.

Before anything is rewritten a backup branch named
backup-before-secret-cleanup-<unix-timestamp> is created at HEAD.

Secrets come from a TOML mapping file (default .scrub.toml in the repository
root) and --secret flags:

  file = "GOOGLE_CLOUD_SETUP.md"

  [secrets]
  "1234-abcd.apps.googleusercontent.com" = "[Your OAuth Client ID]"

With no secrets configured the rewrite is a pass-through.

Examples:
  scrub
  scrub --secret 'abc123secret=[REDACTED]'
  scrub --mapping secrets.toml --file docs/SETUP.md
  scrub --dry-run`,
		Args:          cobra.NoArgs,
		SilenceUsage:  true,
		SilenceErrors: true,
		PersistentPreRun: func(cmd *cobra.Command, args []string) {
			Logger = logger.Logger{
				Verbose: verbose,
				Debug:   debug,
			}
			Logger.Debugf("Initializing %s with verbose=%t, debug=%t", cmd.Name(), verbose, debug)
		},
		RunE: runSanitize,
	}
)

func init() {
	RootCmd.PersistentFlags().BoolVarP(&verbose, "verbose", "v", false, "enable verbose output")
	RootCmd.PersistentFlags().BoolVarP(&debug, "debug", "d", false, "enable debug output")
	RootCmd.PersistentFlags().StringVarP(&mappingPath, "mapping", "m", "", "TOML file mapping secrets to replacements (default .scrub.toml)")
	RootCmd.PersistentFlags().StringToStringVarP(&secretArgs, "secret", "s", nil, "secret=replacement pair, may be repeated")
	RootCmd.PersistentFlags().StringVarP(&targetFile, "file", "f", "", "file to sanitize, relative to the repository root (default GOOGLE_CLOUD_SETUP.md)")

	RootCmd.Flags().BoolVar(&dryRun, "dry-run", false, "show what would be done without touching the repository")

	RootCmd.AddCommand(applyCmd)
	RootCmd.AddCommand(scanCmd)
	RootCmd.AddCommand(logCmd)
}

// GetRootCmd returns the RootCmd for testing.
func GetRootCmd() *cobra.Command {
	return RootCmd
}

// ResetGlobalState resets all global variables to their default values for testing.
func ResetGlobalState() {
	verbose = false
	debug = false
	mappingPath = ""
	secretArgs = map[string]string{}
	targetFile = ""
	dryRun = false
	resetLogCommandState()
	resetCobraFlagState(RootCmd)
}

// resetCobraFlagState clears Changed on every flag to prevent test pollution.
func resetCobraFlagState(c *cobra.Command) {
	reset := func(flag *pflag.Flag) {
		flag.Changed = false
	}
	c.Flags().VisitAll(reset)
	c.PersistentFlags().VisitAll(reset)
	for _, sub := range c.Commands() {
		resetCobraFlagState(sub)
	}
}
