package cmd

import (
	"encoding/json"
	"fmt"
	"strings"

	"github.com/PolarWolf314/scrub/internal/audit"
	"github.com/PolarWolf314/scrub/internal/ui"
	"github.com/PolarWolf314/scrub/internal/workflows"
	"github.com/spf13/cobra"
)

var (
	logLimit   int
	logReverse bool
	logJSON    bool
)

func init() {
	logCmd.Flags().IntVarP(&logLimit, "number", "n", 0, "limit number of entries shown")
	logCmd.Flags().BoolVar(&logReverse, "reverse", false, "show most recent entries first")
	logCmd.Flags().BoolVar(&logJSON, "json", false, "output as JSON array")
}

// resetLogCommandState resets the log command's global state for testing.
func resetLogCommandState() {
	logLimit = 0
	logReverse = false
	logJSON = false
}

var logCmd = &cobra.Command{
	Use:   "log",
	Short: "Show previous sanitizer runs",
	Long: `Displays the run history recorded in .git/scrub/audit.jsonl.

Each entry shows when scrub ran, the outcome, and the backup branch to
recover from.

Examples:
  scrub log              # Full history
  scrub log -n 5         # Last 5 runs
  scrub log --reverse    # Most recent first
  scrub log --json       # JSON output`,
	Args: cobra.NoArgs,
	RunE: runLog,
}

func runLog(cmd *cobra.Command, args []string) error {
	Logger.Infof("Starting log command")

	repo, err := openRepository()
	if err != nil {
		return err
	}

	entries, err := workflows.History(cmd.Context(), repo.GitDir(), workflows.HistoryOptions{
		Limit:   logLimit,
		Reverse: logReverse,
	})
	if err != nil {
		return fmt.Errorf("failed to read run history: %w", err)
	}

	if logJSON {
		if entries == nil {
			entries = []audit.Entry{}
		}
		data, err := json.MarshalIndent(entries, "", "  ")
		if err != nil {
			return fmt.Errorf("failed to encode run history: %w", err)
		}
		fmt.Println(string(data))
		return nil
	}

	if len(entries) == 0 {
		fmt.Println("No sanitizer runs recorded.")
		return nil
	}

	for _, e := range entries {
		fmt.Println(formatLogEntry(e))
	}
	return nil
}

func formatLogEntry(e audit.Entry) string {
	ts := e.Timestamp
	if len(ts) >= 19 {
		ts = strings.Replace(ts[:19], "T", " ", 1)
	}

	var outcome string
	switch e.Outcome {
	case audit.OutcomeSuccess:
		outcome = ui.Success.Sprint(e.Outcome)
	default:
		outcome = ui.Error.Sprint(e.Outcome)
	}

	line := fmt.Sprintf("%s  %-14s  %-44s  %s  %d secret(s)", ts, outcome, e.BackupBranch, e.TargetFile, e.SecretsCount)
	if len(e.CleanupFailed) > 0 {
		line += "  " + ui.Muted.Sprint("cleanup failed: "+strings.Join(e.CleanupFailed, ", "))
	}
	return line
}
