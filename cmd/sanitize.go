package cmd

import (
	"errors"
	"fmt"
	"os"
	"strings"

	kerrors "github.com/PolarWolf314/scrub/internal/errors"
	"github.com/PolarWolf314/scrub/internal/redact"
	"github.com/PolarWolf314/scrub/internal/ui"
	"github.com/PolarWolf314/scrub/internal/utils"
	"github.com/PolarWolf314/scrub/internal/workflows"
	"github.com/spf13/cobra"
)

func runSanitize(cmd *cobra.Command, args []string) error {
	Logger.Infof("Starting sanitize command")

	repo, err := openRepository()
	if err != nil {
		return err
	}
	Logger.Debugf("Repository root: %s", repo.Root())

	mapping, target, err := loadMapping(repo.Root())
	if err != nil {
		return fmt.Errorf("failed to load secret mapping: %w", err)
	}

	executable, err := os.Executable()
	if err != nil {
		return fmt.Errorf("failed to locate scrub executable: %w", err)
	}

	printRewriteWarning(target, mapping)

	opts := workflows.SanitizeOptions{
		Mapping:    mapping,
		TargetFile: target,
		Executable: executable,
		DryRun:     dryRun,
		Logger:     Logger,
	}

	if dryRun {
		result, err := workflows.Sanitize(cmd.Context(), repo, opts)
		if err != nil {
			return err
		}
		printDryRun(cmd, repo.Root(), result, mapping)
		return nil
	}

	s, cleanup := startSpinner("Rewriting git history...")
	result, err := workflows.Sanitize(cmd.Context(), repo, opts)
	if err != nil {
		s.FinalMSG = ui.Error.Sprint("✗") + " Error cleaning history"
		cleanup()
		printSanitizeFailure(result, err)
		return err
	}
	s.FinalMSG = ui.Success.Sprint("✓") + " Successfully cleaned git history!"
	cleanup()

	fmt.Printf("%s Backup branch %s points at %s\n", ui.Info.Sprint("→"), ui.Ref.Sprint(result.BackupBranch), ui.Muted.Sprint(shortHash(result.BackupHash)))
	for _, step := range result.Cleanup {
		if step.Err != nil {
			fmt.Printf("%s Cleanup step %s failed: %v\n", ui.Warning.Sprint("!"), step.Name, step.Err)
		}
	}
	if !result.CleanupComplete() {
		fmt.Println(ui.Warning.Sprint("!") + " Old objects may still take up space until the next " + ui.Code.Sprint("git gc"))
	}

	branch := repo.CurrentBranch()
	if branch == "" {
		branch = "main"
	}
	fmt.Println(ui.Success.Sprint("✓") + " Done! Now run: " + ui.Code.Sprint("git push -f origin "+branch))
	return nil
}

// printRewriteWarning tells the operator history is about to be rewritten.
func printRewriteWarning(target string, mapping redact.Mapping) {
	if utils.IsTerminal(os.Stdout) && !ui.NoColor() {
		fmt.Print(ui.Banner("scrub"))
	}
	fmt.Println(ui.Warning.Sprint("!") + " Removing secrets from git history...")
	fmt.Println(ui.Warning.Sprint("!") + " This will rewrite git history. Make sure you have a backup!")
	fmt.Printf("%s Target file: %s, %d secret(s) configured\n", ui.Info.Sprint("→"), ui.Path.Sprint(target), len(mapping))
	if len(mapping) == 0 {
		fmt.Println(ui.Info.Sprint("→") + " No secrets configured: commits are rewritten with content unchanged")
	}
}

func printSanitizeFailure(result *workflows.SanitizeResult, err error) {
	switch {
	case errors.Is(err, kerrors.ErrBackupFailed):
		fmt.Println(ui.Info.Sprint("→") + " No history was rewritten")
	case errors.Is(err, kerrors.ErrRewriteFailed) && result != nil:
		fmt.Printf("%s Cleanup was skipped. Recover with %s\n", ui.Info.Sprint("→"),
			ui.Code.Sprint("git reset --hard "+result.BackupBranch))
	}
}

func printDryRun(cmd *cobra.Command, root string, result *workflows.SanitizeResult, mapping redact.Mapping) {
	fmt.Println(ui.Warning.Sprint("[dry-run]") + " No changes made.")
	fmt.Printf("  Would create backup branch %s\n", ui.Ref.Sprint(result.BackupBranch))
	fmt.Printf("  Would rewrite %s in every commit with %d secret(s)\n", ui.Path.Sprint(result.TargetFile), result.SecretsCount)
	fmt.Println("  Would prune refs/original, expire reflogs and run gc")

	report, err := workflows.Scan(cmd.Context(), workflows.ScanOptions{
		Root:       root,
		TargetFile: result.TargetFile,
		Mapping:    mapping,
	})
	if err != nil {
		Logger.Warnf("Could not scan %s: %v", result.TargetFile, err)
		return
	}
	if report.Exists {
		fmt.Println()
		printScanReport(report)
	}
}

func shortHash(hash string) string {
	if len(hash) > 12 {
		return hash[:12]
	}
	return strings.TrimSpace(hash)
}
