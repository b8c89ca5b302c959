package cmd

import (
	"fmt"
	"sort"

	kerrors "github.com/PolarWolf314/scrub/internal/errors"
	"github.com/PolarWolf314/scrub/internal/redact"
	"github.com/PolarWolf314/scrub/internal/scan"
	"github.com/PolarWolf314/scrub/internal/ui"
	"github.com/PolarWolf314/scrub/internal/workflows"
	"github.com/spf13/cobra"
)

var scanCmd = &cobra.Command{
	Use:   "scan",
	Short: "Check the target file for secrets that are still present",
	Long: `Scans the target file in the working tree for every configured secret
literal and for anything matching the gitleaks default rules.

Exits non-zero when something is found, so it can gate a force-push.`,
	Args: cobra.NoArgs,
	RunE: func(cmd *cobra.Command, args []string) error {
		Logger.Infof("Starting scan command")

		repo, err := openRepository()
		if err != nil {
			return err
		}

		mapping, target, err := loadMapping(repo.Root())
		if err != nil {
			return fmt.Errorf("failed to load secret mapping: %w", err)
		}

		report, err := workflows.Scan(cmd.Context(), workflows.ScanOptions{
			Root:       repo.Root(),
			TargetFile: target,
			Mapping:    mapping,
		})
		if err != nil {
			return fmt.Errorf("failed to scan %s: %w", target, err)
		}

		if !report.Exists {
			fmt.Println(ui.Info.Sprint("→") + " " + ui.Path.Sprint(target) + " does not exist in the working tree")
			return nil
		}

		printScanReport(report)
		if report.Found() {
			return kerrors.ErrSecretsFound
		}
		return nil
	},
}

func printScanReport(report *scan.Report) {
	if !report.Found() {
		fmt.Println(ui.Success.Sprint("✓") + " No secrets found in " + ui.Path.Sprint(report.Path))
		return
	}

	fmt.Println(ui.Error.Sprint("✗") + " Secrets found in " + ui.Path.Sprint(report.Path))
	secrets := make([]string, 0, len(report.Literals))
	for secret := range report.Literals {
		secrets = append(secrets, secret)
	}
	sort.Strings(secrets)
	for _, secret := range secrets {
		fmt.Printf("  %-24s %d occurrence(s) %s\n", redact.Mask(secret), report.Literals[secret], ui.Muted.Sprint("configured"))
	}
	for _, f := range report.Findings {
		fmt.Printf("  %-24s line %d %s\n", redact.Mask(f.Match), f.Line, ui.Muted.Sprint(f.RuleID))
	}
}
