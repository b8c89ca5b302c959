package cmd

import (
	"fmt"

	"github.com/PolarWolf314/scrub/internal/workflows"
	"github.com/spf13/cobra"
)

// applyCmd is the per-commit tree transform run by the generated filter
// script. It is hidden because it only makes sense inside git filter-branch.
var applyCmd = &cobra.Command{
	Use:    "apply",
	Short:  "Apply the secret mapping to the target file in the current tree",
	Hidden: true,
	Args:   cobra.NoArgs,
	RunE: func(cmd *cobra.Command, args []string) error {
		Logger.Debugf("Applying mapping %q to %q", mappingPath, targetFile)

		result, err := workflows.Apply(cmd.Context(), workflows.ApplyOptions{
			MappingPath: mappingPath,
			TargetFile:  targetFile,
			Logger:      Logger,
		})
		if err != nil {
			return fmt.Errorf("failed to apply mapping: %w", err)
		}

		Logger.Debugf("exists=%t changed=%t staged=%t", result.Exists, result.Changed, result.Staged)
		return nil
	},
}
