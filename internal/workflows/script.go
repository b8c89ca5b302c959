package workflows

import (
	"fmt"
	"os"

	"github.com/PolarWolf314/scrub/internal/utils"
)

// FilterScript returns the sh script filter-branch runs for every commit.
// It invokes executable's apply command on target when the file exists in
// that commit's tree.
func FilterScript(executable, mappingPath, target string) string {
	return fmt.Sprintf(`#!/bin/sh
# Generated by scrub. Runs once per commit inside git filter-branch.
if [ -f %[3]s ]; then
  %[1]s apply --mapping %[2]s --file %[3]s
fi
`, utils.ShellQuote(executable), utils.ShellQuote(mappingPath), utils.ShellQuote(target))
}

// TreeFilterCommand is the --tree-filter argument that runs the script at path.
func TreeFilterCommand(scriptPath string) string {
	return "sh " + utils.ShellQuote(scriptPath)
}

// writeFilterScript writes an executable script to path.
func writeFilterScript(path, content string) error {
	// #nosec G306 -- the script must be executable and holds no secret values.
	if err := os.WriteFile(path, []byte(content), 0755); err != nil {
		return err
	}
	// WriteFile leaves the mode of an existing file untouched.
	return os.Chmod(path, 0755)
}
