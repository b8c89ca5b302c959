package cmd

import (
	"fmt"
	"io"
	"log"
	"os"
	"time"

	"github.com/PolarWolf314/scrub/internal/configs"
	"github.com/PolarWolf314/scrub/internal/gitrepo"
	"github.com/PolarWolf314/scrub/internal/redact"
	"github.com/PolarWolf314/scrub/internal/ui"
	"github.com/PolarWolf314/scrub/internal/utils"
	"github.com/briandowns/spinner"
)

// startSpinner creates and starts a spinner with the given message when not in
// verbose or debug mode and stdout is a terminal. Returns the spinner and a
// function that should be deferred to clean up.
//
// spinner.FinalMSG values do not need trailing newlines; the cleanup function
// adds one.
func startSpinner(message string) (*spinner.Spinner, func()) {
	Logger.Debugf("Starting spinner with message: %s", message)
	s := spinner.New(spinner.CharSets[14], 100*time.Millisecond)
	s.Suffix = " " + message

	if err := s.Color("cyan"); err != nil {
		Logger.Warnf("Failed to set spinner color: %v", err)
	}

	animate := !verbose && !debug && utils.IsTerminal(os.Stdout)
	if animate {
		s.Start()
		log.SetOutput(io.Discard)
	} else {
		Logger.Infof("%s", message)
	}

	cleanup := func() {
		if animate {
			log.SetOutput(os.Stderr)
		}

		finalMsg := ""
		if s.FinalMSG != "" {
			finalMsg = ui.EnsureNewline(s.FinalMSG)
			// Clear FinalMSG so s.Stop() doesn't print it.
			s.FinalMSG = ""
		}

		if animate {
			s.Stop()
		}

		// Print final message to stdout (for tests to capture).
		if finalMsg != "" {
			fmt.Print(finalMsg)
		}
	}

	return s, cleanup
}

// openRepository opens the repository containing the working directory.
func openRepository() (*gitrepo.Repo, error) {
	wd, err := os.Getwd()
	if err != nil {
		return nil, fmt.Errorf("failed to get working directory: %w", err)
	}
	Logger.Debugf("Opening repository from %s", wd)
	return gitrepo.Open(wd)
}

// loadMapping resolves the secret mapping and target file from the mapping
// file and flags. --secret pairs override entries from the file, and --file
// overrides the file's target.
func loadMapping(repoRoot string) (redact.Mapping, string, error) {
	config, path, err := configs.ResolveMappingConfig(mappingPath, repoRoot)
	if err != nil {
		return nil, "", err
	}
	if path != "" {
		Logger.Infof("Loaded %d secret(s) from %s", len(config.Secrets), path)
	}

	mapping := config.Mapping().Merge(redact.Mapping(secretArgs))
	if err := mapping.Validate(); err != nil {
		return nil, "", err
	}

	target := config.File
	if targetFile != "" {
		target = targetFile
	}
	if target == "" {
		target = configs.DefaultTargetFile
	}

	return mapping, target, nil
}
