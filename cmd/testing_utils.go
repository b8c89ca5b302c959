// Package cmd contains testing utilities shared between command tests.
// This file provides common functions for setting up repositories,
// capturing output, and running the CLI.
package cmd

import (
	"bytes"
	"io"
	"log"
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/go-git/go-git/v5"
	"github.com/go-git/go-git/v5/plumbing/object"
)

// setupTestDir changes into a fresh temp directory and restores the working
// directory and command state afterwards.
func setupTestDir(t *testing.T) string {
	t.Helper()

	originalWd, err := os.Getwd()
	if err != nil {
		t.Fatalf("Failed to get working directory: %v", err)
	}

	tempDir := t.TempDir()
	if err := os.Chdir(tempDir); err != nil {
		t.Fatalf("Failed to change to temp directory: %v", err)
	}
	t.Setenv("NO_COLOR", "1")

	t.Cleanup(func() {
		if err := os.Chdir(originalWd); err != nil {
			t.Fatalf("Failed to change to original directory: %v", err)
		}
		ResetGlobalState()
	})

	return tempDir
}

// initTestRepo initializes a repository in dir. When content is non-empty it
// commits GOOGLE_CLOUD_SETUP.md with that content.
func initTestRepo(t *testing.T, dir, content string) *git.Repository {
	t.Helper()

	r, err := git.PlainInit(dir, false)
	if err != nil {
		t.Fatalf("Failed to init repository: %v", err)
	}
	if content == "" {
		return r
	}

	writeFile(t, filepath.Join(dir, "GOOGLE_CLOUD_SETUP.md"), content)

	wt, err := r.Worktree()
	if err != nil {
		t.Fatalf("Failed to get worktree: %v", err)
	}
	if _, err := wt.Add("GOOGLE_CLOUD_SETUP.md"); err != nil {
		t.Fatalf("Failed to stage file: %v", err)
	}
	_, err = wt.Commit("add setup guide", &git.CommitOptions{
		Author: &object.Signature{Name: "Test", Email: "test@example.com", When: time.Now()},
	})
	if err != nil {
		t.Fatalf("Failed to commit: %v", err)
	}
	return r
}

// writeFile is a helper to write test files with 0644 permissions.
func writeFile(t *testing.T, path, content string) {
	t.Helper()
	if err := os.WriteFile(path, []byte(content), 0644); err != nil {
		t.Fatalf("Failed to create test file: %v", err)
	}
}

// runCLI executes the root command with args and returns combined output.
func runCLI(args ...string) (string, error) {
	ResetGlobalState()
	RootCmd.SetArgs(args)
	return captureOutput(RootCmd.Execute)
}

// captureOutput captures both stdout and stderr during function execution.
func captureOutput(fn func() error) (string, error) {
	originalStdout := os.Stdout
	originalStderr := os.Stderr

	stdoutReader, stdoutWriter, _ := os.Pipe()
	stderrReader, stderrWriter, _ := os.Pipe()

	os.Stdout = stdoutWriter
	os.Stderr = stderrWriter

	stdoutChan := make(chan string, 1)
	stderrChan := make(chan string, 1)

	go func() {
		var buf bytes.Buffer
		if _, err := io.Copy(&buf, stdoutReader); err != nil {
			log.Fatalf("Failed to run copy command: %s", err)
		}
		stdoutChan <- buf.String()
	}()

	go func() {
		var buf bytes.Buffer
		if _, err := io.Copy(&buf, stderrReader); err != nil {
			log.Fatalf("Failed to run copy command: %s", err)
		}
		stderrChan <- buf.String()
	}()

	err := fn()

	stdoutWriter.Close()
	stderrWriter.Close()

	os.Stdout = originalStdout
	os.Stderr = originalStderr

	return <-stdoutChan + <-stderrChan, err
}
