package cmd

import (
	"encoding/json"
	"strings"
	"testing"

	"github.com/PolarWolf314/scrub/internal/audit"
)

func TestLogCommand_Empty(t *testing.T) {
	tempDir := setupTestDir(t)
	initTestRepo(t, tempDir, "token: x\n")

	output, err := runCLI("log")
	if err != nil {
		t.Fatalf("log failed: %v", err)
	}
	if !strings.Contains(output, "No sanitizer runs recorded.") {
		t.Errorf("Unexpected output:\n%s", output)
	}
}

func TestLogCommand_DryRunNotRecorded(t *testing.T) {
	tempDir := setupTestDir(t)
	initTestRepo(t, tempDir, "token: x\n")

	if output, err := runCLI("--dry-run"); err != nil {
		t.Fatalf("Dry run failed: %v\n%s", err, output)
	}

	output, err := runCLI("log")
	if err != nil {
		t.Fatalf("log failed: %v", err)
	}
	if !strings.Contains(output, "No sanitizer runs recorded.") {
		t.Errorf("Dry run must not be recorded, got:\n%s", output)
	}
}

func TestLogCommand_ShowsFailedRun(t *testing.T) {
	tempDir := setupTestDir(t)
	initTestRepo(t, tempDir, "")

	if _, err := runCLI(); err == nil {
		t.Fatal("Expected backup failure in a repository without commits")
	}

	output, err := runCLI("log")
	if err != nil {
		t.Fatalf("log failed: %v", err)
	}
	if !strings.Contains(output, audit.OutcomeBackupFailed) || !strings.Contains(output, "backup-before-secret-cleanup-") {
		t.Errorf("Expected backup failure entry, got:\n%s", output)
	}
}

func TestLogCommand_JSON(t *testing.T) {
	tempDir := setupTestDir(t)
	initTestRepo(t, tempDir, "token: x\n")

	output, err := runCLI("log", "--json")
	if err != nil {
		t.Fatalf("log failed: %v", err)
	}

	var entries []audit.Entry
	if err := json.Unmarshal([]byte(strings.TrimSpace(output)), &entries); err != nil {
		t.Fatalf("Output is not a JSON array: %v\n%s", err, output)
	}
	if len(entries) != 0 {
		t.Errorf("Expected empty array, got %d entries", len(entries))
	}
}

func TestFormatLogEntry(t *testing.T) {
	t.Setenv("NO_COLOR", "1")

	line := formatLogEntry(audit.Entry{
		Timestamp:     "2026-10-19T12:34:56.000000Z",
		Outcome:       audit.OutcomeSuccess,
		BackupBranch:  "backup-before-secret-cleanup-1",
		TargetFile:    "GOOGLE_CLOUD_SETUP.md",
		SecretsCount:  2,
		CleanupFailed: []string{"gc"},
	})

	for _, want := range []string{"2026-10-19 12:34:56", "success", "backup-before-secret-cleanup-1", "2 secret(s)", "cleanup failed: gc"} {
		if !strings.Contains(line, want) {
			t.Errorf("Expected %q in %q", want, line)
		}
	}
}
