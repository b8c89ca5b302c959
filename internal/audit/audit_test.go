package audit

import (
	"os"
	"path/filepath"
	"strings"
	"testing"
)

func TestLog_CreatesFile(t *testing.T) {
	gitDir := filepath.Join(t.TempDir(), ".git")
	if err := os.MkdirAll(gitDir, 0755); err != nil {
		t.Fatalf("Failed to create .git dir: %v", err)
	}

	entry := NewEntry("sanitize")
	entry.Outcome = OutcomeSuccess
	if entry.RunID == "" || entry.User == "" {
		t.Errorf("Expected run ID and user, got %+v", entry)
	}
	Log(gitDir, entry)

	logPath := filepath.Join(gitDir, "scrub", "audit.jsonl")
	if _, err := os.Stat(logPath); os.IsNotExist(err) {
		t.Fatalf("Run history file was not created")
	}
}

func TestLog_AppendsEntries(t *testing.T) {
	gitDir := t.TempDir()

	Log(gitDir, Entry{Operation: "sanitize", Outcome: OutcomeBackupFailed})
	Log(gitDir, Entry{Operation: "sanitize", Outcome: OutcomeRewriteFailed})
	Log(gitDir, Entry{Operation: "sanitize", Outcome: OutcomeSuccess, BackupBranch: "backup-before-secret-cleanup-1"})

	entries, err := ReadEntries(gitDir)
	if err != nil {
		t.Fatalf("ReadEntries failed: %v", err)
	}
	if len(entries) != 3 {
		t.Fatalf("Expected 3 entries, got %d", len(entries))
	}

	expected := []string{OutcomeBackupFailed, OutcomeRewriteFailed, OutcomeSuccess}
	for i, outcome := range expected {
		if entries[i].Outcome != outcome {
			t.Errorf("Entry %d: expected outcome %q, got %q", i, outcome, entries[i].Outcome)
		}
		if entries[i].Timestamp == "" {
			t.Errorf("Entry %d: expected timestamp to be set", i)
		}
	}
	if entries[2].BackupBranch != "backup-before-secret-cleanup-1" {
		t.Errorf("Unexpected backup branch %q", entries[2].BackupBranch)
	}
}

func TestLog_EmptyGitDirIsNoop(t *testing.T) {
	Log("", Entry{Operation: "sanitize"})

	entries, err := ReadEntries("")
	if err != nil {
		t.Fatalf("Expected no error, got: %v", err)
	}
	if entries != nil {
		t.Errorf("Expected nil entries, got %v", entries)
	}
}

func TestNewEntry(t *testing.T) {
	a := NewEntry("sanitize")
	b := NewEntry("sanitize")

	if a.RunID == "" || a.RunID == b.RunID {
		t.Errorf("Expected unique run IDs, got %q and %q", a.RunID, b.RunID)
	}
	if a.Operation != "sanitize" {
		t.Errorf("Unexpected operation %q", a.Operation)
	}
}

func TestParseEntries_SkipsMalformed(t *testing.T) {
	data := strings.Join([]string{
		`{"ts":"2026-01-01T00:00:00.000000Z","op":"sanitize","outcome":"success"}`,
		`not json`,
		``,
		`{"ts":"2026-01-02T00:00:00.000000Z","op":"sanitize","outcome":"rewrite_failed","backup_branch":"backup-before-secret-cleanup-1"}`,
	}, "\n")

	entries, err := ParseEntries([]byte(data))
	if err != nil {
		t.Fatalf("ParseEntries failed: %v", err)
	}
	if len(entries) != 2 {
		t.Fatalf("Expected 2 entries, got %d", len(entries))
	}
	if entries[1].Outcome != OutcomeRewriteFailed || entries[1].BackupBranch != "backup-before-secret-cleanup-1" {
		t.Errorf("Unexpected entry %+v", entries[1])
	}
}

func TestReadEntries_Missing(t *testing.T) {
	entries, err := ReadEntries(t.TempDir())
	if err != nil {
		t.Fatalf("Expected no error, got: %v", err)
	}
	if len(entries) != 0 {
		t.Errorf("Expected no entries, got %d", len(entries))
	}
}
