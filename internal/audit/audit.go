package audit

import (
	"encoding/json"
	"os"
	"path/filepath"
	"time"

	"github.com/PolarWolf314/scrub/internal/utils"
	"github.com/google/uuid"
)

// Outcomes recorded for a sanitizer run.
const (
	OutcomeSuccess       = "success"
	OutcomeBackupFailed  = "backup_failed"
	OutcomeRewriteFailed = "rewrite_failed"
)

// Entry represents a single run history entry.
type Entry struct {
	Timestamp string `json:"ts"`   // RFC3339 with microseconds.
	RunID     string `json:"run"`  // UUID of the run.
	User      string `json:"user"` // OS user who ran scrub.
	Host      string `json:"host,omitempty"`
	Operation string `json:"op"`

	TargetFile    string   `json:"file,omitempty"`
	SecretsCount  int      `json:"secrets_count"`
	Fingerprints  []string `json:"fingerprints,omitempty"` // Never the secrets themselves.
	BackupBranch  string   `json:"backup_branch,omitempty"`
	BackupHash    string   `json:"backup_hash,omitempty"`
	Outcome       string   `json:"outcome"`
	CleanupFailed []string `json:"cleanup_failed,omitempty"`
}

// NewEntry returns an entry for op with a fresh run ID and the current user.
func NewEntry(op string) Entry {
	operator := utils.CurrentOperator()
	return Entry{
		RunID:     uuid.New().String(),
		User:      operator.User,
		Host:      operator.Host,
		Operation: op,
	}
}

// LogPath returns the history file for the repository whose .git directory is gitDir.
// Returns empty string if gitDir is empty.
func LogPath(gitDir string) string {
	if gitDir == "" {
		return ""
	}
	return filepath.Join(gitDir, "scrub", "audit.jsonl")
}

// Log appends an entry to the run history.
// Failures are ignored: a run should not fail because its history could not be written.
func Log(gitDir string, entry Entry) {
	if entry.Timestamp == "" {
		entry.Timestamp = time.Now().UTC().Format("2006-01-02T15:04:05.000000Z")
	}

	logPath := LogPath(gitDir)
	if logPath == "" {
		return
	}

	if err := os.MkdirAll(filepath.Dir(logPath), 0755); err != nil {
		return
	}

	// #nosec G306 -- history holds no secret values.
	f, err := os.OpenFile(logPath, os.O_APPEND|os.O_CREATE|os.O_WRONLY, 0644)
	if err != nil {
		return
	}
	defer f.Close()

	data, err := json.Marshal(entry)
	if err != nil {
		return
	}

	_, _ = f.Write(append(data, '\n'))
}

// ReadEntries reads all entries from the run history.
// Returns an empty slice if the history doesn't exist.
func ReadEntries(gitDir string) ([]Entry, error) {
	logPath := LogPath(gitDir)
	if logPath == "" {
		return nil, nil
	}

	data, err := os.ReadFile(logPath)
	if os.IsNotExist(err) {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}

	return ParseEntries(data)
}

// ParseEntries parses JSON Lines data into entries.
// Malformed lines are silently skipped.
func ParseEntries(data []byte) ([]Entry, error) {
	if len(data) == 0 {
		return nil, nil
	}

	var entries []Entry
	start := 0

	for i := 0; i <= len(data); i++ {
		if i == len(data) || data[i] == '\n' {
			line := data[start:i]
			start = i + 1

			if len(line) == 0 {
				continue
			}

			var entry Entry
			if err := json.Unmarshal(line, &entry); err != nil {
				continue
			}
			entries = append(entries, entry)
		}
	}

	return entries, nil
}
