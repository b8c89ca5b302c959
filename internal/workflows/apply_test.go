package workflows

import (
	"context"
	"errors"
	"os"
	"path/filepath"
	"testing"

	"github.com/PolarWolf314/scrub/internal/configs"
	kerrors "github.com/PolarWolf314/scrub/internal/errors"
)

// writeTestFile is a helper to write test files with 0644 permissions.
func writeTestFile(t *testing.T, path, content string) {
	t.Helper()
	if err := os.WriteFile(path, []byte(content), 0644); err != nil {
		t.Fatalf("Failed to create test file: %v", err)
	}
}

func writeMapping(t *testing.T, secrets map[string]string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), "mapping.toml")
	if err := configs.SaveMappingConfig(path, &configs.MappingConfig{Secrets: secrets}); err != nil {
		t.Fatalf("Failed to write mapping: %v", err)
	}
	return path
}

// recordingStage records staged paths and returns err.
func recordingStage(staged *[]string, err error) func(context.Context, string) error {
	return func(ctx context.Context, path string) error {
		*staged = append(*staged, path)
		return err
	}
}

func TestApply_ReplacesAndStages(t *testing.T) {
	target := filepath.Join(t.TempDir(), "GOOGLE_CLOUD_SETUP.md")
	writeTestFile(t, target, "token: abc123secret")

	var staged []string
	result, err := Apply(context.Background(), ApplyOptions{
		MappingPath: writeMapping(t, map[string]string{"abc123secret": "[REDACTED]"}),
		TargetFile:  target,
		Stage:       recordingStage(&staged, nil),
	})
	if err != nil {
		t.Fatalf("Apply failed: %v", err)
	}

	if !result.Exists || !result.Changed || !result.Staged {
		t.Errorf("Unexpected result %+v", result)
	}
	if len(staged) != 1 || staged[0] != target {
		t.Errorf("Expected %s to be staged, got %v", target, staged)
	}

	data, err := os.ReadFile(target)
	if err != nil {
		t.Fatalf("Failed to read target: %v", err)
	}
	if string(data) != "token: [REDACTED]" {
		t.Errorf("Expected %q, got %q", "token: [REDACTED]", string(data))
	}
}

func TestApply_EmptyMappingStillStages(t *testing.T) {
	target := filepath.Join(t.TempDir(), "GOOGLE_CLOUD_SETUP.md")
	writeTestFile(t, target, "token: abc123secret")

	var staged []string
	result, err := Apply(context.Background(), ApplyOptions{
		MappingPath: writeMapping(t, nil),
		TargetFile:  target,
		Stage:       recordingStage(&staged, nil),
	})
	if err != nil {
		t.Fatalf("Apply failed: %v", err)
	}

	if result.Changed {
		t.Error("Empty mapping should not change the file")
	}
	if len(staged) != 1 {
		t.Errorf("Expected file to be re-staged, got %v", staged)
	}

	data, _ := os.ReadFile(target)
	if string(data) != "token: abc123secret" {
		t.Errorf("Content changed: %q", string(data))
	}
}

func TestApply_MissingTargetIsNoop(t *testing.T) {
	target := filepath.Join(t.TempDir(), "GOOGLE_CLOUD_SETUP.md")

	var staged []string
	result, err := Apply(context.Background(), ApplyOptions{
		MappingPath: writeMapping(t, map[string]string{"abc123secret": "[REDACTED]"}),
		TargetFile:  target,
		Stage:       recordingStage(&staged, nil),
	})
	if err != nil {
		t.Fatalf("Apply failed: %v", err)
	}

	if result.Exists || result.Changed || result.Staged {
		t.Errorf("Unexpected result %+v", result)
	}
	if len(staged) != 0 {
		t.Errorf("Nothing should be staged, got %v", staged)
	}
	if _, err := os.Stat(target); !os.IsNotExist(err) {
		t.Error("Apply should not create the target file")
	}
}

func TestApply_StageFailureTolerated(t *testing.T) {
	target := filepath.Join(t.TempDir(), "GOOGLE_CLOUD_SETUP.md")
	writeTestFile(t, target, "token: abc123secret")

	var staged []string
	result, err := Apply(context.Background(), ApplyOptions{
		MappingPath: writeMapping(t, map[string]string{"abc123secret": "[REDACTED]"}),
		TargetFile:  target,
		Stage:       recordingStage(&staged, errors.New("not a git repository")),
	})
	if err != nil {
		t.Fatalf("Stage failure should be tolerated, got: %v", err)
	}
	if !result.Changed || result.Staged {
		t.Errorf("Unexpected result %+v", result)
	}
}

func TestApply_MissingMapping(t *testing.T) {
	_, err := Apply(context.Background(), ApplyOptions{
		MappingPath: filepath.Join(t.TempDir(), "missing.toml"),
		TargetFile:  filepath.Join(t.TempDir(), "GOOGLE_CLOUD_SETUP.md"),
		Stage:       func(context.Context, string) error { return nil },
	})
	if !errors.Is(err, kerrors.ErrMappingNotFound) {
		t.Errorf("Expected ErrMappingNotFound, got: %v", err)
	}
}

func TestApply_Idempotent(t *testing.T) {
	target := filepath.Join(t.TempDir(), "GOOGLE_CLOUD_SETUP.md")
	writeTestFile(t, target, "id: client-id\nsecret: client-secret\n")

	opts := ApplyOptions{
		MappingPath: writeMapping(t, map[string]string{
			"client-id":     "[Your OAuth Client ID]",
			"client-secret": "[Your OAuth Client Secret]",
		}),
		TargetFile: target,
		Stage:      func(context.Context, string) error { return nil },
	}

	if _, err := Apply(context.Background(), opts); err != nil {
		t.Fatalf("First Apply failed: %v", err)
	}
	once, _ := os.ReadFile(target)

	result, err := Apply(context.Background(), opts)
	if err != nil {
		t.Fatalf("Second Apply failed: %v", err)
	}
	twice, _ := os.ReadFile(target)

	if result.Changed {
		t.Error("Second pass should not change the file")
	}
	if string(once) != string(twice) {
		t.Errorf("Content differs between passes:\n%q\n%q", once, twice)
	}
}
