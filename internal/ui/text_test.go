package ui

import (
	"strings"
	"testing"
)

func TestFormatter_NoColor(t *testing.T) {
	t.Setenv("NO_COLOR", "1")

	tests := []struct {
		name      string
		formatter Formatter
		want      string
	}{
		{"Code", Code, "`git gc`"},
		{"Ref", Ref, "'git gc'"},
		{"Muted", Muted, "(git gc)"},
		{"Path", Path, "git gc"},
		{"Success", Success, "git gc"},
	}

	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			if got := tc.formatter.Sprint("git gc"); got != tc.want {
				t.Errorf("Sprint = %q, want %q", got, tc.want)
			}
			if got := tc.formatter.Sprintf("git %s", "gc"); got != tc.want {
				t.Errorf("Sprintf = %q, want %q", got, tc.want)
			}
		})
	}
}

func TestEnsureNewline(t *testing.T) {
	for in, want := range map[string]string{"": "\n", "done": "done\n", "done\n": "done\n"} {
		if got := EnsureNewline(in); got != want {
			t.Errorf("EnsureNewline(%q) = %q, want %q", in, got, want)
		}
	}
}

func TestBanner(t *testing.T) {
	b := Banner("scrub")
	if strings.TrimSpace(b) == "" {
		t.Fatal("Banner should not be empty")
	}
	if !strings.Contains(b, "\n") {
		t.Error("Banner should span several lines")
	}
}
