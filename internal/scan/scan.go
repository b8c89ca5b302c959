// Package scan checks a file for secrets that survived sanitizing.
//
// Two detectors run over the file: an exact count of every configured secret
// literal, and the gitleaks default rule set for secrets nobody listed.
package scan

import (
	"fmt"
	"os"

	"github.com/PolarWolf314/scrub/internal/redact"
	"github.com/zricethezav/gitleaks/v8/detect"
)

// Finding is a gitleaks match with its location in the file.
type Finding struct {
	RuleID   string // Gitleaks rule ID (e.g., "gcp-api-key")
	RuleDesc string // Human-readable description
	Line     int    // Line number where the secret was found
	StartCol int    // Start column
	EndCol   int    // End column
	Match    string // The matched secret
}

// Report is the outcome of scanning one file.
type Report struct {
	Path   string
	Exists bool

	// Literals counts occurrences of configured secrets still present.
	Literals map[string]int

	// Findings are secrets detected by gitleaks rules.
	Findings []Finding
}

// Found reports whether any secret was detected.
func (r *Report) Found() bool {
	return len(r.Literals) > 0 || len(r.Findings) > 0
}

// File scans path for the mapping's secrets and for gitleaks findings.
// A missing file yields an empty report with Exists set to false.
func File(path string, m redact.Mapping) (*Report, error) {
	report := &Report{
		Path:     path,
		Literals: map[string]int{},
	}

	data, err := os.ReadFile(path)
	if os.IsNotExist(err) {
		return report, nil
	}
	if err != nil {
		return nil, fmt.Errorf("reading %s: %w", path, err)
	}
	report.Exists = true

	content := string(data)
	report.Literals = redact.Count(content, m)

	findings, err := Detect(content)
	if err != nil {
		return nil, err
	}
	report.Findings = findings

	return report, nil
}

// Detect runs the gitleaks default configuration over content.
func Detect(content string) ([]Finding, error) {
	detector, err := detect.NewDetectorDefaultConfig()
	if err != nil {
		return nil, fmt.Errorf("creating gitleaks detector: %w", err)
	}

	gitleaksFindings := detector.DetectString(content)

	result := make([]Finding, 0, len(gitleaksFindings))
	for _, f := range gitleaksFindings {
		result = append(result, Finding{
			RuleID:   f.RuleID,
			RuleDesc: f.Description,
			Line:     f.StartLine,
			StartCol: f.StartColumn,
			EndCol:   f.EndColumn,
			Match:    f.Secret,
		})
	}
	return result, nil
}
