package logger

import (
	"bytes"
	"strings"
	"testing"

	"github.com/fatih/color"
)

func TestLoggerLevels(t *testing.T) {
	color.NoColor = true

	tests := []struct {
		name      string
		verbose   bool
		debug     bool
		wantInfo  bool
		wantDebug bool
	}{
		{"Quiet", false, false, false, false},
		{"Verbose", true, false, true, false},
		{"Debug", false, true, true, true},
	}

	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			var out, errOut bytes.Buffer
			l := Logger{Verbose: tc.verbose, Debug: tc.debug, Out: &out, Err: &errOut}

			l.Infof("info %d", 1)
			l.Debugf("debug %d", 2)
			l.Warnf("warn %d", 3)

			if got := strings.Contains(out.String(), "[info] info 1"); got != tc.wantInfo {
				t.Errorf("info shown = %t, want %t (output %q)", got, tc.wantInfo, out.String())
			}
			if got := strings.Contains(out.String(), "[debug] debug 2"); got != tc.wantDebug {
				t.Errorf("debug shown = %t, want %t (output %q)", got, tc.wantDebug, out.String())
			}
			if !strings.Contains(errOut.String(), "[warn] warn 3") {
				t.Errorf("warnings should always be shown, got %q", errOut.String())
			}
		})
	}
}

func TestErrorf(t *testing.T) {
	color.NoColor = true

	var out, errOut bytes.Buffer
	l := Logger{Out: &out, Err: &errOut}

	l.Errorf("failed to open %s", "repo")
	if out.Len() != 0 {
		t.Errorf("errors should not go to stdout, got %q", out.String())
	}
	if errOut.String() != "[error] failed to open repo\n" {
		t.Errorf("unexpected error output %q", errOut.String())
	}
}
