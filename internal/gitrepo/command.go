package gitrepo

import (
	"bytes"
	"context"
	"fmt"
	"os"
	"os/exec"
	"strings"

	kerrors "github.com/PolarWolf314/scrub/internal/errors"
)

// CommandError is returned when a git subprocess exits unsuccessfully.
type CommandError struct {
	Args   []string
	Stderr string
	Err    error
}

func (e *CommandError) Error() string {
	msg := fmt.Sprintf("git %s: %v", strings.Join(e.Args, " "), e.Err)
	if stderr := strings.TrimSpace(e.Stderr); stderr != "" {
		msg += ": " + stderr
	}
	return msg
}

func (e *CommandError) Unwrap() error {
	return e.Err
}

// gitBinary resolves the git executable on PATH.
func gitBinary() (string, error) {
	path, err := exec.LookPath("git")
	if err != nil {
		return "", fmt.Errorf("%w: %v", kerrors.ErrGitNotFound, err)
	}
	return path, nil
}

// runGit runs git in dir with extra environment entries appended to the
// current process environment. Stdout is returned; stderr is attached to the
// error on failure.
func runGit(ctx context.Context, dir string, env []string, args ...string) ([]byte, error) {
	bin, err := gitBinary()
	if err != nil {
		return nil, err
	}

	cmd := exec.CommandContext(ctx, bin, args...)
	cmd.Dir = dir
	cmd.Env = append(os.Environ(), env...)

	var stdout, stderr bytes.Buffer
	cmd.Stdout = &stdout
	cmd.Stderr = &stderr

	if err := cmd.Run(); err != nil {
		return stdout.Bytes(), &CommandError{Args: args, Stderr: stderr.String(), Err: err}
	}
	return stdout.Bytes(), nil
}

// StageFile runs git add for path in the current directory. It is used from
// inside a filter-branch tree filter, where the working tree and index are
// provided by the environment filter-branch sets up.
func StageFile(ctx context.Context, path string) error {
	_, err := runGit(ctx, "", nil, "add", "--", path)
	return err
}
