package core

import (
	"context"
	"os/exec"
	"strings"
)

// Runner starts an external command in a directory and returns its combined
// output. It allows mocking process execution in tests.
type Runner interface {
	Run(ctx context.Context, dir, name string, args ...string) (string, error)
}

// ExecRunner implements Runner using os/exec.
type ExecRunner struct{}

func (ExecRunner) Run(ctx context.Context, dir, name string, args ...string) (string, error) {
	cmd := exec.CommandContext(ctx, name, args...)
	cmd.Dir = dir
	out, err := cmd.CombinedOutput()
	return string(out), err
}

// CommandLine joins a command the way it would be typed in a shell. Used for
// log lines and mock expectations only; nothing is ever passed to a shell.
func CommandLine(name string, args ...string) string {
	return strings.TrimSpace(name + " " + strings.Join(args, " "))
}

// IsCommandAvailable reports whether name is on PATH.
var IsCommandAvailable = func(name string) bool {
	_, err := exec.LookPath(name)
	return err == nil
}
