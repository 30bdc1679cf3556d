package core

import (
	"context"
	"io"
	"os"
)

// SystemContext holds what the process learned about its host at startup.
// Everything here is captured once and never mutated afterwards.
type SystemContext struct {
	context.Context

	OS  string // runtime.GOOS (linux, darwin, windows)
	Cwd string // directory the install command runs in

	Logger Logger

	Stdout io.Writer
	Stderr io.Writer
}

// NewSystemContext builds a context with process defaults. The detector
// fills OS and Cwd.
func NewSystemContext(ctx context.Context) *SystemContext {
	if ctx == nil {
		ctx = context.Background()
	}
	return &SystemContext{
		Context: ctx,
		OS:      "unknown",
		Logger:  NopLogger{},
		Stdout:  os.Stdout,
		Stderr:  os.Stderr,
	}
}
