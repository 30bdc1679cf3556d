package system

import (
	"context"
	"fmt"
	"os"
	"path/filepath"
	"runtime"

	"github.com/melih-ucgun/fecoding/internal/core"
)

// executable is swapped in tests.
var executable = os.Executable

// Detect fills a SystemContext for the current process. dir overrides the
// working directory; when empty, the directory holding the running binary
// is used.
func Detect(ctx context.Context, dir string) (*core.SystemContext, error) {
	sys := core.NewSystemContext(ctx)
	sys.OS = runtime.GOOS

	cwd, err := ScriptDir(dir)
	if err != nil {
		return nil, err
	}
	sys.Cwd = cwd

	return sys, nil
}

// ScriptDir returns dir as an absolute path, or the directory of the running
// executable (symlinks resolved) when dir is empty.
func ScriptDir(dir string) (string, error) {
	if dir != "" {
		abs, err := filepath.Abs(dir)
		if err != nil {
			return "", fmt.Errorf("working directory %q: %w", dir, err)
		}
		return abs, nil
	}

	exe, err := executable()
	if err != nil {
		return "", fmt.Errorf("locate executable: %w", err)
	}
	if resolved, err := filepath.EvalSymlinks(exe); err == nil {
		exe = resolved
	}
	return filepath.Dir(exe), nil
}
