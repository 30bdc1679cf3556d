package resolver

import (
	"context"
	"fmt"
	"strconv"
	"strings"

	"github.com/melih-ucgun/fecoding/internal/core"
)

// Node asks a real node binary to resolve the module.
type Node struct {
	Runner     core.Runner
	Executable string
}

func NewNode(runner core.Runner) *Node {
	return &Node{Runner: runner, Executable: "node"}
}

func (r *Node) Resolve(ctx context.Context, name, dir string) Resolution {
	if !ValidName(name) {
		return Unresolved(&NotFoundError{Name: name})
	}

	exe := r.Executable
	if exe == "" {
		exe = "node"
	}

	script := fmt.Sprintf("process.stdout.write(require.resolve(%s))", strconv.Quote(name))
	out, err := r.Runner.Run(ctx, dir, exe, "-e", script)
	if err != nil {
		if strings.Contains(out, "Cannot find module") {
			return Unresolved(&NotFoundError{Name: name})
		}
		return Unresolved(&NotFoundError{Name: name, Cause: err})
	}

	handle := strings.TrimSpace(out)
	if handle == "" {
		return Unresolved(&NotFoundError{Name: name})
	}
	return Resolved(handle)
}
