package resolver

import (
	"context"
	"encoding/json"
	"path/filepath"

	"github.com/melih-ucgun/fecoding/internal/core"
)

// NodeModules resolves packages the way Node's require does for bare names:
// look for node_modules/<name> in dir and every parent up to the root, then
// pick the package entry point.
type NodeModules struct {
	FS core.FileSystem
}

func NewNodeModules() *NodeModules {
	return &NodeModules{FS: &core.RealFS{}}
}

func (r *NodeModules) Resolve(ctx context.Context, name, dir string) Resolution {
	if !ValidName(name) {
		return Unresolved(&NotFoundError{Name: name})
	}

	dir = filepath.Clean(dir)
	for {
		// Node never looks inside node_modules/node_modules.
		if filepath.Base(dir) != "node_modules" {
			pkgDir := filepath.Join(dir, "node_modules", filepath.FromSlash(name))
			if entry, ok := r.entry(pkgDir); ok {
				return Resolved(entry)
			}
		}

		parent := filepath.Dir(dir)
		if parent == dir {
			break
		}
		dir = parent
	}

	return Unresolved(&NotFoundError{Name: name})
}

func (r *NodeModules) entry(pkgDir string) (string, bool) {
	info, err := r.FS.Stat(pkgDir)
	if err != nil || !info.IsDir() {
		return "", false
	}

	main := "index.js"
	if data, err := r.FS.ReadFile(filepath.Join(pkgDir, "package.json")); err == nil {
		var manifest struct {
			Main string `json:"main"`
		}
		if json.Unmarshal(data, &manifest) == nil && manifest.Main != "" {
			main = manifest.Main
		}
	}

	candidates := []string{
		main,
		main + ".js",
		main + ".json",
		filepath.Join(main, "index.js"),
	}
	if main != "index.js" {
		candidates = append(candidates, "index.js")
	}

	for _, c := range candidates {
		p := filepath.Join(pkgDir, filepath.FromSlash(c))
		if info, err := r.FS.Stat(p); err == nil && !info.IsDir() {
			return p, true
		}
	}
	return "", false
}
