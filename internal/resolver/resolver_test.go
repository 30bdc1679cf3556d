package resolver

import (
	"context"
	"errors"
	"os"
	"path/filepath"
	"testing"

	"github.com/melih-ucgun/fecoding/internal/core"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func writeFile(t *testing.T, path, content string) {
	t.Helper()
	require.NoError(t, os.MkdirAll(filepath.Dir(path), 0755))
	require.NoError(t, os.WriteFile(path, []byte(content), 0644))
}

func TestResolution(t *testing.T) {
	ok := Resolved("/x/index.js")
	assert.True(t, ok.OK())
	assert.Empty(t, ok.Detail())

	miss := Unresolved(&NotFoundError{Name: "fecoding"})
	assert.False(t, miss.OK())
	assert.Equal(t, "Error: Cannot find module 'fecoding'", miss.Detail())
	assert.ErrorIs(t, miss.Err, ErrNotFound)

	assert.ErrorIs(t, Unresolved(nil).Err, ErrNotFound)
}

func TestNotFoundError_WrapsCause(t *testing.T) {
	cause := errors.New("exec: \"node\": executable file not found in $PATH")
	err := &NotFoundError{Name: "fecoding", Cause: cause}

	assert.ErrorIs(t, err, ErrNotFound)
	assert.ErrorIs(t, err, cause)
	assert.Contains(t, err.Error(), "Cannot find module 'fecoding'")
}

func TestValidName(t *testing.T) {
	valid := []string{"fecoding", "lodash.merge", "@babel/core", "pkg/sub"}
	invalid := []string{"", "./local", "../up", "/abs", "a/../b", "@scope", "@scope/", `a\b`, "has space"}

	for _, n := range valid {
		assert.True(t, ValidName(n), n)
	}
	for _, n := range invalid {
		assert.False(t, ValidName(n), n)
	}
}

func TestNodeModules_Resolve(t *testing.T) {
	root := t.TempDir()
	app := filepath.Join(root, "app", "scripts")
	require.NoError(t, os.MkdirAll(app, 0755))

	// Installed one level above the working directory, with a main field.
	writeFile(t, filepath.Join(root, "app", "node_modules", "fecoding", "package.json"), `{"main":"lib/fecoding"}`)
	writeFile(t, filepath.Join(root, "app", "node_modules", "fecoding", "lib", "fecoding.js"), "")

	// No package.json, index.js only.
	writeFile(t, filepath.Join(root, "node_modules", "plain", "index.js"), "")

	// Scoped package with a directory main.
	writeFile(t, filepath.Join(app, "node_modules", "@fe", "tool", "package.json"), `{"main":"dist"}`)
	writeFile(t, filepath.Join(app, "node_modules", "@fe", "tool", "dist", "index.js"), "")

	// Directory exists but has no entry point.
	require.NoError(t, os.MkdirAll(filepath.Join(app, "node_modules", "empty"), 0755))

	r := NewNodeModules()
	ctx := context.Background()

	tests := []struct {
		name string
		want string
	}{
		{"fecoding", filepath.Join(root, "app", "node_modules", "fecoding", "lib", "fecoding.js")},
		{"plain", filepath.Join(root, "node_modules", "plain", "index.js")},
		{"@fe/tool", filepath.Join(app, "node_modules", "@fe", "tool", "dist", "index.js")},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			res := r.Resolve(ctx, tt.name, app)
			require.True(t, res.OK(), res.Detail())
			assert.Equal(t, tt.want, res.Handle)
		})
	}

	t.Run("missing", func(t *testing.T) {
		res := r.Resolve(ctx, "nope", app)
		assert.False(t, res.OK())
		assert.Equal(t, "Error: Cannot find module 'nope'", res.Detail())
	})

	t.Run("no entry point", func(t *testing.T) {
		assert.False(t, r.Resolve(ctx, "empty", app).OK())
	})

	t.Run("invalid name", func(t *testing.T) {
		assert.False(t, r.Resolve(ctx, "../app", app).OK())
	})
}

func TestNodeModules_SkipsNestedNodeModules(t *testing.T) {
	root := t.TempDir()
	start := filepath.Join(root, "node_modules")
	writeFile(t, filepath.Join(start, "node_modules", "ghost", "index.js"), "")

	res := NewNodeModules().Resolve(context.Background(), "ghost", start)
	assert.False(t, res.OK())
}

func TestNode_Resolve(t *testing.T) {
	ctx := context.Background()

	t.Run("resolved", func(t *testing.T) {
		runner := core.NewMockRunner()
		runner.OnRun("node -e", "/opt/app/node_modules/fecoding/index.js\n", nil)

		res := NewNode(runner).Resolve(ctx, "fecoding", "/opt/app")
		require.True(t, res.OK())
		assert.Equal(t, "/opt/app/node_modules/fecoding/index.js", res.Handle)

		calls := runner.RecordedCalls()
		require.Len(t, calls, 1)
		assert.Equal(t, "/opt/app", calls[0].Dir)
		assert.Equal(t, "node", calls[0].Name)
		assert.Equal(t, []string{"-e", `process.stdout.write(require.resolve("fecoding"))`}, calls[0].Args)
	})

	t.Run("module missing", func(t *testing.T) {
		runner := core.NewMockRunner()
		runner.OnRun("node -e", "node:internal/modules/cjs/loader:1080\nError: Cannot find module 'fecoding'\nRequire stack:\n- /opt/app/[eval]\n", errors.New("exit status 1"))

		res := NewNode(runner).Resolve(ctx, "fecoding", "/opt/app")
		assert.False(t, res.OK())
		assert.Equal(t, "Error: Cannot find module 'fecoding'", res.Detail())
	})

	t.Run("node not runnable", func(t *testing.T) {
		runner := core.NewMockRunner()
		cause := errors.New(`exec: "node": executable file not found in $PATH`)
		runner.OnRun("node -e", "", cause)

		res := NewNode(runner).Resolve(ctx, "fecoding", "/opt/app")
		assert.False(t, res.OK())
		assert.ErrorIs(t, res.Err, cause)
		assert.ErrorIs(t, res.Err, ErrNotFound)
	})

	t.Run("custom executable", func(t *testing.T) {
		runner := core.NewMockRunner()
		runner.OnRun("/usr/local/bin/node", "/x.js", nil)

		r := &Node{Runner: runner, Executable: "/usr/local/bin/node"}
		assert.True(t, r.Resolve(ctx, "fecoding", "/opt/app").OK())
	})
}

func TestFunc(t *testing.T) {
	r := Func(func(ctx context.Context, name, dir string) Resolution {
		return Resolved(dir + "/" + name)
	})
	assert.Equal(t, "/d/n", r.Resolve(context.Background(), "n", "/d").Handle)
}
