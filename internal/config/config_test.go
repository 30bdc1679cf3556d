package config

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestLoad_Defaults(t *testing.T) {
	cfg, err := Load(t.TempDir(), "")
	require.NoError(t, err)

	assert.Equal(t, "fecoding", cfg.Dependency)
	assert.Equal(t, ResolverNodeModules, cfg.Resolver)
	assert.Equal(t, "node", cfg.Node)
	assert.Empty(t, cfg.Installers)
}

func TestLoad_YAML(t *testing.T) {
	dir := t.TempDir()
	content := `
dependency: fe-lint
resolver: node
installers:
  windows: C:\node\npm.cmd
  linux: /usr/bin/npm
message_template: "{{ .Dependency }} is missing"
`
	require.NoError(t, os.WriteFile(filepath.Join(dir, "fecoding.yaml"), []byte(content), 0644))

	cfg, err := Load(dir, "")
	require.NoError(t, err)

	assert.Equal(t, "fe-lint", cfg.Dependency)
	assert.Equal(t, ResolverNode, cfg.Resolver)
	assert.Equal(t, `C:\node\npm.cmd`, cfg.Installers["windows"])
	assert.Equal(t, "/usr/bin/npm", cfg.Installers["linux"])
	assert.Equal(t, "{{ .Dependency }} is missing", cfg.MessageTemplate)
}

func TestLoad_ExplicitPathMustExist(t *testing.T) {
	_, err := Load(t.TempDir(), "/does/not/exist.yaml")
	assert.ErrorContains(t, err, "read config")
}

func TestLoad_BadYAML(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "custom.yaml")
	require.NoError(t, os.WriteFile(path, []byte("dependency: [unterminated"), 0644))

	_, err := Load(dir, path)
	assert.ErrorContains(t, err, "parse")
}

func TestLoad_EnvPrecedence(t *testing.T) {
	dir := t.TempDir()
	require.NoError(t, os.WriteFile(filepath.Join(dir, "fecoding.yaml"), []byte("dependency: from-yaml\n"), 0644))
	require.NoError(t, os.WriteFile(filepath.Join(dir, ".env"), []byte("FECODING_DEPENDENCY=from-dotenv\nFECODING_RESOLVER=node\n"), 0644))

	cfg, err := Load(dir, "")
	require.NoError(t, err)
	assert.Equal(t, "from-dotenv", cfg.Dependency)
	assert.Equal(t, ResolverNode, cfg.Resolver)

	t.Setenv("FECODING_DEPENDENCY", "from-env")
	cfg, err = Load(dir, "")
	require.NoError(t, err)
	assert.Equal(t, "from-env", cfg.Dependency)
}

func TestValidate(t *testing.T) {
	cfg := Default()
	cfg.Resolver = "yarn-pnp"
	assert.ErrorContains(t, cfg.Validate(), "unknown resolver")

	cfg = Default()
	cfg.Dependency = ""
	assert.Error(t, cfg.Validate())
}
