package config

import (
	"errors"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"

	"github.com/joho/godotenv"
	"github.com/melih-ucgun/fecoding/internal/consts"
	"gopkg.in/yaml.v3"
)

const (
	ResolverNodeModules = "node_modules"
	ResolverNode        = "node"
)

// Config is read by the CLI only. The ensurer receives plain values.
type Config struct {
	Dependency      string            `yaml:"dependency"`
	Dir             string            `yaml:"dir"`
	Resolver        string            `yaml:"resolver"`
	Node            string            `yaml:"node"`
	Installers      map[string]string `yaml:"installers"`
	MessageTemplate string            `yaml:"message_template"`
}

func Default() *Config {
	return &Config{
		Dependency: consts.DefaultDependency,
		Resolver:   ResolverNodeModules,
		Node:       "node",
	}
}

// Load builds the configuration for dir. Precedence, lowest first: defaults,
// the YAML file, .env in dir, the process environment.
//
// An empty path means dir/fecoding.yaml, which may be absent. An explicit
// path must exist.
func Load(dir, path string) (*Config, error) {
	cfg := Default()

	optional := path == ""
	if optional {
		path = filepath.Join(dir, consts.ConfigFileName)
	}

	data, err := os.ReadFile(path)
	switch {
	case err == nil:
		if err := yaml.Unmarshal(data, cfg); err != nil {
			return nil, fmt.Errorf("parse %s: %w", path, err)
		}
	case optional && errors.Is(err, fs.ErrNotExist):
	default:
		return nil, fmt.Errorf("read config: %w", err)
	}

	dotenv, err := godotenv.Read(filepath.Join(dir, consts.EnvFileName))
	if err != nil && !errors.Is(err, fs.ErrNotExist) {
		return nil, fmt.Errorf("read %s: %w", consts.EnvFileName, err)
	}

	cfg.applyEnv(func(key string) (string, bool) {
		if v, ok := os.LookupEnv(key); ok {
			return v, true
		}
		v, ok := dotenv[key]
		return v, ok
	})

	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return cfg, nil
}

func (c *Config) applyEnv(lookup func(string) (string, bool)) {
	if v, ok := lookup(consts.EnvPrefix + "DEPENDENCY"); ok && v != "" {
		c.Dependency = v
	}
	if v, ok := lookup(consts.EnvPrefix + "DIR"); ok && v != "" {
		c.Dir = v
	}
	if v, ok := lookup(consts.EnvPrefix + "RESOLVER"); ok && v != "" {
		c.Resolver = v
	}
	if v, ok := lookup(consts.EnvPrefix + "NODE"); ok && v != "" {
		c.Node = v
	}
}

func (c *Config) Validate() error {
	if c.Dependency == "" {
		return errors.New("dependency must not be empty")
	}
	switch c.Resolver {
	case ResolverNodeModules, ResolverNode:
	default:
		return fmt.Errorf("unknown resolver %q (want %s or %s)", c.Resolver, ResolverNodeModules, ResolverNode)
	}
	return nil
}
