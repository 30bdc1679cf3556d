package cmd

import (
	"fmt"
	"io"
	"path/filepath"

	"github.com/melih-ucgun/fecoding/internal/config"
	"github.com/melih-ucgun/fecoding/internal/core"
	"github.com/melih-ucgun/fecoding/internal/ensurer"
	"github.com/melih-ucgun/fecoding/internal/platform"
	"github.com/melih-ucgun/fecoding/internal/record"
	"github.com/melih-ucgun/fecoding/internal/resolver"
	"github.com/melih-ucgun/fecoding/internal/system"
	"github.com/spf13/cobra"
)

// setup is everything a subcommand needs after flags, config and the host
// have been read.
type setup struct {
	sys      *core.SystemContext
	cfg      *config.Config
	name     string
	platform string
	resolver resolver.Resolver
}

func (a *app) setup(cmd *cobra.Command) (*setup, error) {
	dirFlag, _ := cmd.Flags().GetString("dir")
	nameFlag, _ := cmd.Flags().GetString("name")

	sys, err := system.Detect(cmd.Context(), dirFlag)
	if err != nil {
		return nil, err
	}
	sys.Logger = a.logger
	sys.Stdout = cmd.OutOrStdout()
	sys.Stderr = cmd.ErrOrStderr()

	cfg, err := config.Load(sys.Cwd, a.configPath)
	if err != nil {
		return nil, err
	}

	// The config may move the working directory unless the flag already did.
	if dirFlag == "" && cfg.Dir != "" {
		dir := cfg.Dir
		if !filepath.IsAbs(dir) {
			dir = filepath.Join(sys.Cwd, dir)
		}
		sys.Cwd = filepath.Clean(dir)
	}

	s := &setup{
		sys:      sys,
		cfg:      cfg,
		name:     cfg.Dependency,
		platform: sys.OS,
	}
	if nameFlag != "" {
		s.name = nameFlag
	}
	if f := cmd.Flags().Lookup("platform"); f != nil && f.Changed {
		s.platform = f.Value.String()
	}

	switch cfg.Resolver {
	case config.ResolverNode:
		s.resolver = &resolver.Node{Runner: a.runner, Executable: cfg.Node}
	default:
		s.resolver = resolver.NewNodeModules()
	}

	a.logger.Debug("Configuration loaded",
		"dependency", s.name, "dir", sys.Cwd, "platform", s.platform, "resolver", cfg.Resolver)
	return s, nil
}

func (a *app) newEnsurer(s *setup, out io.Writer) (*ensurer.Ensurer, error) {
	e, err := ensurer.New(ensurer.Options{
		Dependency:      s.name,
		Dir:             s.sys.Cwd,
		Platform:        s.platform,
		Installer:       platform.FromTable(s.cfg.Installers, platform.Default),
		Resolver:        s.resolver,
		Runner:          a.runner,
		Sink:            record.NewWriterSink(out),
		Logger:          a.logger,
		MessageTemplate: s.cfg.MessageTemplate,
	})
	if err != nil {
		return nil, fmt.Errorf("ensurer: %w", err)
	}
	return e, nil
}

func addTargetFlags(cmd *cobra.Command) {
	cmd.Flags().StringP("name", "n", "", "dependency to resolve (default from config, then \"fecoding\")")
	cmd.Flags().StringP("dir", "d", "", "working directory (default: directory of this binary)")
}
