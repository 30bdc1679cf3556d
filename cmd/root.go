package cmd

import (
	"log/slog"
	"os"

	"github.com/melih-ucgun/fecoding/internal/core"
	"github.com/pterm/pterm"
	"github.com/spf13/cobra"
)

// app carries what the subcommands share. runner is replaced in tests.
type app struct {
	verboseCount int
	configPath   string

	runner core.Runner
	logger core.Logger
}

func Execute() error {
	return NewRootCmd().Execute()
}

func NewRootCmd() *cobra.Command {
	return newRootCmd(core.ExecRunner{})
}

func newRootCmd(runner core.Runner) *cobra.Command {
	a := &app{runner: runner, logger: core.NopLogger{}}

	rootCmd := &cobra.Command{
		Use:           "fecoding",
		Short:         "Makes sure the fecoding npm package is installed.",
		Long:          `fecoding checks that the fecoding package can be loaded next to this binary and runs npm install once when it cannot.`,
		SilenceUsage:  true,
		SilenceErrors: true,
		PersistentPreRun: func(cmd *cobra.Command, args []string) {
			level := core.LevelFromVerbosity(a.verboseCount)
			if level <= core.LevelDebug {
				pterm.EnableDebugMessages()
			}
			a.logger = core.NewDefaultLogger(cmd.ErrOrStderr(), level)
		},
	}

	rootCmd.PersistentFlags().StringVarP(&a.configPath, "config", "c", "", "config file path (default <dir>/fecoding.yaml)")
	rootCmd.PersistentFlags().CountVarP(&a.verboseCount, "verbose", "v", "Increase verbosity level (-v, -vv, -vvv)")

	rootCmd.AddCommand(newEnsureCmd(a))
	rootCmd.AddCommand(newResolveCmd(a))
	rootCmd.AddCommand(newDecodeCmd(a))

	return rootCmd
}

func init() {
	handler := slog.NewTextHandler(os.Stderr, &slog.HandlerOptions{
		Level: slog.LevelWarn,
	})
	slog.SetDefault(slog.New(handler))

	// PTerm output to Stderr (stdout carries the JSON record only)
	pterm.SetDefaultOutput(os.Stderr)
	pterm.Success.Writer = os.Stderr
	pterm.Info.Writer = os.Stderr
	pterm.Error.Writer = os.Stderr
	pterm.Warning.Writer = os.Stderr
	pterm.DefaultHeader.Writer = os.Stderr
}
