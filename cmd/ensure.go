package cmd

import (
	"github.com/spf13/cobra"
)

func newEnsureCmd(a *app) *cobra.Command {
	var noWait bool

	cmd := &cobra.Command{
		Use:   "ensure",
		Short: "Install the dependency once if it cannot be loaded",
		Long: `Resolves the dependency from the working directory. When that fails,
"npm install <name>" (npm.cmd on Windows) runs there and the dependency is
resolved again. If it is still missing a single JSON line
{"msg": "...", "flag": 0} is written to stdout.

The exit status is always 0.`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			s, err := a.setup(cmd)
			if err != nil {
				a.logger.Error("Dependency check skipped: " + err.Error())
				return nil
			}

			e, err := a.newEnsurer(s, cmd.OutOrStdout())
			if err != nil {
				a.logger.Error("Dependency check skipped: " + err.Error())
				return nil
			}

			task := e.Ensure(cmd.Context())
			if noWait {
				// The process may exit before the installer does; that ends the check.
				return nil
			}
			task.Wait()
			return nil
		},
	}

	addTargetFlags(cmd)
	cmd.Flags().String("platform", "", "platform used to pick the installer (default: this host)")
	cmd.Flags().BoolVar(&noWait, "no-wait", false, "return as soon as the installer has been started")

	return cmd
}
