package cmd

import (
	"errors"
	"fmt"

	"github.com/spf13/cobra"
)

func newResolveCmd(a *app) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "resolve",
		Short: "Print where the dependency resolves to, without installing anything",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			s, err := a.setup(cmd)
			if err != nil {
				return err
			}

			res := s.resolver.Resolve(cmd.Context(), s.name, s.sys.Cwd)
			if !res.OK() {
				return errors.New(res.Detail())
			}

			fmt.Fprintln(cmd.OutOrStdout(), res.Handle)
			return nil
		},
	}

	addTargetFlags(cmd)
	return cmd
}
