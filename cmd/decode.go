package cmd

import (
	"fmt"
	"io"
	"os"

	"github.com/melih-ucgun/fecoding/internal/record"
	"github.com/pterm/pterm"
	"github.com/spf13/cobra"
)

func newDecodeCmd(a *app) *cobra.Command {
	return &cobra.Command{
		Use:   "decode [file|-]",
		Short: "Read a fecoding output record and show it",
		Long: `Reads script output (a file, or stdin when the argument is "-" or missing),
skips everything up to the "*** Fecoding output json ***" marker when present
and prints the record it contains.`,
		Args: cobra.MaximumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			var src io.Reader = cmd.InOrStdin()
			if len(args) == 1 && args[0] != "-" {
				f, err := os.Open(args[0])
				if err != nil {
					return err
				}
				defer f.Close()
				src = f
			}

			data, err := io.ReadAll(src)
			if err != nil {
				return fmt.Errorf("read output: %w", err)
			}

			rec, err := record.Decode(data)
			if err != nil {
				return err
			}
			if err := rec.Validate(); err != nil {
				return err
			}
			a.logger.Debug("Record decoded", "flag", rec.Flag, "action", string(rec.Action))

			out := cmd.OutOrStdout()
			switch rec.Action {
			case record.ActionOpenFile, record.ActionUpdateView:
				fmt.Fprintln(out, rec.Text())
			case record.ActionShowMessage, record.ActionStatusMessage:
				pterm.Info.WithWriter(out).Println(rec.Text())
			default:
				pterm.Error.WithWriter(out).Println(rec.Text())
			}
			return nil
		},
	}
}
