package cli

import (
	"os"

	"github.com/spf13/cobra"
)

func repsCmd(app *App) *cobra.Command {
	var asJSON bool
	cmd := &cobra.Command{
		Use:   "reps",
		Short: "Manage the sales rep roster",
	}
	cmd.PersistentFlags().BoolVar(&asJSON, "json", false, "print JSON instead of a table")

	load := &cobra.Command{
		Use:   "load <file>",
		Short: "Upsert reps from an email,segment,MM/DD/YYYY file",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			f, err := os.Open(args[0])
			if err != nil {
				return err
			}
			defer f.Close()

			res, err := app.backend.Reps().LoadCSV(cmd.Context(), f)
			if err != nil {
				return err
			}
			if asJSON {
				return writeJSON(app.Out, res)
			}
			RenderLoad(app.Out, res)
			return nil
		},
	}

	list := &cobra.Command{
		Use:   "list",
		Short: "List loaded reps",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			reps, err := app.backend.Reps().List(cmd.Context())
			if err != nil {
				return err
			}
			if asJSON {
				return writeJSON(app.Out, reps)
			}
			RenderReps(app.Out, reps)
			return nil
		},
	}

	cmd.AddCommand(load, list)
	return cmd
}
