package cli

import (
	"github.com/spf13/cobra"
)

func accountsCmd(app *App) *cobra.Command {
	var asJSON bool
	cmd := &cobra.Command{
		Use:   "accounts",
		Short: "Inspect per-domain MEDDPICC accounts",
	}
	cmd.PersistentFlags().BoolVar(&asJSON, "json", false, "print JSON instead of a table")

	list := &cobra.Command{
		Use:   "list",
		Short: "List every account with its best overall score",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			accts, err := app.backend.Accounts().ListAll(cmd.Context())
			if err != nil {
				return err
			}
			if asJSON {
				return writeJSON(app.Out, accts)
			}
			RenderAccounts(app.Out, accts)
			return nil
		},
	}

	show := &cobra.Command{
		Use:   "show <domain>",
		Short: "Show one account's best-ever vector and its calls",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			a, err := app.backend.Accounts().GetByDomain(cmd.Context(), args[0])
			if err != nil {
				return err
			}
			if asJSON {
				return writeJSON(app.Out, a)
			}
			RenderAccount(app.Out, a)
			return nil
		},
	}

	cmd.AddCommand(list, show)
	return cmd
}
