// Package cli is the introspect command line: analyze, reps and accounts
package cli

import (
	"context"
	"io"
	"os"

	"github.com/spf13/cobra"

	"introspect/internal/core/version"
	accdom "introspect/internal/services/accounts/domain"
	pipedom "introspect/internal/services/pipeline/domain"
	repsdom "introspect/internal/services/reps/domain"
)

// Backend hands commands their ports. Runner is separate because it needs
// platform and model credentials that the read commands do not
type Backend interface {
	Runner(ctx context.Context) (pipedom.RunnerPort, error)
	Accounts() accdom.Port
	Reps() repsdom.Port
	Close()
}

// Opener connects a Backend for one command
type Opener func(ctx context.Context) (Backend, error)

// App carries what every command shares
type App struct {
	Out  io.Writer
	Open Opener

	backend Backend
}

// NewRoot builds the command tree over app
func NewRoot(app *App) *cobra.Command {
	if app.Out == nil {
		app.Out = os.Stdout
	}
	root := &cobra.Command{
		Use:   "introspect",
		Short: "Score discovery calls and track MEDDPICC per account",
		Long: `introspect pulls recent calls for sales reps from Gong, classifies each
transcript as discovery or not, scores discovery calls on MEDDPICC and keeps a
best-ever score per customer account.`,
		Version:       version.Info("introspect").Version,
		SilenceUsage:  true,
		SilenceErrors: true,
		PersistentPreRunE: func(cmd *cobra.Command, _ []string) error {
			if app.backend != nil {
				return nil
			}
			b, err := app.Open(cmd.Context())
			if err != nil {
				return err
			}
			app.backend = b
			return nil
		},
		PersistentPostRun: func(*cobra.Command, []string) {
			if app.backend != nil {
				app.backend.Close()
				app.backend = nil
			}
		},
	}
	root.SetOut(app.Out)
	root.AddCommand(analyzeCmd(app), repsCmd(app), accountsCmd(app))
	return root
}

// Execute runs the command line against the environment configured store
func Execute(ctx context.Context) error {
	return NewRoot(&App{Out: os.Stdout, Open: OpenStore}).ExecuteContext(ctx)
}
