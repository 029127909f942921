package cli

import (
	"bufio"
	"os"
	"strings"

	"github.com/spf13/cobra"

	pipedom "introspect/internal/services/pipeline/domain"
)

func analyzeCmd(app *App) *cobra.Command {
	var (
		days     int
		reps     []string
		repsFile string
		asJSON   bool
	)
	cmd := &cobra.Command{
		Use:   "analyze",
		Short: "Fetch, classify and score recent calls",
		Long: `Fetch calls from the lookback window where the given reps took part with at
least one external participant, classify each transcript and score discovery
calls on MEDDPICC. Calls already evaluated are skipped.

With no -r or --reps-file every rep on the loaded roster is analyzed.

Examples:
  introspect analyze -t 7 -r john@company.com
  introspect analyze --days 30 --reps-file reps.txt`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			emails := append([]string(nil), reps...)
			if repsFile != "" {
				more, err := readEmails(repsFile)
				if err != nil {
					return err
				}
				emails = append(emails, more...)
			}

			runner, err := app.backend.Runner(cmd.Context())
			if err != nil {
				return err
			}
			sum, err := runner.Run(cmd.Context(), pipedom.RunRequest{Emails: emails, LookbackDays: days})
			if err != nil {
				return err
			}
			if asJSON {
				return writeJSON(app.Out, sum)
			}
			RenderRun(app.Out, sum)
			return nil
		},
	}
	cmd.Flags().IntVarP(&days, "days", "t", 0, "lookback window in days (default GONG_LOOKBACK_DAYS)")
	cmd.Flags().StringArrayVarP(&reps, "rep", "r", nil, "sales rep email, repeatable")
	cmd.Flags().StringVar(&repsFile, "reps-file", "", "file with one rep email per line")
	cmd.Flags().BoolVar(&asJSON, "json", false, "print the run summary as JSON")
	return cmd
}

// readEmails reads one email per line, ignoring blanks and # comments
func readEmails(path string) ([]string, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, err
	}
	defer f.Close()

	var out []string
	sc := bufio.NewScanner(f)
	for sc.Scan() {
		line := strings.TrimSpace(sc.Text())
		if line == "" || strings.HasPrefix(line, "#") {
			continue
		}
		out = append(out, line)
	}
	return out, sc.Err()
}
