package cli

import (
	"encoding/json"
	"fmt"
	"io"
	"maps"
	"slices"
	"strconv"
	"strings"
	"time"

	"github.com/charmbracelet/lipgloss"
	"github.com/charmbracelet/lipgloss/table"

	"introspect/internal/core/meddpicc"
	accdom "introspect/internal/services/accounts/domain"
	pipedom "introspect/internal/services/pipeline/domain"
	repsdom "introspect/internal/services/reps/domain"
)

const dateLayout = "2006-01-02"

// Theme holds the terminal colours
type Theme struct {
	Title   lipgloss.Color
	Success lipgloss.Color
	Warn    lipgloss.Color
	Error   lipgloss.Color
	Hint    lipgloss.Color
}

// DefaultTheme is used by every command
var DefaultTheme = Theme{
	Title:   lipgloss.Color("#5FAFD7"),
	Success: lipgloss.Color("#00D787"),
	Warn:    lipgloss.Color("#FFAF00"),
	Error:   lipgloss.Color("#FF005F"),
	Hint:    lipgloss.Color("#6C6C6C"),
}

func (t Theme) title() lipgloss.Style { return lipgloss.NewStyle().Foreground(t.Title).Bold(true) }
func (t Theme) hint() lipgloss.Style  { return lipgloss.NewStyle().Foreground(t.Hint).Italic(true) }

func (t Theme) outcome(o string) lipgloss.Style {
	switch o {
	case pipedom.OutcomeProcessed:
		return lipgloss.NewStyle().Foreground(t.Success)
	case pipedom.OutcomeFailed:
		return lipgloss.NewStyle().Foreground(t.Error).Bold(true)
	default:
		return lipgloss.NewStyle().Foreground(t.Warn)
	}
}

func newTable(headers ...string) *table.Table {
	head := lipgloss.NewStyle().Bold(true).Padding(0, 1)
	cell := lipgloss.NewStyle().Padding(0, 1)
	return table.New().
		Border(lipgloss.RoundedBorder()).
		BorderStyle(lipgloss.NewStyle().Foreground(DefaultTheme.Hint)).
		Headers(headers...).
		StyleFunc(func(row, _ int) lipgloss.Style {
			if row == table.HeaderRow {
				return head
			}
			return cell
		})
}

func writeJSON(w io.Writer, v any) error {
	enc := json.NewEncoder(w)
	enc.SetIndent("", "  ")
	return enc.Encode(v)
}

func score(f float64) string { return strconv.FormatFloat(f, 'f', 1, 64) }

// RenderRun writes the end of run report
func RenderRun(w io.Writer, s pipedom.RunSummary) {
	th := DefaultTheme
	fmt.Fprintln(w, th.title().Render(fmt.Sprintf("Run %s", s.RunID)))
	fmt.Fprintf(w, "Reps: %s\nLookback: %d days\n", strings.Join(s.Reps, ", "), s.LookbackDays)
	if len(s.Unmatched) > 0 {
		fmt.Fprintln(w, th.outcome(pipedom.OutcomeSkipped).Render(
			"No Gong user for: "+strings.Join(s.Unmatched, ", ")))
	}

	if len(s.Results) == 0 {
		fmt.Fprintln(w, th.hint().Render("No qualifying calls in the window."))
		return
	}

	t := newTable("Rep", "Date", "Call", "Outcome", "Discovery", "Account", "Overall", "Detail")
	for _, r := range s.Results {
		disc, overall := "", ""
		if r.Outcome == pipedom.OutcomeProcessed {
			disc = "no"
			if r.IsDiscovery {
				disc = "yes"
			}
		}
		if r.Scores != nil {
			overall = score(r.Scores.Overall)
		}
		detail := r.Reason
		if r.Error != "" {
			detail = r.Error
		}
		t.Row(r.RepEmail, r.CallDate.Format(dateLayout), r.CallID,
			th.outcome(r.Outcome).Render(r.Outcome), disc, r.Domain, overall, detail)
	}
	fmt.Fprintln(w, t.String())

	reps := newTable("Rep", "Calls", "Processed", "Skipped", "Failed", "Discovery")
	for _, r := range s.PerRep {
		reps.Row(r.Email, strconv.Itoa(r.Calls), strconv.Itoa(r.Processed),
			strconv.Itoa(r.Skipped), strconv.Itoa(r.Failed), strconv.Itoa(r.Discovery))
	}
	fmt.Fprintln(w, reps.String())

	fmt.Fprintf(w, "Processed %d, skipped %d, failed %d, discovery %d in %s\n",
		s.Processed, s.Skipped, s.Failed, s.Discovery, s.FinishedAt.Sub(s.StartedAt).Round(time.Millisecond))
}

// RenderAccounts writes one row per account
func RenderAccounts(w io.Writer, accts []accdom.Account) {
	if len(accts) == 0 {
		fmt.Fprintln(w, DefaultTheme.hint().Render("No accounts yet. Run analyze first."))
		return
	}
	t := newTable("Domain", "Calls", "Overall", "Created", "Updated")
	for _, a := range accts {
		t.Row(a.Domain, strconv.Itoa(len(a.Calls)), score(a.Overall.Overall),
			a.CreatedAt.Format(dateLayout), a.UpdatedAt.Format(dateLayout))
	}
	fmt.Fprintln(w, t.String())
}

// RenderAccount writes the best-ever vector and the calls behind it
func RenderAccount(w io.Writer, a accdom.Account) {
	fmt.Fprintln(w, DefaultTheme.title().Render(a.Domain))

	dims := newTable("Dimension", "Best")
	for _, name := range meddpicc.Dimensions() {
		v, _ := a.Overall.Get(name)
		dims.Row(name, strconv.Itoa(v))
	}
	dims.Row("overall", score(a.Overall.Overall))
	fmt.Fprintln(w, dims.String())

	calls := newTable("Date", "Rep", "Call", "Overall", "Participants")
	for _, c := range a.Calls {
		calls.Row(c.CallDate.Format(dateLayout), c.SalesRep, c.CallID,
			score(c.Scores.Overall), strings.Join(c.ExternalParticipants, ", "))
	}
	fmt.Fprintln(w, calls.String())
}

// RenderReps writes the roster
func RenderReps(w io.Writer, reps []repsdom.Rep) {
	if len(reps) == 0 {
		fmt.Fprintln(w, DefaultTheme.hint().Render("No reps loaded. Use reps load <file>."))
		return
	}
	t := newTable("Email", "Segment", "Joined", "Tenure (days)")
	for _, r := range reps {
		t.Row(r.Email, r.Segment, r.JoiningDate.Format(dateLayout), strconv.Itoa(r.TenureDays))
	}
	fmt.Fprintln(w, t.String())
}

// RenderLoad writes a roster load result
func RenderLoad(w io.Writer, res repsdom.LoadResult) {
	fmt.Fprintf(w, "Inserted %d, updated %d, skipped %d\n", res.Inserted, res.Updated, res.Skipped)
	for _, warn := range res.Warnings {
		fmt.Fprintln(w, DefaultTheme.outcome(pipedom.OutcomeSkipped).Render(warn))
	}
	if len(res.Segments) == 0 {
		return
	}
	t := newTable("Segment", "Reps")
	for _, seg := range slices.Sorted(maps.Keys(res.Segments)) {
		t.Row(seg, strconv.Itoa(res.Segments[seg]))
	}
	fmt.Fprintln(w, t.String())
}
