// Package domain holds the pipeline run request, its results and the ports
// the run drives
package domain

import (
	"time"

	"introspect/internal/core/meddpicc"
	accdom "introspect/internal/services/accounts/domain"
)

// Per call outcomes
const (
	OutcomeProcessed = "processed"
	OutcomeSkipped   = "skipped"
	OutcomeFailed    = "failed"
)

// Skip reasons
const (
	SkipNoTranscript = "no transcript"
	SkipEvaluated    = "already evaluated"
	SkipNoRep        = "owner is not a selected rep"
)

// RunRequest selects the reps and the window of one run.
// Empty Emails means every rep on the roster, LookbackDays <= 0 the configured default
type RunRequest struct {
	Emails       []string
	LookbackDays int
}

// CallResult is what happened to one call
type CallResult struct {
	CallID      string           `json:"call_id"`
	RepEmail    string           `json:"rep_email"`
	Title       string           `json:"title,omitempty"`
	Link        string           `json:"link"`
	CallDate    time.Time        `json:"call_date"`
	Outcome     string           `json:"outcome"`
	IsDiscovery bool             `json:"is_discovery"`
	Reason      string           `json:"reason,omitempty"`
	Domain      string           `json:"domain,omitempty"`
	Scores      *meddpicc.Scores `json:"scores,omitempty"`
	Error       string           `json:"error,omitempty"`
}

// RepSummary tallies one rep's calls
type RepSummary struct {
	Email     string `json:"email"`
	Calls     int    `json:"calls"`
	Processed int    `json:"processed"`
	Skipped   int    `json:"skipped"`
	Failed    int    `json:"failed"`
	Discovery int    `json:"discovery"`
}

// RunSummary is the end of run report
type RunSummary struct {
	RunID        string       `json:"run_id"`
	StartedAt    time.Time    `json:"started_at"`
	FinishedAt   time.Time    `json:"finished_at"`
	LookbackDays int          `json:"lookback_days"`
	Reps         []string     `json:"reps"`
	Unmatched    []string     `json:"unmatched,omitempty"`
	Processed    int          `json:"processed"`
	Skipped      int          `json:"skipped"`
	Failed       int          `json:"failed"`
	Discovery    int          `json:"discovery"`
	Results      []CallResult `json:"results"`
	PerRep       []RepSummary `json:"per_rep"`
}

// Add folds r into the run and rep tallies
func (s *RunSummary) Add(rep *RepSummary, r CallResult) {
	s.Results = append(s.Results, r)
	switch r.Outcome {
	case OutcomeProcessed:
		s.Processed++
		rep.Processed++
		if r.IsDiscovery {
			s.Discovery++
			rep.Discovery++
		}
	case OutcomeSkipped:
		s.Skipped++
		rep.Skipped++
	case OutcomeFailed:
		s.Failed++
		rep.Failed++
	}
}

// Evaluation is the durable result of one call. Call is set only for a
// discovery call with an external domain, and then Domain names the account
type Evaluation struct {
	CallID      string
	IsDiscovery bool
	Reason      string
	Domain      string
	Call        *accdom.Call
}
