// Package domain defines account records and their best-ever aggregation
package domain

import (
	"strings"
	"time"

	"introspect/internal/core/meddpicc"
)

// Call is one scored discovery call stored on an account
type Call struct {
	CallID               string          `json:"call_id"`
	CallDate             time.Time       `json:"call_date"`
	SalesRep             string          `json:"sales_rep"`
	ExternalParticipants []string        `json:"external_participants"`
	Scores               meddpicc.Scores `json:"meddpicc_scores"`
	Summary              string          `json:"meddpicc_summary,omitempty"`
	Notes                *meddpicc.Notes `json:"analysis_notes,omitempty"`
}

// Account groups discovery calls by the external party's email domain
type Account struct {
	Domain    string          `json:"domain"`
	CreatedAt time.Time       `json:"created_at"`
	UpdatedAt time.Time       `json:"updated_at"`
	Calls     []Call          `json:"calls"`
	Overall   meddpicc.Scores `json:"overall_meddpicc"`
}

// NormalizeDomain lowercases and trims a domain key
func NormalizeDomain(d string) string { return strings.ToLower(strings.TrimSpace(d)) }

// Apply returns the account after adding c. A nil prev creates the account
// with c's vector verbatim; otherwise the call is appended, UpdatedAt moves to
// the call date and the aggregate is recomputed over every stored call
func Apply(prev *Account, domain string, c Call) Account {
	if prev == nil {
		return Account{
			Domain:    domain,
			CreatedAt: c.CallDate,
			UpdatedAt: c.CallDate,
			Calls:     []Call{c},
			Overall:   c.Scores,
		}
	}
	next := *prev
	next.Calls = append(append([]Call(nil), prev.Calls...), c)
	next.UpdatedAt = c.CallDate

	scores := make([]meddpicc.Scores, len(next.Calls))
	for i, call := range next.Calls {
		scores[i] = call.Scores
	}
	next.Overall = meddpicc.Aggregate(scores)
	return next
}
