// Package events records one row per evaluated call for analytics
package events

import (
	"context"
	"time"

	"introspect/internal/core/meddpicc"
)

// Outcomes
const (
	OutcomeEvaluated = "evaluated"
	OutcomeFailed    = "failed"
)

// Event describes what happened to one call in one run
type Event struct {
	RunID       string
	CallID      string
	RepEmail    string
	Domain      string
	CallDate    time.Time
	Outcome     string
	IsDiscovery bool
	Reason      string
	Scores      *meddpicc.Scores
	Error       string
	EvaluatedAt time.Time
}

// Sink receives events. Record may buffer; Flush delivers what is buffered
type Sink interface {
	Record(ctx context.Context, e Event) error
	Flush(ctx context.Context) error
}

// Nop drops every event
type Nop struct{}

// Record implements Sink
func (Nop) Record(context.Context, Event) error { return nil }

// Flush implements Sink
func (Nop) Flush(context.Context) error { return nil }
