package domain

import (
	"context"

	"introspect/internal/adapters/ingest/gong"
	"introspect/internal/adapters/llm"
)

// RunnerPort is what binaries call
type RunnerPort interface {
	Run(ctx context.Context, req RunRequest) (RunSummary, error)
}

// CallSource yields qualifying calls and their transcripts
type CallSource interface {
	ResolveIdentities(ctx context.Context, emails []string) (map[string]string, error)
	FetchCalls(ctx context.Context, identities map[string]string, lookbackDays int) ([]gong.Call, error)
	FetchTranscripts(ctx context.Context, callIDs []string) (map[string]string, error)
	ExtractParticipants(call gong.Call) gong.Participants
}

// Evaluator classifies and scores transcripts
type Evaluator interface {
	Classify(ctx context.Context, transcript string) (llm.Verdict, error)
	Score(ctx context.Context, transcript string) (llm.Scorecard, error)
}

// Ledger answers whether a call was already evaluated
type Ledger interface {
	Exists(ctx context.Context, callID string) (bool, error)
}

// Recorder persists an evaluation atomically
type Recorder interface {
	Record(ctx context.Context, ev Evaluation) error
}

// Roster lists every known rep email
type Roster interface {
	Emails(ctx context.Context) ([]string, error)
}
