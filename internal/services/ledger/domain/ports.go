package domain

import "context"

// Port is the ledger surface used by the pipeline and the read API
type Port interface {
	Exists(ctx context.Context, callID string) (bool, error)
	RecordEvaluated(ctx context.Context, callID string, isDiscovery bool, reason string) error
	Get(ctx context.Context, callID string) (Entry, error)
	List(ctx context.Context, f Filter) ([]Entry, error)
}
