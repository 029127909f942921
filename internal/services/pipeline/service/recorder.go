package service

import (
	"context"
	"time"

	"introspect/internal/modkit/repokit"
	accdom "introspect/internal/services/accounts/domain"
	"introspect/internal/services/pipeline/domain"
)

// AccountAppender appends a discovery call inside a caller owned tx
type AccountAppender interface {
	AppendIn(ctx context.Context, q repokit.Queryer, d string, c accdom.Call) (accdom.Account, error)
}

// LedgerWriter writes a ledger entry inside a caller owned tx
type LedgerWriter interface {
	RecordIn(ctx context.Context, q repokit.Queryer, callID string, isDiscovery bool, reason string) error
}

// TxRecorder writes the account append and the ledger entry in one tx so a
// call is either fully recorded or retried on the next run
type TxRecorder struct {
	db       repokit.TxRunner
	accounts AccountAppender
	ledger   LedgerWriter
}

var _ domain.Recorder = (*TxRecorder)(nil)

// NewTxRecorder wires a recorder; statement and lock bound each tx when > 0
func NewTxRecorder(db repokit.TxRunner, a AccountAppender, l LedgerWriter, statement, lock time.Duration) *TxRecorder {
	if db == nil || a == nil || l == nil {
		panic("pipeline.NewTxRecorder requires db, accounts and ledger")
	}
	return &TxRecorder{
		db:       repokit.WithBeginHooks(db, repokit.LocalTimeouts(statement, lock)),
		accounts: a,
		ledger:   l,
	}
}

// Record implements domain.Recorder
func (r *TxRecorder) Record(ctx context.Context, ev domain.Evaluation) error {
	return repokit.WithTx(ctx, r.db, func(ctx context.Context, q repokit.Queryer) error {
		if ev.Call != nil && ev.Domain != "" {
			if _, err := r.accounts.AppendIn(ctx, q, ev.Domain, *ev.Call); err != nil {
				return err
			}
		}
		return r.ledger.RecordIn(ctx, q, ev.CallID, ev.IsDiscovery, ev.Reason)
	})
}
