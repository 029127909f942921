package store

import (
	"context"
	"time"

	perr "introspect/internal/platform/errors"
)

// txAttempts bounds RunTx retries on serialization and deadlock failures
const txAttempts = 3

// RunTx runs fn inside a transaction, retrying the whole transaction when
// postgres reports transient contention
func RunTx(ctx context.Context, tx TxRunner, fn func(ctx context.Context, q RowQuerier) error) error {
	var err error
	for attempt := 0; attempt < txAttempts; attempt++ {
		err = tx.Tx(ctx, func(q RowQuerier) error { return fn(ctx, q) })
		if err == nil || !perr.IsRetryable(err) {
			return err
		}
		if serr := sleepCtx(ctx, time.Duration(attempt+1)*25*time.Millisecond); serr != nil {
			return serr
		}
	}
	return err
}
