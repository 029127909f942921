// Package txfake provides an in-memory store.TxRunner for service tests
package txfake

import (
	"context"
	"errors"

	"introspect/internal/platform/store"
)

// ErrNoSQL is returned by TxRecorder for direct statements outside Tx
var ErrNoSQL = errors.New("txfake: no sql backend")

// TxRecorder is a store.TxRunner for service tests whose repos are bound
// with repokit.BindFunc. It counts transactions and remembers statements
type TxRecorder struct {
	Txs   int
	Execs []string
	// TxErr, when set, is returned by Tx without running fn
	TxErr error
}

// Tx runs fn with the recorder itself as the querier
func (r *TxRecorder) Tx(_ context.Context, fn func(store.RowQuerier) error) error {
	r.Txs++
	if r.TxErr != nil {
		return r.TxErr
	}
	return fn(r)
}

// Exec records sql and reports one affected row
func (r *TxRecorder) Exec(_ context.Context, sql string, _ ...any) (store.CommandTag, error) {
	r.Execs = append(r.Execs, sql)
	return oneRow{}, nil
}

// Query is unsupported
func (r *TxRecorder) Query(context.Context, string, ...any) (store.Rows, error) {
	return nil, ErrNoSQL
}

// QueryRow is unsupported
func (r *TxRecorder) QueryRow(context.Context, string, ...any) store.Row { return errRow{} }

type oneRow struct{}

func (oneRow) String() string      { return "OK 1" }
func (oneRow) RowsAffected() int64 { return 1 }

type errRow struct{}

func (errRow) Scan(...any) error { return ErrNoSQL }
