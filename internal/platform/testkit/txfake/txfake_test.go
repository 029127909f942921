package txfake

import (
	"context"
	"testing"

	"introspect/internal/platform/store"
)

func TestTxRecorder(t *testing.T) {
	r := &TxRecorder{}
	ran := false
	err := r.Tx(context.Background(), func(q store.RowQuerier) error {
		ran = true
		_, err := q.Exec(context.Background(), "SET LOCAL lock_timeout = 5")
		return err
	})
	if err != nil || !ran || r.Txs != 1 || len(r.Execs) != 1 {
		t.Fatalf("Tx = %v ran=%v recorder=%+v", err, ran, r)
	}
	if _, err := r.Query(context.Background(), "x"); err != ErrNoSQL {
		t.Fatalf("Query err = %v", err)
	}

	r.TxErr = ErrNoSQL
	ran = false
	if err := r.Tx(context.Background(), func(store.RowQuerier) error { ran = true; return nil }); err != ErrNoSQL || ran {
		t.Fatalf("TxErr not honoured: %v ran=%v", err, ran)
	}
}
