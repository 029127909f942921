//go:build integration_pg

package store_test

import (
	"context"
	"testing"
	"time"

	perr "introspect/internal/platform/errors"
	"introspect/internal/platform/store"
	"introspect/internal/platform/testkit/pgtest"
)

func TestStore_PG_Integration(t *testing.T) {
	st := pgtest.Open(t)
	ctx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
	defer cancel()

	if err := st.Guard(ctx); err != nil {
		t.Fatalf("Guard: %v", err)
	}

	app, err := store.Scalar[string](ctx, st.PG, `SELECT current_setting('application_name')`)
	if err != nil || app != "introspect-integration" {
		t.Fatalf("application_name = %q, %v", app, err)
	}

	err = store.RunTx(ctx, st.PG, func(ctx context.Context, q store.RowQuerier) error {
		return store.ExecOne(ctx, q,
			`INSERT INTO evaluated_calls (call_id, is_discovery, reason) VALUES ($1, false, 'no-show')`, "c-1")
	})
	if err != nil {
		t.Fatalf("insert: %v", err)
	}

	_, err = st.PG.Exec(ctx, `INSERT INTO evaluated_calls (call_id, is_discovery) VALUES ($1, true)`, "c-1")
	if !perr.IsDuplicateKey(err) {
		t.Fatalf("duplicate insert err = %v, want unique violation", err)
	}

	ids, err := store.Many(ctx, st.PG, func(r store.Row) (string, error) {
		var s string
		return s, r.Scan(&s)
	}, `SELECT call_id FROM evaluated_calls ORDER BY call_id`)
	if err != nil || len(ids) != 1 || ids[0] != "c-1" {
		t.Fatalf("Many = %v, %v", ids, err)
	}
}
