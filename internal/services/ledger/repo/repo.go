// Package repo provides postgres access for the evaluation ledger
package repo

import (
	"context"
	"errors"

	"introspect/internal/modkit/repokit"
	perr "introspect/internal/platform/errors"
	"introspect/internal/platform/store"
	"introspect/internal/services/ledger/domain"
)

// Repo is the persistence surface for evaluated_calls
type Repo interface {
	Exists(ctx context.Context, callID string) (bool, error)
	Upsert(ctx context.Context, callID string, isDiscovery bool, reason *string) error
	Get(ctx context.Context, callID string) (domain.Entry, error)
	List(ctx context.Context, discovery *bool, limit int) ([]domain.Entry, error)
}

type (
	// PG binds Repo to a Queryer
	PG      struct{}
	queries struct{ q repokit.Queryer }
)

var _ Repo = (*queries)(nil)

// NewPG returns a postgres binder
func NewPG() repokit.Binder[Repo] { return PG{} }

// Bind implements repokit.Binder
func (PG) Bind(q repokit.Queryer) Repo { return &queries{q: q} }

func scanEntry(r store.Row) (domain.Entry, error) {
	var e domain.Entry
	return e, r.Scan(&e.CallID, &e.EvaluatedAt, &e.IsDiscovery, &e.Reason)
}

func (r *queries) Exists(ctx context.Context, callID string) (bool, error) {
	ok, err := store.Scalar[bool](ctx, r.q, `SELECT EXISTS (SELECT 1 FROM evaluated_calls WHERE call_id = $1)`, callID)
	if err != nil {
		return false, perr.FromPostgres(err, "ledger exists")
	}
	return ok, nil
}

func (r *queries) Upsert(ctx context.Context, callID string, isDiscovery bool, reason *string) error {
	const sql = `
INSERT INTO evaluated_calls (call_id, evaluated_at, is_discovery, reason)
VALUES ($1, now(), $2, $3)
ON CONFLICT (call_id) DO UPDATE
SET evaluated_at = EXCLUDED.evaluated_at,
    is_discovery = EXCLUDED.is_discovery,
    reason       = EXCLUDED.reason`
	if err := store.ExecOne(ctx, r.q, sql, callID, isDiscovery, reason); err != nil {
		return perr.FromPostgres(err, "ledger upsert")
	}
	return nil
}

func (r *queries) Get(ctx context.Context, callID string) (domain.Entry, error) {
	e, err := store.One(ctx, r.q, scanEntry,
		`SELECT call_id, evaluated_at, is_discovery, reason FROM evaluated_calls WHERE call_id = $1`, callID)
	if errors.Is(err, perr.ErrNotFound) {
		return domain.Entry{}, perr.NotFoundf("evaluation %s not found", callID)
	}
	if err != nil {
		return domain.Entry{}, perr.FromPostgresf(err, "ledger get %s", callID)
	}
	return e, nil
}

func (r *queries) List(ctx context.Context, discovery *bool, limit int) ([]domain.Entry, error) {
	const sql = `
SELECT call_id, evaluated_at, is_discovery, reason
FROM evaluated_calls
WHERE ($1::boolean IS NULL OR is_discovery = $1)
ORDER BY evaluated_at DESC, call_id
LIMIT $2`
	out, err := store.Many(ctx, r.q, scanEntry, sql, discovery, limit)
	if err != nil {
		return nil, perr.FromPostgres(err, "ledger list")
	}
	return out, nil
}
