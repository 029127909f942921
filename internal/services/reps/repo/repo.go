// Package repo provides postgres access for sales reps
package repo

import (
	"context"
	"errors"
	"time"

	"introspect/internal/modkit/repokit"
	perr "introspect/internal/platform/errors"
	"introspect/internal/platform/store"
	"introspect/internal/services/reps/domain"
)

// Repo is the persistence surface for sales_reps
type Repo interface {
	// Upsert writes one rep and reports whether the row was new.
	// created_at survives updates
	Upsert(ctx context.Context, email, segment string, joined time.Time) (bool, error)
	List(ctx context.Context) ([]domain.Rep, error)
	Get(ctx context.Context, email string) (domain.Rep, error)
	Segments(ctx context.Context) ([]domain.SegmentCount, error)
	Emails(ctx context.Context) ([]string, error)
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

const selectRep = `SELECT email, segment, joining_date, created_at, updated_at FROM sales_reps`

func scanRep(r store.Row) (domain.Rep, error) {
	var x domain.Rep
	return x, r.Scan(&x.Email, &x.Segment, &x.JoiningDate, &x.CreatedAt, &x.UpdatedAt)
}

func (r *queries) Upsert(ctx context.Context, email, segment string, joined time.Time) (bool, error) {
	// xmax is zero only for freshly inserted tuples
	const sql = `
INSERT INTO sales_reps (email, segment, joining_date, created_at, updated_at)
VALUES ($1, $2, $3, now(), now())
ON CONFLICT (email) DO UPDATE
SET segment      = EXCLUDED.segment,
    joining_date = EXCLUDED.joining_date,
    updated_at   = now()
RETURNING (xmax = 0)`
	inserted, err := store.Scalar[bool](ctx, r.q, sql, email, segment, joined)
	if err != nil {
		return false, perr.FromPostgresf(err, "upsert rep %s", email)
	}
	return inserted, nil
}

func (r *queries) List(ctx context.Context) ([]domain.Rep, error) {
	out, err := store.Many(ctx, r.q, scanRep, selectRep+` ORDER BY segment, email`)
	if err != nil {
		return nil, perr.FromPostgres(err, "list reps")
	}
	return out, nil
}

func (r *queries) Get(ctx context.Context, email string) (domain.Rep, error) {
	x, err := store.One(ctx, r.q, scanRep, selectRep+` WHERE email = $1`, email)
	if errors.Is(err, perr.ErrNotFound) {
		return domain.Rep{}, perr.NotFoundf("rep %s not found", email)
	}
	if err != nil {
		return domain.Rep{}, perr.FromPostgresf(err, "get rep %s", email)
	}
	return x, nil
}

func (r *queries) Segments(ctx context.Context) ([]domain.SegmentCount, error) {
	out, err := store.Many(ctx, r.q, func(row store.Row) (domain.SegmentCount, error) {
		var s domain.SegmentCount
		return s, row.Scan(&s.Segment, &s.Reps)
	}, `SELECT segment, count(*)::int FROM sales_reps GROUP BY segment ORDER BY segment`)
	if err != nil {
		return nil, perr.FromPostgres(err, "list segments")
	}
	return out, nil
}

func (r *queries) Emails(ctx context.Context) ([]string, error) {
	out, err := store.Many(ctx, r.q, func(row store.Row) (string, error) {
		var e string
		return e, row.Scan(&e)
	}, `SELECT email FROM sales_reps ORDER BY email`)
	if err != nil {
		return nil, perr.FromPostgres(err, "list rep emails")
	}
	return out, nil
}
