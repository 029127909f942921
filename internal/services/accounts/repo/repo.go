// Package repo provides postgres access for accounts
package repo

import (
	"context"
	"encoding/json"
	"errors"

	"introspect/internal/core/meddpicc"
	"introspect/internal/modkit/repokit"
	perr "introspect/internal/platform/errors"
	"introspect/internal/platform/store"
	"introspect/internal/services/accounts/domain"
)

// Repo is the persistence surface for accounts
type Repo interface {
	// Lock serialises writers of one domain until the enclosing tx ends
	Lock(ctx context.Context, domain string) error
	Get(ctx context.Context, domain string, forUpdate bool) (domain.Account, bool, error)
	Save(ctx context.Context, a domain.Account) error
	ListAll(ctx context.Context) ([]domain.Account, error)
	ListDomains(ctx context.Context) ([]string, error)
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

const selectAccount = `SELECT domain, created_at, updated_at, calls, overall_meddpicc FROM accounts`

func scanAccount(r store.Row) (domain.Account, error) {
	var (
		a              domain.Account
		calls, overall []byte
	)
	if err := r.Scan(&a.Domain, &a.CreatedAt, &a.UpdatedAt, &calls, &overall); err != nil {
		return a, err
	}
	if err := json.Unmarshal(calls, &a.Calls); err != nil {
		return a, perr.Wrapf(err, perr.ErrorCodeJSON, "account %s: decode calls", a.Domain)
	}
	var agg meddpicc.Scores
	if err := json.Unmarshal(overall, &agg); err != nil {
		return a, perr.Wrapf(err, perr.ErrorCodeJSON, "account %s: decode aggregate", a.Domain)
	}
	a.Overall = agg
	if a.Calls == nil {
		a.Calls = []domain.Call{}
	}
	return a, nil
}

func (r *queries) Lock(ctx context.Context, d string) error {
	if _, err := r.q.Exec(ctx, `SELECT pg_advisory_xact_lock(hashtext($1))`, d); err != nil {
		return perr.FromPostgresf(err, "lock account %s", d)
	}
	return nil
}

func (r *queries) Get(ctx context.Context, d string, forUpdate bool) (domain.Account, bool, error) {
	sql := selectAccount + ` WHERE domain = $1`
	if forUpdate {
		sql += ` FOR UPDATE`
	}
	a, err := store.One(ctx, r.q, scanAccount, sql, d)
	if errors.Is(err, perr.ErrNotFound) {
		return domain.Account{}, false, nil
	}
	if err != nil {
		return domain.Account{}, false, perr.FromPostgresf(err, "get account %s", d)
	}
	return a, true, nil
}

func (r *queries) Save(ctx context.Context, a domain.Account) error {
	calls, err := json.Marshal(a.Calls)
	if err != nil {
		return perr.Wrapf(err, perr.ErrorCodeJSON, "account %s: encode calls", a.Domain)
	}
	overall, err := json.Marshal(a.Overall)
	if err != nil {
		return perr.Wrapf(err, perr.ErrorCodeJSON, "account %s: encode aggregate", a.Domain)
	}
	const sql = `
INSERT INTO accounts (domain, created_at, updated_at, calls, overall_meddpicc)
VALUES ($1, $2, $3, $4::jsonb, $5::jsonb)
ON CONFLICT (domain) DO UPDATE
SET updated_at       = EXCLUDED.updated_at,
    calls            = EXCLUDED.calls,
    overall_meddpicc = EXCLUDED.overall_meddpicc`
	if err := store.ExecOne(ctx, r.q, sql, a.Domain, a.CreatedAt, a.UpdatedAt, string(calls), string(overall)); err != nil {
		return perr.FromPostgresf(err, "save account %s", a.Domain)
	}
	return nil
}

func (r *queries) ListAll(ctx context.Context) ([]domain.Account, error) {
	out, err := store.Many(ctx, r.q, scanAccount, selectAccount+` ORDER BY domain`)
	if err != nil {
		return nil, perr.FromPostgres(err, "list accounts")
	}
	return out, nil
}

func (r *queries) ListDomains(ctx context.Context) ([]string, error) {
	out, err := store.Many(ctx, r.q, func(row store.Row) (string, error) {
		var d string
		return d, row.Scan(&d)
	}, `SELECT domain FROM accounts ORDER BY domain`)
	if err != nil {
		return nil, perr.FromPostgres(err, "list account domains")
	}
	return out, nil
}
