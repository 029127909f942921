// Package service implements the account aggregation store
package service

import (
	"context"
	"strings"

	"introspect/internal/modkit/repokit"
	perr "introspect/internal/platform/errors"
	"introspect/internal/platform/logger"
	"introspect/internal/platform/metrics"
	"introspect/internal/services/accounts/domain"
	"introspect/internal/services/accounts/repo"
)

// Svc implements domain.Port
type Svc struct {
	db      repokit.TxRunner
	binder  repokit.Binder[repo.Repo]
	metrics *metrics.Metrics
}

var _ domain.Port = (*Svc)(nil)

// New constructs the accounts service; m may be nil
func New(db repokit.TxRunner, binder repokit.Binder[repo.Repo], m *metrics.Metrics) *Svc {
	if db == nil {
		panic("accounts.Service requires a non nil TxRunner")
	}
	if binder == nil {
		panic("accounts.Service requires a non nil Repo binder")
	}
	return &Svc{db: db, binder: binder, metrics: m}
}

// GetByDomain returns the account for d, not found when absent
func (s *Svc) GetByDomain(ctx context.Context, d string) (domain.Account, error) {
	d = domain.NormalizeDomain(d)
	a, ok, err := s.binder.Bind(s.db).Get(ctx, d, false)
	if err != nil {
		return domain.Account{}, err
	}
	if !ok {
		return domain.Account{}, perr.NotFoundf("account %s not found", d)
	}
	return a, nil
}

// AppendDiscoveryCall adds c to the account for d in its own transaction
func (s *Svc) AppendDiscoveryCall(ctx context.Context, d string, c domain.Call) (domain.Account, error) {
	var out domain.Account
	err := repokit.WithTx(ctx, s.db, func(ctx context.Context, q repokit.Queryer) error {
		a, err := s.AppendIn(ctx, q, d, c)
		out = a
		return err
	})
	return out, err
}

// AppendIn adds c to the account for d using q, which must be a transaction.
// Writers of the same domain are serialised by an advisory lock and a row lock
func (s *Svc) AppendIn(ctx context.Context, q repokit.Queryer, d string, c domain.Call) (domain.Account, error) {
	d = domain.NormalizeDomain(d)
	if d == "" {
		return domain.Account{}, perr.WithField(perr.InvalidArgf("account domain required"), "domain")
	}
	if strings.TrimSpace(c.CallID) == "" {
		return domain.Account{}, perr.WithField(perr.InvalidArgf("call id required"), "call_id")
	}
	if err := c.Scores.Validate(); err != nil {
		return domain.Account{}, err
	}
	c.Scores = c.Scores.Recompute()

	r := s.binder.Bind(q)
	if err := r.Lock(ctx, d); err != nil {
		return domain.Account{}, err
	}
	prev, ok, err := r.Get(ctx, d, true)
	if err != nil {
		return domain.Account{}, err
	}
	var next domain.Account
	if ok {
		next = domain.Apply(&prev, d, c)
	} else {
		next = domain.Apply(nil, d, c)
	}
	if err := r.Save(ctx, next); err != nil {
		return domain.Account{}, err
	}

	s.metrics.AccountSize(len(next.Calls))
	logger.C(ctx).Debug().
		Str("domain", d).
		Str("call_id", c.CallID).
		Int("calls", len(next.Calls)).
		Float64("overall", next.Overall.Overall).
		Msg("account updated")
	return next, nil
}

// ListAll returns every account ordered by domain
func (s *Svc) ListAll(ctx context.Context) ([]domain.Account, error) {
	out, err := s.binder.Bind(s.db).ListAll(ctx)
	if err != nil {
		return nil, err
	}
	if out == nil {
		out = []domain.Account{}
	}
	return out, nil
}

// ListDomains returns every tracked domain in order
func (s *Svc) ListDomains(ctx context.Context) ([]string, error) {
	out, err := s.binder.Bind(s.db).ListDomains(ctx)
	if err != nil {
		return nil, err
	}
	if out == nil {
		out = []string{}
	}
	return out, nil
}
