// Package service implements the evaluation ledger
package service

import (
	"context"
	"strings"

	"introspect/internal/modkit/repokit"
	perr "introspect/internal/platform/errors"
	"introspect/internal/services/ledger/domain"
	"introspect/internal/services/ledger/repo"
)

// Svc implements domain.Port
type Svc struct {
	db     repokit.TxRunner
	binder repokit.Binder[repo.Repo]
}

var _ domain.Port = (*Svc)(nil)

// New constructs the ledger service
func New(db repokit.TxRunner, binder repokit.Binder[repo.Repo]) *Svc {
	if db == nil {
		panic("ledger.Service requires a non nil TxRunner")
	}
	if binder == nil {
		panic("ledger.Service requires a non nil Repo binder")
	}
	return &Svc{db: db, binder: binder}
}

// Exists reports whether callID has been evaluated before
func (s *Svc) Exists(ctx context.Context, callID string) (bool, error) {
	return s.binder.Bind(s.db).Exists(ctx, callID)
}

// RecordEvaluated upserts the ledger entry for callID
func (s *Svc) RecordEvaluated(ctx context.Context, callID string, isDiscovery bool, reason string) error {
	return s.RecordIn(ctx, s.db, callID, isDiscovery, reason)
}

// RecordIn is RecordEvaluated on a caller supplied querier, usually a tx
func (s *Svc) RecordIn(ctx context.Context, q repokit.Queryer, callID string, isDiscovery bool, reason string) error {
	callID = strings.TrimSpace(callID)
	if callID == "" {
		return perr.WithField(perr.InvalidArgf("call id required"), "call_id")
	}
	return s.binder.Bind(q).Upsert(ctx, callID, isDiscovery, rejectReason(isDiscovery, reason))
}

// rejectReason keeps the reason only for calls that were not discovery
func rejectReason(isDiscovery bool, reason string) *string {
	if isDiscovery {
		return nil
	}
	return &reason
}

// Get returns the entry for callID, not found when absent
func (s *Svc) Get(ctx context.Context, callID string) (domain.Entry, error) {
	return s.binder.Bind(s.db).Get(ctx, callID)
}

// List returns the most recent entries matching f
func (s *Svc) List(ctx context.Context, f domain.Filter) ([]domain.Entry, error) {
	limit := f.Limit
	if limit <= 0 {
		limit = domain.DefaultLimit
	}
	limit = min(limit, domain.MaxLimit)
	out, err := s.binder.Bind(s.db).List(ctx, f.Discovery, limit)
	if err != nil {
		return nil, err
	}
	if out == nil {
		out = []domain.Entry{}
	}
	return out, nil
}
