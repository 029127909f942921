// Package service implements the sales rep roster
package service

import (
	"context"
	"io"
	"time"

	"introspect/internal/modkit/repokit"
	"introspect/internal/platform/logger"
	pstrings "introspect/internal/platform/strings"
	"introspect/internal/services/reps/domain"
	"introspect/internal/services/reps/repo"
)

// Svc implements domain.Port
type Svc struct {
	db     repokit.TxRunner
	binder repokit.Binder[repo.Repo]
	log    logger.Logger
	now    func() time.Time
}

var _ domain.Port = (*Svc)(nil)

// New constructs the reps service
func New(db repokit.TxRunner, binder repokit.Binder[repo.Repo]) *Svc {
	if db == nil {
		panic("reps.Service requires a non nil TxRunner")
	}
	if binder == nil {
		panic("reps.Service requires a non nil Repo binder")
	}
	return &Svc{db: db, binder: binder, log: *logger.Named("reps"), now: time.Now}
}

// LoadCSV upserts every valid roster line in one transaction
func (s *Svc) LoadCSV(ctx context.Context, r io.Reader) (domain.LoadResult, error) {
	rows, warnings, err := domain.ParseRoster(r)
	if err != nil {
		return domain.LoadResult{}, err
	}
	res := domain.LoadResult{
		Skipped:  len(warnings),
		Segments: map[string]int{},
		Warnings: warnings,
	}
	for _, w := range warnings {
		s.log.Warn().Str("detail", w).Msg("roster line skipped")
	}
	if len(rows) == 0 {
		return res, nil
	}

	err = repokit.WithTx(ctx, s.db, func(ctx context.Context, q repokit.Queryer) error {
		ins, upd := 0, 0
		segs := map[string]int{}
		rp := s.binder.Bind(q)
		for _, row := range rows {
			created, err := rp.Upsert(ctx, row.Email, row.Segment, row.JoiningDate)
			if err != nil {
				return err
			}
			if created {
				ins++
			} else {
				upd++
			}
			segs[row.Segment]++
		}
		res.Inserted, res.Updated, res.Segments = ins, upd, segs
		return nil
	})
	if err != nil {
		return domain.LoadResult{}, err
	}
	s.log.Info().
		Int("inserted", res.Inserted).
		Int("updated", res.Updated).
		Int("skipped", res.Skipped).
		Msg("roster loaded")
	return res, nil
}

// List returns every rep with tenure filled in
func (s *Svc) List(ctx context.Context) ([]domain.Rep, error) {
	out, err := s.binder.Bind(s.db).List(ctx)
	if err != nil {
		return nil, err
	}
	now := s.now()
	for i := range out {
		out[i].TenureDays = domain.TenureDays(out[i].JoiningDate, now)
	}
	if out == nil {
		out = []domain.Rep{}
	}
	return out, nil
}

// Get returns one rep by email, not found when absent
func (s *Svc) Get(ctx context.Context, email string) (domain.Rep, error) {
	x, err := s.binder.Bind(s.db).Get(ctx, pstrings.FoldEmail(email))
	if err != nil {
		return domain.Rep{}, err
	}
	x.TenureDays = domain.TenureDays(x.JoiningDate, s.now())
	return x, nil
}

// Segments returns rep counts per segment
func (s *Svc) Segments(ctx context.Context) ([]domain.SegmentCount, error) {
	out, err := s.binder.Bind(s.db).Segments(ctx)
	if out == nil && err == nil {
		out = []domain.SegmentCount{}
	}
	return out, err
}

// Emails returns every rep email in order
func (s *Svc) Emails(ctx context.Context) ([]string, error) {
	return s.binder.Bind(s.db).Emails(ctx)
}
