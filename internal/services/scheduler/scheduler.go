// Package scheduler triggers pipeline runs on a cron schedule, never more
// than one at a time per process
package scheduler

import (
	"context"
	"sync"

	"github.com/robfig/cron/v3"

	perr "introspect/internal/platform/errors"
	"introspect/internal/platform/logger"
	"introspect/internal/services/pipeline/domain"
)

// DefaultSpec runs once a day at midnight
const DefaultSpec = "@daily"

// Options configures the schedule
type Options struct {
	Spec       string
	RunOnStart bool
	Request    domain.RunRequest
}

// Scheduler owns a cron instance with a single pipeline job
type Scheduler struct {
	cron   *cron.Cron
	runner domain.RunnerPort
	opts   Options
	log    logger.Logger
	job    cron.Job

	mu      sync.Mutex
	ctx     context.Context
	last    *domain.RunSummary
	lastErr error
}

// New validates the cron expression and registers the job
func New(r domain.RunnerPort, o Options) (*Scheduler, error) {
	if r == nil {
		panic("scheduler.New requires a runner")
	}
	if o.Spec == "" {
		o.Spec = DefaultSpec
	}
	s := &Scheduler{runner: r, opts: o, log: *logger.Named("scheduler"), ctx: context.Background()}
	cl := cronLogger{l: s.log}
	s.cron = cron.New(cron.WithLogger(cl))
	s.job = cron.NewChain(cron.Recover(cl), cron.SkipIfStillRunning(cl)).Then(cron.FuncJob(s.tick))
	if _, err := s.cron.AddJob(o.Spec, s.job); err != nil {
		return nil, perr.Wrapf(err, perr.ErrorCodeConfig, "invalid schedule %q", o.Spec)
	}
	return s, nil
}

// Start begins ticking; runs carry ctx. With RunOnStart a run starts now
func (s *Scheduler) Start(ctx context.Context) {
	s.mu.Lock()
	s.ctx = ctx
	s.mu.Unlock()
	s.cron.Start()
	s.log.Info().Str("spec", s.opts.Spec).Bool("run_on_start", s.opts.RunOnStart).Msg("scheduler started")
	if s.opts.RunOnStart {
		go s.job.Run()
	}
}

// Stop halts the schedule; the returned context is done once a running job returns
func (s *Scheduler) Stop() context.Context {
	return s.cron.Stop()
}

// Last returns the most recent summary and error, nil before the first run
func (s *Scheduler) Last() (*domain.RunSummary, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.last, s.lastErr
}

func (s *Scheduler) tick() {
	s.mu.Lock()
	ctx := s.ctx
	s.mu.Unlock()
	if ctx.Err() != nil {
		return
	}

	sum, err := s.runner.Run(ctx, s.opts.Request)

	s.mu.Lock()
	s.last, s.lastErr = &sum, err
	s.mu.Unlock()

	if err != nil {
		s.log.Error().Err(err).Str("run_id", sum.RunID).Msg("scheduled run failed")
		return
	}
	s.log.Info().
		Str("run_id", sum.RunID).
		Int("processed", sum.Processed).
		Int("skipped", sum.Skipped).
		Int("failed", sum.Failed).
		Int("discovery", sum.Discovery).
		Msg("scheduled run done")
}

// cronLogger adapts zerolog to cron.Logger
type cronLogger struct{ l logger.Logger }

func (c cronLogger) Info(msg string, kv ...any) {
	c.l.Debug().Fields(kv).Msg(msg)
}

func (c cronLogger) Error(err error, msg string, kv ...any) {
	c.l.Error().Err(err).Fields(kv).Msg(msg)
}
