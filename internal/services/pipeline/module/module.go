// Package module wires the pipeline and the stores it writes from shared deps
package module

import (
	"context"

	"github.com/tmc/langchaingo/llms"

	"introspect/internal/adapters/ingest/gong"
	"introspect/internal/adapters/llm"
	"introspect/internal/modkit"
	accdom "introspect/internal/services/accounts/domain"
	accrepo "introspect/internal/services/accounts/repo"
	accsvc "introspect/internal/services/accounts/service"
	"introspect/internal/services/events"
	ledgerdom "introspect/internal/services/ledger/domain"
	ledgerrepo "introspect/internal/services/ledger/repo"
	ledgersvc "introspect/internal/services/ledger/service"
	"introspect/internal/services/pipeline/domain"
	"introspect/internal/services/pipeline/service"
	repsdom "introspect/internal/services/reps/domain"
	repsrepo "introspect/internal/services/reps/repo"
	repssvc "introspect/internal/services/reps/service"
)

// Ports exposes the runner plus the stores it writes
type Ports struct {
	Runner   domain.RunnerPort
	Accounts accdom.Port
	Ledger   ledgerdom.Port
	Reps     repsdom.Port
}

// Module owns one pipeline and its event sink
type Module struct {
	deps  modkit.Deps
	ports Ports
	ch    *events.CH
}

// New reads options from deps.Cfg and builds the model from them
func New(deps modkit.Deps) (*Module, error) {
	opts := FromConfig(deps.Cfg)
	if err := opts.Validate(); err != nil {
		return nil, err
	}
	model, err := llm.NewModel(opts.Model)
	if err != nil {
		return nil, err
	}
	return NewWith(deps, opts, gong.NewClient(withMetrics(opts.Gong, deps)), model), nil
}

func withMetrics(o gong.Options, deps modkit.Deps) gong.Options {
	o.Metrics = deps.Metrics
	return o
}

// NewWith wires the module over an explicit platform API and model
func NewWith(deps modkit.Deps, opts Options, api gong.API, model llms.Model) *Module {
	accounts := accsvc.New(deps.PG, accrepo.NewPG(), deps.Metrics)
	ledger := ledgersvc.New(deps.PG, ledgerrepo.NewPG())
	reps := repssvc.New(deps.PG, repsrepo.NewPG())

	src := gong.NewSource(api, gong.SourceOptions{
		InternalDomain:  opts.InternalDomain,
		TranscriptChunk: opts.TranscriptChunk,
	})
	gw := llm.NewGateway(model, llm.Options{MaxAttempts: opts.LLMMaxAttempts, Metrics: deps.Metrics})
	rec := service.NewTxRecorder(deps.PG, accounts, ledger, opts.StatementTimeout, opts.LockTimeout)

	m := &Module{deps: deps}
	var sink events.Sink = events.Nop{}
	if deps.CH != nil {
		m.ch = events.NewCH(deps.CH, opts.EventsBatch)
		sink = m.ch
	}

	runner := service.New(src, gw, ledger, rec, reps, sink, deps.Metrics,
		service.Config{LookbackDays: opts.LookbackDays})
	m.ports = Ports{Runner: runner, Accounts: accounts, Ledger: ledger, Reps: reps}
	return m
}

// Prepare creates the events table when ClickHouse is enabled
func (m *Module) Prepare(ctx context.Context) error {
	if m.ch == nil {
		return nil
	}
	return m.ch.EnsureSchema(ctx)
}

// Name returns the module name
func (m *Module) Name() string { return "pipeline" }

// Ports returns the module ports
func (m *Module) Ports() any { return m.ports }

// Runner is a typed shortcut for Ports().Runner
func (m *Module) Runner() domain.RunnerPort { return m.ports.Runner }
