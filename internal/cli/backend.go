package cli

import (
	"context"

	"introspect/internal/modkit"
	"introspect/internal/platform/config"
	"introspect/internal/platform/logger"
	"introspect/internal/platform/store"
	accdom "introspect/internal/services/accounts/domain"
	accrepo "introspect/internal/services/accounts/repo"
	accsvc "introspect/internal/services/accounts/service"
	pipedom "introspect/internal/services/pipeline/domain"
	pipemod "introspect/internal/services/pipeline/module"
	repsdom "introspect/internal/services/reps/domain"
	repsrepo "introspect/internal/services/reps/repo"
	repssvc "introspect/internal/services/reps/service"
)

type storeBackend struct {
	st       *store.Store
	deps     modkit.Deps
	accounts accdom.Port
	reps     repsdom.Port
}

// OpenStore connects postgres (and ClickHouse when enabled) from SERVICE_* keys
func OpenStore(ctx context.Context) (Backend, error) {
	root := config.New()
	l := logger.Get()
	st, err := store.Open(ctx, store.ConfigFromEnv(root, "cli"), store.WithLogger(*l))
	if err != nil {
		return nil, err
	}
	deps := modkit.Deps{Log: *l, Cfg: root}.FromStore(st)
	return &storeBackend{
		st:       st,
		deps:     deps,
		accounts: accsvc.New(deps.PG, accrepo.NewPG(), nil),
		reps:     repssvc.New(deps.PG, repsrepo.NewPG()),
	}, nil
}

func (b *storeBackend) Runner(ctx context.Context) (pipedom.RunnerPort, error) {
	m, err := pipemod.New(b.deps)
	if err != nil {
		return nil, err
	}
	if err := m.Prepare(ctx); err != nil {
		return nil, err
	}
	return m.Runner(), nil
}

func (b *storeBackend) Accounts() accdom.Port { return b.accounts }
func (b *storeBackend) Reps() repsdom.Port    { return b.reps }

func (b *storeBackend) Close() {
	if err := b.st.Close(context.Background()); err != nil {
		logger.Get().Error().Err(err).Msg("failed to close store")
	}
}
