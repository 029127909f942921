package main

import (
	"context"
	"os"
	"os/signal"
	"syscall"

	"introspect/internal/modkit"
	"introspect/internal/platform/config"
	"introspect/internal/platform/logger"
	"introspect/internal/platform/metrics"
	phttp "introspect/internal/platform/net/http"
	"introspect/internal/platform/store"

	pipedom "introspect/internal/services/pipeline/domain"
	pipemod "introspect/internal/services/pipeline/module"
	"introspect/internal/services/scheduler"
)

func main() {
	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	root := config.New()
	schedCfg := root.Prefix("SCHEDULER_")
	l := logger.Get()

	st, err := store.Open(ctx, store.ConfigFromEnv(root, "scheduler"), store.WithLogger(*l))
	if err != nil {
		l.Panic().Err(err).Msg("store.Open failed")
	}
	defer func() {
		if err := st.Close(context.Background()); err != nil {
			l.Error().Err(err).Msg("failed to close store")
		}
	}()

	m := metrics.Default()
	deps := modkit.Deps{Log: *l, Cfg: root, Metrics: m}.FromStore(st)

	pipeline, err := pipemod.New(deps)
	if err != nil {
		l.Panic().Err(err).Msg("pipeline config invalid")
	}
	if err := pipeline.Prepare(ctx); err != nil {
		l.Panic().Err(err).Msg("pipeline prepare failed")
	}

	sched, err := scheduler.New(pipeline.Runner(), scheduler.Options{
		Spec:       schedCfg.MayString("SPEC", scheduler.DefaultSpec),
		RunOnStart: schedCfg.MayBool("RUN_ON_START", false),
		Request:    pipedom.RunRequest{LookbackDays: schedCfg.MayInt("LOOKBACK_DAYS", 0)},
	})
	if err != nil {
		l.Panic().Err(err).Msg("scheduler config invalid")
	}

	// metrics only listener
	srv := phttp.NewServerAt(schedCfg.MayString("METRICS_PORT", ":9101"))
	srv.Router().Handle("/metrics", m.Handler())
	go func() {
		if err := srv.Run(ctx); err != nil {
			l.Error().Err(err).Msg("metrics server stopped")
		}
	}()

	sched.Start(ctx)
	<-ctx.Done()
	l.Info().Msg("shutting down, waiting for a running pipeline")
	<-sched.Stop().Done()
}
