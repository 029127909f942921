package store

import (
	"context"
	"fmt"
	"time"

	chx "introspect/internal/platform/store/ch"
	"introspect/internal/platform/store/pg"
)

const (
	backoffStart   = 150 * time.Millisecond
	backoffCeiling = 2 * time.Second
)

// openPG opens the pool, waits for it to answer, then wraps it in the sql adapter
func openPG(ctx context.Context, cfg Config, s *Store) (TxRunner, error) {
	var tracer pg.QueryTracer
	if cfg.PG.LogSQL {
		tracer = pg.Tracer(s.Log)
	}

	p, err := pg.Open(ctx, pg.Config{
		URL:      cfg.PG.URL,
		MaxConns: cfg.PG.MaxConns,
		SlowMs:   cfg.PG.SlowQueryMs,
		AppName:  cfg.AppName,
	}, tracer, nil)
	if err != nil {
		return nil, err
	}

	if err := waitReady(ctx, s, cfg.PG, p.Pool.Ping); err != nil {
		p.Close()
		return nil, err
	}
	return newPGAdapter(p), nil
}

// waitReady pings with exponential backoff until ping succeeds, ctx ends, or retries run out
func waitReady(ctx context.Context, s *Store, cfg PGConfig, ping func(context.Context) error) error {
	sleep := s.sleep
	if sleep == nil {
		sleep = sleepCtx
	}

	var lastErr error
	backoff := backoffStart
	for i := 0; i < cfg.retries(); i++ {
		toCtx, cancel := context.WithTimeout(ctx, cfg.pingTimeout())
		lastErr = ping(toCtx)
		cancel()
		if lastErr == nil {
			return nil
		}
		if ctx.Err() != nil {
			return ctx.Err()
		}
		s.Log.Debug().Err(lastErr).Int("attempt", i+1).Dur("backoff", backoff).Msg("postgres not ready")
		if err := sleep(ctx, backoff); err != nil {
			return err
		}
		backoff = min(backoff*2, backoffCeiling)
	}
	return fmt.Errorf("postgres ping failed after %d attempts: %w", cfg.retries(), lastErr)
}

func openCH(ctx context.Context, cfg Config, s *Store) (Clickhouse, error) {
	c, err := chx.Open(ctx, chx.Config{URL: cfg.CH.URL, AppName: cfg.AppName, Role: cfg.CH.Role})
	if err != nil {
		return nil, err
	}
	s.Log.Debug().Str("role", cfg.CH.Role).Msg("clickhouse connected")
	return newCHAdapter(c), nil
}
