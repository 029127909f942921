package store

import (
	"context"
	"time"

	"introspect/internal/platform/logger"
)

// Option mutates Store during Open
type Option func(*Store) error

// WithLogger sets the logger used by subclients
func WithLogger(log logger.Logger) Option {
	return func(s *Store) error {
		s.Log = log
		return nil
	}
}

// WithSleep swaps the backoff sleeper used while waiting for postgres
func WithSleep(fn func(context.Context, time.Duration) error) Option {
	return func(s *Store) error {
		if fn != nil {
			s.sleep = fn
		}
		return nil
	}
}

func sleepCtx(ctx context.Context, d time.Duration) error {
	t := time.NewTimer(d)
	defer t.Stop()
	select {
	case <-ctx.Done():
		return ctx.Err()
	case <-t.C:
		return nil
	}
}
