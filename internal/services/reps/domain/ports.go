package domain

import (
	"context"
	"io"
)

// Port is the sales rep roster surface
type Port interface {
	LoadCSV(ctx context.Context, r io.Reader) (LoadResult, error)
	List(ctx context.Context) ([]Rep, error)
	Get(ctx context.Context, email string) (Rep, error)
	Segments(ctx context.Context) ([]SegmentCount, error)
	Emails(ctx context.Context) ([]string, error)
}
