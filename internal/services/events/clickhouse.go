package events

import (
	"context"
	"sync"

	"introspect/internal/platform/logger"
	"introspect/internal/platform/store"
)

const schema = `
CREATE TABLE IF NOT EXISTS call_evaluations (
    run_id            String,
    call_id           String,
    rep_email         LowCardinality(String),
    domain            LowCardinality(String),
    call_date         DateTime64(3, 'UTC'),
    outcome           LowCardinality(String),
    is_discovery      UInt8,
    reason            String,
    metrics           UInt8,
    economic_buyer    UInt8,
    decision_criteria UInt8,
    decision_process  UInt8,
    paper_process     UInt8,
    identify_pain     UInt8,
    champion          UInt8,
    competition       UInt8,
    overall           Float32,
    error             String,
    evaluated_at      DateTime64(3, 'UTC')
) ENGINE = MergeTree
ORDER BY (evaluated_at, call_id)`

const insert = `INSERT INTO call_evaluations`

// DefaultBatch is the buffered row count that triggers a send
const DefaultBatch = 200

// CH buffers events and appends them to ClickHouse in batches
type CH struct {
	ch    store.Clickhouse
	batch int
	log   logger.Logger

	mu  sync.Mutex
	buf [][]any
}

// NewCH builds a ClickHouse sink; batch <= 0 uses DefaultBatch
func NewCH(ch store.Clickhouse, batch int) *CH {
	if ch == nil {
		panic("events.NewCH requires a non nil Clickhouse")
	}
	if batch <= 0 {
		batch = DefaultBatch
	}
	return &CH{ch: ch, batch: batch, log: *logger.Named("events")}
}

// EnsureSchema creates the events table when missing
func (s *CH) EnsureSchema(ctx context.Context) error {
	return s.ch.Exec(ctx, schema)
}

// Record buffers e and sends the buffer once it reaches the batch size
func (s *CH) Record(ctx context.Context, e Event) error {
	s.mu.Lock()
	s.buf = append(s.buf, row(e))
	full := len(s.buf) >= s.batch
	s.mu.Unlock()
	if full {
		return s.Flush(ctx)
	}
	return nil
}

// Flush sends every buffered event as one batch
func (s *CH) Flush(ctx context.Context) error {
	s.mu.Lock()
	rows := s.buf
	s.buf = nil
	s.mu.Unlock()
	if len(rows) == 0 {
		return nil
	}
	if err := s.ch.Append(ctx, insert, rows); err != nil {
		s.log.Error().Err(err).Int("rows", len(rows)).Msg("events batch failed")
		return err
	}
	s.log.Debug().Int("rows", len(rows)).Msg("events batch sent")
	return nil
}

func row(e Event) []any {
	var dims [8]uint8
	var overall float32
	if e.Scores != nil {
		for i, v := range e.Scores.Values() {
			dims[i] = uint8(v)
		}
		overall = float32(e.Scores.Overall)
	}
	disc := uint8(0)
	if e.IsDiscovery {
		disc = 1
	}
	return []any{
		e.RunID, e.CallID, e.RepEmail, e.Domain, e.CallDate.UTC(), e.Outcome, disc, e.Reason,
		dims[0], dims[1], dims[2], dims[3], dims[4], dims[5], dims[6], dims[7],
		overall, e.Error, e.EvaluatedAt.UTC(),
	}
}
