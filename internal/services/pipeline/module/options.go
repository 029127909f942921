package module

import (
	"time"

	"introspect/internal/adapters/ingest/gong"
	"introspect/internal/adapters/llm"
	"introspect/internal/platform/config"
	perr "introspect/internal/platform/errors"
	"introspect/internal/services/events"
)

// Options holds everything the pipeline reads from the environment
type Options struct {
	Gong             gong.Options
	InternalDomain   string
	LookbackDays     int
	TranscriptChunk  int
	Model            llm.ModelOptions
	LLMMaxAttempts   int
	StatementTimeout time.Duration
	LockTimeout      time.Duration
	EventsBatch      int
}

// FromConfig reads GONG_*, INTERNAL_DOMAIN, LLM_* and PIPELINE_* keys
func FromConfig(cfg config.Conf) Options {
	g := cfg.Prefix("GONG_")
	p := cfg.Prefix("PIPELINE_")
	return Options{
		Gong: gong.Options{
			BaseURL:       g.MayString("API_URL", gong.DefaultBaseURL),
			AccessKey:     g.MayString("ACCESS_KEY", ""),
			SecretKey:     g.MayString("SECRET_KEY", ""),
			Timeout:       g.MayDuration("TIMEOUT", 30*time.Second),
			MaxRetries:    g.MayInt("MAX_RETRIES", 5),
			BackoffFactor: g.MayFloat64("BACKOFF_FACTOR", 0.8),
			PageLimit:     g.MayInt("PAGE_LIMIT", gong.DefaultPageLimit),
		},
		InternalDomain:   cfg.MayString("INTERNAL_DOMAIN", ""),
		LookbackDays:     g.MayInt("LOOKBACK_DAYS", 7),
		TranscriptChunk:  g.MayInt("TRANSCRIPT_CHUNK", gong.DefaultTranscriptChunk),
		Model:            llm.ModelOptionsFromEnv(cfg),
		LLMMaxAttempts:   cfg.MayInt("LLM_MAX_ATTEMPTS", 2),
		StatementTimeout: p.MayDuration("STATEMENT_TIMEOUT", 30*time.Second),
		LockTimeout:      p.MayDuration("LOCK_TIMEOUT", 10*time.Second),
		EventsBatch:      p.MayInt("EVENTS_BATCH", events.DefaultBatch),
	}
}

// Validate reports the first missing run level setting
func (o Options) Validate() error {
	switch {
	case o.Gong.AccessKey == "" || o.Gong.SecretKey == "":
		return perr.Configf("GONG_ACCESS_KEY and GONG_SECRET_KEY are required")
	case o.InternalDomain == "":
		return perr.Configf("INTERNAL_DOMAIN is required")
	case o.LookbackDays <= 0:
		return perr.Configf("GONG_LOOKBACK_DAYS must be positive, got %d", o.LookbackDays)
	}
	return nil
}
