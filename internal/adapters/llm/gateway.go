package llm

import (
	"context"
	"time"

	perr "introspect/internal/platform/errors"
	"introspect/internal/platform/logger"
	"introspect/internal/platform/metrics"
	pstrings "introspect/internal/platform/strings"

	"github.com/tmc/langchaingo/llms"
)

// DefaultMaxAttempts bounds how often one call is re-asked for valid JSON
const DefaultMaxAttempts = 2

// Options configures a Gateway
type Options struct {
	MaxAttempts int
	Metrics     *metrics.Metrics
}

// Gateway turns transcripts into verdicts and scorecards
type Gateway struct {
	model       llms.Model
	maxAttempts int
	metrics     *metrics.Metrics
	log         logger.Logger
	now         func() time.Time
}

// NewGateway wraps model
func NewGateway(model llms.Model, o Options) *Gateway {
	if model == nil {
		panic("llm.NewGateway: nil model")
	}
	if o.MaxAttempts <= 0 {
		o.MaxAttempts = DefaultMaxAttempts
	}
	return &Gateway{
		model:       model,
		maxAttempts: o.MaxAttempts,
		metrics:     o.Metrics,
		log:         *logger.Named("llm"),
		now:         time.Now,
	}
}

// Classify decides whether transcript is a discovery call
func (g *Gateway) Classify(ctx context.Context, transcript string) (Verdict, error) {
	text := pstrings.Truncate(transcript, classifyLimit)
	base := classifyPrompt(text)
	return run(ctx, g, "classify", base, text, classifyMaxTokens, parseVerdict)
}

// Score rates a discovery call on the eight MEDDPICC dimensions
func (g *Gateway) Score(ctx context.Context, transcript string) (Scorecard, error) {
	text := pstrings.Truncate(transcript, scoreLimit)
	base := scorePrompt(text)
	return run(ctx, g, "score", base, text, scoreMaxTokens, parseScorecard)
}

// run asks once with the base prompt and then with the strict prompt until
// parse accepts the answer or the attempts are spent
func run[T any](ctx context.Context, g *Gateway, op, base, text string, maxTokens int, parse func(string) (T, error)) (T, error) {
	var zero T
	var lastErr error
	prompt, tokens := base, maxTokens
	for attempt := 1; attempt <= g.maxAttempts; attempt++ {
		start := g.now()
		content, err := g.generate(ctx, prompt, tokens)
		if err != nil {
			g.metrics.LLMCall(op, "error", g.now().Sub(start))
			return zero, perr.Wrapf(err, perr.ErrorCodeUpstream, "llm %s", op)
		}
		out, err := parse(content)
		if err == nil {
			g.metrics.LLMCall(op, "ok", g.now().Sub(start))
			return out, nil
		}
		g.metrics.LLMCall(op, "invalid", g.now().Sub(start))
		lastErr = err
		g.log.Warn().
			Err(err).
			Str("op", op).
			Int("attempt", attempt).
			Int("max_attempts", g.maxAttempts).
			Str("response", pstrings.Truncate(content, 500)).
			Msg("llm response rejected")
		prompt, tokens = strictPrompt(base, text), retryMaxTokens
	}
	return zero, perr.Wrapf(lastErr, perr.ErrorCodeScoring, "llm %s: no valid response after %d attempts", op, g.maxAttempts)
}

func (g *Gateway) generate(ctx context.Context, prompt string, maxTokens int) (string, error) {
	resp, err := g.model.GenerateContent(ctx,
		[]llms.MessageContent{llms.TextParts(llms.ChatMessageTypeHuman, prompt)},
		llms.WithMaxTokens(maxTokens),
		llms.WithTemperature(0),
	)
	if err != nil {
		return "", err
	}
	if len(resp.Choices) == 0 {
		return "", perr.Newf(perr.ErrorCodeUpstream, "no response choices")
	}
	return resp.Choices[0].Content, nil
}
