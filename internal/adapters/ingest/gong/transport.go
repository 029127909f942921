package gong

import (
	"bytes"
	"context"
	"encoding/json"
	"io"
	"math"
	"net/http"
	"net/url"
	"strings"
	"time"

	perr "introspect/internal/platform/errors"
	"introspect/internal/platform/logger"
	"introspect/internal/platform/metrics"
)

const (
	defaultTimeout    = 30 * time.Second
	defaultMaxRetries = 5
	defaultFactor     = 0.8
	backoffCap        = 30 * time.Second
)

// Request is one logical call against the platform API
type Request struct {
	Method string
	Path   string
	Query  url.Values
	Body   map[string]any
}

// Doer executes a single request and returns the decoded JSON object
type Doer interface {
	Do(ctx context.Context, req Request) (map[string]any, error)
}

// TransportOptions configures the retrying transport
type TransportOptions struct {
	BaseURL       string
	AccessKey     string
	SecretKey     string
	Timeout       time.Duration
	MaxRetries    int
	BackoffFactor float64
	HTTPClient    *http.Client
	Metrics       *metrics.Metrics
}

// Transport performs requests with basic auth and exponential backoff on
// transport failures and 429/5xx answers
type Transport struct {
	http    *http.Client
	opts    TransportOptions
	log     logger.Logger
	metrics *metrics.Metrics
	now     func() time.Time
	sleep   func(context.Context, time.Duration) error
}

// NewTransport creates a Transport with defaults applied
func NewTransport(o TransportOptions) *Transport {
	o.BaseURL = strings.TrimRight(o.BaseURL, "/")
	if o.Timeout <= 0 {
		o.Timeout = defaultTimeout
	}
	if o.MaxRetries < 0 {
		o.MaxRetries = 0
	}
	if o.BackoffFactor <= 0 {
		o.BackoffFactor = defaultFactor
	}
	hc := o.HTTPClient
	if hc == nil {
		hc = &http.Client{Timeout: o.Timeout}
	}
	return &Transport{
		http:    hc,
		opts:    o,
		log:     *logger.Named("gong"),
		metrics: o.Metrics,
		now:     time.Now,
		sleep:   sleepCtx,
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

// Backoff returns min(2^attempt * factor seconds, 30s)
func (t *Transport) Backoff(attempt int) time.Duration {
	secs := math.Pow(2, float64(attempt)) * t.opts.BackoffFactor
	d := time.Duration(secs * float64(time.Second))
	if d > backoffCap || d <= 0 {
		return backoffCap
	}
	return d
}

// Do issues req, retrying up to MaxRetries times
func (t *Transport) Do(ctx context.Context, req Request) (map[string]any, error) {
	method := strings.ToUpper(req.Method)
	if method == "" {
		method = http.MethodGet
	}
	target := t.opts.BaseURL + "/" + strings.TrimLeft(req.Path, "/")
	if method == http.MethodGet && len(req.Query) > 0 {
		target += "?" + req.Query.Encode()
	}
	var payload []byte
	if method != http.MethodGet && req.Body != nil {
		b, err := json.Marshal(req.Body)
		if err != nil {
			return nil, perr.Wrapf(err, perr.ErrorCodeJSON, "gong %s: encode body", req.Path)
		}
		payload = b
	}

	for attempt := 0; ; attempt++ {
		hreq, err := http.NewRequestWithContext(ctx, method, target, bytes.NewReader(payload))
		if err != nil {
			return nil, perr.Wrapf(err, perr.ErrorCodeUnknown, "gong %s: new request", req.Path)
		}
		hreq.SetBasicAuth(t.opts.AccessKey, t.opts.SecretKey)
		hreq.Header.Set("Accept", "application/json")
		hreq.Header.Set("Content-Type", "application/json")

		start := t.now()
		resp, err := t.http.Do(hreq)
		lat := t.now().Sub(start)

		if err != nil {
			if ctx.Err() != nil {
				return nil, ctx.Err()
			}
			t.metrics.UpstreamAttempt(req.Path, 0, lat)
			if attempt >= t.opts.MaxRetries {
				return nil, transportError(req.Path, attempt+1, err)
			}
			if err := t.retry(ctx, req.Path, attempt, 0, err); err != nil {
				return nil, err
			}
			continue
		}

		body, readErr := io.ReadAll(resp.Body)
		_ = resp.Body.Close()
		t.metrics.UpstreamAttempt(req.Path, resp.StatusCode, lat)
		t.log.Debug().
			Str("method", method).
			Str("path", req.Path).
			Int("status", resp.StatusCode).
			Int("attempt", attempt).
			Dur("latency", lat).
			Int("bytes", len(body)).
			Msg("gong http response")

		switch {
		case retryableStatus(resp.StatusCode):
			if attempt >= t.opts.MaxRetries {
				return nil, statusError(req.Path, resp.StatusCode, body)
			}
			if err := t.retry(ctx, req.Path, attempt, resp.StatusCode, nil); err != nil {
				return nil, err
			}
			continue
		case resp.StatusCode >= http.StatusBadRequest:
			return nil, statusError(req.Path, resp.StatusCode, body)
		case readErr != nil:
			if attempt >= t.opts.MaxRetries {
				return nil, transportError(req.Path, attempt+1, readErr)
			}
			if err := t.retry(ctx, req.Path, attempt, resp.StatusCode, readErr); err != nil {
				return nil, err
			}
			continue
		}

		var out map[string]any
		if err := json.Unmarshal(body, &out); err != nil {
			return nil, parseError(req.Path, resp.StatusCode, err)
		}
		if out == nil {
			out = map[string]any{}
		}
		return out, nil
	}
}

func (t *Transport) retry(ctx context.Context, path string, attempt, status int, cause error) error {
	back := t.Backoff(attempt)
	t.metrics.UpstreamRetry(path)
	evt := t.log.Warn().Str("path", path).Int("attempt", attempt).Dur("retry_in", back)
	if status > 0 {
		evt = evt.Int("status", status)
	}
	if cause != nil {
		evt = evt.Err(cause)
	}
	evt.Msg("gong request retrying")
	return t.sleep(ctx, back)
}
