// Package gong talks to the call recording platform: a retrying transport,
// a cursor paginator on top of it and typed endpoints on top of that
package gong

import (
	"context"
	"net/http"
	"net/url"
	"strconv"
	"time"

	"introspect/internal/platform/logger"
	"introspect/internal/platform/metrics"
)

const (
	// DefaultBaseURL is the public API host
	DefaultBaseURL = "https://api.gong.io"
	// DefaultPageLimit is the page size requested from list endpoints
	DefaultPageLimit = 200
	// DefaultTranscriptChunk is the number of call ids per transcript request
	DefaultTranscriptChunk = 50

	pathUsers       = "/v2/users"
	pathCalls       = "/v2/calls/extensive"
	pathTranscripts = "/v2/calls/transcript"
)

// Options configures the client
type Options struct {
	BaseURL       string
	AccessKey     string
	SecretKey     string
	Timeout       time.Duration
	MaxRetries    int
	BackoffFactor float64
	PageLimit     int
	HTTPClient    *http.Client
	Metrics       *metrics.Metrics
}

// Client exposes the endpoints the pipeline consumes
type Client struct {
	pager *Paginator
	limit int
	log   logger.Logger
}

// NewClient builds the transport and paginator stack
func NewClient(o Options) *Client {
	if o.BaseURL == "" {
		o.BaseURL = DefaultBaseURL
	}
	if o.MaxRetries == 0 {
		o.MaxRetries = defaultMaxRetries
	}
	tr := NewTransport(TransportOptions{
		BaseURL:       o.BaseURL,
		AccessKey:     o.AccessKey,
		SecretKey:     o.SecretKey,
		Timeout:       o.Timeout,
		MaxRetries:    o.MaxRetries,
		BackoffFactor: o.BackoffFactor,
		HTTPClient:    o.HTTPClient,
		Metrics:       o.Metrics,
	})
	return NewClientWith(tr, o.PageLimit)
}

// NewClientWith builds a client over any Doer
func NewClientWith(d Doer, pageLimit int) *Client {
	if pageLimit <= 0 {
		pageLimit = DefaultPageLimit
	}
	return &Client{pager: NewPaginator(d), limit: pageLimit, log: *logger.Named("gong")}
}

// ListUsers returns every platform user
func (c *Client) ListUsers(ctx context.Context) ([]User, error) {
	resp, err := c.pager.Fetch(ctx, Request{
		Method: http.MethodGet,
		Path:   pathUsers,
		Query:  url.Values{"limit": {strconv.Itoa(c.limit)}},
	}, true)
	if err != nil {
		return nil, err
	}
	page, err := decode[usersPage](pathUsers, resp)
	if err != nil {
		return nil, err
	}
	return page.Users, nil
}

// SearchCalls returns calls in [from, to] owned by the given user ids, with parties exposed
func (c *Client) SearchCalls(ctx context.Context, from, to time.Time, userIDs []string) ([]Call, error) {
	body := map[string]any{
		"filter": map[string]any{
			"fromDateTime":   from.UTC().Format(time.RFC3339),
			"toDateTime":     to.UTC().Format(time.RFC3339),
			"primaryUserIds": userIDs,
		},
		"limit": c.limit,
		"contentSelector": map[string]any{
			"exposedFields": map[string]any{"parties": true},
		},
	}
	resp, err := c.pager.Fetch(ctx, Request{Method: http.MethodPost, Path: pathCalls, Body: body}, true)
	if err != nil {
		return nil, err
	}
	page, err := decode[callsPage](pathCalls, resp)
	if err != nil {
		return nil, err
	}
	return page.Calls, nil
}

// Transcripts fetches transcripts for one batch of call ids
func (c *Client) Transcripts(ctx context.Context, callIDs []string) ([]Transcript, error) {
	body := map[string]any{"filter": map[string]any{"callIds": callIDs}}
	resp, err := c.pager.Fetch(ctx, Request{Method: http.MethodPost, Path: pathTranscripts, Body: body}, true)
	if err != nil {
		return nil, err
	}
	page, err := decode[transcriptsPage](pathTranscripts, resp)
	if err != nil {
		return nil, err
	}
	c.log.Debug().
		Int("requested", len(callIDs)).
		Int("call_transcripts", len(page.CallTranscripts)).
		Int("transcripts", len(page.Transcripts)).
		Msg("gong transcripts batch")
	if len(page.CallTranscripts) > 0 {
		return page.CallTranscripts, nil
	}
	return page.Transcripts, nil
}
