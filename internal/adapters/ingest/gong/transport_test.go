package gong

import (
	"context"
	"encoding/json"
	"errors"
	"io"
	"net/http"
	"net/http/httptest"
	"strings"
	"sync/atomic"
	"testing"
	"time"

	perr "introspect/internal/platform/errors"
)

func newTestTransport(t *testing.T, h http.HandlerFunc, retries int) (*Transport, *[]time.Duration) {
	t.Helper()
	srv := httptest.NewServer(h)
	t.Cleanup(srv.Close)
	tr := NewTransport(TransportOptions{
		BaseURL:    srv.URL + "/",
		AccessKey:  "ak",
		SecretKey:  "sk",
		MaxRetries: retries,
	})
	var slept []time.Duration
	tr.sleep = func(_ context.Context, d time.Duration) error {
		slept = append(slept, d)
		return nil
	}
	return tr, &slept
}

func TestBackoff(t *testing.T) {
	tr := NewTransport(TransportOptions{})
	cases := []struct {
		attempt int
		want    time.Duration
	}{
		{0, 800 * time.Millisecond},
		{1, 1600 * time.Millisecond},
		{2, 3200 * time.Millisecond},
		{5, 25600 * time.Millisecond},
		{6, 30 * time.Second},
		{40, 30 * time.Second},
	}
	for _, c := range cases {
		if got := tr.Backoff(c.attempt); got != c.want {
			t.Fatalf("Backoff(%d) = %v, want %v", c.attempt, got, c.want)
		}
	}
}

func TestDo_SendsAuthHeadersAndBody(t *testing.T) {
	var gotBody map[string]any
	tr, _ := newTestTransport(t, func(w http.ResponseWriter, r *http.Request) {
		user, pass, ok := r.BasicAuth()
		if !ok || user != "ak" || pass != "sk" {
			t.Errorf("basic auth = %q %q %v", user, pass, ok)
		}
		if r.Header.Get("Accept") != "application/json" || r.Header.Get("Content-Type") != "application/json" {
			t.Errorf("headers = %v", r.Header)
		}
		if r.URL.Path != "/v2/calls/extensive" {
			t.Errorf("path = %q", r.URL.Path)
		}
		b, _ := io.ReadAll(r.Body)
		_ = json.Unmarshal(b, &gotBody)
		_, _ = w.Write([]byte(`{"calls":[{"id":"1"}]}`))
	}, 0)

	out, err := tr.Do(context.Background(), Request{
		Method: http.MethodPost,
		Path:   "/v2/calls/extensive",
		Body:   map[string]any{"limit": 200},
	})
	if err != nil {
		t.Fatalf("Do: %v", err)
	}
	if calls, _ := out["calls"].([]any); len(calls) != 1 {
		t.Fatalf("out = %v", out)
	}
	if gotBody["limit"] != float64(200) {
		t.Fatalf("body = %v", gotBody)
	}
}

func TestDo_GetEncodesQuery(t *testing.T) {
	tr, _ := newTestTransport(t, func(w http.ResponseWriter, r *http.Request) {
		if r.Method != http.MethodGet || r.URL.Query().Get("limit") != "200" {
			t.Errorf("request = %s %s", r.Method, r.URL)
		}
		_, _ = w.Write([]byte(`{"users":[]}`))
	}, 0)
	if _, err := tr.Do(context.Background(), Request{Path: "v2/users", Query: map[string][]string{"limit": {"200"}}}); err != nil {
		t.Fatalf("Do: %v", err)
	}
}

func TestDo_RetriesThenSucceeds(t *testing.T) {
	var n atomic.Int32
	tr, slept := newTestTransport(t, func(w http.ResponseWriter, r *http.Request) {
		switch n.Add(1) {
		case 1:
			w.WriteHeader(http.StatusTooManyRequests)
		case 2:
			w.WriteHeader(http.StatusBadGateway)
		default:
			_, _ = w.Write([]byte(`{"ok":true}`))
		}
	}, 5)

	out, err := tr.Do(context.Background(), Request{Path: "/v2/users"})
	if err != nil || out["ok"] != true {
		t.Fatalf("Do = %v, %v", out, err)
	}
	if n.Load() != 3 {
		t.Fatalf("attempts = %d, want 3", n.Load())
	}
	want := []time.Duration{800 * time.Millisecond, 1600 * time.Millisecond}
	if len(*slept) != 2 || (*slept)[0] != want[0] || (*slept)[1] != want[1] {
		t.Fatalf("slept = %v, want %v", *slept, want)
	}
}

func TestDo_ExhaustsRetries(t *testing.T) {
	var n atomic.Int32
	tr, slept := newTestTransport(t, func(w http.ResponseWriter, r *http.Request) {
		n.Add(1)
		w.WriteHeader(http.StatusServiceUnavailable)
		_, _ = w.Write([]byte("down for maintenance"))
	}, 2)

	_, err := tr.Do(context.Background(), Request{Path: "/v2/users"})
	if !perr.IsCode(err, perr.ErrorCodeUpstream) {
		t.Fatalf("err = %v, want upstream", err)
	}
	if StatusOf(err) != http.StatusServiceUnavailable {
		t.Fatalf("StatusOf = %d", StatusOf(err))
	}
	if !strings.Contains(err.Error(), "down for maintenance") {
		t.Fatalf("err should carry the body: %v", err)
	}
	if n.Load() != 3 || len(*slept) != 2 {
		t.Fatalf("attempts=%d sleeps=%d, want 3 and 2", n.Load(), len(*slept))
	}
}

func TestDo_NonRetryableFailsImmediately(t *testing.T) {
	for _, code := range []int{http.StatusBadRequest, http.StatusUnauthorized, http.StatusNotFound, http.StatusNotImplemented} {
		var n atomic.Int32
		tr, slept := newTestTransport(t, func(w http.ResponseWriter, r *http.Request) {
			n.Add(1)
			w.WriteHeader(code)
		}, 5)
		_, err := tr.Do(context.Background(), Request{Path: "/v2/users"})
		if StatusOf(err) != code || !perr.IsCode(err, perr.ErrorCodeUpstream) {
			t.Fatalf("%d: err = %v", code, err)
		}
		if n.Load() != 1 || len(*slept) != 0 {
			t.Fatalf("%d: attempts=%d sleeps=%d", code, n.Load(), len(*slept))
		}
	}

	tr, _ := newTestTransport(t, func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusUnauthorized)
	}, 0)
	_, err := tr.Do(context.Background(), Request{Path: "/v2/users"})
	if !IsAuthRejected(err) {
		t.Fatalf("IsAuthRejected(%v) = false", err)
	}
}

func TestDo_InvalidJSON(t *testing.T) {
	tr, _ := newTestTransport(t, func(w http.ResponseWriter, r *http.Request) {
		_, _ = w.Write([]byte(`<html>`))
	}, 5)
	_, err := tr.Do(context.Background(), Request{Path: "/v2/users"})
	if !perr.IsCode(err, perr.ErrorCodeUpstreamParse) {
		t.Fatalf("err = %v, want upstream parse", err)
	}
}

func TestDo_TransportErrorRetried(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(http.ResponseWriter, *http.Request) {}))
	base := srv.URL
	srv.Close()

	tr := NewTransport(TransportOptions{BaseURL: base, MaxRetries: 3})
	sleeps := 0
	tr.sleep = func(context.Context, time.Duration) error { sleeps++; return nil }

	_, err := tr.Do(context.Background(), Request{Path: "/v2/users"})
	var ae *APIError
	if !errors.As(err, &ae) || ae.Err == nil || ae.Status != 0 {
		t.Fatalf("err = %v, want transport APIError", err)
	}
	if sleeps != 3 || !strings.Contains(err.Error(), "after 4 attempts") {
		t.Fatalf("sleeps=%d err=%v", sleeps, err)
	}
}

func TestDo_SleepHonoursContext(t *testing.T) {
	tr, _ := newTestTransport(t, func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusInternalServerError)
	}, 5)
	tr.sleep = sleepCtx

	ctx, cancel := context.WithCancel(context.Background())
	cancel()
	_, err := tr.Do(ctx, Request{Path: "/v2/users"})
	if !errors.Is(err, context.Canceled) {
		t.Fatalf("err = %v, want context.Canceled", err)
	}
}
