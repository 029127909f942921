package http_test

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	perr "introspect/internal/platform/errors"
	lumnet "introspect/internal/platform/net"
	phttp "introspect/internal/platform/net/http"
)

func decode(t *testing.T, rec *httptest.ResponseRecorder) lumnet.Wire {
	t.Helper()
	var w lumnet.Wire
	if err := json.Unmarshal(rec.Body.Bytes(), &w); err != nil {
		t.Fatalf("decode envelope: %v (%s)", err, rec.Body.String())
	}
	return w
}

func TestGetJSON_Envelopes(t *testing.T) {
	srv := phttp.NewServerAt(":0")
	r := srv.Router()
	r.Route("/api/v1", func(api phttp.Router) {
		phttp.GetJSON(api, "/domains", func(*http.Request) (any, error) {
			return []string{"a.com", "b.com"}, nil
		})
		phttp.GetJSON(api, "/accounts/{domain}", func(req *http.Request) (any, error) {
			d := phttp.URLParam(req, "domain")
			if d == "missing.com" {
				return nil, perr.NotFoundf("account %s not found", d)
			}
			return map[string]string{"domain": d}, nil
		})
		phttp.GetJSON(api, "/boom", func(*http.Request) (any, error) {
			return nil, errors.New("boom")
		})
	})

	cases := []struct {
		path   string
		status int
		count  int
	}{
		{"/api/v1/domains", http.StatusOK, 2},
		{"/api/v1/accounts/acme.com", http.StatusOK, -1},
		{"/api/v1/accounts/missing.com", http.StatusNotFound, -1},
		{"/api/v1/boom", http.StatusInternalServerError, -1},
	}
	for _, c := range cases {
		rec := httptest.NewRecorder()
		r.Mux().ServeHTTP(rec, httptest.NewRequest("GET", c.path, nil))
		if rec.Code != c.status {
			t.Fatalf("%s: status %d, want %d", c.path, rec.Code, c.status)
		}
		w := decode(t, rec)
		if w.StatusCode != c.status {
			t.Fatalf("%s: envelope status %d", c.path, w.StatusCode)
		}
		if c.count >= 0 && (w.Count == nil || *w.Count != c.count) {
			t.Fatalf("%s: count = %v, want %d", c.path, w.Count, c.count)
		}
	}
}

func TestHandle_NoContentAndStatus(t *testing.T) {
	h := phttp.Handle(func(*http.Request) phttp.Response { return phttp.NoContent() })
	rec := httptest.NewRecorder()
	h(rec, httptest.NewRequest("GET", "/", nil))
	if rec.Code != http.StatusNoContent || rec.Body.Len() != 0 {
		t.Fatalf("NoContent = %d %q", rec.Code, rec.Body.String())
	}

	h = phttp.Handle(func(*http.Request) phttp.Response {
		return phttp.Response{Status: http.StatusAccepted, Body: "queued"}
	})
	rec = httptest.NewRecorder()
	h(rec, httptest.NewRequest("GET", "/", nil))
	if rec.Code != http.StatusAccepted || decode(t, rec).Status != "Accepted" {
		t.Fatalf("custom status = %d %s", rec.Code, rec.Body.String())
	}
}

func TestServer_RunStopsOnCancel(t *testing.T) {
	srv := phttp.NewServerAt("127.0.0.1:0")
	ctx, cancel := context.WithCancel(context.Background())
	done := make(chan error, 1)
	go func() { done <- srv.Run(ctx) }()

	time.Sleep(50 * time.Millisecond)
	cancel()
	select {
	case err := <-done:
		if err != nil {
			t.Fatalf("Run returned %v", err)
		}
	case <-time.After(5 * time.Second):
		t.Fatalf("Run did not return after cancel")
	}
}
