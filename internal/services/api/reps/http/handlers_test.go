package http

import (
	"context"
	"encoding/json"
	stdhttp "net/http"
	"net/http/httptest"
	"testing"

	"introspect/internal/modkit/httpkit"
	perr "introspect/internal/platform/errors"
	pnet "introspect/internal/platform/net"
	phttp "introspect/internal/platform/net/http"
	"introspect/internal/services/reps/domain"

	"github.com/go-chi/chi/v5"
)

type fakePort struct{ domain.Port }

func (fakePort) List(context.Context) ([]domain.Rep, error) {
	return []domain.Rep{{Email: "alice@co.com", Segment: "Enterprise", TenureDays: 30}}, nil
}

func (fakePort) Segments(context.Context) ([]domain.SegmentCount, error) {
	return []domain.SegmentCount{{Segment: "Enterprise", Reps: 1}, {Segment: "SMB", Reps: 2}}, nil
}

func (fakePort) Get(_ context.Context, email string) (domain.Rep, error) {
	if email != "alice@co.com" {
		return domain.Rep{}, perr.NotFoundf("rep %s not found", email)
	}
	return domain.Rep{Email: email, Segment: "Enterprise"}, nil
}

func serve(t *testing.T, path string) (int, pnet.Wire) {
	t.Helper()
	mux := chi.NewRouter()
	httpkit.MountAPIV1(phttp.AdaptChi(mux), nil, func(r httpkit.Router) {
		r.Route("/reps", func(rr httpkit.Router) { Register(rr, fakePort{}) })
	})
	rr := httptest.NewRecorder()
	mux.ServeHTTP(rr, httptest.NewRequest(stdhttp.MethodGet, path, nil))
	var w pnet.Wire
	if err := json.NewDecoder(rr.Body).Decode(&w); err != nil {
		t.Fatalf("decode %s: %v", path, err)
	}
	return rr.Code, w
}

func TestReps(t *testing.T) {
	cases := []struct {
		path  string
		code  int
		count int
	}{
		{"/api/v1/reps", 200, 1},
		{"/api/v1/reps/segments", 200, 2},
		{"/api/v1/reps/alice@co.com", 200, -1},
		{"/api/v1/reps/ghost@co.com", 404, -1},
	}
	for _, c := range cases {
		code, w := serve(t, c.path)
		if code != c.code {
			t.Fatalf("%s = %d, want %d", c.path, code, c.code)
		}
		if c.count >= 0 && (w.Count == nil || *w.Count != c.count) {
			t.Fatalf("%s count = %v, want %d", c.path, w.Count, c.count)
		}
	}
}
