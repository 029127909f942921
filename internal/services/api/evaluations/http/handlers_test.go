package http

import (
	"context"
	stdhttp "net/http"
	"net/http/httptest"
	"testing"

	"introspect/internal/modkit/httpkit"
	perr "introspect/internal/platform/errors"
	phttp "introspect/internal/platform/net/http"
	"introspect/internal/services/ledger/domain"

	"github.com/go-chi/chi/v5"
)

type fakePort struct {
	domain.Port
	got *domain.Filter
}

func (f fakePort) List(_ context.Context, flt domain.Filter) ([]domain.Entry, error) {
	*f.got = flt
	return []domain.Entry{{CallID: "c1", IsDiscovery: true}}, nil
}

func (f fakePort) Get(_ context.Context, id string) (domain.Entry, error) {
	if id != "c1" {
		return domain.Entry{}, perr.NotFoundf("call %s not evaluated", id)
	}
	return domain.Entry{CallID: id}, nil
}

func TestEvaluations(t *testing.T) {
	var got domain.Filter
	mux := chi.NewRouter()
	httpkit.MountAPIV1(phttp.AdaptChi(mux), nil, func(r httpkit.Router) {
		r.Route("/evaluations", func(rr httpkit.Router) { Register(rr, fakePort{got: &got}) })
	})
	do := func(path string) int {
		rr := httptest.NewRecorder()
		mux.ServeHTTP(rr, httptest.NewRequest(stdhttp.MethodGet, path, nil))
		return rr.Code
	}

	if code := do("/api/v1/evaluations?discovery=false&limit=20"); code != 200 {
		t.Fatalf("list = %d", code)
	}
	if got.Discovery == nil || *got.Discovery || got.Limit != 20 {
		t.Fatalf("filter = %+v", got)
	}
	if code := do("/api/v1/evaluations?discovery=perhaps"); code != stdhttp.StatusBadRequest {
		t.Fatalf("bad discovery = %d", code)
	}
	if code := do("/api/v1/evaluations/c1"); code != 200 {
		t.Fatalf("get = %d", code)
	}
	if code := do("/api/v1/evaluations/c9"); code != stdhttp.StatusNotFound {
		t.Fatalf("missing = %d", code)
	}
}
