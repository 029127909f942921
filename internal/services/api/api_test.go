package api

import (
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"introspect/internal/modkit"
	"introspect/internal/platform/metrics"
	pnet "introspect/internal/platform/net"
	phttp "introspect/internal/platform/net/http"
	"introspect/internal/platform/testkit/txfake"

	"github.com/go-chi/chi/v5"
	"github.com/prometheus/client_golang/prometheus"
)

func TestModules_MountsEverything(t *testing.T) {
	mux := chi.NewRouter()
	reg := prometheus.NewRegistry()
	deps := modkit.Deps{PG: &txfake.TxRecorder{}, Metrics: metrics.New(reg, reg)}
	mods := Modules(phttp.AdaptChi(mux), deps, Options{EnableSwagger: true})

	names := map[string]bool{}
	for _, m := range mods {
		names[m.Name()] = true
	}
	for _, n := range []string{"accounts", "reps", "evaluations", "meta"} {
		if !names[n] {
			t.Fatalf("module %s not mounted (%v)", n, names)
		}
	}

	rr := httptest.NewRecorder()
	mux.ServeHTTP(rr, httptest.NewRequest(http.MethodGet, "/api/v1/meta/health", nil))
	if rr.Code != http.StatusOK {
		t.Fatalf("health = %d %s", rr.Code, rr.Body)
	}
	var w pnet.Wire
	if err := json.NewDecoder(rr.Body).Decode(&w); err != nil {
		t.Fatalf("decode: %v", err)
	}

	rr = httptest.NewRecorder()
	mux.ServeHTTP(rr, httptest.NewRequest(http.MethodGet, "/api/v1/evaluations?limit=9999", nil))
	if rr.Code != http.StatusBadRequest {
		t.Fatalf("bad limit = %d", rr.Code)
	}

	rr = httptest.NewRecorder()
	mux.ServeHTTP(rr, httptest.NewRequest(http.MethodGet, "/api/docs/doc.json", nil))
	if rr.Code != http.StatusOK || !strings.Contains(rr.Body.String(), "/accounts/{domain}") {
		t.Fatalf("doc.json = %d", rr.Code)
	}

	rr = httptest.NewRecorder()
	mux.ServeHTTP(rr, httptest.NewRequest(http.MethodGet, "/metrics", nil))
	if rr.Code != http.StatusOK || !strings.Contains(rr.Body.String(), "introspect_api_http_requests_total") {
		t.Fatalf("/metrics = %d", rr.Code)
	}
}
