// Package http provides meta endpoints
package http

import (
	stdctx "context"
	"math"
	"net/http"
	"time"

	"introspect/internal/core/version"
	"introspect/internal/modkit/httpkit"
	accdom "introspect/internal/services/accounts/domain"
	repsdom "introspect/internal/services/reps/domain"
)

// Pinger is satisfied by adapters that expose Ping
type Pinger interface {
	Ping(stdctx.Context) error
}

// Deps are the handler dependencies. Accounts and Reps feed /summary
type Deps struct {
	ServiceName string
	StartedAt   time.Time
	PG          any
	CH          any
	Accounts    accdom.Port
	Reps        repsdom.Port
}

type handlers struct {
	deps Deps
	now  func() time.Time
}

// Register mounts the meta routes
func Register(r httpkit.Router, d Deps) {
	h := &handlers{deps: d, now: time.Now}

	httpkit.Get(r, "/health", h.health)
	httpkit.Get(r, "/ready", h.ready)
	httpkit.Get(r, "/version", h.version)
	httpkit.Get(r, "/summary", h.summary)
}

//
// Swagger DTOs and route docs
//

// HealthResponse is the health payload
// swagger:model
type HealthResponse struct {
	OK      bool   `json:"ok"       example:"true"`
	Service string `json:"service"  example:"introspect-api"`
	Started string `json:"started"  example:"2026-03-09T13:00:00Z"`
	Now     string `json:"now"      example:"2026-03-09T13:05:00Z"`
	Uptime  int64  `json:"uptime"   example:"300"`
}

// ReadyCheck describes a single dependency check
type ReadyCheck struct {
	Name   string `json:"name"   example:"pg"`
	Status string `json:"status" example:"ok"` // ok fail skipped unknown
	Error  string `json:"error,omitempty" example:"dial tcp 127.0.0.1:5432 connect: connection refused"`
}

// ReadyResponse summarizes readiness
type ReadyResponse struct {
	Status string       `json:"status" example:"ok"` // ok degraded fail
	Checks []ReadyCheck `json:"checks"`
	Now    string       `json:"now"    example:"2026-03-09T13:05:00Z"`
}

// SummaryResponse is the dashboard headline
type SummaryResponse struct {
	Accounts       int                    `json:"accounts"        example:"12"`
	DiscoveryCalls int                    `json:"discovery_calls" example:"31"`
	AvgBestOverall float64                `json:"avg_best_overall" example:"2.9"`
	Reps           int                    `json:"reps"            example:"8"`
	Segments       []repsdom.SegmentCount `json:"segments"`
}

// swagger:route GET /meta/health Meta metaHealth
// @Summary Health check
// @Tags Meta
// @Produce json
// @Success 200 {object} HealthResponse "ok"
// @Router /meta/health [get]
func (h *handlers) health(_ *http.Request) (any, error) {
	now := h.now()
	return HealthResponse{
		OK:      true,
		Service: h.deps.ServiceName,
		Started: h.deps.StartedAt.UTC().Format(time.RFC3339),
		Now:     now.UTC().Format(time.RFC3339),
		Uptime:  int64(now.Sub(h.deps.StartedAt) / time.Second),
	}, nil
}

// swagger:route GET /meta/ready Meta metaReady
// @Summary Readiness probe with dependency checks
// @Tags Meta
// @Produce json
// @Success 200 {object} ReadyResponse "ok"
// @Router /meta/ready [get]
func (h *handlers) ready(r *http.Request) (any, error) {
	ctx, cancel := stdctx.WithTimeout(r.Context(), 2*time.Second)
	defer cancel()

	check := func(name string, c any) ReadyCheck {
		if c == nil {
			return ReadyCheck{Name: name, Status: "skipped"}
		}
		if p, ok := c.(Pinger); ok {
			if err := p.Ping(ctx); err != nil {
				return ReadyCheck{Name: name, Status: "fail", Error: err.Error()}
			}
			return ReadyCheck{Name: name, Status: "ok"}
		}
		return ReadyCheck{Name: name, Status: "unknown"}
	}

	pg := check("pg", h.deps.PG)
	ch := check("ch", h.deps.CH)

	// clickhouse is optional, so skipped does not degrade
	overall := "ok"
	switch {
	case pg.Status == "fail" || ch.Status == "fail":
		overall = "fail"
	case pg.Status != "ok" || ch.Status == "unknown":
		overall = "degraded"
	}

	return ReadyResponse{
		Status: overall,
		Checks: []ReadyCheck{pg, ch},
		Now:    h.now().UTC().Format(time.RFC3339),
	}, nil
}

// swagger:route GET /meta/version Meta metaVersion
// @Summary Build and version info
// @Tags Meta
// @Produce json
// @Success 200 {object} version.BuildInfo "ok"
// @Router /meta/version [get]
func (h *handlers) version(_ *http.Request) (any, error) {
	return version.Info(h.deps.ServiceName), nil
}

// swagger:route GET /meta/summary Meta metaSummary
// @Summary Account and roster headline numbers
// @Tags Meta
// @Produce json
// @Success 200 {object} SummaryResponse "ok"
// @Router /meta/summary [get]
func (h *handlers) summary(r *http.Request) (any, error) {
	out := SummaryResponse{Segments: []repsdom.SegmentCount{}}
	if h.deps.Accounts != nil {
		accts, err := h.deps.Accounts.ListAll(r.Context())
		if err != nil {
			return nil, err
		}
		out.Accounts = len(accts)
		sum := 0.0
		for _, a := range accts {
			out.DiscoveryCalls += len(a.Calls)
			sum += a.Overall.Overall
		}
		if len(accts) > 0 {
			out.AvgBestOverall = math.Round(sum/float64(len(accts))*10) / 10
		}
	}
	if h.deps.Reps != nil {
		segs, err := h.deps.Reps.Segments(r.Context())
		if err != nil {
			return nil, err
		}
		out.Segments = segs
		for _, s := range segs {
			out.Reps += s.Reps
		}
	}
	return out, nil
}
