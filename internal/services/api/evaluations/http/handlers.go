// Package http provides the evaluation ledger read endpoints
package http

import (
	stdhttp "net/http"

	"introspect/internal/modkit/httpkit"
	"introspect/internal/services/ledger/domain"
)

// Register mounts ledger endpoints on r
func Register(r httpkit.Router, p domain.Port) {
	h := &handlers{port: p}

	httpkit.GetQuery(r, "/", h.list)
	httpkit.Get(r, "/{callID}", h.get)
}

type handlers struct{ port domain.Port }

// swagger:route GET /evaluations Evaluations evaluationsList
// @Summary Most recent ledger entries
// @Tags Evaluations
// @Produce json
// @Param discovery query bool false "Only discovery (true) or only rejected (false) calls"
// @Param limit query int false "Page size, 1 to 500" default(50)
// @Success 200 {array} domain.Entry "ok"
// @Router /evaluations [get]
func (h *handlers) list(r *stdhttp.Request, f domain.Filter) (any, error) {
	return h.port.List(r.Context(), f)
}

// swagger:route GET /evaluations/{callID} Evaluations evaluationsGet
// @Summary One ledger entry by call id
// @Tags Evaluations
// @Produce json
// @Param callID path string true "Call id"
// @Success 200 {object} domain.Entry "ok"
// @Failure 404 {object} errors.Wire "not found"
// @Router /evaluations/{callID} [get]
func (h *handlers) get(r *stdhttp.Request) (any, error) {
	return h.port.Get(r.Context(), httpkit.Param(r, "callID"))
}
