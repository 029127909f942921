// Package http provides the sales rep read endpoints
package http

import (
	stdhttp "net/http"

	"introspect/internal/modkit/httpkit"
	"introspect/internal/services/reps/domain"
)

// Register mounts rep endpoints on r
func Register(r httpkit.Router, p domain.Port) {
	h := &handlers{port: p}

	httpkit.Get(r, "/", h.list)
	httpkit.Get(r, "/segments", h.segments)
	httpkit.Get(r, "/{email}", h.get)
}

type handlers struct{ port domain.Port }

// swagger:route GET /reps Reps repsList
// @Summary Sales reps with segment and tenure
// @Tags Reps
// @Produce json
// @Success 200 {array} domain.Rep "ok"
// @Router /reps [get]
func (h *handlers) list(r *stdhttp.Request) (any, error) {
	return h.port.List(r.Context())
}

// swagger:route GET /reps/segments Reps repsSegments
// @Summary Rep count per segment
// @Tags Reps
// @Produce json
// @Success 200 {array} domain.SegmentCount "ok"
// @Router /reps/segments [get]
func (h *handlers) segments(r *stdhttp.Request) (any, error) {
	return h.port.Segments(r.Context())
}

// swagger:route GET /reps/{email} Reps repsGet
// @Summary One rep by email
// @Tags Reps
// @Produce json
// @Param email path string true "Rep email"
// @Success 200 {object} domain.Rep "ok"
// @Failure 404 {object} errors.Wire "not found"
// @Router /reps/{email} [get]
func (h *handlers) get(r *stdhttp.Request) (any, error) {
	return h.port.Get(r.Context(), httpkit.Param(r, "email"))
}
