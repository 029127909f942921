// Package http provides the account read endpoints
package http

import (
	stdhttp "net/http"

	"introspect/internal/modkit/httpkit"
	"introspect/internal/services/accounts/domain"
)

// Register mounts account endpoints on r
func Register(r httpkit.Router, p domain.Port) {
	h := &handlers{port: p}

	httpkit.Get(r, "/", h.list)
	httpkit.Get(r, "/domains", h.domains)
	httpkit.Get(r, "/{domain}", h.get)
}

type handlers struct{ port domain.Port }

// swagger:route GET /accounts Accounts accountsList
// @Summary Every account with its calls and best-ever scores
// @Tags Accounts
// @Produce json
// @Success 200 {array} domain.Account "ok"
// @Router /accounts [get]
func (h *handlers) list(r *stdhttp.Request) (any, error) {
	return h.port.ListAll(r.Context())
}

// swagger:route GET /accounts/domains Accounts accountsDomains
// @Summary Tracked account domains
// @Tags Accounts
// @Produce json
// @Success 200 {array} string "ok"
// @Router /accounts/domains [get]
func (h *handlers) domains(r *stdhttp.Request) (any, error) {
	return h.port.ListDomains(r.Context())
}

// swagger:route GET /accounts/{domain} Accounts accountsGet
// @Summary One account by external email domain
// @Tags Accounts
// @Produce json
// @Param domain path string true "Account domain" example(client.com)
// @Success 200 {object} domain.Account "ok"
// @Failure 404 {object} errors.Wire "not found"
// @Router /accounts/{domain} [get]
func (h *handlers) get(r *stdhttp.Request) (any, error) {
	return h.port.GetByDomain(r.Context(), httpkit.Param(r, "domain"))
}
