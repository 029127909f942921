// Package module mounts the account read API
package module

import (
	"introspect/internal/modkit"
	"introspect/internal/modkit/httpkit"
	phttp "introspect/internal/platform/net/http"
	"introspect/internal/services/accounts/domain"
	"introspect/internal/services/accounts/repo"
	"introspect/internal/services/accounts/service"
	acchttp "introspect/internal/services/api/accounts/http"
)

// Module implements modkit.Module
type Module struct {
	b    modkit.Built
	port domain.Port
}

// New builds the accounts service over deps.PG
func New(deps modkit.Deps, opts ...modkit.Option) modkit.Module {
	return NewWith(service.New(deps.PG, repo.NewPG(), deps.Metrics), opts...)
}

// NewWith mounts an existing port
func NewWith(p domain.Port, opts ...modkit.Option) *Module {
	b := modkit.Build(append([]modkit.Option{
		modkit.WithName("accounts"),
		modkit.WithPrefix("/accounts"),
		modkit.WithPorts(p),
	}, opts...)...)
	return &Module{b: b, port: p}
}

// MountRoutes implements modkit.Module
func (m *Module) MountRoutes(r phttp.Router) {
	m.b.Mount(r, func(rr httpkit.Router) { acchttp.Register(rr, m.port) })
}

// Name implements modkit.Module
func (m *Module) Name() string { return m.b.Name }

// Ports implements modkit.Module
func (m *Module) Ports() any { return m.b.Ports }
