// Package module mounts the sales rep read API
package module

import (
	"introspect/internal/modkit"
	"introspect/internal/modkit/httpkit"
	phttp "introspect/internal/platform/net/http"
	repshttp "introspect/internal/services/api/reps/http"
	"introspect/internal/services/reps/domain"
	"introspect/internal/services/reps/repo"
	"introspect/internal/services/reps/service"
)

// Module implements modkit.Module
type Module struct {
	b    modkit.Built
	port domain.Port
}

// New builds the reps service over deps.PG
func New(deps modkit.Deps, opts ...modkit.Option) modkit.Module {
	return NewWith(service.New(deps.PG, repo.NewPG()), opts...)
}

// NewWith mounts an existing port
func NewWith(p domain.Port, opts ...modkit.Option) *Module {
	b := modkit.Build(append([]modkit.Option{
		modkit.WithName("reps"),
		modkit.WithPrefix("/reps"),
		modkit.WithPorts(p),
	}, opts...)...)
	return &Module{b: b, port: p}
}

// MountRoutes implements modkit.Module
func (m *Module) MountRoutes(r phttp.Router) {
	m.b.Mount(r, func(rr httpkit.Router) { repshttp.Register(rr, m.port) })
}

// Name implements modkit.Module
func (m *Module) Name() string { return m.b.Name }

// Ports implements modkit.Module
func (m *Module) Ports() any { return m.b.Ports }
