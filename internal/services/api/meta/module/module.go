// Package module wires meta endpoints into the API using a tiny module
package module

import (
	"time"

	"introspect/internal/modkit"
	"introspect/internal/modkit/httpkit"
	phttp "introspect/internal/platform/net/http"
	accdom "introspect/internal/services/accounts/domain"
	metahttp "introspect/internal/services/api/meta/http"
	repsdom "introspect/internal/services/reps/domain"
)

// Ports are what meta reads from sibling modules for /summary
type Ports struct {
	Accounts accdom.Port
	Reps     repsdom.Port
}

// Module implements the modkit.Module interface
type Module struct {
	b         modkit.Built
	deps      modkit.Deps
	service   string
	startedAt time.Time
}

// New constructs a meta module. Pass Ports through modkit.WithPorts for /summary
func New(deps modkit.Deps, service string, opts ...modkit.Option) modkit.Module {
	b := modkit.Build(append([]modkit.Option{
		modkit.WithName("meta"),
		modkit.WithPrefix("/meta"),
	}, opts...)...)
	return &Module{b: b, deps: deps, service: service, startedAt: time.Now()}
}

// MountRoutes implements the modkit.Module interface
func (m *Module) MountRoutes(r phttp.Router) {
	p, _ := m.b.Ports.(Ports)
	d := metahttp.Deps{
		ServiceName: m.service,
		StartedAt:   m.startedAt,
		Accounts:    p.Accounts,
		Reps:        p.Reps,
		PG:          m.deps.PG,
		CH:          m.deps.CH,
	}
	m.b.Mount(r, func(rr httpkit.Router) { metahttp.Register(rr, d) })
}

// Name implements the modkit.Module interface
func (m *Module) Name() string { return m.b.Name }

// Ports implements the modkit.Module interface
func (m *Module) Ports() any { return nil }
