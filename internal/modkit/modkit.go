package modkit

import (
	phttp "introspect/internal/platform/net/http"
)

// Module is the common surface for API modules that can mount routes and expose ports
// keep this tiny so modules stay decoupled
type Module interface {
	// MountRoutes mounts HTTP routes under the provided router seam
	MountRoutes(r phttp.Router)
	// Ports returns a module specific port set for cross wiring
	Ports() any
	// Name returns the module name
	Name() string
}

// Builder constructs a Module from shared deps and options
type Builder func(Deps, ...Option) Module

// PortsOf pulls T out of a module's Ports, ok=false when the module does not offer it
func PortsOf[T any](m Module) (T, bool) {
	var zero T
	if m == nil {
		return zero, false
	}
	v, ok := m.Ports().(T)
	return v, ok
}

// FindPorts returns the first module in mods whose ports implement T
func FindPorts[T any](mods []Module) (T, bool) {
	for _, m := range mods {
		if v, ok := PortsOf[T](m); ok {
			return v, true
		}
	}
	var zero T
	return zero, false
}
