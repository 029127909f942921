// Package api mounts the read API: accounts, reps, evaluations and meta
package api

import (
	"introspect/internal/modkit"
	"introspect/internal/modkit/httpkit"
	"introspect/internal/modkit/swaggerkit"
	"introspect/internal/platform/config"
	"introspect/internal/platform/metrics"
	phttp "introspect/internal/platform/net/http"
	"introspect/internal/platform/store"

	accdom "introspect/internal/services/accounts/domain"
	accountsmod "introspect/internal/services/api/accounts/module"
	evalmod "introspect/internal/services/api/evaluations/module"
	metamod "introspect/internal/services/api/meta/module"
	repsmod "introspect/internal/services/api/reps/module"
	repsdom "introspect/internal/services/reps/domain"
)

// ServiceName labels health and version payloads
const ServiceName = "introspect-api"

// Options are the API options
type Options struct {
	Config         config.Conf
	Store          *store.Store
	Metrics        *metrics.Metrics
	EnableSwagger  bool
	EnableProfiler bool
	CORSOrigins    []string
}

// Mount mounts the API service onto the given router
func Mount(r phttp.Router, opt Options) {
	deps := modkit.Deps{Cfg: opt.Config, Metrics: opt.Metrics}.FromStore(opt.Store)
	Modules(r, deps, opt)
}

// Modules mounts every module built from deps. Split from Mount so tests can
// pass fake storage handles
func Modules(r phttp.Router, deps modkit.Deps, opt Options) []modkit.Module {
	accounts := accountsmod.New(deps)
	reps := repsmod.New(deps)
	mods := []modkit.Module{accounts, reps, evalmod.New(deps)}

	acc, _ := modkit.PortsOf[accdom.Port](accounts)
	rp, _ := modkit.PortsOf[repsdom.Port](reps)
	mods = append(mods, metamod.New(deps, ServiceName,
		modkit.WithPorts(metamod.Ports{Accounts: acc, Reps: rp})))

	swaggerkit.Mount(r, swaggerkit.Options{Enabled: opt.EnableSwagger})
	phttp.MountProfiler(r, "/debug", opt.EnableProfiler)
	if deps.Metrics != nil {
		r.Handle("/metrics", deps.Metrics.Handler())
	}

	stack := httpkit.CommonStack(httpkit.StackOptions{CORSOrigins: opt.CORSOrigins, Metrics: deps.Metrics})
	httpkit.MountAPIV1(r, stack, func(api httpkit.Router) {
		for _, m := range mods {
			m.MountRoutes(api)
		}
	})
	return mods
}
