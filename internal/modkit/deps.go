// Package modkit provides module wiring and core deps
package modkit

import (
	"introspect/internal/modkit/repokit"
	"introspect/internal/platform/config"
	"introspect/internal/platform/logger"
	"introspect/internal/platform/metrics"
	"introspect/internal/platform/store"
)

// Deps holds core dependencies passed to modules
// this is wiring only and does not introduce new abstractions
type Deps struct {
	Log     logger.Logger
	Cfg     config.Conf
	PG      repokit.TxRunner
	CH      store.Clickhouse
	Metrics *metrics.Metrics
}

// FromStore fills the storage handles from an opened store
func (d Deps) FromStore(st *store.Store) Deps {
	if st == nil {
		return d
	}
	d.PG, d.CH = st.PG, st.CH
	return d
}
