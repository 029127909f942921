// Package domain defines the evaluation ledger types and ports
package domain

import "time"

// Defaults for List
const (
	DefaultLimit = 50
	MaxLimit     = 500
)

// Entry records that a call has been evaluated. Reason is kept only for
// calls judged not to be discovery
type Entry struct {
	CallID      string    `json:"call_id"`
	EvaluatedAt time.Time `json:"evaluated_at"`
	IsDiscovery bool      `json:"is_discovery"`
	Reason      *string   `json:"reason,omitempty"`
}

// Filter narrows List
type Filter struct {
	Discovery *bool `query:"discovery"`
	Limit     int   `query:"limit" validate:"omitempty,min=1,max=500"`
}
