package httpkit

import (
	"net/http"
	"time"

	"introspect/internal/platform/metrics"
	"introspect/internal/platform/net/middleware"
)

// StackOptions tunes the API scoped middleware
type StackOptions struct {
	CORSOrigins []string
	SlowRequest time.Duration
	Metrics     *metrics.Metrics
}

// CommonStack returns the middleware every versioned API route shares
func CommonStack(o StackOptions) []func(http.Handler) http.Handler {
	slow := o.SlowRequest
	if slow == 0 {
		slow = 750 * time.Millisecond
	}
	return []func(http.Handler) http.Handler{
		middleware.CORS(middleware.CORSOptions{AllowedOrigins: o.CORSOrigins}),
		middleware.StripSlashes(),
		middleware.AccessLogZerolog(middleware.AccessLogOptions{Slow: slow, Metrics: o.Metrics}),
	}
}
