// Package metrics owns the prometheus collectors for the pipeline, the call
// platform client, the model gateway and the read API
package metrics

import (
	"net/http"
	"strconv"
	"sync"
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/collectors"
	"github.com/prometheus/client_golang/prometheus/promauto"
	"github.com/prometheus/client_golang/prometheus/promhttp"
)

const namespace = "introspect"

// Metrics groups every collector. A nil *Metrics records nothing
type Metrics struct {
	gatherer prometheus.Gatherer

	upstreamRequests *prometheus.CounterVec
	upstreamLatency  *prometheus.HistogramVec
	upstreamRetries  *prometheus.CounterVec

	llmCalls   *prometheus.CounterVec
	llmLatency *prometheus.HistogramVec

	calls        *prometheus.CounterVec
	runs         *prometheus.CounterVec
	runDuration  prometheus.Histogram
	lastRunUnix  prometheus.Gauge
	accountCalls prometheus.Histogram

	httpRequests *prometheus.CounterVec
	httpLatency  *prometheus.HistogramVec
}

// New registers all collectors on reg. gatherer is what Handler serves
func New(reg prometheus.Registerer, gatherer prometheus.Gatherer) *Metrics {
	auto := promauto.With(reg)
	return &Metrics{
		gatherer: gatherer,

		upstreamRequests: auto.NewCounterVec(prometheus.CounterOpts{
			Namespace: namespace, Subsystem: "gong", Name: "requests_total",
			Help: "Call platform HTTP attempts by endpoint and status",
		}, []string{"endpoint", "status"}),
		upstreamLatency: auto.NewHistogramVec(prometheus.HistogramOpts{
			Namespace: namespace, Subsystem: "gong", Name: "request_duration_seconds",
			Help: "Call platform HTTP attempt latency", Buckets: prometheus.DefBuckets,
		}, []string{"endpoint"}),
		upstreamRetries: auto.NewCounterVec(prometheus.CounterOpts{
			Namespace: namespace, Subsystem: "gong", Name: "retries_total",
			Help: "Call platform attempts that were retried",
		}, []string{"endpoint"}),

		llmCalls: auto.NewCounterVec(prometheus.CounterOpts{
			Namespace: namespace, Subsystem: "llm", Name: "calls_total",
			Help: "Model invocations by operation and outcome",
		}, []string{"op", "outcome"}),
		llmLatency: auto.NewHistogramVec(prometheus.HistogramOpts{
			Namespace: namespace, Subsystem: "llm", Name: "call_duration_seconds",
			Help: "Model invocation latency", Buckets: []float64{.5, 1, 2, 5, 10, 20, 40, 80},
		}, []string{"op"}),

		calls: auto.NewCounterVec(prometheus.CounterOpts{
			Namespace: namespace, Subsystem: "pipeline", Name: "calls_total",
			Help: "Calls seen by the pipeline by outcome",
		}, []string{"outcome"}),
		runs: auto.NewCounterVec(prometheus.CounterOpts{
			Namespace: namespace, Subsystem: "pipeline", Name: "runs_total",
			Help: "Pipeline runs by result",
		}, []string{"result"}),
		runDuration: auto.NewHistogram(prometheus.HistogramOpts{
			Namespace: namespace, Subsystem: "pipeline", Name: "run_duration_seconds",
			Help: "Wall time of a pipeline run", Buckets: prometheus.ExponentialBuckets(1, 2, 14),
		}),
		lastRunUnix: auto.NewGauge(prometheus.GaugeOpts{
			Namespace: namespace, Subsystem: "pipeline", Name: "last_run_timestamp_seconds",
			Help: "Unix time the last run finished",
		}),
		accountCalls: auto.NewHistogram(prometheus.HistogramOpts{
			Namespace: namespace, Subsystem: "accounts", Name: "calls_per_account",
			Help: "Discovery calls held by an account after an append", Buckets: []float64{1, 2, 3, 5, 8, 13, 21},
		}),

		httpRequests: auto.NewCounterVec(prometheus.CounterOpts{
			Namespace: namespace, Subsystem: "api", Name: "http_requests_total",
			Help: "Read API requests by route, method and status",
		}, []string{"route", "method", "status"}),
		httpLatency: auto.NewHistogramVec(prometheus.HistogramOpts{
			Namespace: namespace, Subsystem: "api", Name: "http_request_duration_seconds",
			Help: "Read API latency", Buckets: prometheus.DefBuckets,
		}, []string{"route", "method"}),
	}
}

var (
	defOnce sync.Once
	def     *Metrics
)

// Default returns the process metrics on a private registry with go and process collectors
func Default() *Metrics {
	defOnce.Do(func() {
		reg := prometheus.NewRegistry()
		reg.MustRegister(collectors.NewGoCollector(), collectors.NewProcessCollector(collectors.ProcessCollectorOpts{}))
		def = New(reg, reg)
	})
	return def
}

// Handler serves the registry in the prometheus text format
func (m *Metrics) Handler() http.Handler {
	if m == nil || m.gatherer == nil {
		return promhttp.Handler()
	}
	return promhttp.HandlerFor(m.gatherer, promhttp.HandlerOpts{})
}

// UpstreamAttempt records one HTTP attempt; status 0 means a transport error
func (m *Metrics) UpstreamAttempt(endpoint string, status int, d time.Duration) {
	if m == nil {
		return
	}
	code := "error"
	if status > 0 {
		code = strconv.Itoa(status)
	}
	m.upstreamRequests.WithLabelValues(endpoint, code).Inc()
	m.upstreamLatency.WithLabelValues(endpoint).Observe(d.Seconds())
}

// UpstreamRetry counts an attempt that will be retried
func (m *Metrics) UpstreamRetry(endpoint string) {
	if m == nil {
		return
	}
	m.upstreamRetries.WithLabelValues(endpoint).Inc()
}

// LLMCall records a model invocation (op: classify|score, outcome: ok|invalid|error)
func (m *Metrics) LLMCall(op, outcome string, d time.Duration) {
	if m == nil {
		return
	}
	m.llmCalls.WithLabelValues(op, outcome).Inc()
	m.llmLatency.WithLabelValues(op).Observe(d.Seconds())
}

// CallOutcome counts a call by outcome (processed|skipped|failed|discovery)
func (m *Metrics) CallOutcome(outcome string) {
	if m == nil {
		return
	}
	m.calls.WithLabelValues(outcome).Inc()
}

// RunFinished records a pipeline run
func (m *Metrics) RunFinished(d time.Duration, err error) {
	if m == nil {
		return
	}
	result := "ok"
	if err != nil {
		result = "error"
	}
	m.runs.WithLabelValues(result).Inc()
	m.runDuration.Observe(d.Seconds())
	m.lastRunUnix.SetToCurrentTime()
}

// AccountSize observes how many calls an account holds after an append
func (m *Metrics) AccountSize(n int) {
	if m == nil {
		return
	}
	m.accountCalls.Observe(float64(n))
}

// HTTPRequest records one read API request
func (m *Metrics) HTTPRequest(route, method string, status int, d time.Duration) {
	if m == nil {
		return
	}
	m.httpRequests.WithLabelValues(route, method, strconv.Itoa(status)).Inc()
	m.httpLatency.WithLabelValues(route, method).Observe(d.Seconds())
}
