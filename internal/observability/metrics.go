package observability

import (
	"net/http"
	"sync"
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promhttp"
)

// Request outcomes used as the "outcome" label.
const (
	OutcomeSuccess   = "success"
	OutcomeTransport = "transport_error"
	OutcomeAPI       = "api_error"
	OutcomeDecode    = "decode_error"
)

type moduleMetrics struct {
	apiRequestsTotal   *prometheus.CounterVec
	apiRequestDuration *prometheus.HistogramVec

	stateChangesTotal *prometheus.CounterVec
	storageOpDuration *prometheus.HistogramVec

	rendersTotal    *prometheus.CounterVec
	sessionsListed  prometheus.Gauge
	messagesRendered prometheus.Gauge
}

var (
	metricsOnce sync.Once
	metricsInst *moduleMetrics
)

func getMetrics() *moduleMetrics {
	metricsOnce.Do(func() {
		m := &moduleMetrics{
			apiRequestsTotal: prometheus.NewCounterVec(
				prometheus.CounterOpts{
					Name: "articuno_api_requests_total",
					Help: "Session API requests by operation and outcome.",
				},
				[]string{"op", "outcome"},
			),
			apiRequestDuration: prometheus.NewHistogramVec(
				prometheus.HistogramOpts{
					Name:    "articuno_api_request_duration_seconds",
					Help:    "Session API request duration in seconds by operation.",
					Buckets: prometheus.DefBuckets,
				},
				[]string{"op"},
			),
			stateChangesTotal: prometheus.NewCounterVec(
				prometheus.CounterOpts{
					Name: "articuno_state_changes_total",
					Help: "Client state changes by action.",
				},
				[]string{"action"},
			),
			storageOpDuration: prometheus.NewHistogramVec(
				prometheus.HistogramOpts{
					Name:    "articuno_storage_op_duration_seconds",
					Help:    "Local storage operation duration in seconds by driver and op.",
					Buckets: prometheus.DefBuckets,
				},
				[]string{"driver", "op"},
			),
			rendersTotal: prometheus.NewCounterVec(
				prometheus.CounterOpts{
					Name: "articuno_renders_total",
					Help: "DOM renders by view.",
				},
				[]string{"view"},
			),
			sessionsListed: prometheus.NewGauge(
				prometheus.GaugeOpts{
					Name: "articuno_sidebar_sessions",
					Help: "Sessions shown in the last rendered sidebar.",
				},
			),
			messagesRendered: prometheus.NewGauge(
				prometheus.GaugeOpts{
					Name: "articuno_history_messages",
					Help: "History entries shown in the last rendered chat history.",
				},
			),
		}

		prometheus.MustRegister(
			m.apiRequestsTotal,
			m.apiRequestDuration,
			m.stateChangesTotal,
			m.storageOpDuration,
			m.rendersTotal,
			m.sessionsListed,
			m.messagesRendered,
		)

		metricsInst = m
	})

	return metricsInst
}

// EnsureRegistered initializes and registers metrics the first time it is called.
func EnsureRegistered() {
	_ = getMetrics()
}

// MetricsHandler serves the default prometheus registry.
func MetricsHandler() http.Handler {
	EnsureRegistered()
	return promhttp.Handler()
}

func RecordAPIRequest(op, outcome string, duration time.Duration) {
	m := getMetrics()
	m.apiRequestsTotal.WithLabelValues(op, outcome).Inc()
	m.apiRequestDuration.WithLabelValues(op).Observe(duration.Seconds())
}

func RecordStateChange(action string) {
	getMetrics().stateChangesTotal.WithLabelValues(action).Inc()
}

func RecordStorageOp(driver, op string, duration time.Duration) {
	getMetrics().storageOpDuration.WithLabelValues(driver, op).Observe(duration.Seconds())
}

func RecordSidebarRender(sessions int) {
	m := getMetrics()
	m.rendersTotal.WithLabelValues("sidebar").Inc()
	m.sessionsListed.Set(float64(sessions))
}

func RecordHistoryRender(messages int) {
	m := getMetrics()
	m.rendersTotal.WithLabelValues("history").Inc()
	m.messagesRendered.Set(float64(messages))
}
