package api

import (
	"strconv"
	"time"

	"github.com/prometheus/client_golang/prometheus"
)

// Metrics records gateway traffic. A nil *Metrics records nothing.
type Metrics struct {
	requests  *prometheus.CounterVec
	duration  *prometheus.HistogramVec
	refreshes *prometheus.CounterVec
}

// NewMetrics creates the collectors and registers them with reg when reg is not nil.
func NewMetrics(reg prometheus.Registerer) *Metrics {
	m := &Metrics{
		requests: prometheus.NewCounterVec(prometheus.CounterOpts{
			Namespace: "authclient",
			Subsystem: "api",
			Name:      "requests_total",
			Help:      "Gateway calls by operation and HTTP status (0 = no response).",
		}, []string{"operation", "code"}),
		duration: prometheus.NewHistogramVec(prometheus.HistogramOpts{
			Namespace: "authclient",
			Subsystem: "api",
			Name:      "request_duration_seconds",
			Help:      "Gateway call latency by operation.",
			Buckets:   prometheus.DefBuckets,
		}, []string{"operation"}),
		refreshes: prometheus.NewCounterVec(prometheus.CounterOpts{
			Namespace: "authclient",
			Name:      "token_refresh_total",
			Help:      "Token refresh attempts by result.",
		}, []string{"result"}),
	}
	if reg != nil {
		reg.MustRegister(m.requests, m.duration, m.refreshes)
	}
	return m
}

func (m *Metrics) observe(op Operation, code int, elapsed time.Duration) {
	if m == nil {
		return
	}
	m.requests.WithLabelValues(string(op), strconv.Itoa(code)).Inc()
	m.duration.WithLabelValues(string(op)).Observe(elapsed.Seconds())
}

func (m *Metrics) observeRefresh(err error) {
	if m == nil {
		return
	}
	result := "success"
	if err != nil {
		result = "failure"
	}
	m.refreshes.WithLabelValues(result).Inc()
}

// RequestCount returns the counter for one operation/code pair. Intended for tests and diagnostics.
func (m *Metrics) RequestCount(op Operation, code int) prometheus.Counter {
	return m.requests.WithLabelValues(string(op), strconv.Itoa(code))
}

func (m *Metrics) RefreshCount(success bool) prometheus.Counter {
	if success {
		return m.refreshes.WithLabelValues("success")
	}
	return m.refreshes.WithLabelValues("failure")
}
