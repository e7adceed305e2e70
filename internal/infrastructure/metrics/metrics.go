// Package metrics exposes Prometheus counters for the acquisition service.
package metrics

import (
	"context"
	"net/http"
	"strconv"
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/collectors"
	"github.com/prometheus/client_golang/prometheus/promhttp"

	"procurement/internal/domain"
	"procurement/internal/domain/acquisition"
)

const namespace = "procurement"

var _ acquisition.SaveObserver = (*Metrics)(nil)

// Metrics owns a private registry so tests can build as many as they like.
type Metrics struct {
	registry *prometheus.Registry

	mutations       *prometheus.CounterVec
	saves           *prometheus.CounterVec
	httpRequests    *prometheus.CounterVec
	httpDuration    *prometheus.HistogramVec
	lastSaveFailure prometheus.Gauge
}

// New creates and registers all collectors.
func New() *Metrics {
	m := &Metrics{
		registry: prometheus.NewRegistry(),
		mutations: prometheus.NewCounterVec(prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "acquisition_mutations_total",
			Help:      "Successful acquisition mutations by event.",
		}, []string{"event"}),
		saves: prometheus.NewCounterVec(prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "storage_saves_total",
			Help:      "Snapshot save attempts by result.",
		}, []string{"result"}),
		httpRequests: prometheus.NewCounterVec(prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "http_requests_total",
			Help:      "HTTP requests by method, route and status.",
		}, []string{"method", "route", "status"}),
		httpDuration: prometheus.NewHistogramVec(prometheus.HistogramOpts{
			Namespace: namespace,
			Name:      "http_request_duration_seconds",
			Help:      "HTTP request latency by method and route.",
			Buckets:   prometheus.DefBuckets,
		}, []string{"method", "route"}),
		lastSaveFailure: prometheus.NewGauge(prometheus.GaugeOpts{
			Namespace: namespace,
			Name:      "storage_last_save_failure_timestamp_seconds",
			Help:      "Unix time of the most recent failed save, 0 if none.",
		}),
	}

	m.registry.MustRegister(
		m.mutations,
		m.saves,
		m.httpRequests,
		m.httpDuration,
		m.lastSaveFailure,
		collectors.NewGoCollector(),
		collectors.NewProcessCollector(collectors.ProcessCollectorOpts{}),
	)
	return m
}

// ObserveSave counts a snapshot save.
func (m *Metrics) ObserveSave(err error) {
	if err != nil {
		m.saves.WithLabelValues("error").Inc()
		m.lastSaveFailure.SetToCurrentTime()
		return
	}
	m.saves.WithLabelValues("ok").Inc()
}

// ObserveRequest records one served HTTP request. route is the matched
// route pattern, not the raw path, to keep label cardinality bounded.
func (m *Metrics) ObserveRequest(method, route string, status int, elapsed time.Duration) {
	if route == "" {
		route = "unmatched"
	}
	m.httpRequests.WithLabelValues(method, route, strconv.Itoa(status)).Inc()
	m.httpDuration.WithLabelValues(method, route).Observe(elapsed.Seconds())
}

// RegisterHooks counts mutations through the service lifecycle hooks.
func (m *Metrics) RegisterHooks(hooks *domain.HookRegistry[*acquisition.Acquisition]) {
	for _, event := range []domain.HookEvent{domain.AfterCreate, domain.AfterUpdate, domain.AfterStatusChange} {
		counter := m.mutations.WithLabelValues(string(event))
		hooks.On(event, func(context.Context, *acquisition.Acquisition) error {
			counter.Inc()
			return nil
		})
	}
}

// Handler serves the registry in the Prometheus exposition format.
func (m *Metrics) Handler() http.Handler {
	return promhttp.HandlerFor(m.registry, promhttp.HandlerOpts{Registry: m.registry})
}
