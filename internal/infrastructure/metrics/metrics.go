package metrics

import (
	"context"
	"net/http"
	"strconv"
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/collectors"
	"github.com/prometheus/client_golang/prometheus/promhttp"

	"mediavault/internal/domain/repository"
	"mediavault/pkg/logger"
)

const namespace = "mediavault"

// StatsSource reports current catalog sizes.
type StatsSource interface {
	Stats(ctx context.Context) (repository.CatalogStats, error)
}

// Metrics owns a private registry so tests can build as many as they like.
type Metrics struct {
	registry *prometheus.Registry
	requests *prometheus.CounterVec
	duration *prometheus.HistogramVec
	events   *prometheus.CounterVec
}

func New(stats StatsSource) *Metrics {
	m := &Metrics{
		registry: prometheus.NewRegistry(),
		requests: prometheus.NewCounterVec(prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "http_requests_total",
			Help:      "HTTP requests by method, route and status.",
		}, []string{"method", "route", "status"}),
		duration: prometheus.NewHistogramVec(prometheus.HistogramOpts{
			Namespace: namespace,
			Name:      "http_request_duration_seconds",
			Help:      "HTTP request latency by method and route.",
			Buckets:   prometheus.DefBuckets,
		}, []string{"method", "route"}),
		events: prometheus.NewCounterVec(prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "change_events_total",
			Help:      "Change events published by resource and action.",
		}, []string{"resource", "action"}),
	}

	m.registry.MustRegister(
		m.requests,
		m.duration,
		m.events,
		collectors.NewGoCollector(),
		collectors.NewProcessCollector(collectors.ProcessCollectorOpts{}),
	)

	if stats != nil {
		for _, g := range []struct {
			name string
			pick func(repository.CatalogStats) int
		}{
			{"assets", func(s repository.CatalogStats) int { return s.Assets }},
			{"collections", func(s repository.CatalogStats) int { return s.Collections }},
			{"tags", func(s repository.CatalogStats) int { return s.Tags }},
		} {
			pick := g.pick
			m.registry.MustRegister(prometheus.NewGaugeFunc(prometheus.GaugeOpts{
				Namespace: namespace,
				Name:      "catalog_" + g.name,
				Help:      "Number of " + g.name + " in the catalog.",
			}, func() float64 {
				s, err := stats.Stats(context.Background())
				if err != nil {
					logger.Warn("Failed to read catalog stats: %v", err)
					return 0
				}
				return float64(pick(s))
			}))
		}
	}

	return m
}

// ObserveRequest records one finished HTTP request.
func (m *Metrics) ObserveRequest(method, route string, status int, elapsed time.Duration) {
	m.requests.WithLabelValues(method, route, strconv.Itoa(status)).Inc()
	m.duration.WithLabelValues(method, route).Observe(elapsed.Seconds())
}

// ObserveEvent counts a published change event.
func (m *Metrics) ObserveEvent(resource, action string) {
	m.events.WithLabelValues(resource, action).Inc()
}

// Publish lets Metrics sit alongside the event hub as a change notifier.
func (m *Metrics) Publish(resource, action string, _ ...string) {
	m.ObserveEvent(resource, action)
}

func (m *Metrics) Handler() http.Handler {
	return promhttp.HandlerFor(m.registry, promhttp.HandlerOpts{})
}

func (m *Metrics) Registry() *prometheus.Registry {
	return m.registry
}
