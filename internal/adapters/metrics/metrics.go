// Package metrics exposes offline-resilience counters through Prometheus.
package metrics

import (
	"net/http"
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
	"github.com/prometheus/client_golang/prometheus/promhttp"
)

const namespace = "cellar"

// Prometheus implements ports.Metrics on a dedicated registry.
type Prometheus struct {
	registry *prometheus.Registry

	cacheRequests  *prometheus.CounterVec
	cacheEvictions *prometheus.CounterVec
	retries        *prometheus.CounterVec
	queueDepth     prometheus.Gauge
	transitions    *prometheus.CounterVec
	drainDuration  prometheus.Histogram
}

// New registers the cellar collectors on reg.
// A nil reg gets a fresh registry.
func New(reg *prometheus.Registry) *Prometheus {
	if reg == nil {
		reg = prometheus.NewRegistry()
	}
	factory := promauto.With(reg)

	return &Prometheus{
		registry: reg,
		cacheRequests: factory.NewCounterVec(prometheus.CounterOpts{
			Namespace: namespace,
			Subsystem: "cache",
			Name:      "requests_total",
			Help:      "Cache lookups by result.",
		}, []string{"result"}),
		cacheEvictions: factory.NewCounterVec(prometheus.CounterOpts{
			Namespace: namespace,
			Subsystem: "cache",
			Name:      "evictions_total",
			Help:      "Cache entries evicted by reason.",
		}, []string{"reason"}),
		retries: factory.NewCounterVec(prometheus.CounterOpts{
			Namespace: namespace,
			Subsystem: "queue",
			Name:      "replays_total",
			Help:      "Replay attempts by operation type and outcome.",
		}, []string{"type", "outcome"}),
		queueDepth: factory.NewGauge(prometheus.GaugeOpts{
			Namespace: namespace,
			Subsystem: "queue",
			Name:      "depth",
			Help:      "Pending operations currently queued.",
		}),
		transitions: factory.NewCounterVec(prometheus.CounterOpts{
			Namespace: namespace,
			Subsystem: "network",
			Name:      "transitions_total",
			Help:      "Connectivity transitions by direction.",
		}, []string{"state"}),
		drainDuration: factory.NewHistogram(prometheus.HistogramOpts{
			Namespace: namespace,
			Subsystem: "queue",
			Name:      "drain_duration_seconds",
			Help:      "Time spent draining the queue.",
			Buckets:   prometheus.ExponentialBuckets(0.05, 2, 10),
		}),
	}
}

// CacheHit counts a valid cache read.
func (p *Prometheus) CacheHit() { p.cacheRequests.WithLabelValues("hit").Inc() }

// CacheMiss counts a cache read that found nothing usable.
func (p *Prometheus) CacheMiss() { p.cacheRequests.WithLabelValues("miss").Inc() }

// CacheEvicted counts an evicted entry.
func (p *Prometheus) CacheEvicted(reason string) {
	p.cacheEvictions.WithLabelValues(reason).Inc()
}

// RetryAttempt counts a replay attempt.
func (p *Prometheus) RetryAttempt(opType string, success bool) {
	outcome := "failure"
	if success {
		outcome = "success"
	}
	p.retries.WithLabelValues(opType, outcome).Inc()
}

// QueueDepth records the current queue length.
func (p *Prometheus) QueueDepth(n int) { p.queueDepth.Set(float64(n)) }

// NetworkTransition counts a connectivity change.
func (p *Prometheus) NetworkTransition(online bool) {
	state := "offline"
	if online {
		state = "online"
	}
	p.transitions.WithLabelValues(state).Inc()
}

// DrainDuration observes how long a drain took.
func (p *Prometheus) DrainDuration(d time.Duration) { p.drainDuration.Observe(d.Seconds()) }

// Registry returns the underlying registry.
func (p *Prometheus) Registry() *prometheus.Registry { return p.registry }

// Handler serves the registry in the Prometheus exposition format.
func (p *Prometheus) Handler() http.Handler {
	return promhttp.HandlerFor(p.registry, promhttp.HandlerOpts{})
}
