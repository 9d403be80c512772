package metrics

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/collectors"
)

// Metrics groups the Prometheus instruments of the worker.
type Metrics struct {
	CacheLookups        *prometheus.CounterVec
	CacheWrites         *prometheus.CounterVec
	FetchFallbacks      *prometheus.CounterVec
	NotificationsSent   *prometheus.CounterVec
	NotificationChecks  *prometheus.CounterVec
	NamespacesPurged    prometheus.Counter
	LifecycleTransition *prometheus.CounterVec
}

// NewRegistry returns a registry with the Go and process collectors attached.
func NewRegistry() *prometheus.Registry {
	reg := prometheus.NewRegistry()
	reg.MustRegister(
		collectors.NewGoCollector(),
		collectors.NewProcessCollector(collectors.ProcessCollectorOpts{}),
	)
	return reg
}

// New registers all instruments on reg. Tests pass a fresh
// prometheus.NewRegistry() to stay isolated.
func New(reg *prometheus.Registry) *Metrics {
	m := &Metrics{
		CacheLookups: prometheus.NewCounterVec(prometheus.CounterOpts{
			Name: "worker_cache_lookups_total",
			Help: "Intercepted GET lookups by result (hit, miss, error).",
		}, []string{"result"}),

		CacheWrites: prometheus.NewCounterVec(prometheus.CounterOpts{
			Name: "worker_cache_writes_total",
			Help: "Opportunistic cache writes by result (ok, error, skipped).",
		}, []string{"result"}),

		FetchFallbacks: prometheus.NewCounterVec(prometheus.CounterOpts{
			Name: "worker_fetch_fallbacks_total",
			Help: "Network failures by outcome (shell, unhandled).",
		}, []string{"outcome"}),

		NotificationsSent: prometheus.NewCounterVec(prometheus.CounterOpts{
			Name: "worker_notifications_sent_total",
			Help: "Exam reminders emitted, by day offset.",
		}, []string{"diff_days"}),

		NotificationChecks: prometheus.NewCounterVec(prometheus.CounterOpts{
			Name: "worker_notification_checks_total",
			Help: "Notification check passes by outcome (ran, no_permission).",
		}, []string{"outcome"}),

		NamespacesPurged: prometheus.NewCounter(prometheus.CounterOpts{
			Name: "worker_cache_namespaces_purged_total",
			Help: "Stale cache namespaces deleted during activation.",
		}),

		LifecycleTransition: prometheus.NewCounterVec(prometheus.CounterOpts{
			Name: "worker_lifecycle_transitions_total",
			Help: "Lifecycle states entered.",
		}, []string{"state"}),
	}

	reg.MustRegister(
		m.CacheLookups,
		m.CacheWrites,
		m.FetchFallbacks,
		m.NotificationsSent,
		m.NotificationChecks,
		m.NamespacesPurged,
		m.LifecycleTransition,
	)

	return m
}
