package observability

import (
	"github.com/prometheus/client_golang/prometheus"
)

// Remote attempt outcomes.
const (
	OutcomeOK          = "ok"
	OutcomeNotFound    = "not_found"
	OutcomeUnreachable = "unreachable"
	OutcomeError       = "error"
)

// Metrics counts remote attempts, fallback dispatches and published
// notifications. A nil *Metrics is valid and records nothing.
type Metrics struct {
	remoteRequests *prometheus.CounterVec
	fallbacks      *prometheus.CounterVec
	notifications  *prometheus.CounterVec
}

func New() *Metrics {
	return NewWith(prometheus.DefaultRegisterer)
}

func NewWith(reg prometheus.Registerer) *Metrics {
	m := &Metrics{
		remoteRequests: prometheus.NewCounterVec(prometheus.CounterOpts{
			Name: "backoffice_remote_requests_total",
			Help: "Remote service attempts by entity kind, operation and outcome",
		}, []string{"entity", "operation", "outcome"}),
		fallbacks: prometheus.NewCounterVec(prometheus.CounterOpts{
			Name: "backoffice_fallback_dispatch_total",
			Help: "Operations served directly from storage because the remote service was unreachable",
		}, []string{"entity", "operation"}),
		notifications: prometheus.NewCounterVec(prometheus.CounterOpts{
			Name: "backoffice_notifications_published_total",
			Help: "Order notifications enqueued on the fallback path",
		}, []string{"type"}),
	}
	reg.MustRegister(m.remoteRequests, m.fallbacks, m.notifications)
	return m
}

func (m *Metrics) ObserveRemote(entity, operation, outcome string) {
	if m == nil {
		return
	}
	m.remoteRequests.WithLabelValues(entity, operation, outcome).Inc()
}

func (m *Metrics) ObserveFallback(entity, operation string) {
	if m == nil {
		return
	}
	m.fallbacks.WithLabelValues(entity, operation).Inc()
}

func (m *Metrics) ObserveNotification(eventType string) {
	if m == nil {
		return
	}
	m.notifications.WithLabelValues(eventType).Inc()
}
