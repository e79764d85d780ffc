// Package obs holds the Prometheus collectors for the payment subsystem.
// Post-authentication reconciliation failures never change the HTTP response
// returned to the gateway, so these counters are the only place they surface
// besides logs.
package obs

import "github.com/prometheus/client_golang/prometheus"

type Metrics struct {
	InitiationsTotal *prometheus.CounterVec
	WebhooksTotal    *prometheus.CounterVec
	ReconcileTotal   *prometheus.CounterVec
	SuppressedErrors prometheus.Counter
}

// NewMetrics registers and returns the subsystem's collectors.
func NewMetrics(reg prometheus.Registerer) *Metrics {
	if reg == nil {
		reg = prometheus.DefaultRegisterer
	}
	m := &Metrics{
		InitiationsTotal: prometheus.NewCounterVec(prometheus.CounterOpts{
			Namespace: "admissions",
			Name:      "payment_initiations_total",
			Help:      "Payment initiation attempts by result.",
		}, []string{"result"}),
		WebhooksTotal: prometheus.NewCounterVec(prometheus.CounterOpts{
			Namespace: "admissions",
			Name:      "webhook_deliveries_total",
			Help:      "Inbound gateway webhook deliveries by transport result.",
		}, []string{"result"}),
		ReconcileTotal: prometheus.NewCounterVec(prometheus.CounterOpts{
			Namespace: "admissions",
			Name:      "webhook_reconcile_total",
			Help:      "Authenticated webhook deliveries by reconciliation outcome.",
		}, []string{"outcome"}),
		SuppressedErrors: prometheus.NewCounter(prometheus.CounterOpts{
			Namespace: "admissions",
			Name:      "webhook_suppressed_errors_total",
			Help:      "Post-authentication errors swallowed before acknowledging the gateway.",
		}),
	}
	reg.MustRegister(m.InitiationsTotal, m.WebhooksTotal, m.ReconcileTotal, m.SuppressedErrors)
	return m
}
