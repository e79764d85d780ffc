package obs

import (
	"testing"

	"github.com/prometheus/client_golang/prometheus"
	promtestutil "github.com/prometheus/client_golang/prometheus/testutil"
	"github.com/stretchr/testify/assert"
)

func TestNewMetricsRegisters(t *testing.T) {
	reg := prometheus.NewRegistry()
	m := NewMetrics(reg)

	m.InitiationsTotal.WithLabelValues("success").Inc()
	m.WebhooksTotal.WithLabelValues("accepted").Inc()
	m.ReconcileTotal.WithLabelValues("applied").Inc()
	m.SuppressedErrors.Inc()

	assert.Equal(t, float64(1), promtestutil.ToFloat64(m.InitiationsTotal.WithLabelValues("success")))
	assert.Equal(t, float64(1), promtestutil.ToFloat64(m.SuppressedErrors))

	count, err := promtestutil.GatherAndCount(reg,
		"admissions_payment_initiations_total",
		"admissions_webhook_deliveries_total",
		"admissions_webhook_reconcile_total",
		"admissions_webhook_suppressed_errors_total",
	)
	assert.NoError(t, err)
	assert.Equal(t, 4, count)
}
