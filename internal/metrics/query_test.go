package metrics

import (
	"testing"

	"github.com/prometheus/client_golang/prometheus/testutil"
)

func TestRegisterQueryMetrics_Idempotent(t *testing.T) {
	RegisterQueryMetrics()
	RegisterQueryMetrics()

	before := testutil.ToFloat64(FindTotal.WithLabelValues(OutcomeOK))
	FindTotal.WithLabelValues(OutcomeOK).Inc()
	if got := testutil.ToFloat64(FindTotal.WithLabelValues(OutcomeOK)); got != before+1 {
		t.Errorf("find_total{outcome=ok} = %v, want %v", got, before+1)
	}
}
