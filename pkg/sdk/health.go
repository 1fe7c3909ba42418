package savedobjects

import (
	"context"
	"time"

	healthuc "github.com/kailas-cloud/savedobjects/internal/usecase/health"
)

// HealthStatus is the outcome of validating the cluster connection and the
// type registry.
type HealthStatus struct {
	Status string          // "ok", "degraded" or "error"
	Checks map[string]bool // "search_engine", "types": passing or not
}

// Serving reports whether Find can still answer. A degraded client can.
func (h HealthStatus) Serving() bool {
	return h.Status != string(healthuc.Unhealthy)
}

// Health validates the cluster connection and the type registry.
func (c *Client) Health(ctx context.Context) HealthStatus {
	start := time.Now()
	report := c.healthSvc.Check(ctx)

	checks := make(map[string]bool, len(report.Checks))
	for name, res := range report.Checks {
		checks[name] = res == healthuc.CheckOK
	}
	if report.Status == healthuc.Unhealthy {
		c.obs.observe(ctx, "health", start, ErrDataSourceUnavailable)
	} else {
		c.obs.observe(ctx, "health", start, nil)
	}
	return HealthStatus{Status: string(report.Status), Checks: checks}
}

type healthUseCase interface {
	Check(ctx context.Context) healthuc.Report
}
