package health

import (
	"context"

	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/attribute"
	"go.uber.org/zap"

	"github.com/kailas-cloud/savedobjects/internal/logger"
	"github.com/kailas-cloud/savedobjects/internal/telemetry"
)

var tracer = otel.Tracer("internal/usecase/health")

// Status represents the aggregated health status.
type Status string

const (
	// Healthy indicates all components are operational.
	Healthy Status = "ok"
	// Degraded indicates partial failure.
	Degraded Status = "degraded"
	// Unhealthy indicates total failure.
	Unhealthy Status = "error"
)

// CheckResult represents an individual component health check outcome.
type CheckResult string

const (
	// CheckOK indicates a passing health check.
	CheckOK CheckResult = "ok"
	// CheckError indicates a failing health check.
	CheckError CheckResult = "error"
)

// Report aggregates health check results.
type Report struct {
	Status Status
	Checks map[string]CheckResult
}

// Check names.
const (
	CheckSearchEngine = "search_engine"
	CheckTypes        = "types"
)

// Service coordinates health checks.
type Service struct {
	engine DataSourceValidator
	types  TypeCounter
}

// New creates a Service. types can be nil.
func New(engine DataSourceValidator, types TypeCounter) *Service {
	return &Service{engine: engine, types: types}
}

// Check runs health checks against all components. A failed search engine
// makes the service unhealthy: no find request can be served without it.
// An empty type registry only degrades it, since every find returns an
// empty page.
func (s *Service) Check(ctx context.Context) Report {
	ctx, span := tracer.Start(ctx, "health.Check")
	defer span.End()
	log := logger.FromContext(ctx)

	checks := make(map[string]CheckResult, 2)
	checks[CheckSearchEngine] = CheckOK
	if err := s.engine.Validate(ctx); err != nil {
		checks[CheckSearchEngine] = CheckError
		telemetry.TraceError(span, err)
		log.Warn("search engine check failed", zap.Error(err))
	}

	if s.types != nil {
		checks[CheckTypes] = CheckOK
		if s.types.Len() == 0 {
			checks[CheckTypes] = CheckError
			log.Warn("no saved-object types registered")
		}
	}

	status := Healthy
	switch {
	case checks[CheckSearchEngine] == CheckError:
		status = Unhealthy
	case checks[CheckTypes] == CheckError:
		status = Degraded
	}
	span.SetAttributes(attribute.String("health.status", string(status)))

	return Report{Status: status, Checks: checks}
}
