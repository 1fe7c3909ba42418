package savedobjects

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"time"

	"github.com/prometheus/client_golang/prometheus"

	"github.com/kailas-cloud/savedobjects/internal/domain"
)

// Outcome labels of savedobjects_sdk_operations_total.
const (
	outcomeOK          = "ok"
	outcomeInvalid     = "invalid"
	outcomeBackend     = "backend_error"
	outcomeUnavailable = "unavailable"
	outcomeError       = "error"
)

type sdkMetrics struct {
	operations *prometheus.CounterVec
	duration   *prometheus.HistogramVec
	returned   prometheus.Histogram
}

func newSDKMetrics(reg prometheus.Registerer) (*sdkMetrics, error) {
	m := &sdkMetrics{
		operations: prometheus.NewCounterVec(prometheus.CounterOpts{
			Namespace: "savedobjects",
			Subsystem: "sdk",
			Name:      "operations_total",
			Help:      "SDK operations by name and outcome.",
		}, []string{"operation", "outcome"}),
		duration: prometheus.NewHistogramVec(prometheus.HistogramOpts{
			Namespace: "savedobjects",
			Subsystem: "sdk",
			Name:      "operation_duration_seconds",
			Help:      "SDK operation latency in seconds.",
			Buckets:   []float64{0.0005, 0.001, 0.005, 0.01, 0.05, 0.1, 0.25, 0.5, 1, 5},
		}, []string{"operation"}),
		returned: prometheus.NewHistogram(prometheus.HistogramOpts{
			Namespace: "savedobjects",
			Subsystem: "sdk",
			Name:      "find_returned_objects",
			Help:      "Saved objects returned per Find page.",
			Buckets:   prometheus.ExponentialBuckets(1, 4, 7),
		}),
	}
	if err := registerOrReuse(reg, &m.operations); err != nil {
		return nil, err
	}
	if err := registerOrReuse(reg, &m.duration); err != nil {
		return nil, err
	}
	if err := registerOrReuse(reg, &m.returned); err != nil {
		return nil, err
	}
	return m, nil
}

// registerOrReuse lets several clients share one registry.
func registerOrReuse[T prometheus.Collector](reg prometheus.Registerer, c *T) error {
	err := reg.Register(*c)
	if err == nil {
		return nil
	}
	var are prometheus.AlreadyRegisteredError
	if !errors.As(err, &are) {
		return fmt.Errorf("savedobjects: register metric: %w", err)
	}
	existing, ok := are.ExistingCollector.(T)
	if !ok {
		return fmt.Errorf("savedobjects: metric registered with a different type: %T", are.ExistingCollector)
	}
	*c = existing
	return nil
}

// outcome classifies err by the sentinel it wraps.
func outcome(err error) string {
	switch {
	case err == nil:
		return outcomeOK
	case errors.Is(err, domain.ErrInvalidQueryParameter), errors.Is(err, domain.ErrFilterSyntax):
		return outcomeInvalid
	case errors.Is(err, domain.ErrSearchBackend):
		return outcomeBackend
	case errors.Is(err, domain.ErrDataSourceUnavailable):
		return outcomeUnavailable
	default:
		return outcomeError
	}
}

// observer logs and counts SDK calls. Either sink may be absent.
type observer struct {
	logger  *slog.Logger
	metrics *sdkMetrics
}

func newObserver(logger *slog.Logger, reg prometheus.Registerer) (*observer, error) {
	o := &observer{logger: logger}
	if reg != nil {
		m, err := newSDKMetrics(reg)
		if err != nil {
			return nil, err
		}
		o.metrics = m
	}
	return o, nil
}

func (o *observer) observe(ctx context.Context, op string, start time.Time, err error, attrs ...slog.Attr) {
	if o == nil {
		return
	}
	dur := time.Since(start)
	result := outcome(err)

	if o.metrics != nil {
		o.metrics.operations.WithLabelValues(op, result).Inc()
		o.metrics.duration.WithLabelValues(op).Observe(dur.Seconds())
	}
	if o.logger == nil {
		return
	}

	attrs = append(attrs,
		slog.String("op", op),
		slog.String("outcome", result),
		slog.Duration("duration", dur),
	)
	if err != nil {
		attrs = append(attrs, slog.Any("error", err))
		o.logger.LogAttrs(ctx, slog.LevelWarn, "saved objects call failed", attrs...)
		return
	}
	o.logger.LogAttrs(ctx, slog.LevelDebug, "saved objects call", attrs...)
}

// observeFind records a Find call together with the page it produced.
func (o *observer) observeFind(ctx context.Context, start time.Time, page Page, err error) {
	if o == nil {
		return
	}
	if err == nil && o.metrics != nil {
		o.metrics.returned.Observe(float64(len(page.SavedObjects)))
	}
	if err != nil {
		o.observe(ctx, "find", start, err)
		return
	}
	o.observe(ctx, "find", start, nil,
		slog.Int("total", page.Total),
		slog.Int("returned", len(page.SavedObjects)),
	)
}
