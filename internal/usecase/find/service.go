package find

import (
	"context"
	"errors"
	"fmt"
	"slices"
	"time"

	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/trace"
	"go.uber.org/zap"

	"github.com/kailas-cloud/savedobjects/internal/domain"
	domfind "github.com/kailas-cloud/savedobjects/internal/domain/find"
	domobj "github.com/kailas-cloud/savedobjects/internal/domain/savedobject"
	"github.com/kailas-cloud/savedobjects/internal/domain/search/dsl"
	"github.com/kailas-cloud/savedobjects/internal/logger"
	"github.com/kailas-cloud/savedobjects/internal/metrics"
	"github.com/kailas-cloud/savedobjects/internal/query"
	"github.com/kailas-cloud/savedobjects/internal/telemetry"
)

var tracer = otel.Tracer("internal/usecase/find")

// Limits bounds paging.
type Limits struct {
	DefaultPerPage int
	MaxPerPage     int
}

// Service finds saved objects visible to the caller.
type Service struct {
	compiler Compiler
	repo     Repository
	types    TypeLister
	limits   Limits
}

// New creates a find service.
func New(compiler Compiler, repo Repository, types TypeLister, limits Limits) *Service {
	return &Service{compiler: compiler, repo: repo, types: types, limits: limits}
}

// Find validates opts, restricts it to the visible types, compiles it and
// runs it. When no requested type is visible the engine is not called.
func (s *Service) Find(ctx context.Context, opts domfind.Options) (domobj.Page, error) {
	mode := searchMode(opts.Search)
	ctx, span := tracer.Start(ctx, "find.Find", trace.WithAttributes(
		attribute.Bool("has_search", opts.Search != ""),
		attribute.String("search_mode", mode),
		attribute.Bool("has_filter", opts.Filter != nil),
		attribute.Bool("has_reference", opts.HasReference != nil),
	))
	defer span.End()
	ctx = logger.With(ctx, zap.String("search_mode", mode))

	start := time.Now()
	page, outcome, err := s.find(ctx, &opts)
	metrics.FindTotal.WithLabelValues(outcome).Inc()
	metrics.FindDuration.WithLabelValues(mode).Observe(time.Since(start).Seconds())

	log := logger.FromContext(ctx)
	switch outcome {
	case metrics.OutcomeOK, metrics.OutcomeEmpty:
		span.SetAttributes(attribute.Int("total", page.Total))
		log.Debug("find",
			zap.String("outcome", outcome),
			zap.Strings("types", opts.Types),
			zap.Int("total", page.Total),
		)
	case metrics.OutcomeInvalid, metrics.OutcomeFilterError:
		log.Warn("find rejected", zap.String("outcome", outcome), zap.Error(err))
	default:
		telemetry.TraceError(span, err)
		log.Error("find failed", zap.String("outcome", outcome), zap.Error(err))
	}
	return page, err
}

func (s *Service) find(ctx context.Context, opts *domfind.Options) (domobj.Page, string, error) {
	if err := s.normalizePaging(opts); err != nil {
		return domobj.Page{}, metrics.OutcomeInvalid, err
	}
	if err := query.Validate(opts); err != nil {
		return domobj.Page{}, metrics.OutcomeInvalid, err
	}

	allowed := s.allowedTypes(opts)
	if len(allowed) == 0 {
		return domobj.EmptyPage(opts.Page, opts.PerPage), metrics.OutcomeEmpty, nil
	}
	restrict(opts, allowed)

	if tf, ok := opts.Filter.(typedFilter); ok {
		for _, t := range tf.Types() {
			if !slices.Contains(allowed, t) {
				return domobj.Page{}, metrics.OutcomeFilterError,
					domain.NewFilterSyntax(t, "type is not allowed")
			}
		}
	}

	doc, err := s.compile(opts)
	if err != nil {
		return domobj.Page{}, classify(err), err
	}

	page, err := s.repo.Find(ctx, doc, allowed, opts)
	if err != nil {
		return domobj.Page{}, classify(err), fmt.Errorf("find: %w", err)
	}
	return page, metrics.OutcomeOK, nil
}

func (s *Service) compile(opts *domfind.Options) (dsl.Document, error) {
	start := time.Now()
	doc, err := s.compiler.Compile(opts)
	metrics.QueryCompileDuration.Observe(time.Since(start).Seconds())

	outcome := metrics.OutcomeOK
	if err != nil {
		outcome = classify(err)
	}
	metrics.QueryCompileTotal.WithLabelValues(outcome).Inc()
	return doc, err
}

func (s *Service) normalizePaging(opts *domfind.Options) error {
	if opts.Page <= 0 {
		opts.Page = 1
	}
	if opts.PerPage <= 0 {
		opts.PerPage = s.limits.DefaultPerPage
	}
	if s.limits.MaxPerPage > 0 && opts.PerPage > s.limits.MaxPerPage {
		return fmt.Errorf("%w: per_page must be at most %d", domain.ErrInvalidQueryParameter, s.limits.MaxPerPage)
	}
	switch opts.SortOrder {
	case "", domfind.SortAsc, domfind.SortDesc:
	default:
		return fmt.Errorf("%w: invalid sort_order %q", domain.ErrInvalidQueryParameter, opts.SortOrder)
	}
	return nil
}

// allowedTypes intersects the requested types with the visible ones,
// keeping request order. No requested types means every visible type.
func (s *Service) allowedTypes(opts *domfind.Options) []string {
	visible := s.types.VisibleTypes()

	requested := opts.Types
	if opts.TypeToNamespaces != nil {
		requested = opts.TypeToNamespaces.Types()
	}
	if len(requested) == 0 {
		return visible
	}

	var out []string
	for _, t := range requested {
		if slices.Contains(visible, t) && !slices.Contains(out, t) {
			out = append(out, t)
		}
	}
	return out
}

// restrict narrows the compiled scope to allowed.
func restrict(opts *domfind.Options, allowed []string) {
	if opts.TypeToNamespaces == nil {
		opts.Types = allowed
		return
	}
	narrowed := domfind.NewTypeNamespaces()
	for _, t := range allowed {
		ns, _ := opts.TypeToNamespaces.Get(t)
		narrowed.Set(t, ns)
	}
	opts.TypeToNamespaces = narrowed
}

func classify(err error) string {
	switch {
	case errors.Is(err, domain.ErrFilterSyntax):
		return metrics.OutcomeFilterError
	case errors.Is(err, domain.ErrInvalidQueryParameter):
		return metrics.OutcomeInvalid
	case errors.Is(err, domain.ErrSearchBackend), errors.Is(err, domain.ErrDataSourceUnavailable):
		return metrics.OutcomeBackendError
	default:
		return metrics.OutcomeError
	}
}

func searchMode(search string) string {
	switch {
	case search == "":
		return "none"
	case query.IsPrefixSearch(search):
		return "prefix"
	default:
		return "simple"
	}
}
