package savedobjects

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"time"

	"github.com/kailas-cloud/savedobjects/internal/db"
	"github.com/kailas-cloud/savedobjects/internal/db/opensearch"
	domfind "github.com/kailas-cloud/savedobjects/internal/domain/find"
	"github.com/kailas-cloud/savedobjects/internal/domain/namespace"
	domobj "github.com/kailas-cloud/savedobjects/internal/domain/savedobject"
	"github.com/kailas-cloud/savedobjects/internal/domain/search/dsl"
	"github.com/kailas-cloud/savedobjects/internal/domain/typeregistry"
	"github.com/kailas-cloud/savedobjects/internal/query"
	objectrepo "github.com/kailas-cloud/savedobjects/internal/repository/savedobject"
	finduc "github.com/kailas-cloud/savedobjects/internal/usecase/find"
	healthuc "github.com/kailas-cloud/savedobjects/internal/usecase/health"
)

const defaultReadinessTimeout = 10 * time.Second

// Internal interfaces, replaced in tests.
type findUseCase interface {
	Find(ctx context.Context, opts domfind.Options) (domobj.Page, error)
}

type queryCompiler interface {
	Compile(opts *domfind.Options) (dsl.Document, error)
}

// Client is the saved-objects SDK entry point.
type Client struct {
	store     db.Store
	registry  *typeregistry.Registry
	findSvc   findUseCase
	compiler  queryCompiler
	healthSvc healthUseCase
	obs       *observer
}

// New creates a Client and waits until the cluster answers.
// The provided context is used for the initial readiness check.
func New(ctx context.Context, opts ...Option) (*Client, error) {
	cfg := defaultConfig()
	for _, o := range opts {
		o.apply(cfg)
	}

	if cfg.url == "" {
		return nil, errors.New("savedobjects: cluster url required (use WithOpenSearch)")
	}
	registry, err := buildRegistry(cfg.types)
	if err != nil {
		return nil, err
	}

	client, err := opensearch.NewClient(opensearch.Config{
		URL:        cfg.url,
		Username:   cfg.username,
		Password:   cfg.password,
		Serverless: cfg.serverless,
		Timeout:    cfg.timeout,
		RetryMax:   cfg.retryMax,
	})
	if err != nil {
		return nil, fmt.Errorf("savedobjects: create client: %w", err)
	}

	if err := client.WaitForReady(ctx, defaultReadinessTimeout); err != nil {
		client.Close()
		return nil, fmt.Errorf("savedobjects: cluster not ready: %w", err)
	}

	obs, err := newObserver(cfg.logger, cfg.metricsReg)
	if err != nil {
		client.Close()
		return nil, err
	}
	return wireClient(client, opensearch.NewValidator(client, cfg.serverless), registry, cfg, obs), nil
}

func buildRegistry(defs []TypeDef) (*typeregistry.Registry, error) {
	if len(defs) == 0 {
		return nil, errors.New("savedobjects: at least one type required (use WithType)")
	}
	types := make([]typeregistry.Type, 0, len(defs))
	for _, d := range defs {
		mode, err := namespace.ParseMode(string(d.Mode))
		if err != nil {
			return nil, fmt.Errorf("savedobjects: type %q: %w", d.Name, err)
		}
		t, err := typeregistry.NewType(d.Name, mode, d.DefaultSearchField, d.Hidden)
		if err != nil {
			return nil, fmt.Errorf("savedobjects: %w", err)
		}
		types = append(types, t)
	}
	registry, err := typeregistry.New(types...)
	if err != nil {
		return nil, fmt.Errorf("savedobjects: %w", err)
	}
	return registry, nil
}

func wireClient(
	store db.Store,
	validator healthuc.DataSourceValidator,
	registry *typeregistry.Registry,
	cfg *clientConfig,
	obs *observer,
) *Client {
	compiler := query.NewCompiler(registry)
	findSvc := finduc.New(
		compiler,
		objectrepo.New(store, registry, cfg.index),
		registry,
		finduc.Limits{DefaultPerPage: cfg.defaultPerPage, MaxPerPage: cfg.maxPerPage},
	)

	return &Client{
		store:     store,
		registry:  registry,
		findSvc:   findSvc,
		compiler:  compiler,
		healthSvc: healthuc.New(validator, registry),
		obs:       obs,
	}
}

// Close releases all resources.
func (c *Client) Close() {
	if c.store != nil {
		c.store.Close()
	}
}

// Ping checks cluster connectivity.
func (c *Client) Ping(ctx context.Context) (err error) {
	start := time.Now()
	defer func() { c.obs.observe(ctx, "ping", start, err) }()

	if err = c.store.Ping(ctx); err != nil {
		return fmt.Errorf("ping: %w", err)
	}
	return nil
}

// Types lists the registered types Find may return.
func (c *Client) Types() []string {
	return c.registry.VisibleTypes()
}

// Find returns one page of saved objects matching opts.
func (c *Client) Find(ctx context.Context, opts FindOptions) (page Page, err error) {
	start := time.Now()
	defer func() { c.obs.observeFind(ctx, start, page, err) }()

	fo, err := findOptionsToDomain(opts)
	if err != nil {
		return Page{}, err
	}
	found, err := c.findSvc.Find(ctx, fo)
	if err != nil {
		return Page{}, fmt.Errorf("find: %w", err)
	}
	return pageFromDomain(found), nil
}

// Compile returns the query document Find would send for opts, without
// contacting the cluster. Hidden types are not filtered out here.
func (c *Client) Compile(opts FindOptions) (_ json.RawMessage, err error) {
	start := time.Now()
	defer func() { c.obs.observe(context.Background(), "compile", start, err) }()

	fo, err := findOptionsToDomain(opts)
	if err != nil {
		return nil, err
	}
	doc, err := c.compiler.Compile(&fo)
	if err != nil {
		return nil, fmt.Errorf("compile: %w", err)
	}
	out, err := json.Marshal(doc)
	if err != nil {
		return nil, fmt.Errorf("compile: encode: %w", err)
	}
	return out, nil
}
