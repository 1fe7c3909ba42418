package savedobjects

import (
	"log/slog"
	"time"

	"github.com/prometheus/client_golang/prometheus"
)

// Option configures the Client.
type Option interface {
	apply(*clientConfig)
}

// optionFunc adapts a function to the Option interface.
type optionFunc func(*clientConfig)

func (f optionFunc) apply(c *clientConfig) { f(c) }

type clientConfig struct {
	url        string
	username   string
	password   string
	serverless bool
	index      string
	timeout    time.Duration
	retryMax   int

	types []TypeDef

	defaultPerPage int
	maxPerPage     int

	logger     *slog.Logger
	metricsReg prometheus.Registerer
}

func defaultConfig() *clientConfig {
	return &clientConfig{
		index:          ".kibana",
		timeout:        30 * time.Second,
		retryMax:       2,
		defaultPerPage: 20,
		maxPerPage:     10000,
	}
}

// WithOpenSearch sets the cluster URL and basic-auth credentials.
// Leave username empty to disable authentication.
func WithOpenSearch(url, username, password string) Option {
	return optionFunc(func(c *clientConfig) {
		c.url = url
		c.username = username
		c.password = password
	})
}

// WithServerless marks the cluster as a serverless collection, which has no
// cluster info endpoint.
func WithServerless() Option {
	return optionFunc(func(c *clientConfig) {
		c.serverless = true
	})
}

// WithIndex sets the saved-objects index. Default: .kibana.
func WithIndex(index string) Option {
	return optionFunc(func(c *clientConfig) {
		c.index = index
	})
}

// WithTimeout sets the per-request timeout. Default: 30s.
func WithTimeout(d time.Duration) Option {
	return optionFunc(func(c *clientConfig) {
		c.timeout = d
	})
}

// WithRetries sets how many times a transient failure is retried. Default: 2.
func WithRetries(n int) Option {
	return optionFunc(func(c *clientConfig) {
		c.retryMax = n
	})
}

// WithType registers a visible saved-object type.
func WithType(name string, mode NamespaceMode, defaultSearchField string) Option {
	return WithTypeDef(TypeDef{Name: name, Mode: mode, DefaultSearchField: defaultSearchField})
}

// WithTypeDef registers a saved-object type.
func WithTypeDef(t TypeDef) Option {
	return optionFunc(func(c *clientConfig) {
		c.types = append(c.types, t)
	})
}

// WithPaging sets the default and maximum page sizes. Defaults: 20 and 10000.
func WithPaging(defaultPerPage, maxPerPage int) Option {
	return optionFunc(func(c *clientConfig) {
		c.defaultPerPage = defaultPerPage
		c.maxPerPage = maxPerPage
	})
}

// WithLogger enables structured logging for SDK operations.
// Pass nil to disable (default). Uses standard library slog.
func WithLogger(l *slog.Logger) Option {
	return optionFunc(func(c *clientConfig) {
		c.logger = l
	})
}

// WithPrometheus registers SDK metrics (operation counts and durations)
// on the given registerer. Pass nil to disable (default).
func WithPrometheus(reg prometheus.Registerer) Option {
	return optionFunc(func(c *clientConfig) {
		c.metricsReg = reg
	})
}
