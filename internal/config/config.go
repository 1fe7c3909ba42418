package config

import (
	"fmt"
	"os"
	"path/filepath"
	"regexp"
	"runtime"
	"strings"

	"gopkg.in/yaml.v3"

	"github.com/kailas-cloud/savedobjects/internal/domain/namespace"
	"github.com/kailas-cloud/savedobjects/internal/domain/typeregistry"
)

// Config holds the savedobjects service configuration.
type Config struct {
	HTTP         HTTPConfig         `yaml:"http"`
	Auth         AuthConfig         `yaml:"auth"`
	SearchEngine SearchEngineConfig `yaml:"search_engine"`
	Find         FindConfig         `yaml:"find"`
	Tracing      TracingConfig      `yaml:"tracing"`
	Logging      LoggingConfig      `yaml:"logging"`
	Types        []TypeConfig       `yaml:"types"`
}

// LoggingConfig holds logging settings.
type LoggingConfig struct {
	Level string `yaml:"level"` // debug, info, warn, error (default: determined by env)
}

// AuthConfig holds API authentication settings.
type AuthConfig struct {
	APIKeys []string `yaml:"api_keys"`
}

// HTTPConfig holds HTTP server settings.
type HTTPConfig struct {
	Port            int `yaml:"port"`
	ReadTimeoutSec  int `yaml:"read_timeout_sec"`
	WriteTimeoutSec int `yaml:"write_timeout_sec"`
	ShutdownSec     int `yaml:"shutdown_timeout_sec"`
}

// SearchEngineConfig holds search engine connection settings.
type SearchEngineConfig struct {
	URL              string `yaml:"url"`
	Index            string `yaml:"index"`
	Username         string `yaml:"username"`
	Password         string `yaml:"password"`
	Serverless       bool   `yaml:"serverless"`
	TimeoutSec       int    `yaml:"timeout_sec"`
	RetryMax         int    `yaml:"retry_max"`
	ReadinessTimeout int    `yaml:"readiness_timeout_sec"`
}

// FindConfig holds paging limits of find requests.
type FindConfig struct {
	DefaultPerPage int `yaml:"default_per_page"`
	MaxPerPage     int `yaml:"max_per_page"`
}

// TracingConfig holds OpenTelemetry exporter settings.
type TracingConfig struct {
	Enabled       bool    `yaml:"enabled"`
	Endpoint      string  `yaml:"endpoint"`
	ServiceName   string  `yaml:"service_name"`
	SamplingRatio float64 `yaml:"sampling_ratio"`
}

// TypeConfig registers one saved-object type.
type TypeConfig struct {
	Name               string `yaml:"name"`
	NamespaceType      string `yaml:"namespace_type"` // single, multiple, agnostic (default: single)
	DefaultSearchField string `yaml:"default_search_field"`
	Hidden             bool   `yaml:"hidden"`
}

// Load reads configuration from a YAML file by environment name (local, dev, prod).
func Load(env string) (Config, error) {
	configPath := findConfigPath(env)

	data, err := os.ReadFile(filepath.Clean(configPath))
	if err != nil {
		return Config{}, fmt.Errorf("failed to read config %s: %w", configPath, err)
	}
	return Parse(data)
}

// Parse decodes, defaults and validates a YAML document.
func Parse(data []byte) (Config, error) {
	// Substitute env variables of the form ${VAR}
	data = expandEnvVars(data)

	var cfg Config
	if err := yaml.Unmarshal(data, &cfg); err != nil {
		return Config{}, fmt.Errorf("failed to parse config: %w", err)
	}

	cfg.ApplyDefaults()

	if err := cfg.Validate(); err != nil {
		return Config{}, fmt.Errorf("invalid config: %w", err)
	}

	return cfg, nil
}

// MustLoad loads configuration or panics.
func MustLoad(env string) Config {
	cfg, err := Load(env)
	if err != nil {
		panic(err)
	}
	return cfg
}

// GetEnv returns the current environment from the ENV variable, defaulting to "local".
func GetEnv() string {
	if env := os.Getenv("ENV"); env != "" {
		return env
	}
	return "local"
}

// ApplyDefaults fills empty fields with default values.
func (c *Config) ApplyDefaults() {
	if c.HTTP.ReadTimeoutSec <= 0 {
		c.HTTP.ReadTimeoutSec = 10
	}
	if c.HTTP.WriteTimeoutSec <= 0 {
		c.HTTP.WriteTimeoutSec = 10
	}
	if c.HTTP.ShutdownSec <= 0 {
		c.HTTP.ShutdownSec = 10
	}
	if c.SearchEngine.Index == "" {
		c.SearchEngine.Index = ".kibana"
	}
	if c.SearchEngine.TimeoutSec <= 0 {
		c.SearchEngine.TimeoutSec = 30
	}
	if c.SearchEngine.RetryMax < 0 {
		c.SearchEngine.RetryMax = 0
	}
	if c.SearchEngine.ReadinessTimeout <= 0 {
		c.SearchEngine.ReadinessTimeout = 10
	}
	if c.Find.DefaultPerPage <= 0 {
		c.Find.DefaultPerPage = 20
	}
	if c.Find.MaxPerPage <= 0 {
		c.Find.MaxPerPage = 10000
	}
	if c.Tracing.ServiceName == "" {
		c.Tracing.ServiceName = "savedobjects"
	}
}

// Validate checks the configuration for correctness.
func (c *Config) Validate() error {
	if c.HTTP.Port <= 0 || c.HTTP.Port > 65535 {
		return fmt.Errorf("http.port must be between 1 and 65535, got %d", c.HTTP.Port)
	}
	if c.SearchEngine.URL == "" {
		return fmt.Errorf("search_engine.url is required")
	}
	if c.Find.DefaultPerPage > c.Find.MaxPerPage {
		return fmt.Errorf(
			"find.default_per_page (%d) must not exceed find.max_per_page (%d)",
			c.Find.DefaultPerPage, c.Find.MaxPerPage,
		)
	}
	if c.Tracing.SamplingRatio < 0 || c.Tracing.SamplingRatio > 1 {
		return fmt.Errorf("tracing.sampling_ratio must be between 0 and 1, got %v", c.Tracing.SamplingRatio)
	}
	if c.Tracing.Enabled && c.Tracing.Endpoint == "" {
		return fmt.Errorf("tracing.endpoint is required when tracing is enabled")
	}
	seen := make(map[string]struct{}, len(c.Types))
	for i, t := range c.Types {
		if t.Name == "" {
			return fmt.Errorf("types[%d].name is required", i)
		}
		if _, ok := seen[t.Name]; ok {
			return fmt.Errorf("types[%d].name %q is duplicated", i, t.Name)
		}
		seen[t.Name] = struct{}{}
		if _, err := namespace.ParseMode(t.NamespaceType); err != nil {
			return fmt.Errorf("types[%d] (%s): %w", i, t.Name, err)
		}
	}
	return nil
}

// Registry builds the saved-object type registry from the types section.
func (c *Config) Registry() (*typeregistry.Registry, error) {
	types := make([]typeregistry.Type, 0, len(c.Types))
	for _, tc := range c.Types {
		mode, err := namespace.ParseMode(tc.NamespaceType)
		if err != nil {
			return nil, fmt.Errorf("type %q: %w", tc.Name, err)
		}
		t, err := typeregistry.NewType(tc.Name, mode, tc.DefaultSearchField, tc.Hidden)
		if err != nil {
			return nil, err
		}
		types = append(types, t)
	}
	return typeregistry.New(types...)
}

// findConfigPath locates the config file.
func findConfigPath(env string) string {
	filename := fmt.Sprintf("%s.yaml", env)

	// 1. Check ./config/
	if path := filepath.Join("config", filename); fileExists(path) {
		return path
	}

	// 2. Check relative to the source file
	_, b, _, _ := runtime.Caller(0)
	projectRoot := filepath.Dir(filepath.Dir(filepath.Dir(b))) // internal/config -> project root
	if path := filepath.Join(projectRoot, "config", filename); fileExists(path) {
		return path
	}

	// 3. Fallback to ./config/
	return filepath.Join("config", filename)
}

func fileExists(path string) bool {
	_, err := os.Stat(path)
	return err == nil
}

// expandEnvVars replaces ${VAR} and ${VAR:-default} with environment variable values.
var envVarRegex = regexp.MustCompile(`\$\{([^}]+)\}`)

func expandEnvVars(data []byte) []byte {
	return envVarRegex.ReplaceAllFunc(data, func(match []byte) []byte {
		expr := string(match[2 : len(match)-1]) // strip ${ and }
		varName, defaultVal, hasDefault := strings.Cut(expr, ":-")
		val := os.Getenv(varName)
		if val == "" && hasDefault {
			val = defaultVal
		}
		return []byte(val)
	})
}
