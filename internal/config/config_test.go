package config

import (
	"strings"
	"testing"

	"github.com/kailas-cloud/savedobjects/internal/domain/namespace"
)

func validConfig() Config {
	cfg := Config{
		HTTP:         HTTPConfig{Port: 8080},
		SearchEngine: SearchEngineConfig{URL: "http://localhost:9200"},
		Types: []TypeConfig{
			{Name: "dashboard", NamespaceType: "single", DefaultSearchField: "title"},
			{Name: "config", NamespaceType: "multiple"},
			{Name: "tenant", NamespaceType: "agnostic", Hidden: true},
		},
	}
	cfg.ApplyDefaults()
	return cfg
}

func TestValidate_OK(t *testing.T) {
	cfg := validConfig()
	if err := cfg.Validate(); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
}

func TestValidate_Errors(t *testing.T) {
	tests := []struct {
		name   string
		mutate func(*Config)
		want   string
	}{
		{"invalid port", func(c *Config) { c.HTTP.Port = 0 }, "http.port"},
		{"missing url", func(c *Config) { c.SearchEngine.URL = "" }, "search_engine.url is required"},
		{"per page", func(c *Config) { c.Find.DefaultPerPage = 50; c.Find.MaxPerPage = 10 }, "find.default_per_page"},
		{"sampling ratio", func(c *Config) { c.Tracing.SamplingRatio = 1.5 }, "tracing.sampling_ratio"},
		{"tracing endpoint", func(c *Config) { c.Tracing.Enabled = true }, "tracing.endpoint"},
		{"empty type name", func(c *Config) { c.Types[1].Name = "" }, "types[1].name is required"},
		{"duplicate type", func(c *Config) { c.Types[2].Name = "dashboard" }, `"dashboard" is duplicated`},
		{"bad namespace type", func(c *Config) { c.Types[0].NamespaceType = "many" }, `invalid namespace type: "many"`},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			cfg := validConfig()
			tt.mutate(&cfg)
			err := cfg.Validate()
			if err == nil {
				t.Fatal("expected error")
			}
			if !strings.Contains(err.Error(), tt.want) {
				t.Errorf("error = %q, want %q", err, tt.want)
			}
		})
	}
}

func TestApplyDefaults(t *testing.T) {
	cfg := Config{}
	cfg.ApplyDefaults()

	if cfg.HTTP.ReadTimeoutSec != 10 {
		t.Errorf("expected ReadTimeoutSec=10, got %d", cfg.HTTP.ReadTimeoutSec)
	}
	if cfg.HTTP.WriteTimeoutSec != 10 {
		t.Errorf("expected WriteTimeoutSec=10, got %d", cfg.HTTP.WriteTimeoutSec)
	}
	if cfg.HTTP.ShutdownSec != 10 {
		t.Errorf("expected ShutdownSec=10, got %d", cfg.HTTP.ShutdownSec)
	}
	if cfg.SearchEngine.Index != ".kibana" {
		t.Errorf("expected Index='.kibana', got %q", cfg.SearchEngine.Index)
	}
	if cfg.SearchEngine.TimeoutSec != 30 {
		t.Errorf("expected TimeoutSec=30, got %d", cfg.SearchEngine.TimeoutSec)
	}
	if cfg.SearchEngine.ReadinessTimeout != 10 {
		t.Errorf("expected ReadinessTimeout=10, got %d", cfg.SearchEngine.ReadinessTimeout)
	}
	if cfg.Find.DefaultPerPage != 20 {
		t.Errorf("expected DefaultPerPage=20, got %d", cfg.Find.DefaultPerPage)
	}
	if cfg.Find.MaxPerPage != 10000 {
		t.Errorf("expected MaxPerPage=10000, got %d", cfg.Find.MaxPerPage)
	}
	if cfg.Tracing.ServiceName != "savedobjects" {
		t.Errorf("expected ServiceName='savedobjects', got %q", cfg.Tracing.ServiceName)
	}
}

func TestApplyDefaults_NoOverride(t *testing.T) {
	cfg := Config{
		HTTP:         HTTPConfig{ReadTimeoutSec: 30, WriteTimeoutSec: 60, ShutdownSec: 5},
		SearchEngine: SearchEngineConfig{Index: ".osd", TimeoutSec: 5, ReadinessTimeout: 15},
		Find:         FindConfig{DefaultPerPage: 50, MaxPerPage: 500},
	}
	cfg.ApplyDefaults()

	if cfg.HTTP.ReadTimeoutSec != 30 {
		t.Errorf("expected ReadTimeoutSec=30, got %d", cfg.HTTP.ReadTimeoutSec)
	}
	if cfg.SearchEngine.Index != ".osd" {
		t.Errorf("expected Index='.osd', got %q", cfg.SearchEngine.Index)
	}
	if cfg.Find.DefaultPerPage != 50 || cfg.Find.MaxPerPage != 500 {
		t.Errorf("expected find 50/500, got %d/%d", cfg.Find.DefaultPerPage, cfg.Find.MaxPerPage)
	}
}

func TestParse_ExpandsEnv(t *testing.T) {
	t.Setenv("SO_TEST_ENGINE_URL", "http://engine:9200")

	cfg, err := Parse([]byte(`
http:
  port: 8080
search_engine:
  url: ${SO_TEST_ENGINE_URL}
  index: ${SO_TEST_MISSING:-.kibana_1}
types:
  - name: dashboard
    default_search_field: title
`))
	if err != nil {
		t.Fatalf("Parse: %v", err)
	}
	if cfg.SearchEngine.URL != "http://engine:9200" {
		t.Errorf("URL = %q, want %q", cfg.SearchEngine.URL, "http://engine:9200")
	}
	if cfg.SearchEngine.Index != ".kibana_1" {
		t.Errorf("Index = %q, want %q", cfg.SearchEngine.Index, ".kibana_1")
	}
	if len(cfg.Types) != 1 || cfg.Types[0].DefaultSearchField != "title" {
		t.Errorf("Types = %+v", cfg.Types)
	}
}

func TestParse_Invalid(t *testing.T) {
	if _, err := Parse([]byte("http: [")); err == nil {
		t.Error("expected error for malformed yaml")
	}
	if _, err := Parse([]byte("http:\n  port: 8080\n")); err == nil {
		t.Error("expected error for missing search_engine.url")
	}
}

func TestRegistry(t *testing.T) {
	cfg := validConfig()
	reg, err := cfg.Registry()
	if err != nil {
		t.Fatalf("Registry: %v", err)
	}

	if got := reg.AllTypes(); strings.Join(got, ",") != "dashboard,config,tenant" {
		t.Errorf("AllTypes() = %v", got)
	}
	if got := reg.VisibleTypes(); strings.Join(got, ",") != "dashboard,config" {
		t.Errorf("VisibleTypes() = %v", got)
	}
	if got := reg.NamespaceMode("config"); got != namespace.Shareable {
		t.Errorf("NamespaceMode(config) = %v, want %v", got, namespace.Shareable)
	}
	if got := reg.NamespaceMode("tenant"); got != namespace.Global {
		t.Errorf("NamespaceMode(tenant) = %v, want %v", got, namespace.Global)
	}
	if got := reg.DefaultSearchField("dashboard"); got != "title" {
		t.Errorf("DefaultSearchField(dashboard) = %q, want %q", got, "title")
	}
}
