package main

import (
	"bytes"
	"errors"
	"strings"
	"testing"

	"github.com/tidwall/gjson"

	"github.com/kailas-cloud/savedobjects/internal/domain"
)

func runCLI(t *testing.T, args ...string) (string, error) {
	t.Helper()
	cmd := newRootCommand()
	var out bytes.Buffer
	cmd.SetOut(&out)
	cmd.SetErr(&bytes.Buffer{})
	cmd.SetArgs(append(args, "--env", "local"))
	err := cmd.Execute()
	return out.String(), err
}

func TestCompileCommand(t *testing.T) {
	out, err := runCLI(t, "compile",
		"--type", "dashboard",
		"--namespace", "foo,default",
		"--search", "logs*",
		"--reference", "index-pattern:logs",
		"--workspace", "ws1",
	)
	if err != nil {
		t.Fatalf("compile: %v", err)
	}
	if !gjson.Valid(out) {
		t.Fatalf("output is not JSON:\n%s", out)
	}

	doc := gjson.Parse(out)
	checks := map[string]string{
		"query.bool.filter.0.bool.should.0.bool.must.0.term.type":                      "dashboard",
		"query.bool.filter.0.bool.should.0.bool.should.0.terms.namespace.0":            "foo",
		"query.bool.filter.0.bool.should.0.bool.should.1.bool.must_not.0.exists.field": "namespace",
		"query.bool.filter.0.bool.should.0.bool.must_not.0.exists.field":               "namespaces",
		"query.bool.filter.1.bool.must.0.nested.path":                                  "references",
		"query.bool.filter.2.bool.should.0.bool.must.0.term.workspaces":                "ws1",
		"query.bool.should.0.simple_query_string.query":                                "logs*",
		"query.bool.should.1.match_phrase_prefix.dashboard\\.title.query":              "logs",
	}
	for path, want := range checks {
		if got := doc.Get(path).String(); got != want {
			t.Errorf("%s = %q, want %q", path, got, want)
		}
	}
	if got := doc.Get("query.bool.minimum_should_match").Int(); got != 1 {
		t.Errorf("minimum_should_match = %d, want 1", got)
	}
	if !strings.Contains(out, "\n  ") {
		t.Error("output is not indented")
	}
}

func TestCompileCommand_EmptyNamespaces(t *testing.T) {
	_, err := runCLI(t, "compile", "--namespace=")
	if !errors.Is(err, domain.ErrEmptyNamespaces) {
		t.Fatalf("err = %v, want ErrEmptyNamespaces", err)
	}
}

func TestCompileCommand_InvalidFlags(t *testing.T) {
	tests := map[string][]string{
		"reference without id": {"compile", "--reference", "index-pattern"},
		"operator":             {"compile", "--operator", "XOR"},
		"filter":               {"compile", "--filter", `{"must":[{"key":"dashboard.title"}]}`},
		"root field with dot":  {"compile", "--root-search-field", "a.b"},
	}
	for name, args := range tests {
		t.Run(name, func(t *testing.T) {
			if _, err := runCLI(t, args...); err == nil {
				t.Error("expected error")
			}
		})
	}
}

func TestVersionCommand(t *testing.T) {
	out, err := runCLI(t, "version")
	if err != nil {
		t.Fatalf("version: %v", err)
	}
	if !strings.HasPrefix(out, "savedobjects ") {
		t.Errorf("output = %q", out)
	}
}
