package domain

import (
	"errors"
	"strings"
	"testing"
)

func TestEmptyNamespaces_IsInvalidQueryParameter(t *testing.T) {
	if !errors.Is(ErrEmptyNamespaces, ErrInvalidQueryParameter) {
		t.Fatal("ErrEmptyNamespaces should wrap ErrInvalidQueryParameter")
	}
	if !strings.Contains(ErrEmptyNamespaces.Error(), "cannot specify empty namespaces array") {
		t.Errorf("error = %q", ErrEmptyNamespaces)
	}
}

func TestInvalidRootSearchField(t *testing.T) {
	err := NewInvalidRootSearchField("bar.baz")

	want := `rootSearchFields entry "bar.baz" is invalid: cannot contain "." character`
	if err.Error() != want {
		t.Errorf("error = %q, want %q", err.Error(), want)
	}
	if !errors.Is(err, ErrInvalidQueryParameter) {
		t.Error("expected errors.Is(err, ErrInvalidQueryParameter)")
	}

	var rsf *InvalidRootSearchFieldError
	if !errors.As(err, &rsf) {
		t.Fatal("expected errors.As to *InvalidRootSearchFieldError")
	}
	if rsf.Field != "bar.baz" {
		t.Errorf("Field = %q, want bar.baz", rsf.Field)
	}
}

func TestFilterSyntax(t *testing.T) {
	err := NewFilterSyntax("title", "key must be type-qualified")
	if !errors.Is(err, ErrFilterSyntax) {
		t.Error("expected errors.Is(err, ErrFilterSyntax)")
	}
	if errors.Is(err, ErrInvalidQueryParameter) {
		t.Error("filter syntax error must not be an invalid query parameter")
	}
	if !strings.Contains(err.Error(), "title") {
		t.Errorf("error = %q, want key in message", err)
	}
}
