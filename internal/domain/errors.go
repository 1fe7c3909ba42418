package domain

import (
	"errors"
	"fmt"
)

var (
	// ErrInvalidQueryParameter signals a malformed find request.
	ErrInvalidQueryParameter = errors.New("invalid query parameter")
	// ErrEmptyNamespaces signals an explicit, empty namespaces list.
	ErrEmptyNamespaces = fmt.Errorf("%w: cannot specify empty namespaces array", ErrInvalidQueryParameter)
	// ErrFilterSyntax signals a structured filter that cannot be rendered.
	ErrFilterSyntax = errors.New("filter syntax error")
	// ErrSearchBackend signals a failure reported by the search engine.
	ErrSearchBackend = errors.New("search backend error")
	// ErrDataSourceUnavailable signals a failed connection validation.
	ErrDataSourceUnavailable = errors.New("data source unavailable")
)

// InvalidRootSearchFieldError reports a rootSearchFields entry that contains
// a field-path separator.
type InvalidRootSearchFieldError struct {
	Field string
}

func (e *InvalidRootSearchFieldError) Error() string {
	return fmt.Sprintf("rootSearchFields entry %q is invalid: cannot contain \".\" character", e.Field)
}

func (e *InvalidRootSearchFieldError) Unwrap() error { return ErrInvalidQueryParameter }

// NewInvalidRootSearchField creates an invalid root search field error.
func NewInvalidRootSearchField(field string) error {
	return &InvalidRootSearchFieldError{Field: field}
}

// FilterSyntaxError wraps ErrFilterSyntax with the offending filter key.
type FilterSyntaxError struct {
	Key    string
	Reason string
}

func (e *FilterSyntaxError) Error() string {
	return fmt.Sprintf("%s: %s: %s", ErrFilterSyntax.Error(), e.Key, e.Reason)
}

func (e *FilterSyntaxError) Unwrap() error { return ErrFilterSyntax }

// NewFilterSyntax creates a filter syntax error.
func NewFilterSyntax(key, reason string) error {
	return &FilterSyntaxError{Key: key, Reason: reason}
}
