package savedobjects

import "github.com/kailas-cloud/savedobjects/internal/domain"

// Sentinel errors re-exported from the domain layer.
// Use errors.Is() to check.
var (
	ErrInvalidQueryParameter = domain.ErrInvalidQueryParameter
	ErrEmptyNamespaces       = domain.ErrEmptyNamespaces
	ErrFilterSyntax          = domain.ErrFilterSyntax
	ErrSearchBackend         = domain.ErrSearchBackend
	ErrDataSourceUnavailable = domain.ErrDataSourceUnavailable
)
