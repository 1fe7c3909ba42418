package db

import "errors"

// Sentinel errors for search engine operations.
var (
	ErrIndexNotFound = errors.New("db: index not found")
)

// Op constants map to search engine API names for error context.
const (
	OpSearch     = "_search"
	OpInfo       = "info"
	OpCatIndices = "_cat/indices"
)

// Error wraps an underlying error with the operation name for diagnostics.
type Error struct {
	Op  string
	Err error
}

func (e *Error) Error() string { return e.Op + ": " + e.Err.Error() }
func (e *Error) Unwrap() error { return e.Err }
