// Package db defines the search engine contract used by repositories.
package db

import (
	"context"
	"time"
)

// Store is the search engine facade combining all sub-interfaces.
type Store interface {
	Pinger
	Searcher
	Close()
	WaitForReady(ctx context.Context, timeout time.Duration) error
}

// Pinger checks search engine connectivity.
type Pinger interface {
	Ping(ctx context.Context) error
}

// Searcher runs query documents against an index.
type Searcher interface {
	Search(ctx context.Context, req *SearchRequest) (*SearchResult, error)
}
