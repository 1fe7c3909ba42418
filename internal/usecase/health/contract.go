package health

import "context"

// DataSourceValidator checks search engine availability.
type DataSourceValidator interface {
	Validate(ctx context.Context) error
}

// TypeCounter reports how many saved-object types are registered.
type TypeCounter interface {
	Len() int
}
