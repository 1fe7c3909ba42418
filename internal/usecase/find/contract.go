package find

import (
	"context"

	domfind "github.com/kailas-cloud/savedobjects/internal/domain/find"
	domobj "github.com/kailas-cloud/savedobjects/internal/domain/savedobject"
	"github.com/kailas-cloud/savedobjects/internal/domain/search/dsl"
)

// Compiler turns find options into a query document.
type Compiler interface {
	Compile(opts *domfind.Options) (dsl.Document, error)
}

// Repository runs compiled documents against the saved-objects index.
type Repository interface {
	Find(ctx context.Context, doc dsl.Document, types []string, opts *domfind.Options) (domobj.Page, error)
}

// TypeLister lists the types that public find requests may read.
type TypeLister interface {
	VisibleTypes() []string
}

// typedFilter is implemented by filters that know which types they reference.
type typedFilter interface {
	Types() []string
}
