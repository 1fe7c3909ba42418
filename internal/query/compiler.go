package query

import (
	"fmt"
	"strings"

	"github.com/kailas-cloud/savedobjects/internal/domain"
	"github.com/kailas-cloud/savedobjects/internal/domain/find"
	"github.com/kailas-cloud/savedobjects/internal/domain/search/dsl"
)

// Compiler turns find options into a query document.
type Compiler struct {
	registry Registry
}

// NewCompiler creates a compiler over a read-only registry.
func NewCompiler(registry Registry) *Compiler {
	return &Compiler{registry: registry}
}

// Compile builds the query document for opts. The output is a pure function
// of opts and the registry contents.
//
// The filter context always starts with the type clause, followed, when
// requested, by the structured filter, the reference clause and the
// workspace clause. A plain search goes into must; a prefix search goes into
// should with minimum_should_match 1.
func (c *Compiler) Compile(opts *find.Options) (dsl.Document, error) {
	if opts == nil {
		opts = &find.Options{}
	}
	if err := Validate(opts); err != nil {
		return dsl.Document{}, err
	}

	scope := ResolveScope(c.registry, opts)
	types := scope.Types()

	tc, err := typeClause(c.registry, scope)
	if err != nil {
		return dsl.Document{}, err
	}
	root := dsl.Bool{Filter: []dsl.Query{tc}}

	if opts.Filter != nil {
		q, err := opts.Filter.Render()
		if err != nil {
			return dsl.Document{}, err
		}
		if q != nil {
			root.Filter = append(root.Filter, q)
		}
	}
	if opts.HasReference != nil {
		root.Filter = append(root.Filter, referenceClause(*opts.HasReference))
	}
	if opts.Workspaces != nil {
		root.Filter = append(root.Filter, workspaceClause(opts.Workspaces))
	}

	if opts.Search != "" {
		text := simpleQueryStringClause(opts.Search, types, opts.SearchFields, opts.RootSearchFields, opts.DefaultSearchOperator)
		if IsPrefixSearch(opts.Search) {
			should := []dsl.Query{text}
			should = append(should, prefixClauses(c.registry, opts.Search, types, opts.SearchFields)...)
			root.Should = should
			root.MinimumShouldMatch = 1
		} else {
			root.Must = []dsl.Query{text}
		}
	}

	return dsl.Document{Query: root}, nil
}

// Validate checks the options that can make compilation fail before any
// clause is built. An explicit empty namespace list is rejected wherever it
// scopes the query: in the type-to-namespaces mapping when one is given,
// otherwise in Namespaces. Root search fields are checked even without a
// search term.
func Validate(opts *find.Options) error {
	if m := opts.TypeToNamespaces; m != nil {
		for _, typ := range m.Types() {
			if ns, _ := m.Get(typ); ns != nil && len(ns) == 0 {
				return fmt.Errorf("%w (type %q)", domain.ErrEmptyNamespaces, typ)
			}
		}
	} else if opts.Namespaces != nil && len(opts.Namespaces) == 0 {
		return domain.ErrEmptyNamespaces
	}
	for _, f := range opts.RootSearchFields {
		if strings.Contains(f, ".") {
			return domain.NewInvalidRootSearchField(f)
		}
	}
	return nil
}
