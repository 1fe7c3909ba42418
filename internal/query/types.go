package query

import (
	"fmt"

	"github.com/kailas-cloud/savedobjects/internal/domain/search/dsl"
)

const fieldType = "type"

// typeClause is the disjunction of one clause per effective type. Each
// per-type clause matches the type identity and its namespace scoping.
func typeClause(reg Registry, scope Scope) (dsl.Bool, error) {
	types := scope.Types()
	should := make([]dsl.Query, 0, len(types))
	for _, t := range types {
		ns, err := namespaceClause(reg.NamespaceMode(t), scope.NamespacesFor(t))
		if err != nil {
			return dsl.Bool{}, fmt.Errorf("type %q: %w", t, err)
		}
		must := make([]dsl.Query, 0, len(ns.Must)+1)
		must = append(must, dsl.Term{Field: fieldType, Value: t})
		must = append(must, ns.Must...)

		ns.Must = must
		should = append(should, ns)
	}
	return dsl.Bool{Should: should, MinimumShouldMatch: 1}, nil
}
