package query

import (
	"fmt"

	"github.com/kailas-cloud/savedobjects/internal/domain/namespace"
	"github.com/kailas-cloud/savedobjects/internal/domain/search/dsl"
)

// Document fields that carry namespace membership.
const (
	fieldNamespace  = "namespace"
	fieldNamespaces = "namespaces"
)

// namespaceClause builds the isolation part of a per-type clause. The
// namespaces argument is already normalized and never an empty non-nil
// list; nil means [default].
func namespaceClause(mode namespace.Mode, namespaces []string) (dsl.Bool, error) {
	switch mode {
	case namespace.Global:
		return dsl.Bool{
			MustNot: []dsl.Query{
				dsl.Exists{Field: fieldNamespace},
				dsl.Exists{Field: fieldNamespaces},
			},
		}, nil

	case namespace.Isolated:
		namespaces = namespace.OrDefault(namespaces)
		var should []dsl.Query
		if named := withoutDefault(namespaces); len(named) > 0 {
			should = append(should, dsl.Terms{Field: fieldNamespace, Values: named})
		}
		if contains(namespaces, namespace.Default) {
			should = append(should, dsl.Bool{
				MustNot: []dsl.Query{dsl.Exists{Field: fieldNamespace}},
			})
		}
		return dsl.Bool{
			Should:             should,
			MinimumShouldMatch: 1,
			MustNot:            []dsl.Query{dsl.Exists{Field: fieldNamespaces}},
		}, nil

	case namespace.Shareable:
		requested := namespace.OrDefault(namespaces)
		values := make([]string, 0, len(requested)+1)
		values = append(values, requested...)
		values = append(values, namespace.All)
		return dsl.Bool{
			Must:    []dsl.Query{dsl.Terms{Field: fieldNamespaces, Values: values}},
			MustNot: []dsl.Query{dsl.Exists{Field: fieldNamespace}},
		}, nil

	default:
		return dsl.Bool{}, fmt.Errorf("unhandled namespace mode %v", mode)
	}
}

func withoutDefault(namespaces []string) []string {
	var out []string
	for _, ns := range namespaces {
		if ns != namespace.Default {
			out = append(out, ns)
		}
	}
	return out
}

func contains(list []string, s string) bool {
	for _, v := range list {
		if v == s {
			return true
		}
	}
	return false
}
