package query

import (
	"github.com/kailas-cloud/savedobjects/internal/domain/find"
	"github.com/kailas-cloud/savedobjects/internal/domain/namespace"
)

// Registry is the read contract of the type registry used by the compiler.
type Registry interface {
	NamespaceMode(name string) namespace.Mode
	DefaultSearchField(name string) string
	AllTypes() []string
}

// Scope is the effective set of types and, per type, the namespaces the
// compiled query may read. It is resolved once per compilation.
type Scope interface {
	// Types returns the effective types in a stable order.
	Types() []string
	// NamespacesFor returns the normalized namespaces of typ; nil means
	// the default namespace only.
	NamespacesFor(typ string) []string
	scopeNode()
}

// ByMap scopes a query by an explicit type-to-namespaces mapping. Types that
// are not keys of the mapping are never queried.
type ByMap struct {
	mapping *find.TypeNamespaces
}

func (ByMap) scopeNode() {}

// Types returns the mapping keys.
func (s ByMap) Types() []string { return s.mapping.Types() }

// NamespacesFor returns the mapped namespaces of typ.
func (s ByMap) NamespacesFor(typ string) []string {
	ns, _ := s.mapping.Get(typ)
	return namespace.Normalize(ns)
}

// ByTypesAndNamespaces scopes every type to the same namespace list.
type ByTypesAndNamespaces struct {
	types      []string
	namespaces []string
}

func (ByTypesAndNamespaces) scopeNode() {}

// Types returns the requested types.
func (s ByTypesAndNamespaces) Types() []string { return s.types }

// NamespacesFor returns the shared namespace list.
func (s ByTypesAndNamespaces) NamespacesFor(string) []string { return s.namespaces }

// ResolveScope computes the effective scope of opts. A type-to-namespaces
// mapping, when present, supersedes Types and Namespaces entirely. Without
// one, an empty type list means every registered type.
func ResolveScope(reg Registry, opts *find.Options) Scope {
	if opts.TypeToNamespaces != nil {
		return ByMap{mapping: opts.TypeToNamespaces}
	}
	types := uniq(opts.Types)
	if len(types) == 0 {
		types = reg.AllTypes()
	}
	return ByTypesAndNamespaces{
		types:      types,
		namespaces: namespace.Normalize(opts.Namespaces),
	}
}

func uniq(in []string) []string {
	if len(in) == 0 {
		return nil
	}
	out := make([]string, 0, len(in))
	seen := make(map[string]struct{}, len(in))
	for _, s := range in {
		if _, ok := seen[s]; ok {
			continue
		}
		seen[s] = struct{}{}
		out = append(out, s)
	}
	return out
}
