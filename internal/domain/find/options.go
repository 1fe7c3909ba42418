// Package find describes a saved-objects find request.
package find

import (
	"fmt"

	"github.com/kailas-cloud/savedobjects/internal/domain/search/dsl"
)

// Operator is the default boolean operator of a free-text search.
type Operator string

// Search operators.
const (
	OperatorAND Operator = "AND"
	OperatorOR  Operator = "OR"
)

// ParseOperator parses an operator; empty means unset.
func ParseOperator(s string) (Operator, error) {
	switch Operator(s) {
	case "", OperatorAND, OperatorOR:
		return Operator(s), nil
	default:
		return "", fmt.Errorf("invalid default search operator: %q", s)
	}
}

// SortOrder is the direction of a sort.
type SortOrder string

// Sort orders.
const (
	SortAsc  SortOrder = "asc"
	SortDesc SortOrder = "desc"
)

// Reference identifies an object that results must reference.
type Reference struct {
	Type string
	ID   string
}

// Filter is an already-parsed structured filter tree. Render failures are
// returned to the caller unchanged.
type Filter interface {
	Render() (dsl.Query, error)
}

// Options is the input of a find request.
//
// A nil slice means "not given". Namespaces set to a non-nil empty slice is
// an explicit empty list and is rejected by the compiler.
type Options struct {
	Types                 []string
	Namespaces            []string
	TypeToNamespaces      *TypeNamespaces
	Search                string
	SearchFields          []string
	RootSearchFields      []string
	DefaultSearchOperator Operator
	HasReference          *Reference
	Filter                Filter
	Workspaces            []string

	// Paging and projection; not used by query compilation.
	Page       int
	PerPage    int
	SortField  string
	SortOrder  SortOrder
	Fields     []string
	Preference string
}

// TypeNamespaces maps each type to the namespaces it may be searched in.
// Keys are unique and keep insertion order. A nil value means the type is
// searched in the default namespace only.
type TypeNamespaces struct {
	keys   []string
	values map[string][]string
}

// NewTypeNamespaces creates an empty mapping.
func NewTypeNamespaces() *TypeNamespaces {
	return &TypeNamespaces{values: make(map[string][]string)}
}

// Set assigns namespaces to typ. Re-setting a type keeps its position.
// The zero value is ready to use.
func (m *TypeNamespaces) Set(typ string, namespaces []string) *TypeNamespaces {
	if m.values == nil {
		m.values = make(map[string][]string)
	}
	if _, ok := m.values[typ]; !ok {
		m.keys = append(m.keys, typ)
	}
	m.values[typ] = namespaces
	return m
}

// Get returns the namespaces of typ and whether typ is a key.
func (m *TypeNamespaces) Get(typ string) ([]string, bool) {
	ns, ok := m.values[typ]
	return ns, ok
}

// Types returns the keys in insertion order.
func (m *TypeNamespaces) Types() []string {
	out := make([]string, len(m.keys))
	copy(out, m.keys)
	return out
}

// Len returns the number of keys.
func (m *TypeNamespaces) Len() int { return len(m.keys) }
