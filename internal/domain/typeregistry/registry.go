// Package typeregistry holds the saved-object type registrations.
//
// A Registry is filled once during setup and only read afterwards, so it
// carries no locking: query compilation never overlaps with registration.
package typeregistry

import (
	"fmt"

	"github.com/kailas-cloud/savedobjects/internal/domain/namespace"
)

// Type is a single saved-object type registration.
type Type struct {
	name               string
	mode               namespace.Mode
	defaultSearchField string
	hidden             bool
}

// NewType validates and creates a type registration.
func NewType(name string, mode namespace.Mode, defaultSearchField string, hidden bool) (Type, error) {
	if name == "" {
		return Type{}, fmt.Errorf("type name is required")
	}
	switch mode {
	case namespace.Isolated, namespace.Shareable, namespace.Global:
	default:
		return Type{}, fmt.Errorf("type %q: invalid namespace mode %v", name, mode)
	}
	return Type{name: name, mode: mode, defaultSearchField: defaultSearchField, hidden: hidden}, nil
}

// Name returns the type name.
func (t Type) Name() string { return t.name }

// Mode returns the namespace-scoping mode.
func (t Type) Mode() namespace.Mode { return t.mode }

// DefaultSearchField returns the field used for prefix search, or "".
func (t Type) DefaultSearchField() string { return t.defaultSearchField }

// Hidden reports whether the type is excluded from public find requests.
func (t Type) Hidden() bool { return t.hidden }

// Registry is a read-only lookup of registered types.
type Registry struct {
	types map[string]Type
	order []string
}

// New creates a registry from the given types, in registration order.
func New(types ...Type) (*Registry, error) {
	r := &Registry{types: make(map[string]Type, len(types))}
	for _, t := range types {
		if t.name == "" {
			return nil, fmt.Errorf("type name is required")
		}
		if _, ok := r.types[t.name]; ok {
			return nil, fmt.Errorf("type %q is already registered", t.name)
		}
		r.types[t.name] = t
		r.order = append(r.order, t.name)
	}
	return r, nil
}

// Get returns the registration for name.
func (r *Registry) Get(name string) (Type, bool) {
	t, ok := r.types[name]
	return t, ok
}

// NamespaceMode returns the mode of name. Unknown types are Isolated.
func (r *Registry) NamespaceMode(name string) namespace.Mode {
	if t, ok := r.types[name]; ok {
		return t.mode
	}
	return namespace.Isolated
}

// DefaultSearchField returns the default search field of name, or "".
func (r *Registry) DefaultSearchField(name string) string {
	return r.types[name].defaultSearchField
}

// AllTypes returns every registered type name in registration order.
func (r *Registry) AllTypes() []string {
	out := make([]string, len(r.order))
	copy(out, r.order)
	return out
}

// VisibleTypes returns the non-hidden type names in registration order.
func (r *Registry) VisibleTypes() []string {
	out := make([]string, 0, len(r.order))
	for _, name := range r.order {
		if !r.types[name].hidden {
			out = append(out, name)
		}
	}
	return out
}

// Len returns the number of registered types.
func (r *Registry) Len() int { return len(r.order) }
