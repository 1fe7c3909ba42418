package savedobjects

import "encoding/json"

// NamespaceMode controls how objects of a type are scoped to namespaces.
type NamespaceMode string

// Namespace modes.
const (
	// Single objects live in exactly one namespace.
	Single NamespaceMode = "single"
	// Multiple objects may be shared across namespaces.
	Multiple NamespaceMode = "multiple"
	// Agnostic objects are visible from every namespace.
	Agnostic NamespaceMode = "agnostic"
)

// TypeDef registers a saved-object type.
type TypeDef struct {
	Name               string
	Mode               NamespaceMode
	DefaultSearchField string
	// Hidden types are never returned by Find.
	Hidden bool
}

// Reference identifies an object that results must reference.
type Reference struct {
	Type string
	ID   string
}

// TypeNamespaces scopes one type to its own namespaces.
type TypeNamespaces struct {
	Type string
	// Namespaces nil means the default namespace; empty is rejected.
	Namespaces []string
}

// FindOptions describes a find request.
//
// Nil slices mean "not given". A non-nil empty Namespaces is rejected.
type FindOptions struct {
	Types      []string
	Namespaces []string
	// TypeToNamespaces, when non-nil, replaces Types and Namespaces, so an
	// empty Namespaces is then ignored.
	TypeToNamespaces []TypeNamespaces

	Search                string
	SearchFields          []string
	RootSearchFields      []string
	DefaultSearchOperator string // "AND" or "OR"

	HasReference *Reference
	// Filter is a JSON filter tree:
	// {"must":[{"key":"dashboard.title","match":"x"}],"should":[...],"must_not":[...]}.
	Filter     json.RawMessage
	Workspaces []string

	Page       int
	PerPage    int
	SortField  string
	SortOrder  string // "asc" or "desc"
	Fields     []string
	Preference string
}

// ObjectReference points from a saved object to another.
type ObjectReference struct {
	Name string
	Type string
	ID   string
}

// SavedObject is a single find hit.
type SavedObject struct {
	ID               string
	Type             string
	Namespaces       []string
	Attributes       json.RawMessage
	References       []ObjectReference
	MigrationVersion map[string]string
	UpdatedAt        string
	Version          string
	Workspaces       []string
	OriginID         string
	Score            float64
}

// Page is one page of find results.
type Page struct {
	Page         int
	PerPage      int
	Total        int
	SavedObjects []SavedObject
}
