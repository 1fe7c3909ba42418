// Package namespace defines how saved-object types are scoped to namespaces.
package namespace

import "fmt"

// Reserved namespace tokens.
const (
	// Default is the implicit namespace. Single-namespace objects in it carry
	// no namespace field at all.
	Default = "default"
	// Wildcard in a requested namespace list is read as Default.
	Wildcard = "*"
	// All tags shareable objects that are visible from every namespace.
	All = "*"
)

// Mode is the namespace-scoping mode of a saved-object type.
type Mode int

// Namespace modes.
const (
	// Isolated objects live in exactly one namespace ("single").
	Isolated Mode = iota
	// Shareable objects may live in several namespaces ("multiple").
	Shareable
	// Global objects ignore namespaces ("agnostic").
	Global
)

// String returns the registration name of the mode.
func (m Mode) String() string {
	switch m {
	case Isolated:
		return "single"
	case Shareable:
		return "multiple"
	case Global:
		return "agnostic"
	default:
		return fmt.Sprintf("Mode(%d)", int(m))
	}
}

// ParseMode parses a registration name. Empty defaults to Isolated.
func ParseMode(s string) (Mode, error) {
	switch s {
	case "", "single", "isolated":
		return Isolated, nil
	case "multiple", "shareable":
		return Shareable, nil
	case "agnostic", "global":
		return Global, nil
	default:
		return 0, fmt.Errorf("invalid namespace type: %q", s)
	}
}

// Normalize maps the wildcard to Default and removes duplicates, keeping the
// first occurrence of each namespace. A nil list stays nil.
func Normalize(namespaces []string) []string {
	if namespaces == nil {
		return nil
	}
	out := make([]string, 0, len(namespaces))
	seen := make(map[string]struct{}, len(namespaces))
	for _, ns := range namespaces {
		if ns == Wildcard {
			ns = Default
		}
		if _, ok := seen[ns]; ok {
			continue
		}
		seen[ns] = struct{}{}
		out = append(out, ns)
	}
	return out
}

// OrDefault returns namespaces, or [Default] when the list is absent.
func OrDefault(namespaces []string) []string {
	if namespaces == nil {
		return []string{Default}
	}
	return namespaces
}
