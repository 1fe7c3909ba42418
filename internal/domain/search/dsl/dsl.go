// Package dsl models the boolean query document sent to the search engine.
//
// Every node marshals to the engine's JSON query language. Node types are
// plain values so whole trees compare with reflect.DeepEqual.
package dsl

import "encoding/json"

// Query is a node of a query tree.
type Query interface {
	json.Marshaler
	queryNode()
}

// Document is the top-level search body: {"query": {"bool": ...}}.
type Document struct {
	Query Bool `json:"query"`
}

// Bool combines clauses with must/should/must_not/filter semantics.
type Bool struct {
	Must    []Query
	Should  []Query
	MustNot []Query
	Filter  []Query
	// MinimumShouldMatch is omitted when zero. When set, should is always
	// emitted, even empty, which makes the clause unsatisfiable.
	MinimumShouldMatch int
}

func (Bool) queryNode() {}

// MarshalJSON implements json.Marshaler.
func (b Bool) MarshalJSON() ([]byte, error) {
	body := make(map[string]any, 5)
	if len(b.Must) > 0 {
		body["must"] = b.Must
	}
	if len(b.Should) > 0 {
		body["should"] = b.Should
	}
	if len(b.MustNot) > 0 {
		body["must_not"] = b.MustNot
	}
	if len(b.Filter) > 0 {
		body["filter"] = b.Filter
	}
	if b.MinimumShouldMatch > 0 {
		if len(b.Should) == 0 {
			body["should"] = []Query{}
		}
		body["minimum_should_match"] = b.MinimumShouldMatch
	}
	return json.Marshal(map[string]any{"bool": body})
}

// Term matches an exact value.
type Term struct {
	Field string
	Value any
}

func (Term) queryNode() {}

// MarshalJSON implements json.Marshaler.
func (t Term) MarshalJSON() ([]byte, error) {
	return json.Marshal(map[string]any{"term": map[string]any{t.Field: t.Value}})
}

// Terms matches any of the given values.
type Terms struct {
	Field  string
	Values []string
}

func (Terms) queryNode() {}

// MarshalJSON implements json.Marshaler.
func (t Terms) MarshalJSON() ([]byte, error) {
	values := t.Values
	if values == nil {
		values = []string{}
	}
	return json.Marshal(map[string]any{"terms": map[string]any{t.Field: values}})
}

// Exists matches documents that carry the field.
type Exists struct {
	Field string
}

func (Exists) queryNode() {}

// MarshalJSON implements json.Marshaler.
func (e Exists) MarshalJSON() ([]byte, error) {
	return json.Marshal(map[string]any{"exists": map[string]string{"field": e.Field}})
}

// Nested runs a query against nested objects under Path.
type Nested struct {
	Path  string
	Query Query
}

func (Nested) queryNode() {}

// MarshalJSON implements json.Marshaler.
func (n Nested) MarshalJSON() ([]byte, error) {
	return json.Marshal(map[string]any{"nested": map[string]any{"path": n.Path, "query": n.Query}})
}

// SimpleQueryString is a tokenized free-text query.
type SimpleQueryString struct {
	Query   string
	Fields  []string
	Lenient bool
	// DefaultOperator is omitted when empty.
	DefaultOperator string
}

func (SimpleQueryString) queryNode() {}

// MarshalJSON implements json.Marshaler.
func (s SimpleQueryString) MarshalJSON() ([]byte, error) {
	body := map[string]any{"query": s.Query}
	if len(s.Fields) > 0 {
		body["fields"] = s.Fields
	}
	if s.Lenient {
		body["lenient"] = true
	}
	if s.DefaultOperator != "" {
		body["default_operator"] = s.DefaultOperator
	}
	return json.Marshal(map[string]any{"simple_query_string": body})
}

// MatchPhrasePrefix matches the query as a phrase whose last term is a prefix.
type MatchPhrasePrefix struct {
	Field string
	Query string
	Boost int
}

func (MatchPhrasePrefix) queryNode() {}

// MarshalJSON implements json.Marshaler.
func (m MatchPhrasePrefix) MarshalJSON() ([]byte, error) {
	return json.Marshal(map[string]any{
		"match_phrase_prefix": map[string]any{
			m.Field: map[string]any{"query": m.Query, "boost": m.Boost},
		},
	})
}

// Range bounds a numeric field. Nil bounds are omitted.
type Range struct {
	Field string
	GT    *float64
	GTE   *float64
	LT    *float64
	LTE   *float64
}

func (Range) queryNode() {}

// MarshalJSON implements json.Marshaler.
func (r Range) MarshalJSON() ([]byte, error) {
	bounds := make(map[string]float64, 4)
	if r.GT != nil {
		bounds["gt"] = *r.GT
	}
	if r.GTE != nil {
		bounds["gte"] = *r.GTE
	}
	if r.LT != nil {
		bounds["lt"] = *r.LT
	}
	if r.LTE != nil {
		bounds["lte"] = *r.LTE
	}
	return json.Marshal(map[string]any{"range": map[string]any{r.Field: bounds}})
}
