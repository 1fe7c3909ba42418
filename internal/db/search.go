package db

import (
	"encoding/json"

	"github.com/kailas-cloud/savedobjects/internal/domain/search/dsl"
)

// SortField orders hits by a single field.
type SortField struct {
	Field        string
	Order        string
	UnmappedType string
}

// SearchRequest is the input of a search call.
type SearchRequest struct {
	Index            string
	Query            dsl.Bool
	From             int
	Size             int
	Sort             []SortField
	Source           []string
	SeqNoPrimaryTerm bool
	// Preference is sent as a URL parameter, not in the body.
	Preference string
}

// MarshalJSON encodes the request body.
func (r *SearchRequest) MarshalJSON() ([]byte, error) {
	body := map[string]any{
		"query": r.Query,
		"from":  r.From,
		"size":  r.Size,
	}
	if len(r.Sort) > 0 {
		sort := make([]map[string]any, 0, len(r.Sort))
		for _, s := range r.Sort {
			clause := map[string]any{"order": s.Order}
			if s.UnmappedType != "" {
				clause["unmapped_type"] = s.UnmappedType
			}
			sort = append(sort, map[string]any{s.Field: clause})
		}
		body["sort"] = sort
	}
	if len(r.Source) > 0 {
		body["_source"] = r.Source
	}
	if r.SeqNoPrimaryTerm {
		body["seq_no_primary_term"] = true
	}
	return json.Marshal(body)
}

// SearchResult is the output of a search operation.
type SearchResult struct {
	Total int
	Hits  []Hit
}

// Hit is a single raw document returned by a search.
type Hit struct {
	ID          string
	Score       float64
	SeqNo       int64
	PrimaryTerm int64
	// HasVersion is set when the hit carried _seq_no and _primary_term.
	HasVersion bool
	// Source is the raw _source JSON object.
	Source []byte
}
