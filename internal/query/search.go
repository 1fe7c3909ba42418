package query

import (
	"strconv"
	"strings"
	"unicode"

	"github.com/kailas-cloud/savedobjects/internal/domain/find"
	"github.com/kailas-cloud/savedobjects/internal/domain/search/dsl"
)

const (
	prefixWildcard = "*"
	boostSeparator = "^"
)

// IsPrefixSearch reports whether search, ignoring surrounding whitespace,
// ends with the prefix wildcard.
func IsPrefixSearch(search string) bool {
	return strings.HasSuffix(strings.TrimSpace(search), prefixWildcard)
}

// simpleQueryStringClause builds the free-text clause. Fields are the root
// fields followed by every search field qualified by every type, in
// field-major order. Boost suffixes are kept verbatim. With no fields at all
// the query runs leniently over every field.
func simpleQueryStringClause(search string, types, searchFields, rootSearchFields []string, op find.Operator) dsl.SimpleQueryString {
	q := dsl.SimpleQueryString{Query: search, DefaultOperator: string(op)}

	fields := make([]string, 0, len(rootSearchFields)+len(searchFields)*len(types))
	fields = append(fields, rootSearchFields...)
	for _, field := range searchFields {
		for _, t := range types {
			fields = append(fields, t+"."+field)
		}
	}
	if len(fields) == 0 {
		q.Lenient = true
		fields = []string{prefixWildcard}
	}
	q.Fields = fields
	return q
}

// prefixClauses builds one match_phrase_prefix clause per (field, type)
// pair. The all-fields wildcard is ignored here; when nothing is left, each
// type's default search field is used and types without one are skipped.
func prefixClauses(reg Registry, search string, types, searchFields []string) []dsl.Query {
	prefix := strings.TrimSuffix(strings.TrimSpace(search), prefixWildcard)

	var fields []string
	for _, f := range searchFields {
		if f != prefixWildcard {
			fields = append(fields, f)
		}
	}

	var out []dsl.Query
	if len(fields) == 0 {
		for _, t := range types {
			field := reg.DefaultSearchField(t)
			if field == "" {
				continue
			}
			out = append(out, prefixClause(t, field, prefix))
		}
		return out
	}
	for _, f := range fields {
		for _, t := range types {
			out = append(out, prefixClause(t, f, prefix))
		}
	}
	return out
}

func prefixClause(typ, rawField, prefix string) dsl.MatchPhrasePrefix {
	name, boost := parseFieldBoost(rawField)
	return dsl.MatchPhrasePrefix{Field: typ + "." + name, Query: prefix, Boost: boost}
}

// parseFieldBoost splits "title^3" into ("title", 3). A missing or
// unparsable boost is 1. The boost is read like a leading integer, so
// "title^2.5" boosts by 2 and "title^3x" by 3.
func parseFieldBoost(raw string) (string, int) {
	name, rest, found := strings.Cut(raw, boostSeparator)
	if !found {
		return name, 1
	}
	rawBoost, _, _ := strings.Cut(rest, boostSeparator)
	return name, leadingInt(rawBoost, 1)
}

func leadingInt(s string, fallback int) int {
	s = strings.TrimLeftFunc(s, unicode.IsSpace)
	end := 0
	if end < len(s) && (s[end] == '+' || s[end] == '-') {
		end++
	}
	digits := end
	for end < len(s) && s[end] >= '0' && s[end] <= '9' {
		end++
	}
	if end == digits {
		return fallback
	}
	n, err := strconv.Atoi(s[:end])
	if err != nil {
		return fallback
	}
	return n
}
