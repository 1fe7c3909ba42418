package chi

import (
	"fmt"
	"net/url"
	"strings"

	"github.com/oapi-codegen/runtime"
	"github.com/tidwall/gjson"

	"github.com/kailas-cloud/savedobjects/internal/domain"
	domfind "github.com/kailas-cloud/savedobjects/internal/domain/find"
	"github.com/kailas-cloud/savedobjects/internal/domain/search/filter"
)

// findOptionsFromQuery decodes the query string of a find request.
func findOptionsFromQuery(q url.Values) (domfind.Options, error) {
	opts := domfind.Options{
		Types:            listParam(q, "type"),
		Search:           q.Get("search"),
		SearchFields:     listParam(q, "search_fields"),
		RootSearchFields: listParam(q, "root_search_fields"),
		Workspaces:       listParam(q, "workspaces"),
		SortField:        q.Get("sort_field"),
		SortOrder:        domfind.SortOrder(strings.ToLower(q.Get("sort_order"))),
		Fields:           listParam(q, "fields"),
		Preference:       q.Get("preference"),
	}

	// A present but empty namespaces parameter is an explicit empty list.
	if _, ok := q["namespaces"]; ok {
		opts.Namespaces = listParam(q, "namespaces")
		if opts.Namespaces == nil {
			opts.Namespaces = []string{}
		}
	}

	var err error
	if opts.DefaultSearchOperator, err = domfind.ParseOperator(strings.ToUpper(q.Get("default_search_operator"))); err != nil {
		return domfind.Options{}, fmt.Errorf("%w: %w", domain.ErrInvalidQueryParameter, err)
	}
	if opts.Page, err = intParam(q, "page"); err != nil {
		return domfind.Options{}, err
	}
	if opts.PerPage, err = intParam(q, "per_page"); err != nil {
		return domfind.Options{}, err
	}
	if raw := q.Get("type_to_namespaces"); raw != "" {
		if opts.TypeToNamespaces, err = parseTypeNamespaces(raw); err != nil {
			return domfind.Options{}, err
		}
	}
	if raw := q.Get("has_reference"); raw != "" {
		if opts.HasReference, err = parseReference(raw); err != nil {
			return domfind.Options{}, err
		}
	}
	if raw := q.Get("filter"); raw != "" {
		expr, err := filter.Parse([]byte(raw))
		if err != nil {
			return domfind.Options{}, fmt.Errorf("%w: %w", domain.ErrFilterSyntax, err)
		}
		if !expr.IsEmpty() {
			opts.Filter = expr
		}
	}
	return opts, nil
}

// listParam collects a repeatable, comma-separated parameter. Returns nil
// when no non-blank value is given.
func listParam(q url.Values, key string) []string {
	var out []string
	for _, v := range q[key] {
		for _, item := range strings.Split(v, ",") {
			if item = strings.TrimSpace(item); item != "" {
				out = append(out, item)
			}
		}
	}
	return out
}

func intParam(q url.Values, key string) (int, error) {
	var n int
	if err := runtime.BindQueryParameter("form", true, false, key, q, &n); err != nil {
		return 0, fmt.Errorf("%w: %s must be an integer", domain.ErrInvalidQueryParameter, key)
	}
	if n < 0 {
		return 0, fmt.Errorf("%w: %s must not be negative", domain.ErrInvalidQueryParameter, key)
	}
	return n, nil
}

// parseReference decodes {"type":"index-pattern","id":"logs"}.
func parseReference(raw string) (*domfind.Reference, error) {
	if !gjson.Valid(raw) {
		return nil, fmt.Errorf("%w: has_reference is not valid JSON", domain.ErrInvalidQueryParameter)
	}
	res := gjson.Parse(raw)
	typ, id := res.Get("type"), res.Get("id")
	if !res.IsObject() || typ.Type != gjson.String || id.Type != gjson.String {
		return nil, fmt.Errorf("%w: has_reference must be an object with string type and id", domain.ErrInvalidQueryParameter)
	}
	return &domfind.Reference{Type: typ.String(), ID: id.String()}, nil
}

// parseTypeNamespaces decodes {"dashboard":["foo"],"config":null}, keeping
// key order. A null value scopes the type to the default namespace.
func parseTypeNamespaces(raw string) (*domfind.TypeNamespaces, error) {
	res := gjson.Parse(raw)
	if !gjson.Valid(raw) || !res.IsObject() {
		return nil, fmt.Errorf("%w: type_to_namespaces must be a JSON object", domain.ErrInvalidQueryParameter)
	}

	m := domfind.NewTypeNamespaces()
	var err error
	res.ForEach(func(k, v gjson.Result) bool {
		switch {
		case v.Type == gjson.Null:
			m.Set(k.String(), nil)
		case v.IsArray():
			ns := make([]string, 0, len(v.Array()))
			for _, item := range v.Array() {
				if item.Type != gjson.String {
					err = fmt.Errorf("%w: type_to_namespaces[%q] must list strings", domain.ErrInvalidQueryParameter, k.String())
					return false
				}
				ns = append(ns, item.String())
			}
			m.Set(k.String(), ns)
		default:
			err = fmt.Errorf("%w: type_to_namespaces[%q] must be an array or null", domain.ErrInvalidQueryParameter, k.String())
			return false
		}
		return true
	})
	if err != nil {
		return nil, err
	}
	return m, nil
}
