package savedobjects

import (
	"fmt"
	"strings"

	"github.com/kailas-cloud/savedobjects/internal/domain"
	domfind "github.com/kailas-cloud/savedobjects/internal/domain/find"
	domobj "github.com/kailas-cloud/savedobjects/internal/domain/savedobject"
	"github.com/kailas-cloud/savedobjects/internal/domain/search/filter"
)

func findOptionsToDomain(o FindOptions) (domfind.Options, error) {
	operator, err := domfind.ParseOperator(strings.ToUpper(o.DefaultSearchOperator))
	if err != nil {
		return domfind.Options{}, fmt.Errorf("%w: %w", domain.ErrInvalidQueryParameter, err)
	}

	out := domfind.Options{
		Types:                 o.Types,
		Namespaces:            o.Namespaces,
		Search:                o.Search,
		SearchFields:          o.SearchFields,
		RootSearchFields:      o.RootSearchFields,
		DefaultSearchOperator: operator,
		Workspaces:            o.Workspaces,
		Page:                  o.Page,
		PerPage:               o.PerPage,
		SortField:             o.SortField,
		SortOrder:             domfind.SortOrder(strings.ToLower(o.SortOrder)),
		Fields:                o.Fields,
		Preference:            o.Preference,
	}
	if o.TypeToNamespaces != nil {
		m := domfind.NewTypeNamespaces()
		for _, tn := range o.TypeToNamespaces {
			m.Set(tn.Type, tn.Namespaces)
		}
		out.TypeToNamespaces = m
	}
	if o.HasReference != nil {
		out.HasReference = &domfind.Reference{Type: o.HasReference.Type, ID: o.HasReference.ID}
	}
	if len(o.Filter) > 0 {
		expr, err := filter.Parse(o.Filter)
		if err != nil {
			return domfind.Options{}, fmt.Errorf("%w: %w", domain.ErrFilterSyntax, err)
		}
		if !expr.IsEmpty() {
			out.Filter = expr
		}
	}
	return out, nil
}

func pageFromDomain(p domobj.Page) Page {
	objects := make([]SavedObject, len(p.SavedObjects))
	for i, o := range p.SavedObjects {
		refs := make([]ObjectReference, len(o.References))
		for j, r := range o.References {
			refs[j] = ObjectReference{Name: r.Name, Type: r.Type, ID: r.ID}
		}
		objects[i] = SavedObject{
			ID:               o.ID,
			Type:             o.Type,
			Namespaces:       o.Namespaces,
			Attributes:       o.Attributes,
			References:       refs,
			MigrationVersion: o.MigrationVersion,
			UpdatedAt:        o.UpdatedAt,
			Version:          o.Version,
			Workspaces:       o.Workspaces,
			OriginID:         o.OriginID,
			Score:            o.Score,
		}
	}
	return Page{
		Page:         p.Page,
		PerPage:      p.PerPage,
		Total:        p.Total,
		SavedObjects: objects,
	}
}
