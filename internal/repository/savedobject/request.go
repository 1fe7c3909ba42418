package savedobject

import (
	"slices"

	"github.com/kailas-cloud/savedobjects/internal/db"
	"github.com/kailas-cloud/savedobjects/internal/domain/find"
)

// Engine metadata fields sortable without an unmapped type.
var topLevelSortFields = []string{"_id", "_score"}

// Fields stored at the document root rather than under the type name.
var rootFields = []string{
	"type", "namespace", "namespaces", "updated_at", "references",
	"migrationVersion", "workspaces", "originId",
}

// sortField resolves the sort key. Attributes are qualified by the type when
// exactly one type is searched; root fields sort as-is.
func sortField(field string, order find.SortOrder, types []string) db.SortField {
	if order == "" {
		order = find.SortAsc
	}
	if slices.Contains(topLevelSortFields, field) {
		return db.SortField{Field: field, Order: string(order)}
	}
	key := field
	if len(types) == 1 && !slices.Contains(rootFields, field) {
		key = types[0] + "." + field
	}
	return db.SortField{Field: key, Order: string(order), UnmappedType: "keyword"}
}

// includedFields lists the _source paths needed to return fields of types.
func includedFields(types, fields []string) []string {
	out := make([]string, 0, len(types)*len(fields)+len(rootFields)+len(fields))
	for _, t := range types {
		for _, f := range fields {
			out = append(out, t+"."+f)
		}
	}
	out = append(out, rootFields...)
	return append(out, fields...)
}
