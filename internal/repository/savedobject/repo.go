package savedobject

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"

	"github.com/tidwall/gjson"

	"github.com/kailas-cloud/savedobjects/internal/db"
	"github.com/kailas-cloud/savedobjects/internal/domain/find"
	"github.com/kailas-cloud/savedobjects/internal/domain/namespace"
	domobj "github.com/kailas-cloud/savedobjects/internal/domain/savedobject"
	"github.com/kailas-cloud/savedobjects/internal/domain/search/dsl"
)

// store is the consumer interface for search operations (ISP).
type store interface {
	Search(ctx context.Context, req *db.SearchRequest) (*db.SearchResult, error)
}

// registry resolves how hits of a type carry their namespaces.
type registry interface {
	NamespaceMode(name string) namespace.Mode
}

// Repo implements usecase/find.Repository.
type Repo struct {
	store    store
	registry registry
	index    string
}

// New creates a saved-object repository over index.
func New(s store, reg registry, index string) *Repo {
	return &Repo{store: s, registry: reg, index: index}
}

// Find runs a compiled document over types with the paging, sorting and
// projection of opts, and converts the hits. A missing index yields an
// empty page.
func (r *Repo) Find(ctx context.Context, doc dsl.Document, types []string, opts *find.Options) (domobj.Page, error) {
	sr, err := r.store.Search(ctx, r.searchRequest(doc, types, opts))
	if err != nil {
		if errors.Is(err, db.ErrIndexNotFound) {
			return domobj.EmptyPage(opts.Page, opts.PerPage), nil
		}
		return domobj.Page{}, fmt.Errorf("find in %s: %w", r.index, err)
	}

	objects := make([]domobj.SavedObject, 0, len(sr.Hits))
	for _, hit := range sr.Hits {
		objects = append(objects, r.fromHit(hit))
	}
	return domobj.Page{
		Page:         opts.Page,
		PerPage:      opts.PerPage,
		Total:        sr.Total,
		SavedObjects: objects,
	}, nil
}

func (r *Repo) searchRequest(doc dsl.Document, types []string, opts *find.Options) *db.SearchRequest {
	req := &db.SearchRequest{
		Index:            r.index,
		Query:            doc.Query,
		From:             opts.PerPage * (opts.Page - 1),
		Size:             opts.PerPage,
		SeqNoPrimaryTerm: true,
		Preference:       opts.Preference,
	}
	if opts.SortField != "" {
		req.Sort = []db.SortField{sortField(opts.SortField, opts.SortOrder, types)}
	}
	if len(opts.Fields) > 0 {
		req.Source = includedFields(types, opts.Fields)
	}
	return req
}

// fromHit converts a raw engine hit. Attributes live under the type name.
func (r *Repo) fromHit(hit db.Hit) domobj.SavedObject {
	src := gjson.ParseBytes(hit.Source)
	typ := src.Get("type").String()
	ns := src.Get("namespace").String()

	obj := domobj.SavedObject{
		ID:         domobj.TrimRawID(hit.ID, ns, typ),
		Type:       typ,
		UpdatedAt:  src.Get("updated_at").String(),
		OriginID:   src.Get("originId").String(),
		Score:      hit.Score,
		Workspaces: stringArray(src.Get("workspaces")),
		Attributes: json.RawMessage("{}"),
	}
	if attrs := src.Get(gjson.Escape(typ)); attrs.IsObject() {
		obj.Attributes = json.RawMessage(attrs.Raw)
	}
	if hit.HasVersion {
		obj.Version = domobj.EncodeVersion(hit.SeqNo, hit.PrimaryTerm)
	}

	switch r.registry.NamespaceMode(typ) {
	case namespace.Shareable:
		obj.Namespaces = stringArray(src.Get("namespaces"))
	case namespace.Isolated:
		if ns == "" {
			ns = namespace.Default
		}
		obj.Namespaces = []string{ns}
	case namespace.Global:
		// global objects carry no namespaces
	}

	for _, ref := range src.Get("references").Array() {
		obj.References = append(obj.References, domobj.Reference{
			Name: ref.Get("name").String(),
			Type: ref.Get("type").String(),
			ID:   ref.Get("id").String(),
		})
	}
	if mv := src.Get("migrationVersion"); mv.IsObject() {
		obj.MigrationVersion = make(map[string]string)
		mv.ForEach(func(k, v gjson.Result) bool {
			obj.MigrationVersion[k.String()] = v.String()
			return true
		})
	}
	return obj
}

func stringArray(res gjson.Result) []string {
	if !res.IsArray() {
		return nil
	}
	arr := res.Array()
	out := make([]string, 0, len(arr))
	for _, v := range arr {
		out = append(out, v.String())
	}
	return out
}
