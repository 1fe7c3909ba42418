package chi

import (
	"encoding/json"

	domobj "github.com/kailas-cloud/savedobjects/internal/domain/savedobject"
)

type findResponse struct {
	Page         int                   `json:"page"`
	PerPage      int                   `json:"per_page"`
	Total        int                   `json:"total"`
	SavedObjects []savedObjectResponse `json:"saved_objects"`
}

type referenceResponse struct {
	Name string `json:"name"`
	Type string `json:"type"`
	ID   string `json:"id"`
}

type savedObjectResponse struct {
	ID               string              `json:"id"`
	Type             string              `json:"type"`
	Namespaces       []string            `json:"namespaces,omitempty"`
	UpdatedAt        string              `json:"updated_at,omitempty"`
	Version          string              `json:"version,omitempty"`
	Attributes       json.RawMessage     `json:"attributes"`
	References       []referenceResponse `json:"references"`
	MigrationVersion map[string]string   `json:"migrationVersion,omitempty"`
	Workspaces       []string            `json:"workspaces,omitempty"`
	OriginID         string              `json:"originId,omitempty"`
	Score            float64             `json:"score"`
}

func pageToResponse(p domobj.Page) findResponse {
	objects := make([]savedObjectResponse, len(p.SavedObjects))
	for i, o := range p.SavedObjects {
		objects[i] = savedObjectToResponse(o)
	}
	return findResponse{
		Page:         p.Page,
		PerPage:      p.PerPage,
		Total:        p.Total,
		SavedObjects: objects,
	}
}

func savedObjectToResponse(o domobj.SavedObject) savedObjectResponse {
	refs := make([]referenceResponse, len(o.References))
	for i, r := range o.References {
		refs[i] = referenceResponse{Name: r.Name, Type: r.Type, ID: r.ID}
	}
	attrs := o.Attributes
	if len(attrs) == 0 {
		attrs = json.RawMessage("{}")
	}
	return savedObjectResponse{
		ID:               o.ID,
		Type:             o.Type,
		Namespaces:       o.Namespaces,
		UpdatedAt:        o.UpdatedAt,
		Version:          o.Version,
		Attributes:       attrs,
		References:       refs,
		MigrationVersion: o.MigrationVersion,
		Workspaces:       o.Workspaces,
		OriginID:         o.OriginID,
		Score:            o.Score,
	}
}
