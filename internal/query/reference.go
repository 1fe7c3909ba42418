package query

import (
	"github.com/kailas-cloud/savedobjects/internal/domain/find"
	"github.com/kailas-cloud/savedobjects/internal/domain/search/dsl"
)

const referencesPath = "references"

// referenceClause requires a nested reference entry matching both id and type.
func referenceClause(ref find.Reference) dsl.Bool {
	return dsl.Bool{
		Must: []dsl.Query{
			dsl.Nested{
				Path: referencesPath,
				Query: dsl.Bool{Must: []dsl.Query{
					dsl.Term{Field: referencesPath + ".id", Value: ref.ID},
					dsl.Term{Field: referencesPath + ".type", Value: ref.Type},
				}},
			},
		},
	}
}

// workspaceClause requires membership in at least one of workspaces.
// An empty, non-nil list matches nothing.
func workspaceClause(workspaces []string) dsl.Bool {
	should := make([]dsl.Query, 0, len(workspaces))
	for _, ws := range workspaces {
		should = append(should, dsl.Bool{
			Must: []dsl.Query{dsl.Term{Field: "workspaces", Value: ws}},
		})
	}
	return dsl.Bool{Should: should, MinimumShouldMatch: 1}
}
