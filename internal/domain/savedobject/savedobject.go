// Package savedobject is the read model returned by find.
package savedobject

import (
	"encoding/base64"
	"encoding/json"
	"fmt"
	"strings"

	"github.com/kailas-cloud/savedobjects/internal/domain/namespace"
)

// Reference points from one saved object to another.
type Reference struct {
	Name string
	Type string
	ID   string
}

// SavedObject is a single find hit.
type SavedObject struct {
	ID               string
	Type             string
	Namespaces       []string
	Attributes       json.RawMessage
	References       []Reference
	MigrationVersion map[string]string
	UpdatedAt        string
	Version          string
	Workspaces       []string
	OriginID         string
	Score            float64
}

// Page is one page of find results.
type Page struct {
	Page         int
	PerPage      int
	Total        int
	SavedObjects []SavedObject
}

// EmptyPage returns a page with no hits.
func EmptyPage(page, perPage int) Page {
	return Page{Page: page, PerPage: perPage, SavedObjects: []SavedObject{}}
}

// RawID builds the document id stored in the index: "[<namespace>:]<type>:<id>".
// The default namespace adds no prefix.
func RawID(ns, typ, id string) string {
	if ns == "" || ns == namespace.Default {
		return typ + ":" + id
	}
	return ns + ":" + typ + ":" + id
}

// TrimRawID strips the namespace and type prefix from a raw document id.
// Ids without the expected prefix are returned unchanged.
func TrimRawID(rawID, ns, typ string) string {
	prefix := typ + ":"
	if ns != "" {
		prefix = ns + ":" + prefix
	}
	id, ok := strings.CutPrefix(rawID, prefix)
	if !ok {
		return rawID
	}
	return id
}

// EncodeVersion renders the optimistic-concurrency token of a document.
func EncodeVersion(seqNo, primaryTerm int64) string {
	return base64.StdEncoding.EncodeToString([]byte(fmt.Sprintf("[%d,%d]", seqNo, primaryTerm)))
}

// DecodeVersion parses a token produced by EncodeVersion.
func DecodeVersion(version string) (seqNo, primaryTerm int64, err error) {
	raw, err := base64.StdEncoding.DecodeString(version)
	if err != nil {
		return 0, 0, fmt.Errorf("invalid version %q: %w", version, err)
	}
	var pair []int64
	if err := json.Unmarshal(raw, &pair); err != nil || len(pair) != 2 {
		return 0, 0, fmt.Errorf("invalid version %q", version)
	}
	return pair[0], pair[1], nil
}
