package savedobject

import (
	"context"
	"testing"

	"github.com/kailas-cloud/savedobjects/internal/db"
	"github.com/kailas-cloud/savedobjects/internal/domain/namespace"
	"github.com/kailas-cloud/savedobjects/internal/domain/typeregistry"
)

// mockStore implements the consumer interface for tests.
type mockStore struct {
	searchFn func(ctx context.Context, req *db.SearchRequest) (*db.SearchResult, error)
	last     *db.SearchRequest
}

func (m *mockStore) Search(ctx context.Context, req *db.SearchRequest) (*db.SearchResult, error) {
	m.last = req
	if m.searchFn != nil {
		return m.searchFn(ctx, req)
	}
	return &db.SearchResult{}, nil
}

func newTestRepo(t *testing.T) (*Repo, *mockStore) {
	t.Helper()
	mk := func(name string, mode namespace.Mode) typeregistry.Type {
		typ, err := typeregistry.NewType(name, mode, "title", false)
		if err != nil {
			t.Fatalf("NewType: %v", err)
		}
		return typ
	}
	reg, err := typeregistry.New(
		mk("dashboard", namespace.Isolated),
		mk("index-pattern", namespace.Shareable),
		mk("data-source", namespace.Global),
	)
	if err != nil {
		t.Fatalf("typeregistry.New: %v", err)
	}
	ms := &mockStore{}
	return New(ms, reg, ".kibana"), ms
}
