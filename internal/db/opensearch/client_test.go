package opensearch

import (
	"context"
	"encoding/json"
	"errors"
	"io"
	"net/http"
	"net/http/httptest"
	"strings"
	"sync/atomic"
	"testing"
	"time"

	"go.uber.org/zap"

	"github.com/kailas-cloud/savedobjects/internal/db"
	"github.com/kailas-cloud/savedobjects/internal/domain"
	"github.com/kailas-cloud/savedobjects/internal/domain/search/dsl"
)

func newTestClient(t *testing.T, url string, serverless bool) *Client {
	t.Helper()
	c, err := NewClient(Config{
		URL:        url,
		Username:   "admin",
		Password:   "secret",
		Serverless: serverless,
		Timeout:    2 * time.Second,
		RetryMax:   1,
		Logger:     zap.NewNop(),
	})
	if err != nil {
		t.Fatalf("NewClient: %v", err)
	}
	t.Cleanup(c.Close)
	return c
}

const searchResponse = `{
	"took": 3,
	"hits": {
		"total": 2,
		"hits": [
			{"_id": "dashboard:abc", "_score": 1.5, "_seq_no": 7, "_primary_term": 1,
			 "_source": {"type": "dashboard", "dashboard": {"title": "Logs"}}},
			{"_id": "foo:config:xyz", "_score": 0.5,
			 "_source": {"type": "config", "namespace": "foo"}}
		]
	}
}`

func TestNewClient_InvalidURL(t *testing.T) {
	for _, u := range []string{"", "localhost:9200", "ftp://host"} {
		if _, err := NewClient(Config{URL: u}); err == nil {
			t.Errorf("NewClient(%q): expected error", u)
		}
	}
}

func TestClient_Search(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if r.Method != http.MethodPost {
			t.Errorf("method = %s, want POST", r.Method)
		}
		if r.URL.Path != "/.kibana/_search" {
			t.Errorf("path = %s, want /.kibana/_search", r.URL.Path)
		}
		if got := r.URL.Query().Get("preference"); got != "session-1" {
			t.Errorf("preference = %q, want session-1", got)
		}
		if user, pass, ok := r.BasicAuth(); !ok || user != "admin" || pass != "secret" {
			t.Errorf("basic auth = %q/%q/%v", user, pass, ok)
		}

		raw, _ := io.ReadAll(r.Body)
		var body map[string]any
		if err := json.Unmarshal(raw, &body); err != nil {
			t.Fatalf("request body: %v", err)
		}
		if body["from"] != float64(20) || body["size"] != float64(10) {
			t.Errorf("from/size = %v/%v", body["from"], body["size"])
		}
		if body["seq_no_primary_term"] != true {
			t.Errorf("seq_no_primary_term = %v", body["seq_no_primary_term"])
		}
		if _, ok := body["query"]; !ok {
			t.Error("query missing from body")
		}

		w.Header().Set("Content-Type", "application/json")
		_, _ = io.WriteString(w, searchResponse)
	}))
	defer server.Close()

	c := newTestClient(t, server.URL, false)
	res, err := c.Search(context.Background(), &db.SearchRequest{
		Index:            ".kibana",
		Query:            dsl.Bool{Filter: []dsl.Query{dsl.Term{Field: "type", Value: "dashboard"}}},
		From:             20,
		Size:             10,
		SeqNoPrimaryTerm: true,
		Preference:       "session-1",
	})
	if err != nil {
		t.Fatalf("Search: %v", err)
	}

	if res.Total != 2 {
		t.Errorf("Total = %d, want 2", res.Total)
	}
	if len(res.Hits) != 2 {
		t.Fatalf("len(Hits) = %d, want 2", len(res.Hits))
	}
	h := res.Hits[0]
	if h.ID != "dashboard:abc" || h.Score != 1.5 || !h.HasVersion || h.SeqNo != 7 || h.PrimaryTerm != 1 {
		t.Errorf("hit[0] = %+v", h)
	}
	if res.Hits[1].HasVersion {
		t.Error("hit[1] should not carry a version")
	}
	if string(res.Hits[1].Source) == "" {
		t.Error("hit[1] source is empty")
	}
}

func TestClient_Search_TotalObject(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, _ *http.Request) {
		_, _ = io.WriteString(w, `{"hits":{"total":{"value":42,"relation":"eq"},"hits":[]}}`)
	}))
	defer server.Close()

	res, err := newTestClient(t, server.URL, false).Search(context.Background(), &db.SearchRequest{Index: "i"})
	if err != nil {
		t.Fatalf("Search: %v", err)
	}
	if res.Total != 42 {
		t.Errorf("Total = %d, want 42", res.Total)
	}
}

func TestClient_Search_IndexNotFound(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, _ *http.Request) {
		w.WriteHeader(http.StatusNotFound)
		_, _ = io.WriteString(w, `{"error":{"type":"index_not_found_exception","reason":"no such index [.kibana]"},"status":404}`)
	}))
	defer server.Close()

	_, err := newTestClient(t, server.URL, false).Search(context.Background(), &db.SearchRequest{Index: ".kibana"})
	if !errors.Is(err, db.ErrIndexNotFound) {
		t.Fatalf("err = %v, want ErrIndexNotFound", err)
	}
	var dbErr *db.Error
	if !errors.As(err, &dbErr) || dbErr.Op != db.OpSearch {
		t.Errorf("db.Error = %+v, want op %q", dbErr, db.OpSearch)
	}
}

func TestClient_Search_BadRequest(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, _ *http.Request) {
		w.WriteHeader(http.StatusBadRequest)
		_, _ = io.WriteString(w, `{"error":{"type":"parsing_exception","reason":"unknown query [foo]"},"status":400}`)
	}))
	defer server.Close()

	_, err := newTestClient(t, server.URL, false).Search(context.Background(), &db.SearchRequest{Index: "i"})
	if !errors.Is(err, domain.ErrSearchBackend) {
		t.Fatalf("err = %v, want ErrSearchBackend", err)
	}
	want := "_search: search backend error: status 400: unknown query [foo]"
	if err.Error() != want {
		t.Errorf("err = %q, want %q", err, want)
	}
}

func TestClient_Search_ResponseLimits(t *testing.T) {
	tests := []struct {
		name    string
		status  int
		body    string
		max     int64
		wantMsg string
	}{
		{
			name:    "oversized success body",
			status:  http.StatusOK,
			body:    searchResponse,
			max:     64,
			wantMsg: "response body exceeds 64 bytes",
		},
		{
			name:    "oversized error body is cut",
			status:  http.StatusBadRequest,
			body:    strings.Repeat("x", errorBodyLimit*2),
			wantMsg: "status 400: Bad Request",
		},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, _ *http.Request) {
				w.WriteHeader(tt.status)
				_, _ = io.WriteString(w, tt.body)
			}))
			defer server.Close()

			c, err := NewClient(Config{URL: server.URL, MaxResponseBytes: tt.max})
			if err != nil {
				t.Fatalf("NewClient: %v", err)
			}
			defer c.Close()

			_, err = c.Search(context.Background(), &db.SearchRequest{Index: ".kibana"})
			if !errors.Is(err, domain.ErrSearchBackend) {
				t.Fatalf("err = %v, want ErrSearchBackend", err)
			}
			if !strings.Contains(err.Error(), tt.wantMsg) {
				t.Errorf("err = %q, want it to contain %q", err, tt.wantMsg)
			}
		})
	}
}

func TestClient_Search_RetriesServerErrors(t *testing.T) {
	var calls atomic.Int32
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, _ *http.Request) {
		if calls.Add(1) == 1 {
			w.WriteHeader(http.StatusServiceUnavailable)
			return
		}
		_, _ = io.WriteString(w, `{"hits":{"total":0,"hits":[]}}`)
	}))
	defer server.Close()

	if _, err := newTestClient(t, server.URL, false).Search(context.Background(), &db.SearchRequest{Index: "i"}); err != nil {
		t.Fatalf("Search: %v", err)
	}
	if got := calls.Load(); got != 2 {
		t.Errorf("calls = %d, want 2", got)
	}
}

func TestClient_Search_GivesUp(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, _ *http.Request) {
		w.WriteHeader(http.StatusBadGateway)
	}))
	defer server.Close()

	_, err := newTestClient(t, server.URL, false).Search(context.Background(), &db.SearchRequest{Index: "i"})
	if !errors.Is(err, domain.ErrSearchBackend) {
		t.Fatalf("err = %v, want ErrSearchBackend", err)
	}
}

func TestClient_WaitForReady(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, _ *http.Request) {
		_, _ = io.WriteString(w, `{"cluster_name":"test"}`)
	}))
	defer server.Close()

	if err := newTestClient(t, server.URL, false).WaitForReady(context.Background(), time.Second); err != nil {
		t.Fatalf("WaitForReady: %v", err)
	}
}

func TestClient_WaitForReady_Timeout(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, _ *http.Request) {
		w.WriteHeader(http.StatusUnauthorized)
	}))
	defer server.Close()

	err := newTestClient(t, server.URL, false).WaitForReady(context.Background(), 300*time.Millisecond)
	if err == nil {
		t.Fatal("expected timeout")
	}
}
