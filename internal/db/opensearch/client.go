// Package opensearch implements db.Store over the OpenSearch REST API.
package opensearch

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strings"
	"time"

	"github.com/hashicorp/go-retryablehttp"
	"github.com/tidwall/gjson"
	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/trace"
	"go.uber.org/zap"

	"github.com/kailas-cloud/savedobjects/internal/db"
	"github.com/kailas-cloud/savedobjects/internal/domain"
	"github.com/kailas-cloud/savedobjects/internal/telemetry"
)

var tracer = otel.Tracer("internal/db/opensearch")

// Compile-time check: Client implements db.Store.
var _ db.Store = (*Client)(nil)

// maxErrorBody caps how much of an error response is kept for diagnostics.
const maxErrorBody = 4 << 10

// DefaultMaxResponseBytes bounds a successful response body. A full page of
// 10000 saved objects stays well below it.
const DefaultMaxResponseBytes = 256 << 20

// errorBodyLimit bounds how much of a non-2xx body is read at all.
const errorBodyLimit = 64 << 10

// Config holds connection parameters for an OpenSearch cluster.
type Config struct {
	URL        string
	Username   string
	Password   string
	Serverless bool
	Timeout    time.Duration
	RetryMax   int
	Logger     *zap.Logger
	// MaxResponseBytes caps response bodies. Default: DefaultMaxResponseBytes.
	MaxResponseBytes int64
}

// Client talks to the engine over HTTP with retries on transient failures.
type Client struct {
	baseURL    *url.URL
	username   string
	password   string
	serverless bool
	maxBody    int64
	http       *retryablehttp.Client
}

// NewClient creates an engine client.
func NewClient(cfg Config) (*Client, error) {
	if cfg.URL == "" {
		return nil, fmt.Errorf("url is required")
	}
	base, err := url.Parse(strings.TrimRight(cfg.URL, "/"))
	if err != nil {
		return nil, fmt.Errorf("invalid url %q: %w", cfg.URL, err)
	}
	if base.Scheme != "http" && base.Scheme != "https" {
		return nil, fmt.Errorf("invalid url %q: scheme must be http or https", cfg.URL)
	}

	hc := retryablehttp.NewClient()
	hc.RetryMax = cfg.RetryMax
	hc.RetryWaitMin = 50 * time.Millisecond
	hc.RetryWaitMax = time.Second
	hc.ErrorHandler = retryablehttp.PassthroughErrorHandler
	if cfg.Timeout > 0 {
		hc.HTTPClient.Timeout = cfg.Timeout
	}
	if cfg.Logger != nil {
		hc.Logger = leveledLogger{cfg.Logger.Sugar()}
	} else {
		hc.Logger = nil
	}

	maxBody := cfg.MaxResponseBytes
	if maxBody <= 0 {
		maxBody = DefaultMaxResponseBytes
	}

	return &Client{
		baseURL:    base,
		username:   cfg.Username,
		password:   cfg.Password,
		serverless: cfg.Serverless,
		maxBody:    maxBody,
		http:       hc,
	}, nil
}

// Ping checks connectivity by validating the connection.
func (c *Client) Ping(ctx context.Context) error {
	return NewValidator(c, c.serverless).Validate(ctx)
}

// Close releases idle connections.
func (c *Client) Close() {
	c.http.HTTPClient.CloseIdleConnections()
}

// WaitForReady polls Ping until the engine responds or timeout expires.
func (c *Client) WaitForReady(ctx context.Context, timeout time.Duration) error {
	ctx, cancel := context.WithTimeout(ctx, timeout)
	defer cancel()

	ticker := time.NewTicker(100 * time.Millisecond)
	defer ticker.Stop()

	for {
		select {
		case <-ctx.Done():
			return fmt.Errorf("timeout waiting for search engine: %w", ctx.Err())
		case <-ticker.C:
			if err := c.Ping(ctx); err == nil {
				return nil
			}
		}
	}
}

// Search runs req against its index. A missing index is reported as
// db.ErrIndexNotFound; any other non-2xx answer wraps domain.ErrSearchBackend.
func (c *Client) Search(ctx context.Context, req *db.SearchRequest) (*db.SearchResult, error) {
	ctx, span := tracer.Start(ctx, "opensearch.Search", trace.WithAttributes(
		attribute.String("index", req.Index),
		attribute.Int("from", req.From),
		attribute.Int("size", req.Size),
	))
	defer span.End()

	body, err := json.Marshal(req)
	if err != nil {
		return nil, &db.Error{Op: db.OpSearch, Err: fmt.Errorf("encode request: %w", err)}
	}

	params := url.Values{}
	if req.Preference != "" {
		params.Set("preference", req.Preference)
	}
	params.Set("rest_total_hits_as_int", "true")

	status, resp, err := c.do(ctx, http.MethodPost, "/"+url.PathEscape(req.Index)+"/_search", params, body)
	if err != nil {
		err = &db.Error{Op: db.OpSearch, Err: fmt.Errorf("%w: %w", domain.ErrSearchBackend, err)}
		telemetry.TraceError(span, err)
		return nil, err
	}

	switch {
	case status == http.StatusNotFound && gjson.GetBytes(resp, "error.type").String() == "index_not_found_exception":
		return nil, &db.Error{Op: db.OpSearch, Err: db.ErrIndexNotFound}
	case status < 200 || status > 299:
		err = &db.Error{Op: db.OpSearch, Err: statusError(status, resp)}
		telemetry.TraceError(span, err)
		return nil, err
	}

	result := parseSearchResponse(resp)
	span.SetAttributes(attribute.Int("hits", len(result.Hits)))
	return result, nil
}

func parseSearchResponse(body []byte) *db.SearchResult {
	res := gjson.ParseBytes(body)

	total := res.Get("hits.total")
	if total.IsObject() {
		total = total.Get("value")
	}

	hits := res.Get("hits.hits").Array()
	out := &db.SearchResult{
		Total: int(total.Int()),
		Hits:  make([]db.Hit, 0, len(hits)),
	}
	for _, h := range hits {
		seqNo := h.Get("_seq_no")
		primaryTerm := h.Get("_primary_term")
		hit := db.Hit{
			ID:          h.Get("_id").String(),
			Score:       h.Get("_score").Float(),
			SeqNo:       seqNo.Int(),
			PrimaryTerm: primaryTerm.Int(),
			HasVersion:  seqNo.Exists() && primaryTerm.Exists(),
		}
		if src := h.Get("_source"); src.Exists() {
			hit.Source = []byte(src.Raw)
		}
		out.Hits = append(out.Hits, hit)
	}
	return out
}

func statusError(status int, body []byte) error {
	reason := gjson.GetBytes(body, "error.reason").String()
	if reason == "" {
		reason = gjson.GetBytes(body, "error.type").String()
	}
	if reason == "" {
		reason = http.StatusText(status)
	}
	return fmt.Errorf("%w: status %d: %s", domain.ErrSearchBackend, status, reason)
}

// do sends a request and returns the status code and the response body.
func (c *Client) do(ctx context.Context, method, path string, params url.Values, body []byte) (int, []byte, error) {
	u := *c.baseURL
	u.Path = c.baseURL.Path + path
	u.RawQuery = params.Encode()

	var raw any
	if body != nil {
		raw = body
	}
	req, err := retryablehttp.NewRequestWithContext(ctx, method, u.String(), raw)
	if err != nil {
		return 0, nil, fmt.Errorf("build request: %w", err)
	}
	req.Header.Set("Accept", "application/json")
	if body != nil {
		req.Header.Set("Content-Type", "application/json")
	}
	if c.username != "" {
		req.SetBasicAuth(c.username, c.password)
	}

	resp, err := c.http.Do(req)
	if err != nil {
		return 0, nil, err
	}
	defer resp.Body.Close()

	limit := c.maxBody
	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		limit = errorBodyLimit
	}
	data, err := io.ReadAll(io.LimitReader(resp.Body, limit+1))
	if err != nil {
		return resp.StatusCode, nil, fmt.Errorf("read response: %w", err)
	}
	if int64(len(data)) > limit {
		if limit == errorBodyLimit {
			// Only a prefix of an error body is ever reported.
			return resp.StatusCode, bytes.TrimSpace(data[:limit]), nil
		}
		return resp.StatusCode, nil, fmt.Errorf("response body exceeds %d bytes", limit)
	}
	return resp.StatusCode, bytes.TrimSpace(data), nil
}

func truncate(b []byte) string {
	if len(b) > maxErrorBody {
		return string(b[:maxErrorBody]) + "..."
	}
	return string(b)
}

// leveledLogger adapts zap to retryablehttp.LeveledLogger.
type leveledLogger struct {
	l *zap.SugaredLogger
}

func (z leveledLogger) Error(msg string, kv ...any) { z.l.Errorw(msg, kv...) }
func (z leveledLogger) Info(msg string, kv ...any)  { z.l.Infow(msg, kv...) }
func (z leveledLogger) Debug(msg string, kv ...any) { z.l.Debugw(msg, kv...) }
func (z leveledLogger) Warn(msg string, kv ...any)  { z.l.Warnw(msg, kv...) }
