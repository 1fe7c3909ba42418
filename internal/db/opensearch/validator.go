package opensearch

import (
	"context"
	"fmt"
	"net/http"

	"github.com/tidwall/gjson"

	"github.com/kailas-cloud/savedobjects/internal/db"
	"github.com/kailas-cloud/savedobjects/internal/domain"
)

// Validator checks that a data source answers like a live cluster.
//
// Serverless collections do not expose cluster info, so they are probed
// with _cat/indices instead.
type Validator struct {
	client     *Client
	serverless bool
}

// NewValidator creates a validator for client.
func NewValidator(client *Client, serverless bool) *Validator {
	return &Validator{client: client, serverless: serverless}
}

// Validate returns nil when the data source is reachable. Any failure wraps
// domain.ErrDataSourceUnavailable.
func (v *Validator) Validate(ctx context.Context) error {
	if v.serverless {
		status, body, err := v.client.do(ctx, http.MethodGet, "/_cat/indices", nil, nil)
		if err != nil {
			return unavailable(db.OpCatIndices, err.Error())
		}
		if status == http.StatusOK && len(body) > 0 {
			return nil
		}
		return unavailable(db.OpCatIndices, truncate(body))
	}

	status, body, err := v.client.do(ctx, http.MethodGet, "/", nil, nil)
	if err != nil {
		return unavailable(db.OpInfo, err.Error())
	}
	if status == http.StatusOK && gjson.GetBytes(body, "cluster_name").String() != "" {
		return nil
	}
	return unavailable(db.OpInfo, truncate(body))
}

func unavailable(op, detail string) error {
	return &db.Error{Op: op, Err: fmt.Errorf("%w: %s", domain.ErrDataSourceUnavailable, detail)}
}
