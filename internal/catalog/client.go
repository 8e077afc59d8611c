// Package catalog fetches the services and branches collections and groups
// services by category.
package catalog

import (
	"context"
	"encoding/json"
	"log/slog"

	"github.com/imroc/req/v3"
	"github.com/tidwall/gjson"

	"github.com/tbckr/catalog/internal/apperr"
	"github.com/tbckr/catalog/internal/endpoints"
	"github.com/tbckr/catalog/internal/fetch"
)

// InvalidFormatMessage is the failure message for a 2xx body without a
// "data" array.
const InvalidFormatMessage = "Invalid response format: expected array in data field"

// Client fetches catalog collections. It keeps no state between calls and is
// safe for concurrent use.
type Client struct {
	http      *req.Client
	endpoints endpoints.Table
	logger    *slog.Logger
}

// NewClient creates a Client resolving addresses through table.
func NewClient(http *req.Client, table endpoints.Table, logger *slog.Logger) *Client {
	return &Client{http: http, endpoints: table, logger: logger}
}

// FetchServices fetches the services collection and categorizes it.
// Failures of the underlying request are returned unchanged; a body without a
// "data" array fails with InvalidFormatMessage.
func (c *Client) FetchServices(ctx context.Context) ServiceResult {
	res := c.fetchList(ctx, endpoints.Services)
	if !res.OK() {
		return ServiceResult{Result: fetch.Failure[[]Service](res.Err())}
	}
	items := res.Data()
	services := make([]Service, len(items))
	for i, raw := range items {
		services[i] = Service{raw: raw}
	}
	return NewServiceResult(services)
}

// FetchBranches fetches the branches collection.
func (c *Client) FetchBranches(ctx context.Context) fetch.Result[[]Branch] {
	res := c.fetchList(ctx, endpoints.Branches)
	if !res.OK() {
		return fetch.Failure[[]Branch](res.Err())
	}
	items := res.Data()
	branches := make([]Branch, len(items))
	for i, raw := range items {
		branches[i] = Branch{raw: raw}
	}
	return fetch.Success(branches)
}

// fetchList requests the named endpoint and returns the elements of the
// body's "data" array.
func (c *Client) fetchList(ctx context.Context, name endpoints.Name) fetch.Result[[]json.RawMessage] {
	address, err := c.endpoints.Resolve(name)
	if err != nil {
		return fetch.Failure[[]json.RawMessage](err)
	}

	c.logger.Debug("fetching collection", "endpoint", name, "url", address)
	res := fetch.JSON[json.RawMessage](ctx, c.http, address, nil)
	if !res.OK() {
		c.logger.Debug("fetch failed", "endpoint", name, "error", res.Message())
		return fetch.Failure[[]json.RawMessage](res.Err())
	}

	data := fetch.Member(res.Data(), "data")
	if !data.IsArray() {
		c.logger.Debug("unexpected response shape", "endpoint", name, "data_type", data.Type.String())
		return fetch.Failure[[]json.RawMessage](apperr.New(apperr.ErrInvalidResponse, InvalidFormatMessage))
	}

	items := make([]json.RawMessage, 0)
	data.ForEach(func(_, v gjson.Result) bool {
		items = append(items, json.RawMessage(v.Raw))
		return true
	})
	c.logger.Debug("fetched collection", "endpoint", name, "count", len(items))
	return fetch.Success(items)
}
