// Package testutil provides shared test helpers for catalog unit tests.
package testutil

import (
	"io"
	"log/slog"
	"testing"

	"github.com/imroc/req/v3"
	"github.com/jarcoal/httpmock"
)

// BaseURL is the API root the mocked clients are expected to talk to.
const BaseURL = "https://api.example.com"

// NopLogger returns a logger that discards all output.
func NopLogger() *slog.Logger {
	return slog.New(slog.NewTextHandler(io.Discard, nil))
}

// NewMockedClient returns a req.Client whose transport is httpmock's.
// Responders are reset when the test ends.
func NewMockedClient(t *testing.T) *req.Client {
	t.Helper()
	client := req.NewClient()
	httpmock.ActivateNonDefault(client.GetClient())
	t.Cleanup(httpmock.DeactivateAndReset)
	return client
}
