package httpclient_test

import (
	"context"
	"net/http"
	"testing"

	"github.com/jarcoal/httpmock"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/tbckr/catalog/internal/httpclient"
	"github.com/tbckr/catalog/internal/ratelimit"
)

func TestAttachRateLimit_AllowsRequests(t *testing.T) {
	client, err := httpclient.New(httpclient.Options{})
	require.NoError(t, err)
	httpclient.AttachRateLimit(client, ratelimit.New(1000, 1000))

	httpmock.ActivateNonDefault(client.GetClient())
	t.Cleanup(httpmock.DeactivateAndReset)
	httpmock.RegisterResponder(http.MethodGet, "https://api.example.com/",
		httpmock.NewStringResponder(http.StatusOK, "{}"))

	for range 3 {
		resp, err := client.R().Get("https://api.example.com/")
		require.NoError(t, err)
		assert.Equal(t, http.StatusOK, resp.StatusCode)
	}
	assert.Equal(t, 3, httpmock.GetTotalCallCount())
}

func TestAttachRateLimit_CancelledContextBlocksRequest(t *testing.T) {
	client, err := httpclient.New(httpclient.Options{})
	require.NoError(t, err)
	httpclient.AttachRateLimit(client, ratelimit.New(1, 1))

	httpmock.ActivateNonDefault(client.GetClient())
	t.Cleanup(httpmock.DeactivateAndReset)
	httpmock.RegisterResponder(http.MethodGet, "https://api.example.com/",
		httpmock.NewStringResponder(http.StatusOK, "{}"))

	ctx, cancel := context.WithCancel(context.Background())
	cancel()
	_, err = client.R().SetContext(ctx).Get("https://api.example.com/")
	require.Error(t, err)
	assert.Equal(t, 0, httpmock.GetTotalCallCount())
}

func TestAttachRateLimit_NilLimiter(t *testing.T) {
	client, err := httpclient.New(httpclient.Options{})
	require.NoError(t, err)
	httpclient.AttachRateLimit(client, nil)

	httpmock.ActivateNonDefault(client.GetClient())
	t.Cleanup(httpmock.DeactivateAndReset)
	httpmock.RegisterResponder(http.MethodGet, "https://api.example.com/",
		httpmock.NewStringResponder(http.StatusOK, "{}"))

	_, err = client.R().Get("https://api.example.com/")
	require.NoError(t, err)
	assert.Equal(t, 1, httpmock.GetTotalCallCount())
}
