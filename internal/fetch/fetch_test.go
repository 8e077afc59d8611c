package fetch_test

import (
	"context"
	"errors"
	"io"
	"net/http"
	"testing"

	"github.com/jarcoal/httpmock"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/tbckr/catalog/internal/apperr"
	"github.com/tbckr/catalog/internal/fetch"
	"github.com/tbckr/catalog/internal/testutil"
)

const address = testutil.BaseURL + "/things"

type thing struct {
	ID   int    `json:"id"`
	Name string `json:"name"`
}

func TestJSON_Success(t *testing.T) {
	client := testutil.NewMockedClient(t)
	httpmock.RegisterResponder(http.MethodGet, address,
		httpmock.NewStringResponder(http.StatusOK, `[{"id":1,"name":"one"},{"id":2,"name":"two"}]`))

	res := fetch.JSON[[]thing](context.Background(), client, address, nil)
	require.True(t, res.OK(), res.Message())
	assert.Equal(t, []thing{{1, "one"}, {2, "two"}}, res.Data())
	assert.Nil(t, res.Err())
}

func TestJSON_DefaultHeaders(t *testing.T) {
	client := testutil.NewMockedClient(t)
	var got http.Header
	httpmock.RegisterResponder(http.MethodGet, address,
		func(r *http.Request) (*http.Response, error) {
			got = r.Header.Clone()
			return httpmock.NewStringResponse(http.StatusOK, `{}`), nil
		})

	res := fetch.JSON[map[string]any](context.Background(), client, address, nil)
	require.True(t, res.OK(), res.Message())
	assert.Equal(t, "no-store", got.Get("Cache-Control"))
	assert.Equal(t, "application/json", got.Get("Content-Type"))
}

func TestJSON_CallerHeadersExtendDefaults(t *testing.T) {
	client := testutil.NewMockedClient(t)
	var got http.Header
	httpmock.RegisterResponder(http.MethodGet, address,
		func(r *http.Request) (*http.Response, error) {
			got = r.Header.Clone()
			return httpmock.NewStringResponse(http.StatusOK, `{}`), nil
		})

	opts := &fetch.Options{Headers: map[string]string{
		"X-Request-Id":  "abc",
		"cache-control": "no-cache",
	}}
	res := fetch.JSON[map[string]any](context.Background(), client, address, opts)
	require.True(t, res.OK(), res.Message())
	assert.Equal(t, "abc", got.Get("X-Request-Id"))
	assert.Equal(t, "application/json", got.Get("Content-Type"), "defaults must survive caller headers")
	assert.Equal(t, "no-cache", got.Get("Cache-Control"), "caller wins on a clash")
}

func TestJSON_MethodAndBody(t *testing.T) {
	client := testutil.NewMockedClient(t)
	var gotBody string
	httpmock.RegisterResponder(http.MethodPost, address,
		func(r *http.Request) (*http.Response, error) {
			b, err := io.ReadAll(r.Body)
			if err != nil {
				return nil, err
			}
			gotBody = string(b)
			return httpmock.NewStringResponse(http.StatusCreated, `{"id":7,"name":"new"}`), nil
		})

	opts := &fetch.Options{Method: "post", Body: thing{Name: "new"}}
	res := fetch.JSON[thing](context.Background(), client, address, opts)
	require.True(t, res.OK(), res.Message())
	assert.Equal(t, thing{ID: 7, Name: "new"}, res.Data())
	assert.JSONEq(t, `{"id":0,"name":"new"}`, gotBody)
}

func TestJSON_TransportError(t *testing.T) {
	client := testutil.NewMockedClient(t)
	httpmock.RegisterResponder(http.MethodGet, address,
		httpmock.NewErrorResponder(errors.New("connection refused")))

	res := fetch.JSON[[]thing](context.Background(), client, address, nil)
	require.False(t, res.OK())
	assert.Nil(t, res.Data())
	assert.NotEmpty(t, res.Message())
	assert.Contains(t, res.Message(), "connection refused")
	assert.ErrorIs(t, res.Err(), apperr.ErrRequestFailed)
}

func TestJSON_ContextCanceled(t *testing.T) {
	client := testutil.NewMockedClient(t)
	httpmock.RegisterResponder(http.MethodGet, address,
		httpmock.NewStringResponder(http.StatusOK, `[]`))

	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	res := fetch.JSON[[]thing](ctx, client, address, nil)
	require.False(t, res.OK())
	assert.NotEmpty(t, res.Message())
	assert.ErrorIs(t, res.Err(), apperr.ErrRequestFailed)
}

func TestJSON_HTTPStatusWithMessage(t *testing.T) {
	client := testutil.NewMockedClient(t)
	httpmock.RegisterResponder(http.MethodGet, address,
		httpmock.NewStringResponder(http.StatusUnauthorized, `{"message": "bad token"}`))

	res := fetch.JSON[[]thing](context.Background(), client, address, nil)
	require.False(t, res.OK())
	assert.Equal(t, "Failed to fetch: bad token", res.Message())
	assert.ErrorIs(t, res.Err(), apperr.ErrHTTPStatus)
}

func TestJSON_HTTPStatusFallsBackToReason(t *testing.T) {
	tests := []struct {
		name string
		code int
		body string
		want string
	}{
		{"unparseable body", http.StatusUnauthorized, `<html>nope</html>`, "Failed to fetch: Unauthorized"},
		{"empty body", http.StatusInternalServerError, ``, "Failed to fetch: Internal Server Error"},
		{"no message field", http.StatusNotFound, `{"error":"x"}`, "Failed to fetch: Not Found"},
		{"empty message", http.StatusBadRequest, `{"message":""}`, "Failed to fetch: Bad Request"},
		{"null message", http.StatusForbidden, `{"message":null}`, "Failed to fetch: Forbidden"},
		{"array body", http.StatusBadGateway, `["message"]`, "Failed to fetch: Bad Gateway"},
		{"object message", http.StatusConflict, `{"message":{"code":"E1"}}`, "Failed to fetch: Conflict"},
		{"array message", http.StatusUnprocessableEntity, `{"message":["a","b"]}`, "Failed to fetch: Unprocessable Entity"},
		{"zero message", http.StatusTooManyRequests, `{"message":0}`, "Failed to fetch: Too Many Requests"},
		{"unknown code", 599, ``, "Failed to fetch: HTTP 599"},
	}
	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			client := testutil.NewMockedClient(t)
			httpmock.RegisterResponder(http.MethodGet, address,
				httpmock.NewStringResponder(tc.code, tc.body))

			res := fetch.JSON[[]thing](context.Background(), client, address, nil)
			require.False(t, res.OK())
			assert.Equal(t, tc.want, res.Message())
			assert.ErrorIs(t, res.Err(), apperr.ErrHTTPStatus)
		})
	}
}

func TestJSON_HTTPStatusScalarMessage(t *testing.T) {
	tests := []struct {
		name string
		body string
		want string
	}{
		{"string", `{"message":"Slot taken"}`, "Failed to fetch: Slot taken"},
		{"number", `{"message":42}`, "Failed to fetch: 42"},
		{"true", `{"message":true}`, "Failed to fetch: true"},
		{"last duplicate wins", `{"message":"first","message":"second"}`, "Failed to fetch: second"},
	}
	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			client := testutil.NewMockedClient(t)
			httpmock.RegisterResponder(http.MethodGet, address,
				httpmock.NewStringResponder(http.StatusConflict, tc.body))

			res := fetch.JSON[[]thing](context.Background(), client, address, nil)
			require.False(t, res.OK())
			assert.Equal(t, tc.want, res.Message())
		})
	}
}

func TestMember(t *testing.T) {
	tests := []struct {
		name   string
		body   string
		want   string
		exists bool
	}{
		{"present", `{"data":[1]}`, `[1]`, true},
		{"absent", `{"other":[1]}`, ``, false},
		{"last duplicate wins", `{"data":null,"data":[2]}`, `[2]`, true},
		{"nested key ignored", `{"meta":{"data":[3]}}`, ``, false},
		{"array root", `[{"data":[4]}]`, ``, false},
		{"not json", `nope`, ``, false},
	}
	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			got := fetch.Member([]byte(tc.body), "data")
			assert.Equal(t, tc.exists, got.Exists())
			assert.Equal(t, tc.want, got.Raw)
		})
	}
}

func TestJSON_HTTPStatusUsesReasonPhrase(t *testing.T) {
	client := testutil.NewMockedClient(t)
	httpmock.RegisterResponder(http.MethodGet, address,
		httpmock.ResponderFromResponse(&http.Response{
			Status:     "503 Down For Maintenance",
			StatusCode: http.StatusServiceUnavailable,
			Header:     http.Header{},
			Body:       httpmock.NewRespBodyFromString("oops"),
		}))

	res := fetch.JSON[[]thing](context.Background(), client, address, nil)
	require.False(t, res.OK())
	assert.Equal(t, "Failed to fetch: Down For Maintenance", res.Message())
}

func TestJSON_MalformedSuccessBody(t *testing.T) {
	for _, body := range []string{`{"data": [`, ``, `not json`} {
		t.Run(body, func(t *testing.T) {
			client := testutil.NewMockedClient(t)
			httpmock.RegisterResponder(http.MethodGet, address,
				httpmock.NewStringResponder(http.StatusOK, body))

			res := fetch.JSON[map[string]any](context.Background(), client, address, nil)
			require.False(t, res.OK())
			assert.Nil(t, res.Data())
			assert.Contains(t, res.Message(), "Invalid JSON response: ")
			assert.ErrorIs(t, res.Err(), apperr.ErrInvalidResponse)
		})
	}
}

func TestJSON_ExactlyOneSideSet(t *testing.T) {
	responders := map[string]httpmock.Responder{
		"ok":        httpmock.NewStringResponder(http.StatusOK, `{"a":1}`),
		"status":    httpmock.NewStringResponder(http.StatusTeapot, `{}`),
		"transport": httpmock.NewErrorResponder(errors.New("reset by peer")),
		"malformed": httpmock.NewStringResponder(http.StatusOK, `{`),
	}
	for name, responder := range responders {
		t.Run(name, func(t *testing.T) {
			client := testutil.NewMockedClient(t)
			httpmock.RegisterResponder(http.MethodGet, address, responder)

			res := fetch.JSON[map[string]any](context.Background(), client, address, nil)
			if res.OK() {
				assert.NotNil(t, res.Data())
				assert.Nil(t, res.Err())
			} else {
				assert.Nil(t, res.Data())
				assert.Error(t, res.Err())
			}
		})
	}
}
