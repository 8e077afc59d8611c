package fetch

import (
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"strconv"
	"strings"

	"github.com/imroc/req/v3"
	"github.com/tidwall/gjson"

	"github.com/tbckr/catalog/internal/apperr"
)

const (
	failedFetchPrefix = "Failed to fetch: "
	invalidJSONPrefix = "Invalid JSON response: "
)

// Options customizes a single request. A nil *Options means a plain GET.
type Options struct {
	// Method defaults to GET.
	Method string
	// Headers extend the built-in defaults; on a clash the value here wins.
	Headers map[string]string
	// Body is encoded by req: structs and maps as JSON, strings and []byte verbatim.
	Body any
}

func (o *Options) method() string {
	if o == nil || o.Method == "" {
		return http.MethodGet
	}
	return strings.ToUpper(o.Method)
}

// headers merges the built-in defaults with the caller's headers.
func (o *Options) headers() map[string]string {
	h := http.Header{}
	h.Set("Cache-Control", "no-store")
	h.Set("Content-Type", "application/json")
	if o != nil {
		for k, v := range o.Headers {
			h.Set(k, v)
		}
	}
	merged := make(map[string]string, len(h))
	for k := range h {
		merged[k] = h.Get(k)
	}
	return merged
}

// JSON requests address and decodes a 2xx body into T.
//
// Failures are returned as a failed Result, never as a panic:
//   - transport errors carry the transport's own message (apperr.ErrRequestFailed);
//   - non-2xx responses read "Failed to fetch: " followed by the body's "message"
//     field or the status reason (apperr.ErrHTTPStatus);
//   - an undecodable 2xx body reads "Invalid JSON response: ..." (apperr.ErrInvalidResponse).
func JSON[T any](ctx context.Context, client *req.Client, address string, opts *Options) Result[T] {
	body, err := do(ctx, client, address, opts)
	if err != nil {
		return Failure[T](err)
	}
	var out T
	if err := json.Unmarshal(body, &out); err != nil {
		return Failure[T](apperr.Wrap(apperr.ErrInvalidResponse, invalidJSONPrefix+err.Error(), err))
	}
	return Success(out)
}

// do performs the request and returns the body of a 2xx response.
func do(ctx context.Context, client *req.Client, address string, opts *Options) ([]byte, error) {
	r := client.R().
		SetContext(ctx).
		SetHeaders(opts.headers())
	if opts != nil && opts.Body != nil {
		r.SetBody(opts.Body)
	}

	resp, err := r.Send(opts.method(), address)
	if err != nil {
		return nil, apperr.Wrap(apperr.ErrRequestFailed, err.Error(), err)
	}
	if resp.Response == nil {
		return nil, apperr.New(apperr.ErrRequestFailed, UnknownErrorMessage)
	}

	body := resp.Bytes()
	if !resp.IsSuccessState() {
		msg := errorMessage(body)
		if msg == "" {
			msg = statusReason(resp.Response)
		}
		return nil, apperr.New(apperr.ErrHTTPStatus, failedFetchPrefix+msg)
	}
	return body, nil
}

// errorMessage extracts the "message" field of an error body, or "" when the
// body is not JSON or the field is absent, empty, or not a scalar. Objects and
// arrays are ignored so their raw JSON never leaks into the message.
func errorMessage(body []byte) string {
	if !gjson.ValidBytes(body) {
		return ""
	}
	msg := Member(body, "message")
	if !Truthy(msg) {
		return ""
	}
	switch msg.Type {
	case gjson.String, gjson.Number, gjson.True:
		return msg.String()
	default:
		return ""
	}
}

// Member returns the member key of the top-level object in body. A body that
// is not an object has no members. When key repeats, the last occurrence wins,
// as with encoding/json.
func Member(body []byte, key string) gjson.Result {
	var member gjson.Result
	root := gjson.ParseBytes(body)
	if !root.IsObject() {
		return member
	}
	root.ForEach(func(k, v gjson.Result) bool {
		if k.String() == key {
			member = v
		}
		return true
	})
	return member
}

// statusReason returns the reason phrase of the status line, falling back to
// the standard text for the code.
func statusReason(resp *http.Response) string {
	reason := strings.TrimSpace(strings.TrimPrefix(resp.Status, strconv.Itoa(resp.StatusCode)))
	if reason != "" {
		return reason
	}
	if text := http.StatusText(resp.StatusCode); text != "" {
		return text
	}
	return fmt.Sprintf("HTTP %d", resp.StatusCode)
}

// Truthy reports whether v holds a usable value: present, and not null,
// false, an empty string or zero.
func Truthy(v gjson.Result) bool {
	switch v.Type {
	case gjson.Null, gjson.False:
		return false
	case gjson.String:
		return v.Str != ""
	case gjson.Number:
		return v.Num != 0
	default:
		return v.Exists()
	}
}
