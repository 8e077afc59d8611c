// Package httpclient builds the req.Client every catalog request goes through.
package httpclient

import (
	"fmt"
	"log/slog"
	"net/http"
	"net/url"
	"os"
	"time"

	"github.com/imroc/req/v3"

	"github.com/tbckr/catalog/internal/apperr"
	"github.com/tbckr/catalog/internal/version"
)

// maxLoggedBody caps how much of an error body the debug hook prints.
const maxLoggedBody = 512

// DefaultUserAgent is sent when no explicit User-Agent is configured.
// var (not const) because the version is only known at link/run time.
var DefaultUserAgent = "catalog/" + version.Get().Version

// Options configures New. The zero value is a usable client: no proxy beyond
// the environment, DefaultUserAgent, no timeout and no debug logging.
type Options struct {
	// Proxy is an http://, https:// or socks5:// URL.
	Proxy     string
	UserAgent string
	Timeout   time.Duration
	Logger    *slog.Logger
	// Debug attaches a hook logging every response at DEBUG level. Requires Logger.
	Debug bool
}

// ResolveProxy returns the proxy value that will actually be used.
// An explicit proxy is returned as-is. Otherwise, if any of the standard proxy
// env vars is set, "<from environment>" is returned; if none are, "".
func ResolveProxy(proxy string) string {
	if proxy != "" {
		return proxy
	}
	for _, env := range []string{"HTTPS_PROXY", "https_proxy", "HTTP_PROXY", "http_proxy", "ALL_PROXY", "all_proxy"} {
		if os.Getenv(env) != "" {
			return "<from environment>"
		}
	}
	return ""
}

// New builds a *req.Client from opts.
// When opts.Proxy is empty, HTTP_PROXY / HTTPS_PROXY / NO_PROXY are honoured
// through http.ProxyFromEnvironment.
// Returns an error wrapping apperr.ErrInvalidInput if the proxy URL is invalid.
func New(opts Options) (*req.Client, error) {
	client := req.NewClient()

	userAgent := opts.UserAgent
	if userAgent == "" {
		userAgent = DefaultUserAgent
	}
	client.SetUserAgent(userAgent)

	if opts.Timeout > 0 {
		client.SetTimeout(opts.Timeout)
	}

	if opts.Proxy != "" {
		if err := validateProxy(opts.Proxy); err != nil {
			return nil, fmt.Errorf("%w: proxy URL %q: %w", apperr.ErrInvalidInput, opts.Proxy, err)
		}
		client.SetProxyURL(opts.Proxy)
	} else {
		client.SetProxy(http.ProxyFromEnvironment)
	}

	if opts.Debug && opts.Logger != nil {
		attachDebugHook(client, opts.Logger)
	}

	return client, nil
}

// attachDebugHook registers an OnAfterResponse hook that logs the HTTP method,
// URL, and status code at DEBUG level, and a body snippet on non-2xx responses.
func attachDebugHook(client *req.Client, logger *slog.Logger) {
	client.OnAfterResponse(func(_ *req.Client, resp *req.Response) error {
		if resp.Request == nil || resp.Request.RawRequest == nil || resp.Response == nil {
			return nil
		}
		logger.Debug("http response",
			"method", resp.Request.RawRequest.Method,
			"url", resp.Request.RawRequest.URL.String(),
			"status", resp.StatusCode,
		)
		if !resp.IsSuccessState() {
			body := resp.String()
			if len(body) > maxLoggedBody {
				body = body[:maxLoggedBody]
			}
			logger.Debug("http error body", "status", resp.StatusCode, "body", body)
		}
		return nil
	})
}

func validateProxy(proxy string) error {
	u, err := url.Parse(proxy)
	if err != nil {
		return err
	}
	switch u.Scheme {
	case "http", "https", "socks5":
	default:
		return fmt.Errorf("proxy scheme must be http://, https://, or socks5://")
	}
	if u.Host == "" {
		return fmt.Errorf("proxy URL has no host")
	}
	return nil
}
