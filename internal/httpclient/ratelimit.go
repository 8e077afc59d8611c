package httpclient

import (
	"github.com/imroc/req/v3"

	"github.com/tbckr/catalog/internal/ratelimit"
)

// AttachRateLimit gates every outbound request of client on limiter.
// A nil limiter leaves the client untouched. Requests are never retried.
func AttachRateLimit(client *req.Client, limiter *ratelimit.Limiter) {
	if limiter == nil {
		return
	}
	client.OnBeforeRequest(func(_ *req.Client, r *req.Request) error {
		return limiter.Wait(r.Context())
	})
}
