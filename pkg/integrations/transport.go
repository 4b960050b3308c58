package integrations

import (
	"net/http"
	"time"

	"github.com/matzehuels/gitcite/pkg/observability"
)

type hookTransport struct {
	base http.RoundTripper
}

// NewTransport wraps base so that each round trip fires the global HTTP
// hooks. A nil base uses [http.DefaultTransport].
func NewTransport(base http.RoundTripper) http.RoundTripper {
	if base == nil {
		base = http.DefaultTransport
	}
	return &hookTransport{base: base}
}

func (t *hookTransport) RoundTrip(req *http.Request) (*http.Response, error) {
	hooks := observability.HTTP()
	ctx := req.Context()

	hooks.OnRequest(ctx, req.Method, req.URL.Host, req.URL.Path)
	start := time.Now()
	resp, err := t.base.RoundTrip(req)
	if err != nil {
		hooks.OnError(ctx, req.Method, req.URL.Host, req.URL.Path, err)
		return nil, err
	}
	hooks.OnResponse(ctx, req.Method, req.URL.Host, req.URL.Path, resp.StatusCode, time.Since(start))
	return resp, nil
}
