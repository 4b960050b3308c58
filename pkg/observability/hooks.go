// Package observability provides hooks for metrics, tracing, and logging.
//
// This package enables optional instrumentation without adding hard dependencies
// on specific observability backends. Consumers register hooks at startup to
// receive events about citation queries and outgoing host API calls.
//
// # Architecture
//
// The package uses a simple hooks pattern:
//   - Define hook interfaces for different event categories
//   - Provide no-op default implementations
//   - Allow registration of custom implementations at startup
//
// The core packages stay free of side effects; the surrounding application
// (the HTTP server, for instance) decides where events go.
//
// # Usage
//
// Register hooks at application startup:
//
//	func main() {
//	    observability.SetCitationHooks(recorder)
//	    observability.SetHTTPHooks(recorder)
//	    // ... run application
//	}
//
// Libraries call hooks to emit events:
//
//	observability.Citation().OnFetchStart(ctx, "github", "spf13/cobra")
//	// ... fetch ...
//	observability.Citation().OnFetchComplete(ctx, "github", "spf13/cobra", true, duration, err)
package observability

import (
	"context"
	"sync"
	"time"
)

// =============================================================================
// Citation Hooks
// =============================================================================

// CitationHooks receives events from the citation pipeline.
type CitationHooks interface {
	// OnParse records the outcome of parsing a repository reference.
	// host is empty when parsing failed.
	OnParse(ctx context.Context, host string, err error)

	// Fetch events. hasTag reports whether a latest tag was found.
	OnFetchStart(ctx context.Context, host, ref string)
	OnFetchComplete(ctx context.Context, host, ref string, hasTag bool, duration time.Duration, err error)

	// OnFormat records a rendered citation.
	OnFormat(ctx context.Context, host, key string)
}

// =============================================================================
// HTTP Hooks
// =============================================================================

// HTTPHooks receives events from HTTP client operations.
type HTTPHooks interface {
	// OnRequest records an outgoing HTTP request.
	OnRequest(ctx context.Context, method, host, path string)

	// OnResponse records an HTTP response.
	OnResponse(ctx context.Context, method, host, path string, statusCode int, duration time.Duration)

	// OnError records an HTTP error (network failure, timeout).
	OnError(ctx context.Context, method, host, path string, err error)
}

// =============================================================================
// No-op Implementations
// =============================================================================

// NoopCitationHooks is a no-op implementation of CitationHooks.
type NoopCitationHooks struct{}

func (NoopCitationHooks) OnParse(context.Context, string, error)        {}
func (NoopCitationHooks) OnFetchStart(context.Context, string, string) {}
func (NoopCitationHooks) OnFetchComplete(context.Context, string, string, bool, time.Duration, error) {
}
func (NoopCitationHooks) OnFormat(context.Context, string, string) {}

// NoopHTTPHooks is a no-op implementation of HTTPHooks.
type NoopHTTPHooks struct{}

func (NoopHTTPHooks) OnRequest(context.Context, string, string, string)                      {}
func (NoopHTTPHooks) OnResponse(context.Context, string, string, string, int, time.Duration) {}
func (NoopHTTPHooks) OnError(context.Context, string, string, string, error)                 {}

// =============================================================================
// Global Hook Registry
// =============================================================================

var (
	citationHooks CitationHooks = NoopCitationHooks{}
	httpHooks     HTTPHooks     = NoopHTTPHooks{}
	hooksMu       sync.RWMutex
)

// SetCitationHooks registers custom citation hooks.
// This should be called once at application startup before any queries run.
func SetCitationHooks(h CitationHooks) {
	hooksMu.Lock()
	defer hooksMu.Unlock()
	if h != nil {
		citationHooks = h
	}
}

// SetHTTPHooks registers custom HTTP hooks.
// This should be called once at application startup before any HTTP operations.
func SetHTTPHooks(h HTTPHooks) {
	hooksMu.Lock()
	defer hooksMu.Unlock()
	if h != nil {
		httpHooks = h
	}
}

// Citation returns the registered citation hooks.
func Citation() CitationHooks {
	hooksMu.RLock()
	defer hooksMu.RUnlock()
	return citationHooks
}

// HTTP returns the registered HTTP hooks.
func HTTP() HTTPHooks {
	hooksMu.RLock()
	defer hooksMu.RUnlock()
	return httpHooks
}

// Reset restores all hooks to their no-op defaults.
// This is primarily useful for testing.
func Reset() {
	hooksMu.Lock()
	defer hooksMu.Unlock()
	citationHooks = NoopCitationHooks{}
	httpHooks = NoopHTTPHooks{}
}
