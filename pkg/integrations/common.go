package integrations

import (
	"context"
	"errors"
	"net/http"
	"time"

	errs "github.com/matzehuels/gitcite/pkg/errors"
	"github.com/matzehuels/gitcite/pkg/repo"
)

var (
	// ErrNotFound is returned when the host reports the repository does not exist.
	ErrNotFound = errors.New("resource not found")

	// ErrNetwork is returned for transport failures and non-2xx responses.
	ErrNetwork = errors.New("network error")

	// ErrPayload is returned when a response body cannot be decoded or lacks
	// a required field.
	ErrPayload = errors.New("malformed response payload")
)

// Fetcher retrieves repository facts from a single hosting service.
//
// Implementations make strictly sequential requests, never cache, never
// retry, and honour ctx cancellation.
type Fetcher interface {
	Fetch(ctx context.Context, ref repo.Reference) (*repo.Facts, error)
}

// NewHTTPClient creates an HTTP client whose transport reports every request
// to the registered [observability.HTTPHooks]. A zero timeout means the
// client imposes none and the caller's context decides.
//
// [observability.HTTPHooks]: github.com/matzehuels/gitcite/pkg/observability.HTTPHooks
func NewHTTPClient(timeout time.Duration) *http.Client {
	return &http.Client{
		Timeout:   timeout,
		Transport: NewTransport(nil),
	}
}

// FetchError wraps err as a FETCH_FAILED error from source. When err matches
// a sentinel, the cause is tagged NOT_FOUND, TIMEOUT or NETWORK_ERROR first
// so callers can branch on [errs.Is].
func FetchError(err error, source, format string, args ...any) error {
	cause := err
	switch {
	case errors.Is(err, ErrNotFound):
		cause = errs.Wrap(errs.ErrCodeNotFound, err, "repository not found")
	case isTimeout(err):
		cause = errs.Wrap(errs.ErrCodeTimeout, err, "request timed out")
	case errors.Is(err, ErrNetwork):
		cause = errs.Wrap(errs.ErrCodeNetwork, err, "network error")
	}
	return errs.Wrap(errs.ErrCodeFetch, cause, format, args...).WithSource(source)
}

func isTimeout(err error) bool {
	if errors.Is(err, context.DeadlineExceeded) {
		return true
	}
	var te interface{ Timeout() bool }
	return errors.As(err, &te) && te.Timeout()
}
