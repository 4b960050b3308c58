// Package integrations provides HTTP clients for source hosting APIs.
//
// # Overview
//
// This package contains the shared plumbing used by the host clients that
// retrieve repository facts. Each host has its own subpackage:
//
//   - [github]: GitHub REST API (repository, tags, commit, search)
//   - [gitlab]: GitLab REST API v4, any self-hosted instance
//
// # Client Pattern
//
// Host clients implement [Fetcher]:
//
//	client := gitlab.NewClient(integrations.NewHTTPClient(0), "gitcite/dev")
//	facts, err := client.Fetch(ctx, ref)
//
// Requests are issued one after another. Nothing is cached and nothing is
// retried; cancellation and deadlines come from ctx.
//
// # Errors
//
// Failures are reported with the sentinel errors [ErrNotFound], [ErrNetwork]
// and [ErrPayload], wrapped with %w so callers can use [errors.Is]. Host
// clients wrap these once more in a FETCH_FAILED error naming the host.
//
// # Observability
//
// [NewHTTPClient] installs a transport that reports each round trip to the
// registered [observability.HTTPHooks].
//
// [github]: github.com/matzehuels/gitcite/pkg/integrations/github
// [gitlab]: github.com/matzehuels/gitcite/pkg/integrations/gitlab
// [observability.HTTPHooks]: github.com/matzehuels/gitcite/pkg/observability.HTTPHooks
package integrations
