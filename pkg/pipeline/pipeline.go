// Package pipeline provides the citation pipeline for gitcite.
//
// This package implements the complete parse → fetch → format pipeline that
// is shared by the CLI and the HTTP server. By centralizing this logic,
// both entry points report the same errors and emit the same observability
// events.
//
// # Architecture
//
// The pipeline consists of three stages:
//
//  1. Parse: turn a free-form string into a [repo.Reference]
//  2. Fetch: retrieve [repo.Facts] from the host named by the reference
//  3. Format: render a [citation.Citation]
//
// Only the fetch stage performs I/O.
//
// # Usage
//
//	runner, err := pipeline.NewRunner(pipeline.Options{UserAgent: "gitcite/1.0"}, logger)
//	if err != nil {
//	    log.Fatal(err)
//	}
//	result, err := runner.Cite(ctx, "spf13/cobra")
//	if err != nil {
//	    log.Fatal(errors.UserMessage(err))
//	}
//	fmt.Println(result.Citation.BibTeX)
package pipeline

import (
	"net/http"
	"time"

	"github.com/matzehuels/gitcite/pkg/citation"
	"github.com/matzehuels/gitcite/pkg/repo"
)

// Options configures the host clients built by [NewRunner].
type Options struct {
	// HTTPClient is shared by all host clients. When nil, a client with
	// Timeout is created.
	HTTPClient *http.Client

	// Timeout bounds each HTTP request when HTTPClient is nil. Zero means
	// no client-side timeout; the caller's context decides.
	Timeout time.Duration

	// UserAgent is sent with every request. Empty keeps the library default.
	UserAgent string

	// GitHubAPIURL overrides the GitHub REST API root.
	GitHubAPIURL string
}

// Result holds the output of [Runner.Cite].
type Result struct {
	Input     string            `json:"input"`
	Reference repo.Reference    `json:"reference"`
	Facts     *repo.Facts       `json:"facts"`
	Citation  citation.Citation `json:"citation"`
	Stats     Stats             `json:"-"`
}

// Stats records timing for a single citation.
type Stats struct {
	FetchTime time.Duration
}
