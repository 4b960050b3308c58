// Package pkg provides the core libraries for gitcite repository citations.
//
// # Overview
//
// gitcite turns a repository reference typed by a user into a BibTeX @misc
// record. The pkg directory is organized by pipeline stage:
//
//  1. [repo] - Reference parsing and the descriptors passed between stages
//  2. [version] - Newest-first ordering of version tag names
//  3. [integrations] - Host API clients (GitHub, GitLab)
//  4. [citation] - BibTeX rendering
//  5. [pipeline] - Orchestration (parse → fetch → format)
//
// # Architecture
//
// The data flow for one query:
//
//	"https://github.com/spf13/cobra"
//	         ↓
//	    [repo] package (Parse → Reference)
//	         ↓
//	    [integrations] packages (Fetch → Facts, latest tag via [version])
//	         ↓
//	    [citation] package (Format → Citation)
//
// Only the integrations stage performs I/O. Parsing, version selection and
// formatting are pure functions.
//
// # Quick Start
//
//	import "github.com/matzehuels/gitcite/pkg/pipeline"
//
//	runner, err := pipeline.NewRunner(pipeline.Options{Timeout: 15 * time.Second}, nil)
//	if err != nil {
//	    return err
//	}
//	res, err := runner.Cite(ctx, "gitlab.com/gitlab-org/cli")
//	if err != nil {
//	    fmt.Println(errors.UserMessage(err))
//	    return err
//	}
//	fmt.Println(res.Citation.BibTeX)
//
// # Supporting Packages
//
// [errors] - Structured errors with machine-readable codes and user messages.
//
// [observability] - Hooks for parse, fetch and outgoing HTTP events.
//
// [analytics] - Usage events (search, generate, copy, error) and their sinks.
//
// [buildinfo] - Version information injected at build time.
//
// [repo]: https://pkg.go.dev/github.com/matzehuels/gitcite/pkg/repo
// [version]: https://pkg.go.dev/github.com/matzehuels/gitcite/pkg/version
// [integrations]: https://pkg.go.dev/github.com/matzehuels/gitcite/pkg/integrations
// [citation]: https://pkg.go.dev/github.com/matzehuels/gitcite/pkg/citation
// [pipeline]: https://pkg.go.dev/github.com/matzehuels/gitcite/pkg/pipeline
// [errors]: https://pkg.go.dev/github.com/matzehuels/gitcite/pkg/errors
// [observability]: https://pkg.go.dev/github.com/matzehuels/gitcite/pkg/observability
// [analytics]: https://pkg.go.dev/github.com/matzehuels/gitcite/pkg/analytics
// [buildinfo]: https://pkg.go.dev/github.com/matzehuels/gitcite/pkg/buildinfo
package pkg
