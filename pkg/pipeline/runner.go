package pipeline

import (
	"context"
	"errors"
	"time"

	"github.com/charmbracelet/log"

	"github.com/matzehuels/gitcite/pkg/citation"
	errs "github.com/matzehuels/gitcite/pkg/errors"
	"github.com/matzehuels/gitcite/pkg/integrations"
	"github.com/matzehuels/gitcite/pkg/integrations/github"
	"github.com/matzehuels/gitcite/pkg/integrations/gitlab"
	"github.com/matzehuels/gitcite/pkg/observability"
	"github.com/matzehuels/gitcite/pkg/repo"
)

// Suggester looks up repository names matching partial input.
type Suggester interface {
	Suggest(ctx context.Context, partial string) ([]string, error)
}

// Runner executes the citation pipeline.
//
// The Runner holds no per-query state, so multiple goroutines can safely
// share one Runner.
type Runner struct {
	GitHub    integrations.Fetcher
	GitLab    integrations.Fetcher
	Suggester Suggester
	Logger    *log.Logger

	// Now supplies the current time for citation formatting.
	Now func() time.Time
}

// NewRunner creates a runner with GitHub and GitLab clients built from opts.
// If logger is nil, log.Default() is used.
func NewRunner(opts Options, logger *log.Logger) (*Runner, error) {
	httpClient := opts.HTTPClient
	if httpClient == nil {
		httpClient = integrations.NewHTTPClient(opts.Timeout)
	}

	gh := github.NewClient(httpClient, opts.UserAgent)
	if opts.GitHubAPIURL != "" {
		if err := gh.SetBaseURL(opts.GitHubAPIURL); err != nil {
			return nil, err
		}
	}
	if logger == nil {
		logger = log.Default()
	}

	return &Runner{
		GitHub:    gh,
		GitLab:    gitlab.NewClient(httpClient, opts.UserAgent),
		Suggester: gh,
		Logger:    logger,
		Now:       time.Now,
	}, nil
}

// Cite runs parse → fetch → format for input.
//
// Parse failures carry INVALID_REFERENCE; fetch failures carry FETCH_FAILED.
// A repository without tags is not an error.
func (r *Runner) Cite(ctx context.Context, input string) (*Result, error) {
	hooks := observability.Citation()

	ref, err := repo.Parse(input)
	if err != nil {
		hooks.OnParse(ctx, "", err)
		r.Logger.Debug("parse failed", "input", input)
		return nil, err
	}
	hooks.OnParse(ctx, ref.Host.ID(), nil)
	r.Logger.Debug("parsed reference",
		"ref", ref.String(),
		"pattern", repo.MatchedPattern(input))

	start := time.Now()
	facts, err := r.Fetch(ctx, ref)
	if err != nil {
		return nil, err
	}
	fetchTime := time.Since(start)

	c := citation.Format(*facts, r.now())
	hooks.OnFormat(ctx, ref.Host.ID(), c.Key)

	return &Result{
		Input:     input,
		Reference: ref,
		Facts:     facts,
		Citation:  c,
		Stats:     Stats{FetchTime: fetchTime},
	}, nil
}

// Fetch retrieves repository facts from the host named by ref.
func (r *Runner) Fetch(ctx context.Context, ref repo.Reference) (*repo.Facts, error) {
	fetcher, err := r.fetcher(ref.Host)
	if err != nil {
		return nil, err
	}

	hooks := observability.Citation()
	host, name := ref.Host.ID(), ref.String()
	hooks.OnFetchStart(ctx, host, name)

	start := time.Now()
	facts, err := fetcher.Fetch(ctx, ref)
	duration := time.Since(start)
	hooks.OnFetchComplete(ctx, host, name, err == nil && facts.LatestTag != nil, duration, err)

	if err != nil {
		r.Logger.Debug("fetch failed", "ref", name, "error", err)
		return nil, err
	}

	tag := "none"
	if facts.LatestTag != nil {
		tag = facts.LatestTag.Name
	}
	r.Logger.Debug("fetched repository",
		"ref", name,
		"tag", tag,
		"duration", duration)
	return facts, nil
}

// Suggest returns repository names matching partial. Lookup failures are
// logged at debug level and yield an empty list.
func (r *Runner) Suggest(ctx context.Context, partial string) []string {
	if r.Suggester == nil {
		return []string{}
	}
	names, err := r.Suggester.Suggest(ctx, partial)
	if err != nil {
		if !errors.Is(err, context.Canceled) {
			r.Logger.Debug("suggestion lookup failed", "query", partial, "error", err)
		}
		return []string{}
	}
	if names == nil {
		return []string{}
	}
	return names
}

func (r *Runner) fetcher(h repo.Host) (integrations.Fetcher, error) {
	var f integrations.Fetcher
	switch h {
	case repo.GitHub:
		f = r.GitHub
	case repo.GitLab:
		f = r.GitLab
	}
	if f == nil {
		return nil, errs.New(errs.ErrCodeInternal, "no fetcher configured for %s", h)
	}
	return f, nil
}

func (r *Runner) now() time.Time {
	if r.Now == nil {
		return time.Now()
	}
	return r.Now()
}
