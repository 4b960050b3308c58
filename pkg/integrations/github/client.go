package github

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"net/url"
	"strings"
	"time"
	"unicode/utf8"

	gh "github.com/google/go-github/v50/github"

	errs "github.com/matzehuels/gitcite/pkg/errors"
	"github.com/matzehuels/gitcite/pkg/integrations"
	"github.com/matzehuels/gitcite/pkg/repo"
	"github.com/matzehuels/gitcite/pkg/version"
)

const (
	// DefaultBaseURL is the GitHub REST API root.
	DefaultBaseURL = "https://api.github.com/"

	// Domain is the web host recorded as the error source.
	Domain = "github.com"

	// MinSuggestLength is the shortest input that triggers a search.
	MinSuggestLength = 3

	// MaxSuggestions caps the number of search results returned.
	MaxSuggestions = 5

	tagsPerPage = 100
)

// Client fetches repository facts and search suggestions from GitHub.
// Requests are unauthenticated and subject to GitHub's anonymous rate limit.
//
// All methods are safe for concurrent use by multiple goroutines.
type Client struct {
	gh *gh.Client
}

// NewClient creates a GitHub client on top of httpClient. A nil httpClient
// gets [integrations.NewHTTPClient] with no timeout. An empty userAgent keeps
// the go-github default.
func NewClient(httpClient *http.Client, userAgent string) *Client {
	if httpClient == nil {
		httpClient = integrations.NewHTTPClient(0)
	}
	client := gh.NewClient(httpClient)
	if userAgent != "" {
		client.UserAgent = userAgent
	}
	return &Client{gh: client}
}

// SetBaseURL points the client at another API root. It exists for tests and
// for configuration; the trailing slash is added when missing.
func (c *Client) SetBaseURL(raw string) error {
	if err := errs.ValidateURL(raw); err != nil {
		return err
	}
	if !strings.HasSuffix(raw, "/") {
		raw += "/"
	}
	u, err := url.Parse(raw)
	if err != nil {
		return errs.Wrap(errs.ErrCodeInvalidInput, err, "invalid GitHub API URL")
	}
	c.gh.BaseURL = u
	return nil
}

// Fetch retrieves the repository record, its tags and, when tags exist, the
// commit of the newest tag. Calls are strictly sequential: two requests
// without tags, three with.
//
// Any failure is reported as a FETCH_FAILED error.
func (c *Client) Fetch(ctx context.Context, ref repo.Reference) (*repo.Facts, error) {
	facts, err := c.fetch(ctx, ref.Owner, ref.Repo)
	if err != nil {
		return nil, integrations.FetchError(err, Domain, "failed to fetch GitHub repository information")
	}
	return facts, nil
}

func (c *Client) fetch(ctx context.Context, owner, name string) (*repo.Facts, error) {
	data, _, err := c.gh.Repositories.Get(ctx, owner, name)
	if err != nil {
		return nil, classify(err, "repository "+owner+"/"+name)
	}
	if data.GetName() == "" || data.GetOwner().GetLogin() == "" {
		return nil, fmt.Errorf("%w: repository record lacks name or owner", integrations.ErrPayload)
	}

	tags, _, err := c.gh.Repositories.ListTags(ctx, owner, name, &gh.ListOptions{PerPage: tagsPerPage})
	if err != nil {
		return nil, classify(err, "tags of "+owner+"/"+name)
	}

	facts := &repo.Facts{
		Name:        data.GetName(),
		Description: data.GetDescription(),
		URL:         data.GetHTMLURL(),
		Host:        repo.GitHub,
		Owner:       data.GetOwner().GetLogin(),
	}

	latest, ok := version.Latest(tags, func(t *gh.RepositoryTag) string { return t.GetName() })
	if !ok {
		return facts, nil
	}

	date, err := c.commitDate(ctx, latest.GetCommit().GetURL())
	if err != nil {
		return nil, err
	}
	facts.LatestTag = &repo.Tag{Name: latest.GetName(), Date: date}
	return facts, nil
}

type commitResponse struct {
	Commit struct {
		Committer struct {
			Date time.Time `json:"date"`
		} `json:"committer"`
	} `json:"commit"`
}

// commitDate follows the commit URL embedded in a tag record.
func (c *Client) commitDate(ctx context.Context, commitURL string) (time.Time, error) {
	if err := errs.ValidateURL(commitURL); err != nil {
		return time.Time{}, fmt.Errorf("%w: tag commit url: %v", integrations.ErrPayload, err)
	}
	req, err := c.gh.NewRequest(http.MethodGet, commitURL, nil)
	if err != nil {
		return time.Time{}, fmt.Errorf("%w: %v", integrations.ErrPayload, err)
	}

	var data commitResponse
	if _, err := c.gh.Do(ctx, req, &data); err != nil {
		return time.Time{}, classify(err, "tag commit")
	}
	if data.Commit.Committer.Date.IsZero() {
		return time.Time{}, fmt.Errorf("%w: commit lacks committer date", integrations.ErrPayload)
	}
	return data.Commit.Committer.Date, nil
}

// Suggest searches GitHub repositories matching partial and returns up to
// [MaxSuggestions] "owner/name" strings. Inputs shorter than
// [MinSuggestLength] return nil without touching the network.
func (c *Client) Suggest(ctx context.Context, partial string) ([]string, error) {
	partial = strings.TrimSpace(partial)
	if utf8.RuneCountInString(partial) < MinSuggestLength {
		return nil, nil
	}

	opts := &gh.SearchOptions{ListOptions: gh.ListOptions{PerPage: MaxSuggestions}}
	result, _, err := c.gh.Search.Repositories(ctx, partial, opts)
	if err != nil {
		return nil, integrations.FetchError(classify(err, "repository search"), Domain, "repository search failed")
	}

	out := make([]string, 0, MaxSuggestions)
	for _, r := range result.Repositories {
		if len(out) == MaxSuggestions {
			break
		}
		login, name := r.GetOwner().GetLogin(), r.GetName()
		if login == "" || name == "" {
			continue
		}
		out = append(out, login+"/"+name)
	}
	return out, nil
}

// classify maps go-github errors onto the integrations sentinels.
func classify(err error, what string) error {
	var rateErr *gh.RateLimitError
	if errors.As(err, &rateErr) {
		return fmt.Errorf("%w: %s: rate limit exceeded", integrations.ErrNetwork, what)
	}
	var abuseErr *gh.AbuseRateLimitError
	if errors.As(err, &abuseErr) {
		return fmt.Errorf("%w: %s: secondary rate limit exceeded", integrations.ErrNetwork, what)
	}
	var respErr *gh.ErrorResponse
	if errors.As(err, &respErr) && respErr.Response != nil {
		if respErr.Response.StatusCode == http.StatusNotFound {
			return fmt.Errorf("%w: github %s", integrations.ErrNotFound, what)
		}
		return fmt.Errorf("%w: %s: status %d", integrations.ErrNetwork, what, respErr.Response.StatusCode)
	}
	var urlErr *url.Error
	if errors.As(err, &urlErr) || errors.Is(err, context.Canceled) || errors.Is(err, context.DeadlineExceeded) {
		return fmt.Errorf("%w: %s: %w", integrations.ErrNetwork, what, err)
	}
	return fmt.Errorf("%w: %s: %v", integrations.ErrPayload, what, err)
}
