package gitlab

import (
	"context"
	"fmt"
	"net/http"
	"net/url"
	"time"

	"github.com/matzehuels/gitcite/pkg/integrations"
	"github.com/matzehuels/gitcite/pkg/repo"
	"github.com/matzehuels/gitcite/pkg/version"
)

const tagsPerPage = 100

// Client fetches repository facts from the GitLab REST API (v4). One client
// serves every instance: the instance is taken from each reference.
//
// All methods are safe for concurrent use by multiple goroutines.
type Client struct {
	*integrations.Client
	baseURL string // overrides https://<instance> when set
}

// NewClient creates a GitLab client on top of httpClient. A nil httpClient
// gets [integrations.NewHTTPClient] with no timeout.
func NewClient(httpClient *http.Client, userAgent string) *Client {
	headers := map[string]string{"Accept": "application/json"}
	if userAgent != "" {
		headers["User-Agent"] = userAgent
	}
	return &Client{Client: integrations.NewClient(httpClient, headers)}
}

type projectResponse struct {
	Name        string  `json:"name"`
	Description *string `json:"description"`
	WebURL      string  `json:"web_url"`
	Namespace   struct {
		Path string `json:"path"`
	} `json:"namespace"`
}

type tagResponse struct {
	Name   string `json:"name"`
	Commit struct {
		CreatedAt     *time.Time `json:"created_at"`
		CommittedDate *time.Time `json:"committed_date"`
	} `json:"commit"`
}

// Fetch retrieves the project record and then its tags, exactly two
// requests. The newest tag's date is the creation date of its commit.
//
// Any failure is reported as a FETCH_FAILED error naming the instance.
func (c *Client) Fetch(ctx context.Context, ref repo.Reference) (*repo.Facts, error) {
	instance := ref.Domain()
	facts, err := c.fetch(ctx, instance, ref.Owner, ref.Repo)
	if err != nil {
		return nil, integrations.FetchError(err, instance, "failed to fetch GitLab repository information from %s", instance)
	}
	return facts, nil
}

func (c *Client) fetch(ctx context.Context, instance, owner, name string) (*repo.Facts, error) {
	projectURL := c.projectURL(instance, owner, name)

	var project projectResponse
	if err := c.Get(ctx, projectURL, &project); err != nil {
		return nil, fmt.Errorf("gitlab project %s/%s: %w", owner, name, err)
	}
	if project.Name == "" || project.Namespace.Path == "" {
		return nil, fmt.Errorf("%w: project record lacks name or namespace", integrations.ErrPayload)
	}

	var tags []tagResponse
	tagsURL := fmt.Sprintf("%s/repository/tags?per_page=%d", projectURL, tagsPerPage)
	if err := c.Get(ctx, tagsURL, &tags); err != nil {
		return nil, fmt.Errorf("gitlab tags of %s/%s: %w", owner, name, err)
	}

	facts := &repo.Facts{
		Name:  project.Name,
		URL:   project.WebURL,
		Host:  repo.GitLab,
		Owner: project.Namespace.Path,
	}
	if project.Description != nil {
		facts.Description = *project.Description
	}

	latest, ok := version.Latest(tags, func(t tagResponse) string { return t.Name })
	if !ok {
		return facts, nil
	}

	date := latest.Commit.CreatedAt
	if date == nil {
		date = latest.Commit.CommittedDate
	}
	if date == nil {
		return nil, fmt.Errorf("%w: tag %s lacks a commit date", integrations.ErrPayload, latest.Name)
	}
	facts.LatestTag = &repo.Tag{Name: latest.Name, Date: *date}
	return facts, nil
}

func (c *Client) projectURL(instance, owner, name string) string {
	base := c.baseURL
	if base == "" {
		base = "https://" + instance
	}
	return base + "/api/v4/projects/" + url.PathEscape(owner+"/"+name)
}
