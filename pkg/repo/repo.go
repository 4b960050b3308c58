package repo

import (
	"encoding/json"
	"fmt"
	"strings"
	"time"
)

// DefaultGitLabInstance is the instance assumed for GitLab references that
// do not name one.
const DefaultGitLabInstance = "gitlab.com"

// Host identifies the git hosting service a repository lives on.
type Host int

const (
	GitHub Host = iota
	GitLab
)

// String returns the display name used in citations ("GitHub", "GitLab").
func (h Host) String() string {
	switch h {
	case GitHub:
		return "GitHub"
	case GitLab:
		return "GitLab"
	default:
		return fmt.Sprintf("Host(%d)", int(h))
	}
}

// ID returns the lowercase identifier ("github", "gitlab") used in JSON,
// metric labels and analytics events.
func (h Host) ID() string {
	return strings.ToLower(h.String())
}

// MarshalJSON encodes the host as its ID.
func (h Host) MarshalJSON() ([]byte, error) {
	return json.Marshal(h.ID())
}

// UnmarshalJSON accepts the lowercase identifiers written by MarshalJSON.
func (h *Host) UnmarshalJSON(data []byte) error {
	var s string
	if err := json.Unmarshal(data, &s); err != nil {
		return err
	}
	switch strings.ToLower(s) {
	case "github":
		*h = GitHub
	case "gitlab":
		*h = GitLab
	default:
		return fmt.Errorf("unknown host %q", s)
	}
	return nil
}

// Reference is a parsed repository reference.
type Reference struct {
	Owner    string `json:"owner"`
	Repo     string `json:"repo"`
	Host     Host   `json:"host"`
	Instance string `json:"instance,omitempty"` // self-hosted GitLab domain
}

// Domain returns the web domain of the hosting instance.
func (r Reference) Domain() string {
	if r.Host == GitHub {
		return "github.com"
	}
	if r.Instance == "" {
		return DefaultGitLabInstance
	}
	return r.Instance
}

// String returns owner/repo for GitHub and domain/owner/repo for GitLab.
// The result parses back to an equal Reference.
func (r Reference) String() string {
	if r.Host == GitHub {
		return r.Owner + "/" + r.Repo
	}
	return r.Domain() + "/" + r.Owner + "/" + r.Repo
}

// Tag is a named, dated marker on a repository.
type Tag struct {
	Name string    `json:"name"`
	Date time.Time `json:"date"`
}

// Facts holds the repository metadata needed to build a citation.
// LatestTag is nil for repositories without tags.
type Facts struct {
	Name        string `json:"name"`
	Description string `json:"description"`
	URL         string `json:"url"`
	Host        Host   `json:"host"`
	Owner       string `json:"owner"`
	LatestTag   *Tag   `json:"latest_tag,omitempty"`
}
