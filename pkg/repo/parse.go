package repo

import (
	"regexp"
	"strings"

	errs "github.com/matzehuels/gitcite/pkg/errors"
)

// pattern is one named reference shape. build receives the submatches of re
// and returns ok=false when the match does not yield a usable reference.
type pattern struct {
	name  string
	re    *regexp.Regexp
	build func(m []string) (Reference, bool)
}

// patterns are tried in order; the first one that matches wins. Host-qualified
// GitHub URLs precede the bare shorthand so that "owner/repo" never shadows a
// GitLab form, and gitlab.com precedes the generic instance form.
var patterns = []pattern{
	{
		name: "github-url",
		re:   regexp.MustCompile(`github\.com/([^/?#]+)/([^/?#]+)`),
		build: func(m []string) (Reference, bool) {
			return newReference(GitHub, "", m[1], m[2])
		},
	},
	{
		name: "shorthand",
		re:   regexp.MustCompile(`^([^/]+)/([^/]+)$`),
		build: func(m []string) (Reference, bool) {
			return newReference(GitHub, "", m[1], m[2])
		},
	},
	{
		name: "gitlab-url",
		re:   regexp.MustCompile(`gitlab\.com/([^/?#]+)/([^/?#]+)`),
		build: func(m []string) (Reference, bool) {
			return newReference(GitLab, DefaultGitLabInstance, m[1], m[2])
		},
	},
	{
		name: "gitlab-instance",
		re:   regexp.MustCompile(`^(?:https?://)?gitlab\.([^/]+)\.([^/]+)/([^/?#]+)/([^/?#]+)`),
		build: func(m []string) (Reference, bool) {
			return newReference(GitLab, "gitlab."+m[1]+"."+m[2], m[3], m[4])
		},
	},
}

// Parse turns a free-form repository reference into a Reference.
//
// Accepted shapes, in precedence order:
//   - anything containing github.com/<owner>/<repo>
//   - bare <owner>/<repo> (assumed GitHub)
//   - anything containing gitlab.com/<owner>/<repo>
//   - [http(s)://]gitlab.<label>.<tld>/<owner>/<repo> (self-hosted GitLab)
//
// A trailing ".git" is stripped from the repository name and path segments
// after owner/repo are ignored. Unrecognized input returns an
// INVALID_REFERENCE error.
func Parse(input string) (Reference, error) {
	s := strings.TrimSpace(input)
	for _, p := range patterns {
		m := p.re.FindStringSubmatch(s)
		if m == nil {
			continue
		}
		if ref, ok := p.build(m); ok {
			return ref, nil
		}
	}
	return Reference{}, errs.New(errs.ErrCodeInvalidReference, "unrecognized repository URL format")
}

// MatchedPattern reports the name of the pattern Parse would use for input,
// or "" when none applies. It exists for diagnostics (gitcite -v).
func MatchedPattern(input string) string {
	s := strings.TrimSpace(input)
	for _, p := range patterns {
		if m := p.re.FindStringSubmatch(s); m != nil {
			if _, ok := p.build(m); ok {
				return p.name
			}
		}
	}
	return ""
}

func newReference(host Host, instance, owner, name string) (Reference, bool) {
	name = strings.TrimSuffix(name, ".git")
	if owner == "" || name == "" {
		return Reference{}, false
	}
	return Reference{Owner: owner, Repo: name, Host: host, Instance: instance}, true
}
