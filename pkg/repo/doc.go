// Package repo defines the repository descriptors that flow through gitcite.
//
// # Overview
//
// A citation query moves through three values, each owned by the stage that
// produced it:
//
//   - [Reference]: a parsed repository reference (host, owner, repo)
//   - [Facts]: repository metadata fetched from the host API
//   - [Tag]: the latest version tag selected from the host's tag list
//
// # Parsing
//
// [Parse] accepts the free-form strings users type into a search box:
//
//	ref, err := repo.Parse("https://github.com/spf13/cobra.git")
//	// ref.Host == repo.GitHub, ref.Owner == "spf13", ref.Repo == "cobra"
//
//	ref, err = repo.Parse("gitlab.example.com/team/proj")
//	// ref.Host == repo.GitLab, ref.Instance == "gitlab.example.com"
//
// Patterns are tried in a fixed order and the first match wins. Host-qualified
// GitHub URLs come first, then the bare owner/repo shorthand, then GitLab
// forms. Anything else fails with an INVALID_REFERENCE error.
package repo
