// Package github fetches repository facts from the GitHub REST API.
//
// # Overview
//
// [Client] wraps go-github and performs, in order:
//
//  1. GET /repos/{owner}/{repo} for name, description, owner and web URL
//  2. GET /repos/{owner}/{repo}/tags for the tag list
//  3. GET on the commit URL embedded in the newest tag, for its committer date
//
// The third request is skipped when the repository has no tags. The newest
// tag is chosen with [version.Latest].
//
// # Usage
//
//	client := github.NewClient(nil, "gitcite/1.0")
//	facts, err := client.Fetch(ctx, repo.Reference{Owner: "spf13", Repo: "cobra", Host: repo.GitHub})
//
// # Suggestions
//
// [Client.Suggest] runs a repository search and returns up to five
// "owner/name" strings. Inputs under three characters never hit the network.
//
// # Authentication
//
// Requests are anonymous. GitHub's unauthenticated rate limit applies and a
// limit response surfaces as an ordinary fetch failure.
//
// [version.Latest]: github.com/matzehuels/gitcite/pkg/version.Latest
package github
