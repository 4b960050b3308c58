// Package gitlab fetches repository facts from the GitLab REST API (v4).
//
// # Overview
//
// [Client] works against gitlab.com and any self-hosted instance. For a
// reference it issues two requests:
//
//  1. GET https://{instance}/api/v4/projects/{owner%2Frepo}
//  2. GET https://{instance}/api/v4/projects/{owner%2Frepo}/repository/tags
//
// GitLab embeds the commit in each tag record, so the tag date needs no
// third request.
//
// # Usage
//
//	client := gitlab.NewClient(nil, "gitcite/1.0")
//	facts, err := client.Fetch(ctx, repo.Reference{
//	    Owner: "gitlab-org", Repo: "gitlab-runner",
//	    Host: repo.GitLab, Instance: "gitlab.com",
//	})
package gitlab
