package citation

import (
	"testing"
	"time"

	"github.com/matzehuels/gitcite/pkg/repo"
)

var now = time.Date(2026, 10, 18, 12, 0, 0, 0, time.UTC)

func TestFormat_WithTag(t *testing.T) {
	facts := repo.Facts{
		Name:  "Foo",
		Owner: "bar",
		Host:  repo.GitHub,
		URL:   "https://github.com/bar/Foo",
		LatestTag: &repo.Tag{
			Name: "v1.2.0",
			Date: time.Date(2023, 5, 1, 0, 0, 0, 0, time.UTC),
		},
	}

	got := Format(facts, now)

	want := Citation{
		Key:       "bar2023Foo",
		Title:     "Foo",
		Author:    "bar",
		URL:       "https://github.com/bar/Foo",
		Year:      "2023",
		Publisher: "GitHub",
		Version:   "v1.2.0",
		BibTeX: `@misc{bar2023Foo,
  author = {bar},
  title = {{Foo}},
  howpublished = {\url{https://github.com/bar/Foo}},
  year = {2023},
  note = {GitHub Repository, version {v1.2.0}, accessed 2026}
}`,
	}

	if got != want {
		t.Errorf("Format() mismatch\ngot:  %+v\nwant: %+v", got, want)
	}
}

func TestFormat_NoTag(t *testing.T) {
	facts := repo.Facts{
		Name:  "proj",
		Owner: "team",
		Host:  repo.GitLab,
		URL:   "https://gitlab.example.com/team/proj",
	}

	got := Format(facts, now)

	if got.Version != DefaultVersion {
		t.Errorf("Version = %q, want %q", got.Version, DefaultVersion)
	}
	if got.Year != "2026" {
		t.Errorf("Year = %q, want 2026", got.Year)
	}
	if got.Key != "team2026proj" {
		t.Errorf("Key = %q, want team2026proj", got.Key)
	}
	if got.Publisher != "GitLab" {
		t.Errorf("Publisher = %q, want GitLab", got.Publisher)
	}

	wantBib := `@misc{team2026proj,
  author = {team},
  title = {{proj}},
  howpublished = {\url{https://gitlab.example.com/team/proj}},
  year = {2026},
  note = {GitLab Repository, version {latest}, accessed 2026}
}`
	if got.BibTeX != wantBib {
		t.Errorf("BibTeX mismatch\ngot:\n%s\nwant:\n%s", got.BibTeX, wantBib)
	}
}

func TestFormat_TagYearIsUTC(t *testing.T) {
	// 2022-12-31T23:30:00-05:00 is already 2023 in UTC.
	loc := time.FixedZone("EST", -5*3600)
	facts := repo.Facts{
		Name:      "r",
		Owner:     "o",
		LatestTag: &repo.Tag{Name: "1.0", Date: time.Date(2022, 12, 31, 23, 30, 0, 0, loc)},
	}

	if got := Format(facts, now).Year; got != "2023" {
		t.Errorf("Year = %q, want 2023", got)
	}
}

func TestFormat_Idempotent(t *testing.T) {
	facts := repo.Facts{
		Name:      "Foo",
		Owner:     "bar",
		URL:       "https://github.com/bar/Foo",
		LatestTag: &repo.Tag{Name: "v1.2.0", Date: time.Date(2023, 5, 1, 0, 0, 0, 0, time.UTC)},
	}

	first := Format(facts, now)
	second := Format(facts, now)
	if first != second {
		t.Errorf("Format() not idempotent:\n%+v\n%+v", first, second)
	}
}
