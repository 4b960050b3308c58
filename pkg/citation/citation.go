// Package citation renders BibTeX records for repositories.
//
// [Format] is pure given its inputs: the repository facts and the current
// time. The time only feeds the fallback year (repositories without tags)
// and the "accessed" stamp, so callers that pin it get identical output on
// every call.
package citation

import (
	"strconv"
	"time"

	"github.com/matzehuels/gitcite/pkg/repo"
)

// DefaultVersion is the version reported for repositories without tags.
const DefaultVersion = "latest"

// Citation is a rendered BibTeX record together with its structured fields.
type Citation struct {
	BibTeX    string `json:"bibtex"`
	Key       string `json:"key"`
	Title     string `json:"title"`
	Author    string `json:"author"`
	URL       string `json:"url"`
	Year      string `json:"year"`
	Publisher string `json:"publisher"`
	Version   string `json:"version"`
}

// Format builds the citation for f. now supplies the year used when f has no
// tag and the year of the "accessed" note.
//
// The entry key is owner+year+name with no separators. Owner and name are
// inserted verbatim; escaping BibTeX special characters is the caller's
// concern.
func Format(f repo.Facts, now time.Time) Citation {
	currentYear := strconv.Itoa(now.Year())

	year := currentYear
	version := DefaultVersion
	if f.LatestTag != nil {
		year = strconv.Itoa(f.LatestTag.Date.UTC().Year())
		version = f.LatestTag.Name
	}

	key := f.Owner + year + f.Name
	publisher := f.Host.String()

	return Citation{
		BibTeX:    render(key, f.Owner, f.Name, f.URL, year, publisher, version, currentYear),
		Key:       key,
		Title:     f.Name,
		Author:    f.Owner,
		URL:       f.URL,
		Year:      year,
		Publisher: publisher,
		Version:   version,
	}
}

// render produces the @misc entry. Field order and spacing are fixed;
// downstream tooling compares these records byte-for-byte.
func render(key, author, title, url, year, publisher, version, accessed string) string {
	return "@misc{" + key + ",\n" +
		"  author = {" + author + "},\n" +
		"  title = {{" + title + "}},\n" +
		"  howpublished = {\\url{" + url + "}},\n" +
		"  year = {" + year + "},\n" +
		"  note = {" + publisher + " Repository, version {" + version + "}, accessed " + accessed + "}\n" +
		"}"
}
