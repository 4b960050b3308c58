// Package version ranks repository tags from newest to oldest.
//
// The ordering is a tolerant heuristic rather than strict SemVer: tags such
// as "v2.0.1", "1.0.0-rc1", "release-3" and "2.1-p" all compare without
// error. See [Compare] for the exact rules.
package version

import (
	"slices"
	"strings"

	"github.com/matzehuels/gitcite/pkg/repo"
)

// Compare orders two tag names newest-first. It returns a negative number
// when a is newer than b, a positive number when a is older, and zero when
// they rank equally.
//
// Rules:
//   - A single leading "v" is ignored.
//   - Names are split on "." and "-"; missing trailing parts count as "0".
//   - Parts that are both numeric compare as integers.
//   - Other parts compare lexicographically, except that a literal "p"
//     ranks below any numeric part at the same position.
//   - If every compared part is equal, the name with more parts is newer.
func Compare(a, b string) int {
	partsA := split(a)
	partsB := split(b)

	for i := range max(len(partsA), len(partsB)) {
		pa, pb := part(partsA, i), part(partsB, i)
		numA, numB := isNumeric(pa), isNumeric(pb)

		if numA && numB {
			if c := compareNumeric(pa, pb); c != 0 {
				return -c
			}
			continue
		}

		if c := strings.Compare(pb, pa); c != 0 {
			switch {
			case pa == "p" && numB:
				return 1
			case pb == "p" && numA:
				return -1
			}
			return c
		}
	}

	return sign(len(partsB) - len(partsA))
}

// Latest returns the newest item according to [Compare] applied to name(item).
// Among equally ranked items the earliest one wins. The boolean is false when
// items is empty.
func Latest[T any](items []T, name func(T) string) (T, bool) {
	if len(items) == 0 {
		var zero T
		return zero, false
	}
	sorted := slices.Clone(items)
	slices.SortStableFunc(sorted, func(x, y T) int {
		return Compare(name(x), name(y))
	})
	return sorted[0], true
}

// SelectLatest returns the newest tag. A repository without tags yields
// false, which is a valid state rather than an error.
func SelectLatest(tags []repo.Tag) (repo.Tag, bool) {
	return Latest(tags, func(t repo.Tag) string { return t.Name })
}

func split(name string) []string {
	name = strings.TrimPrefix(name, "v")
	return strings.Split(separators.Replace(name), ".")
}

var separators = strings.NewReplacer("-", ".")

func part(parts []string, i int) string {
	if i < len(parts) {
		return parts[i]
	}
	return "0"
}

func isNumeric(s string) bool {
	if s == "" {
		return false
	}
	for i := 0; i < len(s); i++ {
		if s[i] < '0' || s[i] > '9' {
			return false
		}
	}
	return true
}

// compareNumeric compares two decimal digit strings by value without
// converting them, so arbitrarily long parts cannot overflow.
func compareNumeric(a, b string) int {
	a = strings.TrimLeft(a, "0")
	b = strings.TrimLeft(b, "0")
	if len(a) != len(b) {
		return sign(len(a) - len(b))
	}
	return strings.Compare(a, b)
}

func sign(n int) int {
	switch {
	case n < 0:
		return -1
	case n > 0:
		return 1
	}
	return 0
}
