package buildinfo

import (
	"strings"
	"testing"
)

func TestString(t *testing.T) {
	s := String()
	for _, want := range []string{"version: " + Version, "commit: " + Commit, "built: " + Date} {
		if !strings.Contains(s, want) {
			t.Errorf("String() = %q, missing %q", s, want)
		}
	}
}

func TestTemplate(t *testing.T) {
	if !strings.HasPrefix(Template(), "{{.Name}} version ") {
		t.Errorf("Template() = %q", Template())
	}
}

func TestUserAgent(t *testing.T) {
	old := Version
	Version = "v1.2.3"
	defer func() { Version = old }()

	if got := UserAgent(); got != "gitcite/v1.2.3" {
		t.Errorf("UserAgent() = %q, want gitcite/v1.2.3", got)
	}
}
