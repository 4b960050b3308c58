package repo

import (
	"testing"

	errs "github.com/matzehuels/gitcite/pkg/errors"
)

func TestParse_GitHub(t *testing.T) {
	inputs := []string{
		"github.com/o/r",
		"o/r",
		"https://github.com/o/r",
		"http://github.com/o/r",
		"https://github.com/o/r.git",
		"github.com/o/r.git",
		"o/r.git",
		"https://github.com/o/r/tree/main/docs",
		"https://github.com/o/r?tab=readme",
		"www.github.com/o/r",
		"  https://github.com/o/r  ",
	}

	for _, in := range inputs {
		t.Run(in, func(t *testing.T) {
			got, err := Parse(in)
			if err != nil {
				t.Fatalf("Parse(%q) error: %v", in, err)
			}
			want := Reference{Owner: "o", Repo: "r", Host: GitHub}
			if got != want {
				t.Errorf("Parse(%q) = %+v, want %+v", in, got, want)
			}
		})
	}
}

func TestParse_GitLab(t *testing.T) {
	tests := []struct {
		input string
		want  Reference
	}{
		{
			input: "gitlab.com/team/proj",
			want:  Reference{Owner: "team", Repo: "proj", Host: GitLab, Instance: "gitlab.com"},
		},
		{
			input: "https://gitlab.com/team/proj.git",
			want:  Reference{Owner: "team", Repo: "proj", Host: GitLab, Instance: "gitlab.com"},
		},
		{
			input: "gitlab.example.com/team/proj",
			want:  Reference{Owner: "team", Repo: "proj", Host: GitLab, Instance: "gitlab.example.com"},
		},
		{
			input: "https://gitlab.cern.ch/atlas/athena",
			want:  Reference{Owner: "atlas", Repo: "athena", Host: GitLab, Instance: "gitlab.cern.ch"},
		},
		{
			input: "http://gitlab.dev.example.org/group/tool.git",
			want:  Reference{Owner: "group", Repo: "tool", Host: GitLab, Instance: "gitlab.dev.example.org"},
		},
		{
			input: "gitlab.example.com/team/proj/-/tags",
			want:  Reference{Owner: "team", Repo: "proj", Host: GitLab, Instance: "gitlab.example.com"},
		},
	}

	for _, tt := range tests {
		t.Run(tt.input, func(t *testing.T) {
			got, err := Parse(tt.input)
			if err != nil {
				t.Fatalf("Parse(%q) error: %v", tt.input, err)
			}
			if got != tt.want {
				t.Errorf("Parse(%q) = %+v, want %+v", tt.input, got, tt.want)
			}
		})
	}
}

func TestParse_Failure(t *testing.T) {
	inputs := []string{
		"not a url",
		"",
		"cobra",
		"https://bitbucket.org/o/r",
		"o/.git",
	}

	for _, in := range inputs {
		t.Run(in, func(t *testing.T) {
			_, err := Parse(in)
			if err == nil {
				t.Fatalf("Parse(%q) succeeded, want error", in)
			}
			if !errs.Is(err, errs.ErrCodeInvalidReference) {
				t.Errorf("Parse(%q) code = %v, want %v", in, errs.GetCode(err), errs.ErrCodeInvalidReference)
			}
			if msg := errs.UserMessage(err); msg != "unrecognized repository URL format" {
				t.Errorf("message = %q", msg)
			}
		})
	}
}

func TestParse_Precedence(t *testing.T) {
	tests := []struct {
		input   string
		pattern string
	}{
		{"https://github.com/o/r", "github-url"},
		{"o/r", "shorthand"},
		{"gitlab.com/o/r", "gitlab-url"},
		{"gitlab.example.com/o/r", "gitlab-instance"},
		{"not a url", ""},
	}

	for _, tt := range tests {
		if got := MatchedPattern(tt.input); got != tt.pattern {
			t.Errorf("MatchedPattern(%q) = %q, want %q", tt.input, got, tt.pattern)
		}
	}
}

func TestReference_StringRoundTrip(t *testing.T) {
	refs := []Reference{
		{Owner: "o", Repo: "r", Host: GitHub},
		{Owner: "team", Repo: "proj", Host: GitLab, Instance: "gitlab.com"},
		{Owner: "team", Repo: "proj", Host: GitLab, Instance: "gitlab.example.com"},
	}

	for _, ref := range refs {
		got, err := Parse(ref.String())
		if err != nil {
			t.Fatalf("Parse(%q) error: %v", ref.String(), err)
		}
		if got != ref {
			t.Errorf("Parse(%q) = %+v, want %+v", ref.String(), got, ref)
		}
	}
}

func TestReference_Domain(t *testing.T) {
	tests := []struct {
		ref  Reference
		want string
	}{
		{Reference{Host: GitHub}, "github.com"},
		{Reference{Host: GitLab}, "gitlab.com"},
		{Reference{Host: GitLab, Instance: "gitlab.cern.ch"}, "gitlab.cern.ch"},
	}

	for _, tt := range tests {
		if got := tt.ref.Domain(); got != tt.want {
			t.Errorf("%+v.Domain() = %q, want %q", tt.ref, got, tt.want)
		}
	}
}

func TestHost_JSON(t *testing.T) {
	for _, h := range []Host{GitHub, GitLab} {
		data, err := h.MarshalJSON()
		if err != nil {
			t.Fatal(err)
		}
		var got Host
		if err := got.UnmarshalJSON(data); err != nil {
			t.Fatal(err)
		}
		if got != h {
			t.Errorf("round trip %v -> %s -> %v", h, data, got)
		}
	}

	var h Host
	if err := h.UnmarshalJSON([]byte(`"bitbucket"`)); err == nil {
		t.Error("expected error for unknown host")
	}
}
