package errors

import (
	"strings"
	"testing"
)

func TestValidateQuery(t *testing.T) {
	tests := []struct {
		name    string
		input   string
		wantErr bool
	}{
		{"shorthand", "spf13/cobra", false},
		{"full url", "https://github.com/spf13/cobra", false},
		{"gitlab instance", "gitlab.example.com/team/proj", false},
		{"free text", "not a url", false},

		{"empty", "", true},
		{"whitespace", "   ", true},
		{"too long", strings.Repeat("a", MaxQueryLength+1), true},
		{"null byte", "foo\x00bar", true},
		{"control char", "foo\x01bar", true},
		{"newline", "foo\nbar", true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := ValidateQuery(tt.input)
			if (err != nil) != tt.wantErr {
				t.Errorf("ValidateQuery(%q) error = %v, wantErr %v", tt.input, err, tt.wantErr)
			}
			if err != nil && !Is(err, ErrCodeInvalidInput) {
				t.Errorf("ValidateQuery(%q) code = %v, want %v", tt.input, GetCode(err), ErrCodeInvalidInput)
			}
		})
	}
}

func TestValidateURL(t *testing.T) {
	tests := []struct {
		input   string
		wantErr bool
	}{
		{"https://api.github.com/repos/o/r/commits/abc", false},
		{"http://localhost:8080/commits/abc", false},
		{"", true},
		{"ftp://example.com", true},
		{"javascript:alert(1)", true},
	}

	for _, tt := range tests {
		err := ValidateURL(tt.input)
		if (err != nil) != tt.wantErr {
			t.Errorf("ValidateURL(%q) error = %v, wantErr %v", tt.input, err, tt.wantErr)
		}
	}
}
