package errors

import (
	"strings"
	"unicode"
)

// MaxQueryLength bounds the length of a repository reference or search term.
const MaxQueryLength = 512

// ValidateQuery validates a user-supplied repository reference or search term
// before it reaches the parser or a host API.
//
// Validation rules:
//   - Query cannot be empty or whitespace only
//   - Maximum length of MaxQueryLength bytes
//   - No control characters (including null bytes)
func ValidateQuery(query string) error {
	if strings.TrimSpace(query) == "" {
		return New(ErrCodeInvalidInput, "repository reference cannot be empty")
	}

	if len(query) > MaxQueryLength {
		return New(ErrCodeInvalidInput, "repository reference too long (max %d characters)", MaxQueryLength)
	}

	for _, r := range query {
		if unicode.IsControl(r) {
			return New(ErrCodeInvalidInput, "repository reference contains invalid control characters")
		}
	}

	return nil
}

// ValidateURL validates a URL string for safety.
// It ensures the URL has a safe scheme (http or https).
func ValidateURL(rawURL string) error {
	if rawURL == "" {
		return New(ErrCodeInvalidInput, "URL cannot be empty")
	}

	if !strings.HasPrefix(rawURL, "http://") && !strings.HasPrefix(rawURL, "https://") {
		return New(ErrCodeInvalidInput, "URL must use http or https scheme")
	}

	return nil
}
