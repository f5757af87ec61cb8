package github

import (
	"encoding/json"
	stderrors "errors"
	"fmt"
	"strings"
)

// APIError is a non-2xx response from the GitHub API. GitHub normally sends a
// JSON body with a message; when it does not, Message holds the raw body.
type APIError struct {
	StatusCode       int
	Message          string
	DocumentationURL string

	// Structured is false when the body was not a GitHub JSON error
	Structured bool
}

func (err *APIError) Error() string {
	return fmt.Sprintf("github: HTTP %d: %s", err.StatusCode, err.Message)
}

// IsRateLimited reports whether err is a GitHub rate limit response.
// The primary limit answers 403 with a recognisable message, the secondary
// one answers 429.
func IsRateLimited(err error) bool {
	var apiError *APIError
	if !stderrors.As(err, &apiError) {
		return false
	}
	if apiError.StatusCode == 429 {
		return true
	}
	lower := strings.ToLower(apiError.Message)
	return apiError.StatusCode == 403 &&
		(strings.Contains(lower, "rate limit") || strings.Contains(lower, "abuse detection"))
}

// IsNotFound reports whether err is a 404, e.g. an unknown repository
func IsNotFound(err error) bool {
	var apiError *APIError
	return stderrors.As(err, &apiError) && apiError.StatusCode == 404
}

func parseAPIError(statusCode int, body []byte) *APIError {
	apiError := &APIError{StatusCode: statusCode}

	var wire struct {
		Message          string `json:"message"`
		DocumentationURL string `json:"documentation_url"`
	}
	if json.Unmarshal(body, &wire) == nil && wire.Message != "" {
		apiError.Message = wire.Message
		apiError.DocumentationURL = wire.DocumentationURL
		apiError.Structured = true
	} else {
		apiError.Message = strings.TrimSpace(string(body))
	}

	return apiError
}
