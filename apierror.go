package almaclient

import "fmt"

// APIError is the base error for any non-2xx answer from the service. Message
// is the caller-facing summary, Detail the service-supplied explanation pulled
// out of the error body by ExtractErrorDetail.
type APIError struct {
	Message    string
	StatusCode int // 0 when the failure carries no HTTP status
	URL        string
	Detail     string
}

func (e *APIError) Error() string {
	prefix := ""
	if e.StatusCode != 0 {
		prefix = fmt.Sprintf("HTTP %d ", e.StatusCode)
		if e.URL != "" {
			prefix = fmt.Sprintf("HTTP %d for URL %s ", e.StatusCode, e.URL)
		}
	}
	s := prefix + ": " + e.Message
	if e.Detail != "" {
		s += " Detail: " + e.Detail
	}
	return s
}

// AuthenticationError reports a rejected API key. The service answers 400 with
// an error body rather than 401, so no status code is assumed.
type AuthenticationError struct {
	APIError
}

// NewAuthenticationError builds the error with its default message filled in.
func NewAuthenticationError(message, url, detail string) *AuthenticationError {
	if message == "" {
		message = "Authentication failed"
	}
	return &AuthenticationError{APIError{Message: message, URL: url, Detail: detail}}
}

// NotFoundError reports a 404 for a resource that does not exist.
type NotFoundError struct {
	APIError
}

func NewNotFoundError(message, url, detail string) *NotFoundError {
	if message == "" {
		message = "Resource not found"
	}
	return &NotFoundError{APIError{Message: message, StatusCode: 404, URL: url, Detail: detail}}
}

// RateLimitError reports a 429 from the per-key request governor.
type RateLimitError struct {
	APIError
}

func NewRateLimitError(message, url, detail string) *RateLimitError {
	if message == "" {
		message = "API rate limit exceeded"
	}
	return &RateLimitError{APIError{Message: message, StatusCode: 429, URL: url, Detail: detail}}
}

// InvalidInputError reports a 400 for a malformed or rejected request.
type InvalidInputError struct {
	APIError
}

func NewInvalidInputError(message, url, detail string) *InvalidInputError {
	if message == "" {
		message = "Invalid input provided"
	}
	return &InvalidInputError{APIError{Message: message, StatusCode: 400, URL: url, Detail: detail}}
}
