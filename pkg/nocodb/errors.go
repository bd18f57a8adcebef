package nocodb

import (
	"errors"
	"fmt"
)

// Error kinds reported by the API, derived from the HTTP status class.
const (
	KindClientError = "Client Error"
	KindServerError = "Server Error"
)

// APIError represents a 4xx or 5xx response from the NocoDB API. NocoDB
// writes most of the error description into the response body, so the
// server-provided message is carried along with the status line.
type APIError struct {
	// StatusCode is the HTTP status code of the response.
	StatusCode int
	// Kind is KindClientError for 4xx and KindServerError for 5xx.
	Kind string
	// Reason is the HTTP reason phrase, coerced to valid UTF-8.
	Reason string
	// URL is the request URL that produced the error.
	URL string
	// Message is the "msg" field of the JSON response body, if present.
	Message string
	// Body is the raw response body text, kept when it was not JSON
	// carrying a "msg" field.
	Body string
}

// Error implements the error interface.
func (e *APIError) Error() string {
	msg := fmt.Sprintf("%d %s %s for url %s", e.StatusCode, e.Kind, e.Reason, e.URL)

	switch {
	case e.Message != "":
		return msg + ", " + e.Message
	case e.Body != "":
		return msg + ":\n" + e.Body
	default:
		return msg
	}
}

// Common static errors that can be wrapped with context.
var (
	ErrNotFound        = errors.New("record not found")
	ErrBaseURLRequired = errors.New("base URL is required")
	ErrNoRecords       = errors.New("no records")
	ErrMissingRecordID = errors.New("record is missing an id field")
	ErrTableRequired   = errors.New("table name is required")
	ErrNilConfig       = errors.New("config is required")
)

// IsNotFound checks if the error is a fetch-by-id miss.
func IsNotFound(err error) bool {
	return errors.Is(err, ErrNotFound)
}

// IsClientError checks if the error is a 4xx API error.
func IsClientError(err error) bool {
	apiErr := &APIError{}
	if errors.As(err, &apiErr) {
		return apiErr.Kind == KindClientError
	}

	return false
}

// IsServerError checks if the error is a 5xx API error.
func IsServerError(err error) bool {
	apiErr := &APIError{}
	if errors.As(err, &apiErr) {
		return apiErr.Kind == KindServerError
	}

	return false
}

// StatusCodeOf returns the HTTP status code carried by err, or 0 when err
// is not an APIError.
func StatusCodeOf(err error) int {
	apiErr := &APIError{}
	if errors.As(err, &apiErr) {
		return apiErr.StatusCode
	}

	return 0
}
