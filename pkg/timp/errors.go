package timp

import (
	"errors"
	"fmt"
	"net/http"
)

var (
	// ErrMissingAPIKey indicates the client was built without a credential.
	ErrMissingAPIKey = errors.New("timp api access key not configured")

	// ErrUnauthorized indicates TIMP rejected the API access key.
	ErrUnauthorized = errors.New("timp rejected the api access key")

	// ErrUpstream indicates a transport failure or unexpected status.
	ErrUpstream = errors.New("timp upstream error")

	// ErrTimeout indicates the request exceeded its deadline. It matches
	// ErrUpstream through errors.Is.
	ErrTimeout = fmt.Errorf("%w: request timed out", ErrUpstream)
)

// StatusError reports a non-200 response from TIMP.
type StatusError struct {
	Endpoint   string
	StatusCode int
	Body       string
}

func (e *StatusError) Error() string {
	return fmt.Sprintf("timp %s returned status %d", e.Endpoint, e.StatusCode)
}

// Unwrap classifies the status into ErrUnauthorized or ErrUpstream.
func (e *StatusError) Unwrap() error {
	if e.StatusCode == http.StatusUnauthorized || e.StatusCode == http.StatusForbidden {
		return ErrUnauthorized
	}
	return ErrUpstream
}
