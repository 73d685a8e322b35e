package requester

import (
	"errors"
	"fmt"
	"net/http"
)

// ErrBadURL reports that an endpoint's base URL and path do not form a
// usable URL. Returned wrapped from Build; test with errors.Is.
var ErrBadURL = errors.New("bad URL")

// InvalidResponseError reports a malformed or non-2xx HTTP response.
// StatusCode is -1 when the session produced something that cannot be
// interpreted as an HTTP response at all.
type InvalidResponseError struct {
	StatusCode  int
	URL         string
	Description string
	Headers     http.Header
}

func (e *InvalidResponseError) Error() string {
	return fmt.Sprintf("invalid response: status %d from %s: %s", e.StatusCode, e.URL, e.Description)
}

// DecodingError reports a 2xx response whose body did not decode into
// the expected type.
type DecodingError struct {
	Err error
}

func (e *DecodingError) Error() string {
	return fmt.Sprintf("failed to decode response: %v", e.Err)
}

func (e *DecodingError) Unwrap() error { return e.Err }

// NetworkError wraps a transport-level failure, or any failure that is
// not already an InvalidResponseError or DecodingError.
type NetworkError struct {
	Err error
}

func (e *NetworkError) Error() string {
	return fmt.Sprintf("network failure: %v", e.Err)
}

func (e *NetworkError) Unwrap() error { return e.Err }

// Classify wraps err in a NetworkError unless it already belongs to
// the taxonomy. A classified error is never re-wrapped.
func Classify(err error) error {
	if err == nil {
		return nil
	}
	var (
		invalidResponse *InvalidResponseError
		decoding        *DecodingError
		network         *NetworkError
	)
	if errors.As(err, &invalidResponse) || errors.As(err, &decoding) || errors.As(err, &network) {
		return err
	}
	return &NetworkError{Err: err}
}
