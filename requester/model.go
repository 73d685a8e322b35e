package requester

import (
	"net/http"
)

// Request represents a fully built HTTP request. It is derived
// deterministically from an Endpoint and an optional payload, built
// fresh per call and never reused.
type Request struct {
	URL     string
	Method  string
	Headers map[string]string
	Body    []byte
	// The actual HTTP request handed to the session
	HTTPRequest *http.Request
}

// Response is the raw envelope returned by the session: body bytes
// plus status and header metadata.
type Response struct {
	StatusCode int
	Body       []byte
	Headers    http.Header
}
