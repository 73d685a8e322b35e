package requester

import (
	"net/http"
	"time"

	"github.com/apicall-go/apicall/config"
)

// Session is the transport seam: it exchanges one request for one
// response. The production implementations below back it with net/http
// or resty; tests back it with canned responses. Cancellation and
// timeouts belong to the session, not the client.
type Session interface {
	Do(req *http.Request) (*http.Response, error)
}

// SessionFunc adapts a function to the Session interface.
type SessionFunc func(req *http.Request) (*http.Response, error)

func (f SessionFunc) Do(req *http.Request) (*http.Response, error) { return f(req) }

// HTTPSession is the default net/http-backed session.
type HTTPSession struct {
	client *http.Client
}

// NewHTTPSession creates a session with the configured timeout.
func NewHTTPSession(httpConfig config.HTTPConfig) *HTTPSession {
	return &HTTPSession{
		client: &http.Client{
			Timeout: httpConfig.Timeout,
		},
	}
}

// SetTimeout sets the timeout for the underlying HTTP client
func (s *HTTPSession) SetTimeout(timeout time.Duration) {
	s.client.Timeout = timeout
}

func (s *HTTPSession) Do(req *http.Request) (*http.Response, error) {
	return s.client.Do(req)
}
