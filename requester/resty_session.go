package requester

import (
	"bytes"
	"io"
	"net/http"
	"time"

	"github.com/go-resty/resty/v2"
)

// RestySession executes requests through a resty client, for callers
// already standardized on resty. Response parsing is disabled so the
// body reaches the HTTP client untouched.
type RestySession struct {
	client *resty.Client
}

// NewRestySession creates a new RestySession with the specified timeout.
func NewRestySession(timeout time.Duration) *RestySession {
	c := resty.New()
	c.SetTimeout(timeout)
	c.SetDoNotParseResponse(true)
	return &RestySession{client: c}
}

func (s *RestySession) Do(req *http.Request) (*http.Response, error) {
	r := s.client.R().SetContext(req.Context())

	for key, values := range req.Header {
		for _, value := range values {
			r.Header.Add(key, value)
		}
	}

	if req.Body != nil {
		body, err := io.ReadAll(req.Body)
		if err != nil {
			return nil, err
		}
		r.SetBody(bytes.NewReader(body))
	}

	resp, err := r.Execute(req.Method, req.URL.String())
	if err != nil {
		return nil, err
	}
	return resp.RawResponse, nil
}
