package requester

import (
	"fmt"
	"io"
	"net/http"

	"github.com/apicall-go/apicall/logger"

	"go.uber.org/fx"
	"go.uber.org/zap"
)

// HTTPClientParams holds the parameters for creating an HTTPClient
type HTTPClientParams struct {
	fx.In

	Session Session
	Codec   Codec
}

// HTTPClient executes built requests against a Session and turns every
// failure into one of the three error kinds: InvalidResponseError,
// DecodingError or NetworkError. It performs no retries and keeps no
// state between calls, so concurrent use is fine.
type HTTPClient struct {
	session Session
	codec   Codec
	log     *zap.Logger
}

// NewHTTPClient creates a new HTTPClient
func NewHTTPClient(params HTTPClientParams) *HTTPClient {
	codec := params.Codec
	if codec == nil {
		codec = JSONCodec{}
	}
	return &HTTPClient{
		session: params.Session,
		codec:   codec,
		log:     logger.GetLogger(),
	}
}

// Do dispatches the request to the session and reads the full body
// into a Response envelope. Transport failures come back as
// NetworkError; a session that produces neither a response nor an
// error yields an InvalidResponseError with status -1.
func (c *HTTPClient) Do(req *Request) (*Response, error) {
	c.log.Debug("dispatching request",
		zap.String("method", req.Method), zap.String("url", req.URL))

	resp, err := c.session.Do(req.HTTPRequest)
	if err != nil {
		return nil, Classify(err)
	}
	if resp == nil {
		return nil, &InvalidResponseError{
			StatusCode:  -1,
			URL:         req.URL,
			Description: "Invalid response type",
		}
	}
	defer func() { _ = resp.Body.Close() }()

	body, err := io.ReadAll(resp.Body)
	if err != nil {
		return nil, &NetworkError{Err: fmt.Errorf("failed to read response body: %w", err)}
	}

	return &Response{
		StatusCode: resp.StatusCode,
		Body:       body,
		Headers:    resp.Header,
	}, nil
}

// Execute runs the request and decodes the body of a 2xx response into
// T. Non-2xx responses yield an InvalidResponseError carrying the
// status, URL and response headers; decode failures (including an
// empty body) yield a DecodingError; everything else is a NetworkError.
func Execute[T any](c *HTTPClient, req *Request) (T, error) {
	var out T

	resp, err := c.Do(req)
	if err != nil {
		return out, Classify(err)
	}

	if resp.StatusCode < 200 || resp.StatusCode >= 300 {
		description := http.StatusText(resp.StatusCode)
		if description == "" {
			description = fmt.Sprintf("unexpected status %d", resp.StatusCode)
		}
		c.log.Warn("request rejected",
			zap.String("url", req.URL), zap.Int("status", resp.StatusCode))
		return out, &InvalidResponseError{
			StatusCode:  resp.StatusCode,
			URL:         req.URL,
			Description: description,
			Headers:     resp.Headers,
		}
	}

	if err := c.codec.Unmarshal(resp.Body, &out); err != nil {
		return out, &DecodingError{Err: err}
	}
	return out, nil
}
