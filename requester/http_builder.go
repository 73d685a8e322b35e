package requester

import (
	"bytes"
	"context"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"reflect"
	"strconv"

	"github.com/apicall-go/apicall/config"
	"github.com/apicall-go/apicall/logger"

	"go.uber.org/fx"
	"go.uber.org/zap"
)

// HTTPRequestBuilderParams holds the parameters for creating an HTTPRequestBuilder
type HTTPRequestBuilderParams struct {
	fx.In

	HTTPConfig  config.HTTPConfig
	AuthManager AuthManager
	Codec       Codec
}

// HTTPRequestBuilder turns an Endpoint plus an optional payload into a
// Request. It holds only immutable configuration and is safe for
// concurrent use.
type HTTPRequestBuilder struct {
	headers map[string]string
	authMgr AuthManager
	codec   Codec
	log     *zap.Logger
}

// NewHTTPRequestBuilder creates a new HTTPRequestBuilder
func NewHTTPRequestBuilder(params HTTPRequestBuilderParams) *HTTPRequestBuilder {
	codec := params.Codec
	if codec == nil {
		codec = JSONCodec{}
	}
	return &HTTPRequestBuilder{
		headers: params.HTTPConfig.Headers,
		authMgr: params.AuthManager,
		codec:   codec,
		log:     logger.GetLogger(),
	}
}

// Build derives a Request from the endpoint and the optional payload.
// The same endpoint and payload always produce the same request; no
// I/O happens here. A nil payload means no body.
func (b *HTTPRequestBuilder) Build(ctx context.Context, endpoint Endpoint, payload any) (*Request, error) {
	raw := endpoint.BaseURL() + endpoint.Path()
	u, err := url.Parse(raw)
	if err != nil {
		return nil, fmt.Errorf("%w: %q: %v", ErrBadURL, raw, err)
	}
	if u.Scheme == "" || u.Host == "" {
		return nil, fmt.Errorf("%w: %q", ErrBadURL, raw)
	}

	query := u.Query()
	for key, value := range endpoint.Parameters() {
		s, ok := stringify(value)
		if !ok {
			// Non-scalar values are dropped rather than rejected.
			b.log.Debug("dropping non-stringifiable query parameter",
				zap.String("key", key), zap.Any("value", value))
			continue
		}
		query.Set(key, s)
	}
	u.RawQuery = query.Encode()

	var body []byte
	if payload != nil {
		body, err = b.codec.Marshal(payload)
		if err != nil {
			return nil, fmt.Errorf("failed to encode request body: %w", err)
		}
	}

	// Merge headers; endpoint headers win over the shared defaults
	headers := make(map[string]string, len(b.headers)+len(endpoint.Headers()))
	for k, v := range b.headers {
		headers[k] = v
	}
	for k, v := range endpoint.Headers() {
		headers[k] = v
	}

	var bodyReader io.Reader
	if body != nil {
		bodyReader = bytes.NewReader(body)
	}
	httpReq, err := http.NewRequestWithContext(ctx, endpoint.Method(), u.String(), bodyReader)
	if err != nil {
		return nil, fmt.Errorf("failed to create HTTP request: %w", err)
	}

	for key, value := range headers {
		httpReq.Header.Set(key, value)
	}
	if body != nil {
		httpReq.Header.Set("Content-Type", b.codec.ContentType())
	}

	if b.authMgr != nil {
		if err := b.authMgr.Apply(httpReq); err != nil {
			return nil, fmt.Errorf("failed to apply authentication: %w", err)
		}
	}

	// Snapshot the final header set so Headers agrees with what the
	// session actually sends, including Content-Type and auth headers.
	sent := make(map[string]string, len(httpReq.Header))
	for key := range httpReq.Header {
		sent[key] = httpReq.Header.Get(key)
	}

	return &Request{
		URL:         u.String(),
		Method:      endpoint.Method(),
		Headers:     sent,
		Body:        body,
		HTTPRequest: httpReq,
	}, nil
}

// stringify converts a query parameter value to its string form. The
// second result is false for values with no scalar representation.
func stringify(value any) (string, bool) {
	switch v := value.(type) {
	case string:
		return v, true
	case bool:
		return strconv.FormatBool(v), true
	case int:
		return strconv.Itoa(v), true
	case int8:
		return strconv.FormatInt(int64(v), 10), true
	case int16:
		return strconv.FormatInt(int64(v), 10), true
	case int32:
		return strconv.FormatInt(int64(v), 10), true
	case int64:
		return strconv.FormatInt(v, 10), true
	case uint:
		return strconv.FormatUint(uint64(v), 10), true
	case uint8:
		return strconv.FormatUint(uint64(v), 10), true
	case uint16:
		return strconv.FormatUint(uint64(v), 10), true
	case uint32:
		return strconv.FormatUint(uint64(v), 10), true
	case uint64:
		return strconv.FormatUint(v, 10), true
	case float32:
		return strconv.FormatFloat(float64(v), 'f', -1, 32), true
	case float64:
		return strconv.FormatFloat(v, 'f', -1, 64), true
	case fmt.Stringer:
		// A typed-nil pointer still satisfies fmt.Stringer; calling
		// String() on it would panic. Treat it like any other
		// non-stringifiable value.
		rv := reflect.ValueOf(v)
		if rv.Kind() == reflect.Ptr && rv.IsNil() {
			return "", false
		}
		return v.String(), true
	default:
		return "", false
	}
}
