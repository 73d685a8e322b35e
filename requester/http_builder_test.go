package requester_test

import (
	"context"
	"net/http"
	"net/url"
	"testing"
	"time"

	"github.com/apicall-go/apicall/config"
	"github.com/apicall-go/apicall/requester"

	"github.com/google/go-cmp/cmp"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// testEndpoint is a minimal Endpoint implementation for tests; real
// consumers supply their own, typically one value per operation.
type testEndpoint struct {
	base    string
	path    string
	method  string
	headers map[string]string
	params  map[string]any
}

func (e testEndpoint) BaseURL() string            { return e.base }
func (e testEndpoint) Path() string               { return e.path }
func (e testEndpoint) Method() string             { return e.method }
func (e testEndpoint) Headers() map[string]string { return e.headers }
func (e testEndpoint) Parameters() map[string]any { return e.params }

type mockAuthManager struct {
	applyFunc func(*http.Request) error
}

func (m *mockAuthManager) Apply(req *http.Request) error {
	if m.applyFunc == nil {
		return nil
	}
	return m.applyFunc(req)
}

func newTestBuilder(httpConfig config.HTTPConfig, auth requester.AuthManager) *requester.HTTPRequestBuilder {
	return requester.NewHTTPRequestBuilder(requester.HTTPRequestBuilderParams{
		HTTPConfig:  httpConfig,
		AuthManager: auth,
		Codec:       requester.JSONCodec{},
	})
}

func TestHTTPRequestBuilder_Build(t *testing.T) {
	tests := []struct {
		name         string
		httpConfig   config.HTTPConfig
		authManager  requester.AuthManager
		endpoint     testEndpoint
		payload      any
		wantErr      bool
		checkRequest func(t *testing.T, req *requester.Request)
	}{
		{
			name: "Simple GET Request",
			endpoint: testEndpoint{
				base:   "http://api.example.com",
				path:   "/search",
				method: http.MethodGet,
				params: map[string]any{
					"query": "books",
					"page":  2,
					"exact": true,
					"score": 1.5,
					"wait":  5 * time.Second,
				},
			},
			checkRequest: func(t *testing.T, req *requester.Request) {
				u, err := url.Parse(req.URL)
				require.NoError(t, err)
				assert.Equal(t, "http://api.example.com/search", u.Scheme+"://"+u.Host+u.Path)
				assert.Equal(t, http.MethodGet, req.HTTPRequest.Method)

				want := url.Values{
					"query": {"books"},
					"page":  {"2"},
					"exact": {"true"},
					"score": {"1.5"},
					"wait":  {"5s"},
				}
				if diff := cmp.Diff(want, u.Query()); diff != "" {
					t.Errorf("query mismatch (-want +got):\n%s", diff)
				}
			},
		},
		{
			name: "Headers Merged With Endpoint Override",
			httpConfig: config.HTTPConfig{
				Headers: map[string]string{
					"Accept": "application/json",
					"X-Env":  "prod",
				},
			},
			endpoint: testEndpoint{
				base:    "http://api.example.com",
				path:    "/resource",
				method:  http.MethodGet,
				headers: map[string]string{"X-Env": "test"},
			},
			checkRequest: func(t *testing.T, req *requester.Request) {
				assert.Equal(t, "application/json", req.HTTPRequest.Header.Get("Accept"))
				assert.Equal(t, "test", req.HTTPRequest.Header.Get("X-Env"))
			},
		},
		{
			name: "Non-Stringifiable Parameters Dropped",
			endpoint: testEndpoint{
				base:   "http://api.example.com",
				path:   "/items",
				method: http.MethodGet,
				params: map[string]any{
					"name": "ok",
					"tags": []string{"a", "b"},
					"meta": map[string]string{"k": "v"},
					"none": nil,
					"link": (*url.URL)(nil),
				},
			},
			checkRequest: func(t *testing.T, req *requester.Request) {
				u, err := url.Parse(req.URL)
				require.NoError(t, err)
				want := url.Values{"name": {"ok"}}
				if diff := cmp.Diff(want, u.Query()); diff != "" {
					t.Errorf("query mismatch (-want +got):\n%s", diff)
				}
			},
		},
		{
			name: "POST Request with Payload",
			endpoint: testEndpoint{
				base:   "http://api.example.com",
				path:   "/create",
				method: http.MethodPost,
			},
			payload: map[string]string{"name": "test"},
			checkRequest: func(t *testing.T, req *requester.Request) {
				assert.Equal(t, http.MethodPost, req.HTTPRequest.Method)
				assert.Equal(t, "application/json", req.HTTPRequest.Header.Get("Content-Type"))
				assert.JSONEq(t, `{"name":"test"}`, string(req.Body))
			},
		},
		{
			name: "Auth Applied",
			authManager: &mockAuthManager{
				applyFunc: func(req *http.Request) error {
					req.Header.Set("Authorization", "Bearer test-token")
					return nil
				},
			},
			endpoint: testEndpoint{
				base:   "http://api.example.com",
				path:   "/private",
				method: http.MethodGet,
			},
			checkRequest: func(t *testing.T, req *requester.Request) {
				assert.Equal(t, "Bearer test-token", req.HTTPRequest.Header.Get("Authorization"))
			},
		},
		{
			name: "Malformed Base URL",
			endpoint: testEndpoint{
				base:   "://missing-scheme",
				path:   "/x",
				method: http.MethodGet,
			},
			wantErr: true,
		},
		{
			name: "Relative URL Rejected",
			endpoint: testEndpoint{
				base:   "not-a-url",
				path:   "/x",
				method: http.MethodGet,
			},
			wantErr: true,
		},
		{
			name: "Payload Encoding Failure",
			endpoint: testEndpoint{
				base:   "http://api.example.com",
				path:   "/create",
				method: http.MethodPost,
			},
			payload: make(chan int),
			wantErr: true,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			builder := newTestBuilder(tt.httpConfig, tt.authManager)

			req, err := builder.Build(context.Background(), tt.endpoint, tt.payload)
			if tt.wantErr {
				assert.Error(t, err)
				return
			}

			require.NoError(t, err)
			tt.checkRequest(t, req)
		})
	}
}

func TestHTTPRequestBuilder_BadURLSentinel(t *testing.T) {
	builder := newTestBuilder(config.HTTPConfig{}, nil)

	_, err := builder.Build(context.Background(), testEndpoint{
		base:   "://broken",
		path:   "/x",
		method: http.MethodGet,
	}, nil)
	require.Error(t, err)
	assert.ErrorIs(t, err, requester.ErrBadURL)

	_, err = builder.Build(context.Background(), testEndpoint{
		base:   "no-scheme.example.com",
		path:   "/x",
		method: http.MethodGet,
	}, nil)
	require.Error(t, err)
	assert.ErrorIs(t, err, requester.ErrBadURL)
}

func TestHTTPRequestBuilder_TypedNilStringerDropped(t *testing.T) {
	builder := newTestBuilder(config.HTTPConfig{}, nil)

	// *url.URL implements fmt.Stringer; a typed-nil value must be
	// dropped like any other non-stringifiable parameter, not panic.
	req, err := builder.Build(context.Background(), testEndpoint{
		base:   "http://api.example.com",
		path:   "/items",
		method: http.MethodGet,
		params: map[string]any{
			"link": (*url.URL)(nil),
			"name": "ok",
		},
	}, nil)
	require.NoError(t, err)

	u, err := url.Parse(req.URL)
	require.NoError(t, err)
	want := url.Values{"name": {"ok"}}
	if diff := cmp.Diff(want, u.Query()); diff != "" {
		t.Errorf("query mismatch (-want +got):\n%s", diff)
	}
}

func TestHTTPRequestBuilder_HeadersMatchSentRequest(t *testing.T) {
	builder := requester.NewHTTPRequestBuilder(requester.HTTPRequestBuilderParams{
		HTTPConfig: config.HTTPConfig{Headers: map[string]string{"Accept": "application/json"}},
		AuthManager: &mockAuthManager{
			applyFunc: func(req *http.Request) error {
				req.Header.Set("Authorization", "Bearer test-token")
				return nil
			},
		},
		Codec: requester.JSONCodec{},
	})

	req, err := builder.Build(context.Background(), testEndpoint{
		base:    "http://api.example.com",
		path:    "/create",
		method:  http.MethodPost,
		headers: map[string]string{"X-Env": "test"},
	}, map[string]string{"name": "test"})
	require.NoError(t, err)

	// The envelope's header map must agree with what the session sends,
	// including the codec's Content-Type and auth-applied headers.
	want := map[string]string{
		"Accept":        "application/json",
		"X-Env":         "test",
		"Content-Type":  "application/json",
		"Authorization": "Bearer test-token",
	}
	assert.Equal(t, want, req.Headers)
	for key, value := range want {
		assert.Equal(t, value, req.HTTPRequest.Header.Get(key))
	}
}

func TestHTTPRequestBuilder_Deterministic(t *testing.T) {
	builder := newTestBuilder(config.HTTPConfig{}, nil)
	endpoint := testEndpoint{
		base:   "http://api.example.com",
		path:   "/orders",
		method: http.MethodPost,
		params: map[string]any{"page": 3, "status": "open"},
	}
	payload := map[string]string{"item": "pencil"}

	first, err := builder.Build(context.Background(), endpoint, payload)
	require.NoError(t, err)
	second, err := builder.Build(context.Background(), endpoint, payload)
	require.NoError(t, err)

	assert.Equal(t, first.URL, second.URL)
	assert.Equal(t, first.Method, second.Method)
	assert.Equal(t, first.Body, second.Body)
	assert.Equal(t, first.Headers, second.Headers)
}
