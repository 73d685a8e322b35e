package requester

// Endpoint describes one network operation. Each API consumer supplies
// its own implementation, typically one value per logical operation.
// The builder reads only these accessors; everything else about the
// request is derived from them and the optional payload.
type Endpoint interface {
	// BaseURL is the scheme://host[:port] prefix of the operation.
	BaseURL() string
	// Path is appended verbatim to the base URL.
	Path() string
	// Method is the HTTP method, e.g. http.MethodGet.
	Method() string
	// Headers are set on the request as-is. May be nil.
	Headers() map[string]string
	// Parameters become query items. Values that do not stringify to a
	// scalar are dropped (see Build). May be nil.
	Parameters() map[string]any
}
