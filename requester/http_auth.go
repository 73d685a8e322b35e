package requester

import (
	"fmt"
	"net/http"

	"github.com/apicall-go/apicall/config"
)

// AuthManager applies authentication to a built request
type AuthManager interface {
	Apply(req *http.Request) error
}

// HTTPAuthManager implements the AuthManager interface from static
// auth settings
type HTTPAuthManager struct {
	authType config.AuthType
	settings map[string]string
}

// NewHTTPAuthManager creates a new HTTPAuthManager
func NewHTTPAuthManager(authConfig config.AuthConfig) *HTTPAuthManager {
	return &HTTPAuthManager{
		authType: authConfig.Type,
		settings: authConfig.Settings,
	}
}

// Apply adds authentication headers to the request
func (a *HTTPAuthManager) Apply(req *http.Request) error {
	switch a.authType {
	case config.AuthTypeNone, "":
		return nil
	case config.AuthTypeBasic:
		username := a.settings["username"]
		password := a.settings["password"]
		req.SetBasicAuth(username, password)
	case config.AuthTypeBearer:
		token := a.settings["token"]
		req.Header.Set("Authorization", "Bearer "+token)
	case config.AuthTypeAPIKey:
		key := a.settings["key"]
		header := a.settings["header"]
		if header == "" {
			header = "X-API-Key"
		}
		req.Header.Set(header, key)
	default:
		return fmt.Errorf("unsupported auth type: %s", a.authType)
	}
	return nil
}
