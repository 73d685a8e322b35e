package requester

import (
	"github.com/apicall-go/apicall/config"

	"go.uber.org/fx"
)

// Module provides the requester module dependencies
var Module = fx.Options(
	fx.Provide(
		NewHTTPClient,
		NewHTTPRequestBuilder,
		NewJSONCodec,
		fx.Annotate(
			NewHTTPAuthManager,
			fx.As(new(AuthManager)),
		),
		fx.Annotate(
			NewHTTPSession,
			fx.As(new(Session)),
		),
		func(cfg *config.Config) config.HTTPConfig { return cfg.HTTP },
		func(cfg *config.Config) config.AuthConfig { return cfg.Auth },
	),
)
