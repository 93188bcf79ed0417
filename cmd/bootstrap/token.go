package bootstrap

import (
	"storefront/internal/pkg/config"
	"storefront/internal/pkg/token"

	"go.uber.org/fx"
)

var TokenModule = fx.Module("token",
	fx.Provide(
		NewTokenService,
	),
)

func NewTokenService(cfg config.Config) *token.Service {
	return token.NewService(
		cfg.Security.TokenSecret,
		cfg.Security.SessionDuration,
		cfg.Security.CSRFDuration,
	)
}
