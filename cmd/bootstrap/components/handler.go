package components

import (
	"storefront/internal/handler"
	"storefront/internal/handler/api"
	"storefront/internal/handler/middleware"

	"go.uber.org/fx"
)

var HandlerModule = fx.Module("handler",
	fx.Provide(
		api.NewSessionHandler,
		api.NewCartHandler,
		api.NewCatalogHandler,
		api.NewCheckoutHandler,
		middleware.NewSessionMiddleware,
		middleware.NewCSRFMiddleware,
	),
	fx.Invoke(handler.NewRouter),
)
