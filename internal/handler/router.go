package handler

import (
	"net/http"

	"github.com/gin-gonic/gin"
	swaggerFiles "github.com/swaggo/files"
	ginSwagger "github.com/swaggo/gin-swagger"

	"storefront/internal/handler/api"
	"storefront/internal/handler/middleware"
	"storefront/internal/pkg/config"
)

type route struct {
	Method  string
	Path    string
	Handler gin.HandlerFunc
	Mw      []gin.HandlerFunc
}

func NewRouter(
	engine *gin.Engine,
	cfg config.Config,
	sessionHandler *api.SessionHandler,
	cartHandler *api.CartHandler,
	catalogHandler *api.CatalogHandler,
	checkoutHandler *api.CheckoutHandler,
	sessionMiddleware *middleware.SessionMiddleware,
	csrfMiddleware *middleware.CSRFMiddleware,
) {
	setupMiddleware(engine, cfg)
	setupRoutes(engine, sessionHandler, cartHandler, catalogHandler, checkoutHandler, sessionMiddleware, csrfMiddleware)
}

func setupMiddleware(engine *gin.Engine, cfg config.Config) {
	// Recovery must be first (outermost) to catch panics from all other middleware
	engine.Use(middleware.CustomRecovery())
	engine.Use(middleware.NewCORSMiddleware(cfg.CORS))
	engine.Use(middleware.LoggingMiddleware(nil, cfg.Log))
	engine.Use(middleware.ErrorHandler())
}

func setupRoutes(
	engine *gin.Engine,
	sessionHandler *api.SessionHandler,
	cartHandler *api.CartHandler,
	catalogHandler *api.CatalogHandler,
	checkoutHandler *api.CheckoutHandler,
	sessionMiddleware *middleware.SessionMiddleware,
	csrfMiddleware *middleware.CSRFMiddleware,
) {
	engine.GET("/health", healthCheck)

	if gin.Mode() == gin.DebugMode {
		engine.GET("/swagger/*any", ginSwagger.WrapHandler(swaggerFiles.Handler))
	}

	apiGroup := engine.Group("/api")
	apiGroup.Use(sessionMiddleware.EnsureSession())
	{
		addRoutes(apiGroup, []route{
			{Method: http.MethodPost, Path: "/session", Handler: sessionHandler.Start},
			{Method: http.MethodGet, Path: "/products/:id/selector", Handler: catalogHandler.GetSelector},
			{Method: http.MethodGet, Path: "/cart", Handler: cartHandler.Get},
		})

		mutating := apiGroup.Group("")
		mutating.Use(csrfMiddleware.RequireCSRF())
		addRoutes(mutating, []route{
			{Method: http.MethodPost, Path: "/cart/items", Handler: cartHandler.AddItem},
			{Method: http.MethodDelete, Path: "/cart/items/:key", Handler: cartHandler.RemoveItem},
			{Method: http.MethodPost, Path: "/cart/coupons", Handler: cartHandler.ApplyCoupon},
			{Method: http.MethodDelete, Path: "/cart/coupons", Handler: cartHandler.RemoveCoupons},
			{Method: http.MethodPost, Path: "/checkout", Handler: checkoutHandler.Checkout},
		})
	}
}

// @Summary Health check
// @Description Check if the service is healthy
// @Tags health
// @Produce json
// @Success 200 {object} map[string]string
// @Router /health [get]
func healthCheck(c *gin.Context) {
	c.JSON(http.StatusOK, gin.H{
		"status":  "ok",
		"message": "Service is healthy",
	})
}

func addRoutes(g *gin.RouterGroup, rs []route) {
	for _, r := range rs {
		h := r.Handler
		if len(r.Mw) > 0 {
			h = chainHandlers(append(r.Mw, r.Handler)...)
		}
		switch r.Method {
		case http.MethodGet:
			g.GET(r.Path, h)
		case http.MethodPost:
			g.POST(r.Path, h)
		case http.MethodPut:
			g.PUT(r.Path, h)
		case http.MethodPatch:
			g.PATCH(r.Path, h)
		case http.MethodDelete:
			g.DELETE(r.Path, h)
		default:
			g.Any(r.Path, h)
		}
	}
}

func chainHandlers(hs ...gin.HandlerFunc) gin.HandlerFunc {
	return func(c *gin.Context) {
		for _, h := range hs {
			h(c)
			if c.IsAborted() {
				return
			}
		}
	}
}
