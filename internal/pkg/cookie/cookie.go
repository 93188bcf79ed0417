package cookie

import (
	"net/http"
	"time"

	"storefront/internal/pkg/config"

	"github.com/gin-gonic/gin"
)

const SessionCookieName = "store_session"

func SetSessionCookie(c *gin.Context, cfg config.SecurityConfig, sessionToken string, expiry time.Duration) {
	c.SetSameSite(getSameSite(cfg.CookieSameSite))

	c.SetCookie(
		SessionCookieName,
		sessionToken,
		int(expiry.Seconds()),
		"/",
		cfg.CookieDomain,
		cfg.CookieSecure,
		true, // HttpOnly
	)
}

func ClearSessionCookie(c *gin.Context, cfg config.SecurityConfig) {
	c.SetSameSite(getSameSite(cfg.CookieSameSite))

	c.SetCookie(
		SessionCookieName,
		"",
		-1,
		"/",
		cfg.CookieDomain,
		cfg.CookieSecure,
		true,
	)
}

func GetSessionToken(c *gin.Context) string {
	tok, _ := c.Cookie(SessionCookieName)
	return tok
}

func getSameSite(sameSite string) http.SameSite {
	switch sameSite {
	case "Strict":
		return http.SameSiteStrictMode
	case "Lax":
		return http.SameSiteLaxMode
	case "None":
		return http.SameSiteNoneMode
	default:
		return http.SameSiteLaxMode
	}
}
