package middleware

import (
	"log/slog"
	"net/http"

	"storefront/internal/pkg/token"

	"github.com/gin-gonic/gin"
)

const CSRFHeaderName = "X-CSRF-Token"

type CSRFMiddleware struct {
	tokens *token.Service
}

func NewCSRFMiddleware(tokens *token.Service) *CSRFMiddleware {
	return &CSRFMiddleware{tokens: tokens}
}

// RequireCSRF guards mutating endpoints. The token is minted per session by
// the session endpoint and must match the session the cookie resolves to.
// Must run after EnsureSession.
func (m *CSRFMiddleware) RequireCSRF() gin.HandlerFunc {
	return func(c *gin.Context) {
		sessionID, ok := GetSessionID(c)
		if !ok {
			c.JSON(http.StatusInternalServerError, gin.H{
				"error": gin.H{"message": "Internal server error"},
			})
			c.Abort()
			return
		}

		headerToken := c.GetHeader(CSRFHeaderName)
		if headerToken == "" {
			c.JSON(http.StatusForbidden, gin.H{
				"error": gin.H{"message": "Missing CSRF token"},
			})
			c.Abort()
			return
		}

		if err := m.tokens.ValidateCSRFToken(headerToken, sessionID); err != nil {
			slog.Warn("CSRF token rejected", "error", err.Error())
			c.JSON(http.StatusForbidden, gin.H{
				"error": gin.H{"message": "Invalid CSRF token"},
			})
			c.Abort()
			return
		}

		c.Next()
	}
}
