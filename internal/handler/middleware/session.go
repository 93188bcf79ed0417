package middleware

import (
	"log/slog"
	"net/http"

	"storefront/internal/pkg/config"
	"storefront/internal/pkg/cookie"
	"storefront/internal/pkg/token"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
)

const ctxSessionIDKey = "session_id"

// SessionMiddleware binds every request to an anonymous session. There is no
// login: the first request mints a session and sets the cookie, every later
// request in the same browser resolves to the same cart.
type SessionMiddleware struct {
	tokens   *token.Service
	security config.SecurityConfig
}

func NewSessionMiddleware(tokens *token.Service, cfg config.Config) *SessionMiddleware {
	return &SessionMiddleware{
		tokens:   tokens,
		security: cfg.Security,
	}
}

func (m *SessionMiddleware) EnsureSession() gin.HandlerFunc {
	return func(c *gin.Context) {
		if tok := cookie.GetSessionToken(c); tok != "" {
			sessionID, err := m.tokens.ValidateSessionToken(tok)
			if err == nil {
				c.Set(ctxSessionIDKey, sessionID)
				c.Next()
				return
			}
			// Expired or tampered cookie: fall through and mint a fresh
			// session rather than failing the request.
			slog.Debug("session cookie rejected", "error", err.Error())
		}

		sessionID := uuid.New()
		signed, err := m.tokens.GenerateSessionToken(sessionID)
		if err != nil {
			slog.Error("failed to mint session token", "error", err.Error())
			c.JSON(http.StatusInternalServerError, gin.H{
				"error": gin.H{"message": "Internal server error"},
			})
			c.Abort()
			return
		}

		cookie.SetSessionCookie(c, m.security, signed, m.security.SessionDuration)
		c.Set(ctxSessionIDKey, sessionID)
		c.Next()
	}
}

func GetSessionID(c *gin.Context) (uuid.UUID, bool) {
	sessionID, exists := c.Get(ctxSessionIDKey)
	if !exists {
		return uuid.Nil, false
	}

	id, ok := sessionID.(uuid.UUID)
	return id, ok
}
