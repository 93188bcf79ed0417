package api

import (
	"errors"
	"net/http"

	resdto "storefront/internal/handler/dto/response"
	"storefront/internal/handler/httperr"
	"storefront/internal/handler/middleware"
	"storefront/internal/pkg/token"

	"github.com/gin-gonic/gin"
)

// errSessionMissing means EnsureSession did not run before the handler; a
// wiring bug, not a client error.
var errSessionMissing = errors.New("session not established")

type SessionHandler struct {
	tokens *token.Service
}

func NewSessionHandler(tokens *token.Service) *SessionHandler {
	return &SessionHandler{tokens: tokens}
}

// @Summary Start session
// @Description Ensure the anonymous session cookie is set and return a CSRF token for mutating calls
// @Tags session
// @Produce json
// @Success 200 {object} resdto.SessionResponse
// @Failure 500 {object} map[string]string
// @Router /session [post]
func (h *SessionHandler) Start(c *gin.Context) {
	sessionID, ok := middleware.GetSessionID(c)
	if !ok {
		httperr.AbortWithError(c, http.StatusInternalServerError, errSessionMissing, "Internal server error", nil)
		return
	}

	csrfToken, err := h.tokens.GenerateCSRFToken(sessionID)
	if err != nil {
		httperr.AbortWithError(c, http.StatusInternalServerError, err, "Internal server error", nil)
		return
	}

	c.JSON(http.StatusOK, resdto.SessionResponse{CSRFToken: csrfToken})
}
