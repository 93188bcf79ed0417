package api

import (
	"errors"
	"net/http"

	reqdto "storefront/internal/handler/dto/request"
	resdto "storefront/internal/handler/dto/response"
	"storefront/internal/handler/httperr"
	"storefront/internal/handler/middleware"
	"storefront/internal/usecase/commands"

	"github.com/gin-gonic/gin"
)

type CheckoutHandler struct {
	cmds commands.OrderCommands
}

func NewCheckoutHandler(cmds commands.OrderCommands) *CheckoutHandler {
	return &CheckoutHandler{cmds: cmds}
}

// @Summary Checkout
// @Description Convert the current cart into an order and return the confirmation redirect
// @Tags checkout
// @Accept json
// @Produce json
// @Param request body reqdto.CheckoutRequest true "Checkout request"
// @Success 201 {object} resdto.CheckoutResponse
// @Failure 400 {object} map[string]string
// @Failure 409 {object} map[string]string
// @Failure 423 {object} map[string]string
// @Router /checkout [post]
func (h *CheckoutHandler) Checkout(c *gin.Context) {
	sessionID, ok := middleware.GetSessionID(c)
	if !ok {
		httperr.AbortWithError(c, http.StatusInternalServerError, errSessionMissing, "Internal server error", nil)
		return
	}

	var req reqdto.CheckoutRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		httperr.AbortWithError(c, http.StatusBadRequest, err, "Invalid request", nil)
		return
	}

	result, err := h.cmds.CreateOrder(c.Request.Context(), sessionID, req.ToDomain(), req.PaymentMethod)
	if err != nil {
		switch {
		case errors.Is(err, commands.ErrEmptyCart):
			httperr.AbortWithError(c, http.StatusConflict, err, "Cart is empty", nil)
		case errors.Is(err, commands.ErrInvalidBilling):
			httperr.AbortWithError(c, http.StatusBadRequest, err, "Billing details are invalid", nil)
		case errors.Is(err, commands.ErrCartBusy):
			httperr.AbortWithError(c, http.StatusLocked, err, "Cart is busy, try again", nil)
		default:
			httperr.AbortWithError(c, http.StatusInternalServerError, err, "Checkout failed", nil)
		}
		return
	}

	c.JSON(http.StatusCreated, resdto.CheckoutResponse{
		OrderID:     result.OrderID,
		RedirectURL: result.RedirectTarget,
	})
}
