package api

import (
	"errors"
	"net/http"

	reqdto "storefront/internal/handler/dto/request"
	resdto "storefront/internal/handler/dto/response"
	"storefront/internal/handler/httperr"
	"storefront/internal/handler/middleware"
	"storefront/internal/usecase/commands"
	"storefront/internal/usecase/queries"

	"github.com/gin-gonic/gin"
)

type CartHandler struct {
	cmds commands.CartCommands
	q    queries.CartQueries
}

func NewCartHandler(cmds commands.CartCommands, q queries.CartQueries) *CartHandler {
	return &CartHandler{cmds: cmds, q: q}
}

// respondCart writes the converted snapshot; a conversion failure is a
// server fault, never a silently empty payload.
func respondCart(c *gin.Context, view *queries.CartView) {
	resp, err := resdto.FromCartView(view)
	if err != nil {
		httperr.AbortWithError(c, http.StatusInternalServerError, err, "Failed to load cart", nil)
		return
	}
	c.JSON(http.StatusOK, resp)
}

// @Summary Get cart
// @Description Get the full cart snapshot for the current session
// @Tags cart
// @Produce json
// @Success 200 {object} resdto.CartResponse
// @Failure 500 {object} map[string]string
// @Router /cart [get]
func (h *CartHandler) Get(c *gin.Context) {
	sessionID, ok := middleware.GetSessionID(c)
	if !ok {
		httperr.AbortWithError(c, http.StatusInternalServerError, errSessionMissing, "Internal server error", nil)
		return
	}

	view, err := h.q.GetCart(c.Request.Context(), sessionID)
	if err != nil {
		httperr.AbortWithError(c, http.StatusInternalServerError, err, "Failed to load cart", nil)
		return
	}
	respondCart(c, view)
}

// @Summary Add item
// @Description Add a product or variant to the cart; a repeated add merges into the existing line
// @Tags cart
// @Accept json
// @Produce json
// @Param request body reqdto.AddToCartRequest true "Add to cart request"
// @Success 200 {object} resdto.AddToCartResponse
// @Failure 400 {object} map[string]string
// @Failure 409 {object} map[string]string
// @Failure 423 {object} map[string]string
// @Router /cart/items [post]
func (h *CartHandler) AddItem(c *gin.Context) {
	sessionID, ok := middleware.GetSessionID(c)
	if !ok {
		httperr.AbortWithError(c, http.StatusInternalServerError, errSessionMissing, "Internal server error", nil)
		return
	}

	var req reqdto.AddToCartRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		httperr.AbortWithError(c, http.StatusBadRequest, err, "Invalid request", nil)
		return
	}

	result, err := h.cmds.AddToCart(c.Request.Context(), sessionID, req.ProductID, req.VariantID, req.Attributes)
	if err != nil {
		switch {
		case errors.Is(err, commands.ErrAddRejected):
			httperr.AbortWithError(c, http.StatusConflict, err, "Item cannot be added", nil)
		case errors.Is(err, commands.ErrCartBusy):
			httperr.AbortWithError(c, http.StatusLocked, err, "Cart is busy, try again", nil)
		default:
			httperr.AbortWithError(c, http.StatusInternalServerError, err, "Failed to add item", nil)
		}
		return
	}

	resp, err := resdto.FromAddToCartResult(h.q.ViewOf(result.Cart), result.Added)
	if err != nil {
		httperr.AbortWithError(c, http.StatusInternalServerError, err, "Failed to load cart", nil)
		return
	}
	c.JSON(http.StatusOK, resp)
}

// @Summary Remove item
// @Description Remove a cart line by its key
// @Tags cart
// @Produce json
// @Param key path string true "Cart line key"
// @Success 200 {object} resdto.CartResponse
// @Failure 404 {object} map[string]string
// @Failure 423 {object} map[string]string
// @Router /cart/items/{key} [delete]
func (h *CartHandler) RemoveItem(c *gin.Context) {
	sessionID, ok := middleware.GetSessionID(c)
	if !ok {
		httperr.AbortWithError(c, http.StatusInternalServerError, errSessionMissing, "Internal server error", nil)
		return
	}

	snapshot, err := h.cmds.RemoveFromCart(c.Request.Context(), sessionID, c.Param("key"))
	if err != nil {
		switch {
		case errors.Is(err, commands.ErrLineNotFound):
			httperr.AbortWithError(c, http.StatusNotFound, err, "Cart line not found", nil)
		case errors.Is(err, commands.ErrCartBusy):
			httperr.AbortWithError(c, http.StatusLocked, err, "Cart is busy, try again", nil)
		default:
			httperr.AbortWithError(c, http.StatusInternalServerError, err, "Failed to remove item", nil)
		}
		return
	}

	respondCart(c, h.q.ViewOf(snapshot))
}

// @Summary Apply coupon
// @Description Apply a coupon code to the cart; re-applying an applied code is a no-op
// @Tags cart
// @Accept json
// @Produce json
// @Param request body reqdto.ApplyCouponRequest true "Apply coupon request"
// @Success 200 {object} resdto.CartResponse
// @Failure 400 {object} map[string]string
// @Failure 422 {object} map[string]string
// @Failure 423 {object} map[string]string
// @Router /cart/coupons [post]
func (h *CartHandler) ApplyCoupon(c *gin.Context) {
	sessionID, ok := middleware.GetSessionID(c)
	if !ok {
		httperr.AbortWithError(c, http.StatusInternalServerError, errSessionMissing, "Internal server error", nil)
		return
	}

	var req reqdto.ApplyCouponRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		httperr.AbortWithError(c, http.StatusBadRequest, err, "Invalid request", nil)
		return
	}

	snapshot, err := h.cmds.ApplyCoupon(c.Request.Context(), sessionID, req.NormalizedCode())
	if err != nil {
		switch {
		case errors.Is(err, commands.ErrEmptyCouponCode):
			httperr.AbortWithError(c, http.StatusBadRequest, err, "Coupon code is required", nil)
		case errors.Is(err, commands.ErrInvalidCoupon):
			httperr.AbortWithError(c, http.StatusUnprocessableEntity, err, "Coupon cannot be applied", nil)
		case errors.Is(err, commands.ErrCartBusy):
			httperr.AbortWithError(c, http.StatusLocked, err, "Cart is busy, try again", nil)
		default:
			httperr.AbortWithError(c, http.StatusInternalServerError, err, "Failed to apply coupon", nil)
		}
		return
	}

	respondCart(c, h.q.ViewOf(snapshot))
}

// @Summary Remove coupons
// @Description Remove every applied coupon from the cart
// @Tags cart
// @Produce json
// @Success 200 {object} resdto.CartResponse
// @Failure 423 {object} map[string]string
// @Router /cart/coupons [delete]
func (h *CartHandler) RemoveCoupons(c *gin.Context) {
	sessionID, ok := middleware.GetSessionID(c)
	if !ok {
		httperr.AbortWithError(c, http.StatusInternalServerError, errSessionMissing, "Internal server error", nil)
		return
	}

	snapshot, err := h.cmds.RemoveCoupons(c.Request.Context(), sessionID)
	if err != nil {
		switch {
		case errors.Is(err, commands.ErrCartBusy):
			httperr.AbortWithError(c, http.StatusLocked, err, "Cart is busy, try again", nil)
		default:
			httperr.AbortWithError(c, http.StatusInternalServerError, err, "Failed to remove coupons", nil)
		}
		return
	}

	respondCart(c, h.q.ViewOf(snapshot))
}
