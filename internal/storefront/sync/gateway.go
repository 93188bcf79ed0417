package sync

import (
	"context"

	"github.com/google/uuid"

	"storefront/internal/handler/dto/response"
	"storefront/internal/pkg/errs"
)

// Failures a gateway reports. Everything else the transport can produce is
// wrapped in ErrGatewayFailure.
var (
	ErrAuthFailure    = errs.New("security check failed")
	ErrValidation     = errs.New("request rejected as invalid")
	ErrNotFound       = errs.New("line no longer in cart")
	ErrAddFailed      = errs.New("failed to add to cart")
	ErrInvalidCoupon  = errs.New("coupon rejected")
	ErrGatewayFailure = errs.New("cart service unavailable")
)

// CartGateway is the client's view of the cart service. Every mutation
// responds with the full recomputed snapshot; the synchronizer renders only
// from these, never from locally patched state.
type CartGateway interface {
	FetchCart(ctx context.Context) (*response.CartResponse, error)
	AddToCart(ctx context.Context, productID uuid.UUID, variantID *uuid.UUID, attributes map[string]string) (*response.AddToCartResponse, error)
	RemoveFromCart(ctx context.Context, lineKey string) (*response.CartResponse, error)
	ApplyCoupon(ctx context.Context, code string) (*response.CartResponse, error)
	RemoveCoupons(ctx context.Context) (*response.CartResponse, error)
}
