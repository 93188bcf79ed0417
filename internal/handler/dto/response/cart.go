package response

import (
	"github.com/google/uuid"
	"github.com/jinzhu/copier"

	"storefront/internal/pkg/errs"
	"storefront/internal/usecase/queries"
)

type CartResponse struct {
	Items          []CartLineResponse      `json:"items"`
	AppliedCoupons []AppliedCouponResponse `json:"applied_coupons"`
	Count          int                     `json:"count"`
	Subtotal       string                  `json:"subtotal"`
	DiscountTotal  string                  `json:"discount_total"`
	Total          string                  `json:"total"`
	CheckoutURL    string                  `json:"checkout_url"`
}

type CartLineResponse struct {
	Key       string     `json:"key"`
	ProductID uuid.UUID  `json:"product_id"`
	VariantID *uuid.UUID `json:"variant_id,omitempty"`
	Name      string     `json:"name"`
	UnitPrice string     `json:"unit_price"`
	Quantity  int        `json:"quantity"`
	LineTotal string     `json:"line_total"`
	ImageURL  string     `json:"image_url"`
	Variation string     `json:"variation,omitempty"`
}

type AppliedCouponResponse struct {
	Code              string `json:"code"`
	Discount          string `json:"discount"`
	DiscountFormatted string `json:"discount_formatted"`
}

// AddToCartResponse wraps the full snapshot with the added flag so the client
// can tell a fresh line from a merge into an existing one.
type AddToCartResponse struct {
	Added bool         `json:"added"`
	Cart  CartResponse `json:"cart"`
}

func FromCartView(view *queries.CartView) (*CartResponse, error) {
	var resp CartResponse
	if err := copier.Copy(&resp, view); err != nil {
		return nil, errs.Wrap(err, "failed to convert cart view")
	}
	return &resp, nil
}

func FromAddToCartResult(view *queries.CartView, added bool) (*AddToCartResponse, error) {
	cart, err := FromCartView(view)
	if err != nil {
		return nil, err
	}
	return &AddToCartResponse{
		Added: added,
		Cart:  *cart,
	}, nil
}
