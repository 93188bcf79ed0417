package queries

import (
	"github.com/google/uuid"
)

// Read models (DTO for read side)

// CartView is the full authoritative snapshot every cart operation responds
// with. The client never derives totals itself from partial data.
type CartView struct {
	Items          []CartLineView      `json:"items"`
	AppliedCoupons []AppliedCouponView `json:"applied_coupons"`
	Count          int                 `json:"count"`
	Subtotal       string              `json:"subtotal"`
	DiscountTotal  string              `json:"discount_total"`
	Total          string              `json:"total"`
	CheckoutURL    string              `json:"checkout_url"`
}

type CartLineView struct {
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

type AppliedCouponView struct {
	Code              string `json:"code"`
	Discount          string `json:"discount"`
	DiscountFormatted string `json:"discount_formatted"`
}

// ProductSelectorView feeds the client's variant index for one product page.
type ProductSelectorView struct {
	ProductID uuid.UUID     `json:"product_id"`
	Name      string        `json:"name"`
	InStock   bool          `json:"in_stock"`
	Variants  []VariantView `json:"variants"`
}

type VariantView struct {
	ID           uuid.UUID `json:"id"`
	SizeLabel    string    `json:"size_label"`
	InStock      bool      `json:"in_stock"`
	RegularPrice string    `json:"regular_price"`
	SalePrice    *string   `json:"sale_price,omitempty"`
	OnSale       bool      `json:"on_sale"`
	PercentOff   int       `json:"percent_off"`
	ImageURL     string    `json:"image_url,omitempty"`
}
