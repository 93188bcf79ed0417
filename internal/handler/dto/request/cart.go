package request

import (
	"strings"

	"github.com/google/uuid"
)

type AddToCartRequest struct {
	ProductID uuid.UUID  `json:"product_id" binding:"required"`
	VariantID *uuid.UUID `json:"variant_id,omitempty"`
	// Attributes carries the chosen variation values for the line
	// description, keyed by attribute name.
	Attributes map[string]string `json:"attributes,omitempty"`
}

type ApplyCouponRequest struct {
	Code string `json:"code" binding:"required"`
}

func (r ApplyCouponRequest) NormalizedCode() string {
	return strings.TrimSpace(r.Code)
}
