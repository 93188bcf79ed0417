package shared

import (
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
)

// Catalog and coupon snapshots used by the write side. Keeping these apart
// from the read-side view types preserves the command/query separation.

type ProductSnapshot struct {
	ID           uuid.UUID
	Name         string
	InStock      bool
	RegularPrice decimal.Decimal
	SalePrice    *decimal.Decimal
	ImageURL     string
}

type VariantSnapshot struct {
	ID           uuid.UUID
	ProductID    uuid.UUID
	Attributes   map[string]string
	InStock      bool
	RegularPrice decimal.Decimal
	SalePrice    *decimal.Decimal
	ImageURL     string
}

// Price is what a buyer pays right now.
func (v VariantSnapshot) Price() decimal.Decimal {
	if v.SalePrice != nil && v.SalePrice.LessThan(v.RegularPrice) {
		return *v.SalePrice
	}
	return v.RegularPrice
}

func (p ProductSnapshot) Price() decimal.Decimal {
	if p.SalePrice != nil && p.SalePrice.LessThan(p.RegularPrice) {
		return *p.SalePrice
	}
	return p.RegularPrice
}

type CouponSnapshot struct {
	ID         uuid.UUID
	Code       string
	AmountOff  *decimal.Decimal
	PercentOff *float64
	ValidFrom  *time.Time
	ValidTo    *time.Time
}
