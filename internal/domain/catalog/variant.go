package catalog

import (
	"strings"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"

	"storefront/internal/pkg/money"
)

// Variant is one purchasable size of a product. Immutable for the page
// lifetime; sourced from the catalog readstore once per load.
type Variant struct {
	ID           uuid.UUID
	ProductID    uuid.UUID
	SizeLabel    string
	RegularPrice money.Amount
	SalePrice    *money.Amount
	InStock      bool
	ImageURL     string
}

func (v Variant) OnSale() bool {
	return v.SalePrice != nil && v.SalePrice.LessThan(v.RegularPrice)
}

// CurrentPrice is the price a buyer pays: sale price when marked down,
// regular price otherwise.
func (v Variant) CurrentPrice() money.Amount {
	if v.OnSale() {
		return *v.SalePrice
	}
	return v.RegularPrice
}

func (v Variant) PercentOff() int {
	if !v.OnSale() {
		return 0
	}
	return money.PercentOff(v.RegularPrice, *v.SalePrice)
}

// DisplaySize strips the "UK" prefix for tile display while the raw label
// stays the selection key.
func (v Variant) DisplaySize() string {
	s := v.SizeLabel
	s = strings.ReplaceAll(s, "UK", "")
	s = strings.ReplaceAll(s, "uk", "")
	return strings.TrimSpace(s)
}

// VariantRecord is the raw catalog row before size-attribute parsing.
type VariantRecord struct {
	ID           uuid.UUID
	ProductID    uuid.UUID
	Attributes   map[string]string
	RegularPrice decimal.Decimal
	SalePrice    *decimal.Decimal
	InStock      bool
	ImageURL     string
}

// ParseSizeLabel finds the size attribute among a variant's attributes. The
// catalog stores attributes under theme-dependent keys, so any key containing
// "size" qualifies.
func ParseSizeLabel(attributes map[string]string) (string, bool) {
	for key, value := range attributes {
		if strings.Contains(strings.ToLower(key), "size") && strings.TrimSpace(value) != "" {
			return strings.TrimSpace(value), true
		}
	}
	return "", false
}
