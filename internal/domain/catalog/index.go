package catalog

import (
	"github.com/google/uuid"
)

// VariantIndex resolves size labels to variants for one product. Variants
// whose size attribute cannot be parsed are excluded from the selectable set
// entirely. Catalog order is preserved.
type VariantIndex struct {
	productInStock bool
	variants       []Variant
	bySize         map[string]int
	byID           map[uuid.UUID]int
}

func NewVariantIndex(productInStock bool, records []VariantRecord) *VariantIndex {
	idx := &VariantIndex{
		productInStock: productInStock,
		bySize:         make(map[string]int),
		byID:           make(map[uuid.UUID]int),
	}

	for _, rec := range records {
		sizeLabel, ok := ParseSizeLabel(rec.Attributes)
		if !ok {
			continue
		}
		if _, dup := idx.bySize[sizeLabel]; dup {
			continue
		}

		v := Variant{
			ID:           rec.ID,
			ProductID:    rec.ProductID,
			SizeLabel:    sizeLabel,
			RegularPrice: rec.RegularPrice,
			SalePrice:    rec.SalePrice,
			InStock:      rec.InStock,
			ImageURL:     rec.ImageURL,
		}
		idx.bySize[sizeLabel] = len(idx.variants)
		idx.byID[rec.ID] = len(idx.variants)
		idx.variants = append(idx.variants, v)
	}

	return idx
}

func (i *VariantIndex) Variants() []Variant {
	return i.variants
}

func (i *VariantIndex) BySize(sizeLabel string) (Variant, bool) {
	pos, ok := i.bySize[sizeLabel]
	if !ok {
		return Variant{}, false
	}
	return i.variants[pos], true
}

func (i *VariantIndex) ByID(id uuid.UUID) (Variant, bool) {
	pos, ok := i.byID[id]
	if !ok {
		return Variant{}, false
	}
	return i.variants[pos], true
}

// GloballyOutOfStock reports the product-level stock flag, independent of any
// single variant's stock status.
func (i *VariantIndex) GloballyOutOfStock() bool {
	return !i.productInStock
}

// FirstSelectable implements the auto-select policy: first in-stock variant
// by catalog order, else the first variant so a selection always exists.
func (i *VariantIndex) FirstSelectable() (Variant, bool) {
	for _, v := range i.variants {
		if v.InStock {
			return v, true
		}
	}
	if len(i.variants) > 0 {
		return i.variants[0], true
	}
	return Variant{}, false
}
