//go:build unit || e2e

package builder

import (
	"github.com/google/uuid"

	"storefront/internal/domain/catalog"
	"storefront/internal/pkg/money"
	"storefront/internal/pkg/ptr"
	"storefront/internal/usecase/shared"
)

// ProductBuilder assembles a product with sized variants for selector and
// add-to-cart tests.
type ProductBuilder struct {
	ProductID uuid.UUID
	Name      string
	InStock   bool
	Price     float64
	ImageURL  string
	variants  []shared.VariantSnapshot
}

func NewProductBuilder() *ProductBuilder {
	return &ProductBuilder{
		ProductID: uuid.New(),
		Name:      "Trail Running Shoe",
		InStock:   true,
		Price:     100,
	}
}

func (b *ProductBuilder) WithName(name string) *ProductBuilder {
	b.Name = name
	return b
}

func (b *ProductBuilder) OutOfStock() *ProductBuilder {
	b.InStock = false
	return b
}

func (b *ProductBuilder) WithImage(url string) *ProductBuilder {
	b.ImageURL = url
	return b
}

// WithVariant appends a sized variant. salePrice <= 0 means not on sale.
func (b *ProductBuilder) WithVariant(sizeLabel string, inStock bool, regularPrice, salePrice float64) *ProductBuilder {
	snap := shared.VariantSnapshot{
		ID:           uuid.New(),
		ProductID:    b.ProductID,
		Attributes:   map[string]string{"size": sizeLabel},
		InStock:      inStock,
		RegularPrice: money.FromFloat(regularPrice),
	}
	if salePrice > 0 {
		snap.SalePrice = ptr.To(money.FromFloat(salePrice))
	}
	b.variants = append(b.variants, snap)
	return b
}

// WithUnsizedVariant appends a variant whose attributes carry no size, so the
// index must exclude it.
func (b *ProductBuilder) WithUnsizedVariant(regularPrice float64) *ProductBuilder {
	b.variants = append(b.variants, shared.VariantSnapshot{
		ID:           uuid.New(),
		ProductID:    b.ProductID,
		Attributes:   map[string]string{"colour": "black"},
		InStock:      true,
		RegularPrice: money.FromFloat(regularPrice),
	})
	return b
}

func (b *ProductBuilder) BuildProductSnapshot() *shared.ProductSnapshot {
	return &shared.ProductSnapshot{
		ID:           b.ProductID,
		Name:         b.Name,
		InStock:      b.InStock,
		RegularPrice: money.FromFloat(b.Price),
		ImageURL:     b.ImageURL,
	}
}

func (b *ProductBuilder) BuildVariantSnapshots() []shared.VariantSnapshot {
	return b.variants
}

func (b *ProductBuilder) BuildRecords() []catalog.VariantRecord {
	records := make([]catalog.VariantRecord, 0, len(b.variants))
	for _, v := range b.variants {
		records = append(records, catalog.VariantRecord{
			ID:           v.ID,
			ProductID:    v.ProductID,
			Attributes:   v.Attributes,
			RegularPrice: v.RegularPrice,
			SalePrice:    v.SalePrice,
			InStock:      v.InStock,
			ImageURL:     v.ImageURL,
		})
	}
	return records
}

func (b *ProductBuilder) BuildIndex() *catalog.VariantIndex {
	return catalog.NewVariantIndex(b.InStock, b.BuildRecords())
}
