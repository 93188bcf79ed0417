package queries

import (
	"context"

	"github.com/google/uuid"

	"storefront/internal/domain/catalog"
	"storefront/internal/infra"
	"storefront/internal/pkg/errs"
	"storefront/internal/usecase/shared"
)

var (
	ErrProductNotFound   = errs.New("product not found")
	ErrCatalogReadFailed = errs.New("catalog read failed")
)

type CatalogReadStore interface {
	FindProduct(ctx context.Context, id uuid.UUID) (*shared.ProductSnapshot, error)
	ListVariants(ctx context.Context, productID uuid.UUID) ([]shared.VariantSnapshot, error)
}

type CatalogQueries interface {
	GetProductSelector(ctx context.Context, productID uuid.UUID) (*ProductSelectorView, error)
}

type catalogQueriesImpl struct {
	readStore CatalogReadStore
}

func NewCatalogQueries(readStore CatalogReadStore) CatalogQueries {
	return &catalogQueriesImpl{readStore: readStore}
}

func (q *catalogQueriesImpl) GetProductSelector(ctx context.Context, productID uuid.UUID) (*ProductSelectorView, error) {
	product, err := q.readStore.FindProduct(ctx, productID)
	if err != nil {
		if infra.IsKind(err, infra.KindNotFound) {
			return nil, errs.Mark(err, ErrProductNotFound)
		}
		return nil, errs.Mark(err, ErrCatalogReadFailed)
	}

	snapshots, err := q.readStore.ListVariants(ctx, productID)
	if err != nil {
		return nil, errs.Mark(err, ErrCatalogReadFailed)
	}

	records := make([]catalog.VariantRecord, 0, len(snapshots))
	for _, snap := range snapshots {
		records = append(records, catalog.VariantRecord{
			ID:           snap.ID,
			ProductID:    snap.ProductID,
			Attributes:   snap.Attributes,
			RegularPrice: snap.RegularPrice,
			SalePrice:    snap.SalePrice,
			InStock:      snap.InStock,
			ImageURL:     snap.ImageURL,
		})
	}

	index := catalog.NewVariantIndex(product.InStock, records)

	variants := make([]VariantView, 0, len(index.Variants()))
	for _, v := range index.Variants() {
		view := VariantView{
			ID:           v.ID,
			SizeLabel:    v.DisplaySize(),
			InStock:      v.InStock,
			RegularPrice: v.RegularPrice.StringFixed(2),
			OnSale:       v.OnSale(),
			ImageURL:     v.ImageURL,
		}
		if v.OnSale() {
			sale := v.SalePrice.StringFixed(2)
			view.SalePrice = &sale
			view.PercentOff = v.PercentOff()
		}
		variants = append(variants, view)
	}

	return &ProductSelectorView{
		ProductID: product.ID,
		Name:      product.Name,
		InStock:   product.InStock,
		Variants:  variants,
	}, nil
}
