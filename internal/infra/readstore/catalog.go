package readstore

import (
	"context"
	"encoding/json"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5/pgtype"
	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/shopspring/decimal"

	"storefront/internal/infra"
	"storefront/internal/pkg/pgconv"
	"storefront/internal/usecase/shared"
)

// CatalogReadStore reads product and variant rows. The catalog is owned by
// the commerce platform; this side only ever reads it.
type CatalogReadStore struct {
	pool *pgxpool.Pool
}

func NewCatalogReadStore(pool *pgxpool.Pool) *CatalogReadStore {
	return &CatalogReadStore{pool: pool}
}

const findProductSQL = `
SELECT id, name, in_stock, regular_price, sale_price, image_url
FROM products
WHERE id = $1
`

const findVariantSQL = `
SELECT id, product_id, attributes, in_stock, regular_price, sale_price, image_url
FROM variants
WHERE id = $1
`

const listVariantsSQL = `
SELECT id, product_id, attributes, in_stock, regular_price, sale_price, image_url
FROM variants
WHERE product_id = $1
ORDER BY position, id
`

func (r *CatalogReadStore) FindProduct(ctx context.Context, id uuid.UUID) (*shared.ProductSnapshot, error) {
	var (
		snap     shared.ProductSnapshot
		regular  pgtype.Numeric
		sale     pgtype.Numeric
		imageURL pgtype.Text
	)

	err := r.pool.QueryRow(ctx, findProductSQL, id).Scan(
		&snap.ID, &snap.Name, &snap.InStock, &regular, &sale, &imageURL,
	)
	if err != nil {
		if pgconv.IsNoRows(err) {
			return nil, infra.WrapRepoErr(infra.KindNotFound, "product not found", err)
		}
		return nil, infra.WrapRepoErr(infra.KindDBFailure, "failed to find product", err)
	}

	if err := assignPrices(&snap.RegularPrice, &snap.SalePrice, regular, sale); err != nil {
		return nil, err
	}
	if imageURL.Valid {
		snap.ImageURL = imageURL.String
	}

	return &snap, nil
}

func (r *CatalogReadStore) FindVariant(ctx context.Context, id uuid.UUID) (*shared.VariantSnapshot, error) {
	row := r.pool.QueryRow(ctx, findVariantSQL, id)
	snap, err := scanVariant(row)
	if err != nil {
		if pgconv.IsNoRows(err) {
			return nil, infra.WrapRepoErr(infra.KindNotFound, "variant not found", err)
		}
		return nil, err
	}
	return snap, nil
}

func (r *CatalogReadStore) ListVariants(ctx context.Context, productID uuid.UUID) ([]shared.VariantSnapshot, error) {
	rows, err := r.pool.Query(ctx, listVariantsSQL, productID)
	if err != nil {
		return nil, infra.WrapRepoErr(infra.KindDBFailure, "failed to list variants", err)
	}
	defer rows.Close()

	var variants []shared.VariantSnapshot
	for rows.Next() {
		snap, err := scanVariant(rows)
		if err != nil {
			return nil, err
		}
		variants = append(variants, *snap)
	}
	if err := rows.Err(); err != nil {
		return nil, infra.WrapRepoErr(infra.KindDBFailure, "failed to read variant rows", err)
	}

	return variants, nil
}

type rowScanner interface {
	Scan(dest ...any) error
}

func scanVariant(row rowScanner) (*shared.VariantSnapshot, error) {
	var (
		snap     shared.VariantSnapshot
		attrs    []byte
		regular  pgtype.Numeric
		sale     pgtype.Numeric
		imageURL pgtype.Text
	)

	err := row.Scan(&snap.ID, &snap.ProductID, &attrs, &snap.InStock, &regular, &sale, &imageURL)
	if err != nil {
		if pgconv.IsNoRows(err) {
			return nil, err
		}
		return nil, infra.WrapRepoErr(infra.KindDBFailure, "failed to scan variant", err)
	}

	snap.Attributes = map[string]string{}
	if len(attrs) > 0 {
		if err := json.Unmarshal(attrs, &snap.Attributes); err != nil {
			return nil, infra.WrapRepoErr(infra.KindDBFailure, "invalid variant attributes", err)
		}
	}

	if err := assignPrices(&snap.RegularPrice, &snap.SalePrice, regular, sale); err != nil {
		return nil, err
	}
	if imageURL.Valid {
		snap.ImageURL = imageURL.String
	}

	return &snap, nil
}

func assignPrices(regularDst *decimal.Decimal, saleDst **decimal.Decimal, regular, sale pgtype.Numeric) error {
	regularPtr, err := pgconv.DecimalPtrFromNumeric(regular)
	if err != nil || regularPtr == nil {
		return infra.WrapRepoErr(infra.KindDBFailure, "invalid regular price", err)
	}
	*regularDst = *regularPtr

	salePtr, err := pgconv.DecimalPtrFromNumeric(sale)
	if err != nil {
		return infra.WrapRepoErr(infra.KindDBFailure, "invalid sale price", err)
	}
	*saleDst = salePtr

	return nil
}
