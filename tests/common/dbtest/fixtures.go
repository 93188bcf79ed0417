//go:build unit || e2e

package dbtest

import (
	"context"
	"fmt"
	"strings"
	"sync"
	"sync/atomic"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/stretchr/testify/require"
)

func CreateTestProduct(t *testing.T, db DBLike, name string, inStock bool, regularPrice float64) uuid.UUID {
	t.Helper()

	productID := uuid.New()
	ctx := context.Background()

	_, err := db.Exec(ctx,
		"INSERT INTO products (id, name, in_stock, regular_price) VALUES ($1, $2, $3, $4)",
		productID, name, inStock, regularPrice)
	require.NoError(t, err)

	return productID
}

// CreateTestVariant inserts a sized variant. salePrice <= 0 means not on sale.
func CreateTestVariant(t *testing.T, db DBLike, productID uuid.UUID, sizeLabel string, inStock bool, regularPrice, salePrice float64, position int) uuid.UUID {
	t.Helper()

	variantID := uuid.New()
	ctx := context.Background()

	attributes := fmt.Sprintf(`{"size": %q}`, sizeLabel)
	var sale *float64
	if salePrice > 0 {
		sale = &salePrice
	}

	_, err := db.Exec(ctx,
		"INSERT INTO variants (id, product_id, attributes, in_stock, regular_price, sale_price, position) VALUES ($1, $2, $3, $4, $5, $6, $7)",
		variantID, productID, attributes, inStock, regularPrice, sale, position)
	require.NoError(t, err)

	return variantID
}

// CreateTestCoupon inserts a fixed-amount coupon with no validity window.
func CreateTestCoupon(t *testing.T, db DBLike, code string, amountOff float64) uuid.UUID {
	t.Helper()

	couponID := uuid.New()
	ctx := context.Background()

	_, err := db.Exec(ctx,
		"INSERT INTO coupons (id, code, amount_off) VALUES ($1, $2, $3) ON CONFLICT (code) DO NOTHING",
		couponID, code, amountOff)
	require.NoError(t, err)

	return couponID
}

// CreateTestPercentCoupon inserts a percentage coupon valid between the given
// bounds.
func CreateTestPercentCoupon(t *testing.T, db DBLike, code string, percentOff float64, validFrom, validTo time.Time) uuid.UUID {
	t.Helper()

	couponID := uuid.New()
	ctx := context.Background()

	_, err := db.Exec(ctx,
		"INSERT INTO coupons (id, code, percent_off, valid_from, valid_to) VALUES ($1, $2, $3, $4, $5) ON CONFLICT (code) DO NOTHING",
		couponID, code, percentOff, validFrom, validTo)
	require.NoError(t, err)

	return couponID
}

func CountOrders(t *testing.T, db DBLike, sessionID uuid.UUID) int {
	t.Helper()

	var count int
	err := db.QueryRow(context.Background(),
		"SELECT count(*) FROM orders WHERE session_id = $1", sessionID).Scan(&count)
	require.NoError(t, err)
	return count
}

var (
	buildTruncateOnce sync.Once
	truncateSQL       atomic.Value // string
)

// truncates all tables so each subtest starts from a clean catalog
func ResetDB(pool *pgxpool.Pool) error {
	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()

	buildTruncateOnce.Do(func() {
		rows, err := pool.Query(ctx, `
		  SELECT 'public.' || quote_ident(tablename)
		  FROM pg_tables
		  WHERE schemaname = 'public'
		    AND tablename NOT IN ('schema_migrations')`)
		if err != nil {
			truncateSQL.Store("")
			return
		}
		defer rows.Close()
		var tables []string
		for rows.Next() {
			var tbl string
			if err := rows.Scan(&tbl); err != nil {
				truncateSQL.Store("")
				return
			}
			tables = append(tables, tbl)
		}
		if rows.Err() != nil {
			truncateSQL.Store("")
			return
		}
		if len(tables) == 0 {
			truncateSQL.Store("SELECT 1")
			return
		}
		truncateSQL.Store("TRUNCATE " + strings.Join(tables, ", ") + " RESTART IDENTITY CASCADE;")
	})
	sqlAny := truncateSQL.Load()
	if sqlAny == nil || sqlAny.(string) == "" {
		return fmt.Errorf("failed to build TRUNCATE SQL")
	}
	if _, err := pool.Exec(ctx, sqlAny.(string)); err != nil {
		return err
	}
	return nil
}
