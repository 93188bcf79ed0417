package commands

import (
	"context"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"

	"storefront/internal/domain/cart"
	"storefront/internal/domain/order"
	"storefront/internal/usecase/shared"
)

type CartRepository interface {
	Get(ctx context.Context, sessionID uuid.UUID) (*cart.Cart, error)
	Save(ctx context.Context, c *cart.Cart) error
	Delete(ctx context.Context, sessionID uuid.UUID) error
	// AcquireLease serializes same-session mutations; the returned func
	// releases the lease.
	AcquireLease(ctx context.Context, sessionID uuid.UUID) (func(), error)
}

type CatalogRepository interface {
	FindProduct(ctx context.Context, id uuid.UUID) (*shared.ProductSnapshot, error)
	FindVariant(ctx context.Context, id uuid.UUID) (*shared.VariantSnapshot, error)
}

type CouponRepository interface {
	FindByCode(ctx context.Context, code string) (*shared.CouponSnapshot, error)
}

type OrderRepository interface {
	Create(ctx context.Context, tx pgx.Tx, o *order.Order) error
}

// TxBeginner opens the transaction an order persists under. Satisfied by
// *pgxpool.Pool.
type TxBeginner interface {
	Begin(ctx context.Context) (pgx.Tx, error)
}
