package repository

import (
	"context"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"

	"storefront/internal/domain/order"
	"storefront/internal/infra"
)

type OrderRepository struct {
	pool *pgxpool.Pool
}

func NewOrderRepository(pool *pgxpool.Pool) *OrderRepository {
	return &OrderRepository{pool: pool}
}

const insertOrderSQL = `
INSERT INTO orders (
	id, session_id,
	billing_first_name, billing_last_name, billing_address_1, billing_city,
	billing_postcode, billing_country, billing_email, billing_phone,
	shipping_first_name, shipping_last_name, shipping_address_1, shipping_city,
	shipping_postcode, shipping_country,
	subtotal, discount_total, total, payment_method, created_at
) VALUES (
	$1, $2, $3, $4, $5, $6, $7, $8, $9, $10,
	$11, $12, $13, $14, $15, $16, $17, $18, $19, $20, $21
)
`

const insertOrderLineSQL = `
INSERT INTO order_lines (
	order_id, product_id, variant_id, name, unit_price, quantity, line_total, variation
) VALUES ($1, $2, $3, $4, $5, $6, $7, $8)
`

const insertOrderCouponSQL = `
INSERT INTO order_coupons (order_id, code, discount) VALUES ($1, $2, $3)
`

// Create persists the order, its lines and its coupon snapshot inside the
// caller's transaction. The cart is not touched here; clearing it is the
// usecase's job and happens strictly after commit.
func (r *OrderRepository) Create(ctx context.Context, tx pgx.Tx, o *order.Order) error {
	billing := o.Billing()
	shipping := o.Shipping()

	_, err := tx.Exec(ctx, insertOrderSQL,
		o.ID(), o.SessionID(),
		billing.FirstName, billing.LastName, billing.Address1, billing.City,
		billing.Postcode, billing.Country, billing.Email, billing.Phone,
		shipping.FirstName, shipping.LastName, shipping.Address1, shipping.City,
		shipping.Postcode, shipping.Country,
		o.Subtotal().String(), o.DiscountTotal().String(), o.Total().String(),
		o.PaymentMethod(), o.CreatedAt(),
	)
	if err != nil {
		return infra.WrapRepoErr(infra.KindDBFailure, "failed to insert order", err)
	}

	for _, line := range o.Lines() {
		_, err := tx.Exec(ctx, insertOrderLineSQL,
			o.ID(), line.ProductID, line.VariantID, line.Name,
			line.UnitPrice.String(), line.Quantity, line.LineTotal.String(),
			line.VariationDescription,
		)
		if err != nil {
			return infra.WrapRepoErr(infra.KindDBFailure, "failed to insert order line", err)
		}
	}

	for _, ac := range o.Coupons() {
		_, err := tx.Exec(ctx, insertOrderCouponSQL, o.ID(), ac.Code, ac.Discount.String())
		if err != nil {
			return infra.WrapRepoErr(infra.KindDBFailure, "failed to insert order coupon", err)
		}
	}

	return nil
}
