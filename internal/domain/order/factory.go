package order

import (
	"time"

	"github.com/google/uuid"

	"storefront/internal/domain/cart"
	"storefront/internal/pkg/clock"
	"storefront/internal/pkg/money"
)

type Factory struct {
	Clock clock.Clock
}

func NewFactory(clk clock.Clock) *Factory {
	return &Factory{Clock: clk}
}

// CreateFromCart assembles an order from a cart snapshot: lines are copied at
// their snapshotted unit prices, shipping defaults to billing, the applied
// coupons are re-valuated against the snapshot and final totals computed.
// Nothing here persists or clears anything; the caller owns the transaction.
func (f *Factory) CreateFromCart(
	snapshot *cart.Cart,
	billing BillingDetails,
	paymentMethod string,
) (*Order, error) {
	if snapshot.IsEmpty() {
		return nil, ErrEmptyCart
	}
	if err := billing.validate(); err != nil {
		return nil, err
	}
	if billing.Country == "" {
		billing.Country = "GB"
	}

	lines := make([]Line, 0, len(snapshot.Items))
	for _, item := range snapshot.Items {
		lines = append(lines, Line{
			ProductID:            item.ProductID,
			VariantID:            item.VariantID,
			Name:                 item.Name,
			UnitPrice:            item.UnitPrice,
			Quantity:             item.Quantity,
			LineTotal:            item.LineTotal(),
			VariationDescription: item.VariationDescription,
		})
	}

	totals := snapshot.CalculateTotals()

	coupons := make([]AppliedCoupon, 0, len(snapshot.Coupons))
	for _, ac := range snapshot.Coupons {
		value, ok := totals.CouponValues[ac.Code]
		if !ok {
			value = money.Zero()
		}
		coupons = append(coupons, AppliedCoupon{Code: ac.Code, Discount: value})
	}

	return &Order{
		id:            uuid.New(),
		sessionID:     snapshot.SessionID,
		billing:       billing,
		shipping:      shippingFromBilling(billing),
		lines:         lines,
		coupons:       coupons,
		subtotal:      totals.Subtotal,
		discountTotal: totals.DiscountTotal,
		total:         totals.Total,
		paymentMethod: paymentMethod,
		createdAt:     f.Clock.Now(),
	}, nil
}

// Rehydrate rebuilds a persisted order for read paths. No validation: the
// row was valid when written.
func Rehydrate(
	id, sessionID uuid.UUID,
	billing BillingDetails,
	shipping ShippingDetails,
	lines []Line,
	coupons []AppliedCoupon,
	subtotal, discountTotal, total money.Amount,
	paymentMethod string,
	createdAt time.Time,
) *Order {
	return &Order{
		id:            id,
		sessionID:     sessionID,
		billing:       billing,
		shipping:      shipping,
		lines:         lines,
		coupons:       coupons,
		subtotal:      subtotal,
		discountTotal: discountTotal,
		total:         total,
		paymentMethod: paymentMethod,
		createdAt:     createdAt,
	}
}
