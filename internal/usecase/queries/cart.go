package queries

import (
	"context"

	"github.com/google/uuid"

	"storefront/internal/domain/cart"
	"storefront/internal/infra"
	"storefront/internal/pkg/config"
	"storefront/internal/pkg/errs"
	"storefront/internal/pkg/money"
)

var ErrCartReadFailed = errs.New("cart read failed")

type CartReadStore interface {
	Get(ctx context.Context, sessionID uuid.UUID) (*cart.Cart, error)
}

type CartQueries interface {
	GetCart(ctx context.Context, sessionID uuid.UUID) (*CartView, error)
	// ViewOf assembles the response snapshot for an already-loaded cart;
	// mutation handlers use it for their read-after-write render.
	ViewOf(c *cart.Cart) *CartView
}

type cartQueriesImpl struct {
	readStore CartReadStore
	store     config.StoreConfig
}

func NewCartQueries(readStore CartReadStore, cfg config.Config) CartQueries {
	return &cartQueriesImpl{
		readStore: readStore,
		store:     cfg.Store,
	}
}

func (q *cartQueriesImpl) GetCart(ctx context.Context, sessionID uuid.UUID) (*CartView, error) {
	c, err := q.readStore.Get(ctx, sessionID)
	if err != nil {
		if infra.IsKind(err, infra.KindNotFound) {
			// No cart yet for this session: an empty panel, not an error.
			return q.emptyView(), nil
		}
		return nil, errs.Mark(err, ErrCartReadFailed)
	}

	return q.ViewOf(c), nil
}

func (q *cartQueriesImpl) ViewOf(c *cart.Cart) *CartView {
	totals := c.CalculateTotals()

	items := make([]CartLineView, 0, len(c.Items))
	for _, item := range c.Items {
		items = append(items, CartLineView{
			Key:       item.Key,
			ProductID: item.ProductID,
			VariantID: item.VariantID,
			Name:      item.Name,
			UnitPrice: money.FormatGBP(item.UnitPrice),
			Quantity:  item.Quantity,
			LineTotal: money.FormatGBP(item.LineTotal()),
			ImageURL:  item.ImageURL,
			Variation: item.VariationDescription,
		})
	}

	coupons := make([]AppliedCouponView, 0, len(c.Coupons))
	for _, ac := range c.Coupons {
		value, ok := totals.CouponValues[ac.Code]
		if !ok {
			value = money.Zero()
		}
		coupons = append(coupons, AppliedCouponView{
			Code:              ac.Code,
			Discount:          value.StringFixed(2),
			DiscountFormatted: money.FormatGBPNegative(value),
		})
	}

	return &CartView{
		Items:          items,
		AppliedCoupons: coupons,
		Count:          c.ItemCount(),
		Subtotal:       money.FormatGBP(totals.Subtotal),
		DiscountTotal:  money.FormatGBP(totals.DiscountTotal),
		Total:          money.FormatGBP(totals.Total),
		CheckoutURL:    q.store.CheckoutURL,
	}
}

func (q *cartQueriesImpl) emptyView() *CartView {
	zero := money.FormatGBP(money.Zero())
	return &CartView{
		Items:          []CartLineView{},
		AppliedCoupons: []AppliedCouponView{},
		Count:          0,
		Subtotal:       zero,
		DiscountTotal:  zero,
		Total:          zero,
		CheckoutURL:    q.store.CheckoutURL,
	}
}
