//go:build unit || e2e

package builder

import (
	"time"

	"github.com/google/uuid"

	domcart "storefront/internal/domain/cart"
	domcoupon "storefront/internal/domain/coupon"
	reqdto "storefront/internal/handler/dto/request"
	"storefront/internal/pkg/money"
	"storefront/internal/pkg/ptr"
	"storefront/internal/usecase/shared"
)

type CartBuilder struct {
	SessionID uuid.UUID
	Now       time.Time
	lines     []domcart.LineItem
	coupons   []*domcoupon.Coupon
}

func NewCartBuilder() *CartBuilder {
	return &CartBuilder{
		SessionID: uuid.New(),
		Now:       time.Now(),
	}
}

func (b *CartBuilder) WithSession(id uuid.UUID) *CartBuilder {
	b.SessionID = id
	return b
}

func (b *CartBuilder) WithLine(name string, unitPrice float64, quantity int) *CartBuilder {
	productID := uuid.New()
	b.lines = append(b.lines, domcart.LineItem{
		Key:       domcart.LineKey(productID, nil, nil),
		ProductID: productID,
		Name:      name,
		UnitPrice: money.FromFloat(unitPrice),
		Quantity:  quantity,
	})
	return b
}

func (b *CartBuilder) WithVariantLine(name string, productID, variantID uuid.UUID, unitPrice float64, quantity int) *CartBuilder {
	b.lines = append(b.lines, domcart.LineItem{
		Key:       domcart.LineKey(productID, &variantID, nil),
		ProductID: productID,
		VariantID: &variantID,
		Name:      name,
		UnitPrice: money.FromFloat(unitPrice),
		Quantity:  quantity,
	})
	return b
}

func (b *CartBuilder) WithFixedCoupon(code string, amountOff float64) *CartBuilder {
	cp, err := domcoupon.NewCoupon(uuid.New(), code, ptr.To(money.FromFloat(amountOff)), nil, nil, nil)
	if err != nil {
		panic("builder: invalid fixed coupon: " + err.Error())
	}
	b.coupons = append(b.coupons, cp)
	return b
}

func (b *CartBuilder) WithPercentCoupon(code string, percentOff float64) *CartBuilder {
	cp, err := domcoupon.NewCoupon(uuid.New(), code, nil, &percentOff, nil, nil)
	if err != nil {
		panic("builder: invalid percent coupon: " + err.Error())
	}
	b.coupons = append(b.coupons, cp)
	return b
}

func (b *CartBuilder) BuildDomain() *domcart.Cart {
	c := domcart.New(b.SessionID, b.Now)
	for _, line := range b.lines {
		c.AddItem(line, b.Now)
	}
	for _, cp := range b.coupons {
		c.ApplyCoupon(cp, b.Now)
	}
	return c
}

// CouponBuilder builds the snapshots the coupon repository returns.
type CouponBuilder struct {
	ID         uuid.UUID
	Code       string
	AmountOff  *float64
	PercentOff *float64
	ValidFrom  *time.Time
	ValidTo    *time.Time
}

func NewCouponBuilder() *CouponBuilder {
	return &CouponBuilder{
		ID:        uuid.New(),
		Code:      "SAVE5",
		AmountOff: ptr.To(5.0),
	}
}

func (b *CouponBuilder) WithCode(code string) *CouponBuilder {
	b.Code = code
	return b
}

func (b *CouponBuilder) WithPercentOff(pct float64) *CouponBuilder {
	b.AmountOff = nil
	b.PercentOff = &pct
	return b
}

func (b *CouponBuilder) WithValidity(from, to time.Time) *CouponBuilder {
	b.ValidFrom = &from
	b.ValidTo = &to
	return b
}

func (b *CouponBuilder) BuildSnapshot() *shared.CouponSnapshot {
	snap := &shared.CouponSnapshot{
		ID:         b.ID,
		Code:       b.Code,
		PercentOff: b.PercentOff,
		ValidFrom:  b.ValidFrom,
		ValidTo:    b.ValidTo,
	}
	if b.AmountOff != nil {
		snap.AmountOff = ptr.To(money.FromFloat(*b.AmountOff))
	}
	return snap
}

func BuildCheckoutRequestDTO() reqdto.CheckoutRequest {
	return reqdto.CheckoutRequest{
		FirstName:     "Alex",
		LastName:      "Taylor",
		Address1:      "12 Market Street",
		City:          "London",
		Postcode:      "E1 6AN",
		Country:       "GB",
		Email:         "alex.taylor@example.com",
		Phone:         "07700900000",
		PaymentMethod: "card",
	}
}
