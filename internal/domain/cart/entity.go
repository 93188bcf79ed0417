package cart

import (
	"crypto/sha256"
	"encoding/hex"
	"sort"
	"strings"
	"time"

	"github.com/google/uuid"

	"storefront/internal/domain/coupon"
	"storefront/internal/pkg/money"
)

// Cart is the authoritative per-session aggregate. It is owned exclusively by
// the server side; clients hold only the last-fetched read-only snapshot and
// request mutations through the cart operations.
//
// The struct is JSON-serializable because the store persists it as a single
// blob per session key.
type Cart struct {
	SessionID uuid.UUID       `json:"session_id"`
	Items     []LineItem      `json:"items"`
	Coupons   []AppliedCoupon `json:"coupons"`
	Version   int             `json:"version"`
	CreatedAt time.Time       `json:"created_at"`
	UpdatedAt time.Time       `json:"updated_at"`
}

// LineItem is one entry in the cart. Key is opaque to clients and unique per
// distinct product+variant+attribute combination.
type LineItem struct {
	Key                  string       `json:"key"`
	ProductID            uuid.UUID    `json:"product_id"`
	VariantID            *uuid.UUID   `json:"variant_id,omitempty"`
	Name                 string       `json:"name"`
	UnitPrice            money.Amount `json:"unit_price"`
	Quantity             int          `json:"quantity"`
	ImageURL             string       `json:"image_url,omitempty"`
	VariationDescription string       `json:"variation,omitempty"`
}

func (li LineItem) LineTotal() money.Amount {
	return li.UnitPrice.Mul(money.FromInt(li.Quantity))
}

// AppliedCoupon snapshots the discount definition at apply time so totals are
// recomputable from the cart blob alone.
type AppliedCoupon struct {
	Code       string        `json:"code"`
	AmountOff  *money.Amount `json:"amount_off,omitempty"`
	PercentOff *float64      `json:"percent_off,omitempty"`
}

type Totals struct {
	Subtotal      money.Amount
	DiscountTotal money.Amount
	Total         money.Amount
	CouponValues  map[string]money.Amount
}

func New(sessionID uuid.UUID, now time.Time) *Cart {
	return &Cart{
		SessionID: sessionID,
		Items:     []LineItem{},
		Coupons:   []AppliedCoupon{},
		Version:   0,
		CreatedAt: now,
		UpdatedAt: now,
	}
}

// LineKey derives the opaque line identity from the product, variant and
// attribute combination. Two adds with the same combination land on the same
// line.
func LineKey(productID uuid.UUID, variantID *uuid.UUID, attributes map[string]string) string {
	parts := []string{productID.String()}
	if variantID != nil {
		parts = append(parts, variantID.String())
	}

	attrKeys := make([]string, 0, len(attributes))
	for k := range attributes {
		attrKeys = append(attrKeys, k)
	}
	sort.Strings(attrKeys)
	for _, k := range attrKeys {
		parts = append(parts, k+"="+attributes[k])
	}

	sum := sha256.Sum256([]byte(strings.Join(parts, "|")))
	return hex.EncodeToString(sum[:16])
}

// AddItem appends the line or, when a line with the same key already exists,
// merges by incrementing its quantity. Returns the key of the affected line.
func (c *Cart) AddItem(item LineItem, now time.Time) string {
	for i := range c.Items {
		if c.Items[i].Key == item.Key {
			c.Items[i].Quantity += item.Quantity
			c.touch(now)
			return item.Key
		}
	}

	c.Items = append(c.Items, item)
	c.touch(now)
	return item.Key
}

// RemoveItem deletes the line with the given key, preserving insertion order
// of the rest. Returns false when the key is absent.
func (c *Cart) RemoveItem(key string, now time.Time) bool {
	for i := range c.Items {
		if c.Items[i].Key == key {
			c.Items = append(c.Items[:i], c.Items[i+1:]...)
			c.touch(now)
			return true
		}
	}
	return false
}

func (c *Cart) HasCoupon(code string) bool {
	normalized := strings.ToUpper(strings.TrimSpace(code))
	for _, ac := range c.Coupons {
		if ac.Code == normalized {
			return true
		}
	}
	return false
}

// ApplyCoupon records the coupon's discount snapshot. Re-applying an already
// applied code is a no-op (idempotent by policy).
func (c *Cart) ApplyCoupon(cp *coupon.Coupon, now time.Time) bool {
	if c.HasCoupon(cp.Code().String()) {
		return false
	}

	applied := AppliedCoupon{Code: cp.Code().String()}
	if cp.Discount().IsPercentage() {
		pct := cp.Discount().PercentOff()
		applied.PercentOff = &pct
	} else {
		amount := cp.Discount().AmountOff()
		applied.AmountOff = &amount
	}

	c.Coupons = append(c.Coupons, applied)
	c.touch(now)
	return true
}

// RemoveCoupons clears every applied code (the remove operation is all-or-
// nothing on the wire).
func (c *Cart) RemoveCoupons(now time.Time) {
	if len(c.Coupons) == 0 {
		return
	}
	c.Coupons = []AppliedCoupon{}
	c.touch(now)
}

func (c *Cart) IsEmpty() bool {
	return len(c.Items) == 0
}

// ItemCount is the badge count: total quantity across lines.
func (c *Cart) ItemCount() int {
	count := 0
	for _, item := range c.Items {
		count += item.Quantity
	}
	return count
}

// CalculateTotals recomputes subtotal, discount and total from scratch.
// Discounts valuate sequentially against the running remainder so stacked
// coupons can never push the total below zero.
func (c *Cart) CalculateTotals() Totals {
	subtotal := money.Zero()
	for _, item := range c.Items {
		subtotal = subtotal.Add(item.LineTotal())
	}

	discountTotal := money.Zero()
	couponValues := make(map[string]money.Amount, len(c.Coupons))
	remaining := subtotal
	for _, ac := range c.Coupons {
		discount, err := coupon.NewDiscount(ac.AmountOff, ac.PercentOff)
		if err != nil {
			continue
		}
		value := discount.Valuate(remaining)
		couponValues[ac.Code] = value
		discountTotal = discountTotal.Add(value)
		remaining = remaining.Sub(value)
	}

	return Totals{
		Subtotal:      subtotal,
		DiscountTotal: discountTotal,
		Total:         subtotal.Sub(discountTotal),
		CouponValues:  couponValues,
	}
}

func (c *Cart) touch(now time.Time) {
	c.Version++
	c.UpdatedAt = now
}
