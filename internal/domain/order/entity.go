package order

import (
	"errors"
	"time"

	"github.com/google/uuid"

	"storefront/internal/pkg/money"
)

var (
	ErrEmptyCart      = errors.New("cart is empty")
	ErrMissingBilling = errors.New("billing details are incomplete")
)

// BillingDetails carries the checkout form fields. Shipping defaults to
// billing when not provided.
type BillingDetails struct {
	FirstName string
	LastName  string
	Address1  string
	City      string
	Postcode  string
	Country   string
	Email     string
	Phone     string
}

func (b BillingDetails) validate() error {
	if b.FirstName == "" || b.LastName == "" || b.Address1 == "" || b.Email == "" {
		return ErrMissingBilling
	}
	return nil
}

// ShippingDetails mirrors billing minus contact fields.
type ShippingDetails struct {
	FirstName string
	LastName  string
	Address1  string
	City      string
	Postcode  string
	Country   string
}

func shippingFromBilling(b BillingDetails) ShippingDetails {
	return ShippingDetails{
		FirstName: b.FirstName,
		LastName:  b.LastName,
		Address1:  b.Address1,
		City:      b.City,
		Postcode:  b.Postcode,
		Country:   b.Country,
	}
}

// Line is a snapshot of a cart line at checkout time. UnitPrice is the
// price-at-add-time, never a re-priced lookup.
type Line struct {
	ProductID            uuid.UUID
	VariantID            *uuid.UUID
	Name                 string
	UnitPrice            money.Amount
	Quantity             int
	LineTotal            money.Amount
	VariationDescription string
}

type AppliedCoupon struct {
	Code     string
	Discount money.Amount
}

// Order is immutable once persisted. Everything in it is copied from the cart
// snapshot, decoupled from subsequent live mutation.
type Order struct {
	id            uuid.UUID
	sessionID     uuid.UUID
	billing       BillingDetails
	shipping      ShippingDetails
	lines         []Line
	coupons       []AppliedCoupon
	subtotal      money.Amount
	discountTotal money.Amount
	total         money.Amount
	paymentMethod string
	createdAt     time.Time
}

func (o *Order) ID() uuid.UUID               { return o.id }
func (o *Order) SessionID() uuid.UUID        { return o.sessionID }
func (o *Order) Billing() BillingDetails     { return o.billing }
func (o *Order) Shipping() ShippingDetails   { return o.shipping }
func (o *Order) Lines() []Line               { return o.lines }
func (o *Order) Coupons() []AppliedCoupon    { return o.coupons }
func (o *Order) Subtotal() money.Amount      { return o.subtotal }
func (o *Order) DiscountTotal() money.Amount { return o.discountTotal }
func (o *Order) Total() money.Amount         { return o.total }
func (o *Order) PaymentMethod() string       { return o.paymentMethod }
func (o *Order) CreatedAt() time.Time        { return o.createdAt }

// ConfirmationPath is the redirect target returned to the client after a
// successful checkout.
func (o *Order) ConfirmationPath() string {
	return "/order-received/" + o.id.String()
}
