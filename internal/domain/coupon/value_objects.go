package coupon

import (
	"errors"
	"regexp"
	"strings"

	"github.com/shopspring/decimal"

	"storefront/internal/pkg/money"
)

var (
	ErrEmptyCouponCode        = errors.New("coupon code is empty")
	ErrInvalidCouponCode      = errors.New("invalid coupon code format")
	ErrInvalidDiscountAmount  = errors.New("discount amount cannot be negative")
	ErrInvalidDiscountPercent = errors.New("percentage discount must be between 0 and 100")
)

var couponCodeRegex = regexp.MustCompile(`^[A-Z0-9]{3,20}$`)

type Code string

// NewCode case-normalizes before any comparison happens; applied-coupon
// uniqueness is case-insensitive.
func NewCode(code string) (Code, error) {
	code = strings.TrimSpace(strings.ToUpper(code))
	if code == "" {
		return Code(""), ErrEmptyCouponCode
	}
	if !couponCodeRegex.MatchString(code) {
		return Code(""), ErrInvalidCouponCode
	}
	return Code(code), nil
}

func (c Code) String() string {
	return string(c)
}

type Discount struct {
	amountOff  *money.Amount
	percentOff *float64
}

func NewFixedDiscount(amountOff money.Amount) (Discount, error) {
	if amountOff.IsNegative() {
		return Discount{}, ErrInvalidDiscountAmount
	}
	return Discount{amountOff: &amountOff}, nil
}

func NewPercentageDiscount(percentOff float64) (Discount, error) {
	if percentOff < 0 || percentOff > 100 {
		return Discount{}, ErrInvalidDiscountPercent
	}
	return Discount{percentOff: &percentOff}, nil
}

func NewDiscount(amountOff *money.Amount, percentOff *float64) (Discount, error) {
	if amountOff != nil && percentOff != nil {
		return Discount{}, errors.New("discount can only be either fixed amount or percentage, not both")
	}
	if amountOff == nil && percentOff == nil {
		return Discount{}, errors.New("discount must have either fixed amount or percentage")
	}

	if amountOff != nil {
		return NewFixedDiscount(*amountOff)
	}
	return NewPercentageDiscount(*percentOff)
}

func (d Discount) IsPercentage() bool {
	return d.percentOff != nil
}

func (d Discount) AmountOff() money.Amount {
	if d.amountOff != nil {
		return *d.amountOff
	}
	return money.Zero()
}

func (d Discount) PercentOff() float64 {
	if d.percentOff != nil {
		return *d.percentOff
	}
	return 0
}

// Valuate returns the reduction this discount yields against the given base,
// clamped so a coupon never discounts more than what remains.
func (d Discount) Valuate(base money.Amount) money.Amount {
	if base.IsNegative() || base.IsZero() {
		return money.Zero()
	}

	if d.IsPercentage() {
		pct := decimal.NewFromFloat(d.PercentOff()).Div(decimal.NewFromInt(100))
		return base.Mul(pct).Round(2)
	}

	amount := d.AmountOff()
	if amount.GreaterThan(base) {
		return base
	}
	return amount
}
