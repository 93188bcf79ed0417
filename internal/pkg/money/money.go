package money

import (
	"github.com/shopspring/decimal"
)

// All amounts are GBP. The catalog never serves mixed currencies, so Amount
// carries no currency tag.
type Amount = decimal.Decimal

func Zero() Amount {
	return decimal.Zero
}

func FromFloat(v float64) Amount {
	return decimal.NewFromFloat(v)
}

func FromInt(v int) Amount {
	return decimal.NewFromInt(int64(v))
}

func FromString(s string) (Amount, error) {
	return decimal.NewFromString(s)
}

// FormatGBP renders an amount the way the storefront displays prices: "£20.00".
func FormatGBP(a Amount) string {
	return "£" + a.StringFixed(2)
}

// FormatGBPNegative renders a discount line: "-£5.00".
func FormatGBPNegative(a Amount) string {
	return "-£" + a.StringFixed(2)
}

// PercentOff returns the rounded savings percentage between a regular and a
// sale price: round((regular-sale)/regular*100). Zero when regular is not
// greater than sale (not actually a markdown) or regular is zero.
func PercentOff(regular, sale Amount) int {
	if regular.IsZero() || regular.LessThanOrEqual(sale) {
		return 0
	}
	ratio := regular.Sub(sale).Div(regular).Mul(decimal.NewFromInt(100))
	return int(ratio.Round(0).IntPart())
}
