//go:build unit

package coupon_test

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"storefront/internal/domain/coupon"
	"storefront/internal/pkg/money"
	"storefront/internal/pkg/ptr"
)

func TestNewCode(t *testing.T) {
	t.Run("normalizes case and whitespace", func(t *testing.T) {
		code, err := coupon.NewCode("  save5 ")
		require.NoError(t, err)
		assert.Equal(t, "SAVE5", code.String())
	})

	t.Run("rejects empty code", func(t *testing.T) {
		_, err := coupon.NewCode("   ")
		assert.ErrorIs(t, err, coupon.ErrEmptyCouponCode)
	})

	t.Run("rejects invalid characters", func(t *testing.T) {
		for _, raw := range []string{"SAVE 5", "SAVE-5", "ab", "TOOLONGCOUPONCODE12345"} {
			_, err := coupon.NewCode(raw)
			assert.ErrorIs(t, err, coupon.ErrInvalidCouponCode, raw)
		}
	})
}

func TestNewDiscount(t *testing.T) {
	t.Run("fixed discount", func(t *testing.T) {
		d, err := coupon.NewDiscount(ptr.To(money.FromFloat(5)), nil)
		require.NoError(t, err)
		assert.False(t, d.IsPercentage())
		assert.True(t, d.AmountOff().Equal(money.FromFloat(5)))
	})

	t.Run("percentage discount", func(t *testing.T) {
		d, err := coupon.NewDiscount(nil, ptr.To(10.0))
		require.NoError(t, err)
		assert.True(t, d.IsPercentage())
		assert.Equal(t, 10.0, d.PercentOff())
	})

	t.Run("rejects both kinds at once", func(t *testing.T) {
		_, err := coupon.NewDiscount(ptr.To(money.FromFloat(5)), ptr.To(10.0))
		assert.Error(t, err)
	})

	t.Run("rejects neither kind", func(t *testing.T) {
		_, err := coupon.NewDiscount(nil, nil)
		assert.Error(t, err)
	})

	t.Run("rejects negative amount", func(t *testing.T) {
		_, err := coupon.NewDiscount(ptr.To(money.FromFloat(-1)), nil)
		assert.ErrorIs(t, err, coupon.ErrInvalidDiscountAmount)
	})

	t.Run("rejects percentage out of range", func(t *testing.T) {
		_, err := coupon.NewDiscount(nil, ptr.To(120.0))
		assert.ErrorIs(t, err, coupon.ErrInvalidDiscountPercent)

		_, err = coupon.NewDiscount(nil, ptr.To(-1.0))
		assert.ErrorIs(t, err, coupon.ErrInvalidDiscountPercent)
	})
}

func TestDiscountValuate(t *testing.T) {
	t.Run("fixed discount returns its amount", func(t *testing.T) {
		d, err := coupon.NewFixedDiscount(money.FromFloat(5))
		require.NoError(t, err)

		got := d.Valuate(money.FromFloat(50))
		assert.Equal(t, "5.00", got.StringFixed(2))
	})

	t.Run("fixed discount clamps to the base", func(t *testing.T) {
		d, err := coupon.NewFixedDiscount(money.FromFloat(100))
		require.NoError(t, err)

		got := d.Valuate(money.FromFloat(30))
		assert.Equal(t, "30.00", got.StringFixed(2))
	})

	t.Run("percentage discount rounds to pence", func(t *testing.T) {
		d, err := coupon.NewPercentageDiscount(10)
		require.NoError(t, err)
		assert.Equal(t, "8.00", d.Valuate(money.FromFloat(80)).StringFixed(2))

		third, err := coupon.NewPercentageDiscount(33.33)
		require.NoError(t, err)
		assert.Equal(t, "3.33", third.Valuate(money.FromFloat(10)).StringFixed(2))
	})

	t.Run("zero or negative base yields no discount", func(t *testing.T) {
		d, err := coupon.NewFixedDiscount(money.FromFloat(5))
		require.NoError(t, err)

		assert.True(t, d.Valuate(money.Zero()).IsZero())
		assert.True(t, d.Valuate(money.FromFloat(-10)).IsZero())
	})
}
