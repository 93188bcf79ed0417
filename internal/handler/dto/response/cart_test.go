//go:build unit

package response_test

import (
	"testing"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"storefront/internal/handler/dto/response"
	"storefront/internal/usecase/queries"
)

func TestFromCartView(t *testing.T) {
	t.Run("maps every field of the view", func(t *testing.T) {
		productID := uuid.New()
		view := &queries.CartView{
			Items: []queries.CartLineView{{
				Key:       "abc123",
				ProductID: productID,
				Name:      "Trail Running Shoe",
				UnitPrice: "£75.00",
				Quantity:  2,
				LineTotal: "£150.00",
				ImageURL:  "https://cdn.example.com/shoe.jpg",
				Variation: "UK 9",
			}},
			AppliedCoupons: []queries.AppliedCouponView{{
				Code:              "SAVE5",
				Discount:          "5.00",
				DiscountFormatted: "-£5.00",
			}},
			Count:         2,
			Subtotal:      "£150.00",
			DiscountTotal: "£5.00",
			Total:         "£145.00",
			CheckoutURL:   "/checkout",
		}

		resp, err := response.FromCartView(view)
		require.NoError(t, err)

		require.Len(t, resp.Items, 1)
		assert.Equal(t, "abc123", resp.Items[0].Key)
		assert.Equal(t, productID, resp.Items[0].ProductID)
		assert.Equal(t, "£75.00", resp.Items[0].UnitPrice)
		assert.Equal(t, "UK 9", resp.Items[0].Variation)
		require.Len(t, resp.AppliedCoupons, 1)
		assert.Equal(t, "-£5.00", resp.AppliedCoupons[0].DiscountFormatted)
		assert.Equal(t, 2, resp.Count)
		assert.Equal(t, "£145.00", resp.Total)
		assert.Equal(t, "/checkout", resp.CheckoutURL)
	})

	t.Run("nil view reports an error instead of an empty payload", func(t *testing.T) {
		_, err := response.FromCartView(nil)
		assert.Error(t, err)
	})
}

func TestFromAddToCartResult(t *testing.T) {
	resp, err := response.FromAddToCartResult(&queries.CartView{Count: 1, Total: "£75.00"}, true)
	require.NoError(t, err)
	assert.True(t, resp.Added)
	assert.Equal(t, "£75.00", resp.Cart.Total)

	_, err = response.FromAddToCartResult(nil, true)
	assert.Error(t, err)
}

func TestFromProductSelectorView(t *testing.T) {
	view := &queries.ProductSelectorView{
		ProductID: uuid.New(),
		Name:      "Trail Running Shoe",
		InStock:   true,
		Variants: []queries.VariantView{{
			ID:           uuid.New(),
			SizeLabel:    "UK 9",
			InStock:      true,
			RegularPrice: "100.00",
			PercentOff:   25,
		}},
	}

	resp, err := response.FromProductSelectorView(view)
	require.NoError(t, err)
	assert.Equal(t, view.ProductID, resp.ProductID)
	require.Len(t, resp.Variants, 1)
	assert.Equal(t, "UK 9", resp.Variants[0].SizeLabel)
	assert.Equal(t, 25, resp.Variants[0].PercentOff)

	_, err = response.FromProductSelectorView(nil)
	assert.Error(t, err)
}
