//go:build e2e

package cart_test

import (
	"net/http"
	"testing"

	"storefront/internal/handler/dto/response"
	"storefront/tests/common/builder"
	"storefront/tests/common/dbtest"
	"storefront/tests/common/httptest"
	"storefront/tests/e2e"

	"github.com/google/go-cmp/cmp"
	"github.com/google/go-cmp/cmp/cmpopts"
	"github.com/google/uuid"
	"github.com/stretchr/testify/require"
	"github.com/stretchr/testify/suite"
)

const (
	sessionURL  = "/api/session"
	cartURL     = "/api/cart"
	itemsURL    = "/api/cart/items"
	couponsURL  = "/api/cart/coupons"
	checkoutURL = "/api/checkout"
)

type CartFlowSuite struct {
	e2e.SharedSuite
}

func (s *CartFlowSuite) SetupSubTest() {
	s.SharedSuite.SetupSubTest()
}

func TestCartFlowSuite(t *testing.T) {
	t.Parallel()
	suite.Run(t, new(CartFlowSuite))
}

// browserSession carries the session cookie and CSRF token a client holds
// after opening the store.
type browserSession struct {
	cookies []*http.Cookie
	csrf    string
}

func (s *CartFlowSuite) startSession(t *testing.T) browserSession {
	w := httptest.PerformRequest(t, s.Router, http.MethodPost, sessionURL, nil, "")
	require.Equal(t, http.StatusOK, w.Code, "session start failed")

	var body response.SessionResponse
	require.NoError(t, httptest.DecodeResponseBody(t, w.Body, &body))
	require.NotEmpty(t, body.CSRFToken)

	cookies := httptest.ExtractCookies(w)
	require.NotEmpty(t, cookies, "session cookie not set")

	return browserSession{cookies: cookies, csrf: body.CSRFToken}
}

func (s *CartFlowSuite) getCart(t *testing.T, sess browserSession) response.CartResponse {
	w := httptest.PerformRequestWithCookies(t, s.Router, http.MethodGet, cartURL, nil, sess.cookies, "")
	require.Equal(t, http.StatusOK, w.Code)

	var cart response.CartResponse
	require.NoError(t, httptest.DecodeResponseBody(t, w.Body, &cart))
	return cart
}

func (s *CartFlowSuite) addItem(t *testing.T, sess browserSession, productID uuid.UUID, variantID *uuid.UUID) response.AddToCartResponse {
	reqBody := map[string]any{"product_id": productID}
	if variantID != nil {
		reqBody["variant_id"] = variantID
	}

	w := httptest.PerformRequestWithCookies(t, s.Router, http.MethodPost, itemsURL, reqBody, sess.cookies, sess.csrf)
	require.Equal(t, http.StatusOK, w.Code, "add to cart failed: %s", w.Body.String())

	var result response.AddToCartResponse
	require.NoError(t, httptest.DecodeResponseBody(t, w.Body, &result))
	return result
}

// =============================================================================
// TestCartLifecycle - cart mutations through the full HTTP stack
// =============================================================================

func (s *CartFlowSuite) TestCartLifecycle() {
	s.Run("Normal case: empty cart for a fresh session", func() {
		t := s.T()
		sess := s.startSession(t)

		cart := s.getCart(t, sess)

		want := response.CartResponse{
			Items:          []response.CartLineResponse{},
			AppliedCoupons: []response.AppliedCouponResponse{},
			Count:          0,
			Subtotal:       "£0.00",
			DiscountTotal:  "£0.00",
			Total:          "£0.00",
			CheckoutURL:    "/checkout",
		}
		if diff := cmp.Diff(want, cart, cmpopts.EquateEmpty()); diff != "" {
			t.Errorf("cart mismatch (-want +got):\n%s", diff)
		}
	})

	s.Run("Normal case: add, merge and remove a variant line", func() {
		t := s.T()
		productID := dbtest.CreateTestProduct(t, s.DB, "Trail Running Shoe", true, 100)
		variantID := dbtest.CreateTestVariant(t, s.DB, productID, "UK 9", true, 100, 75, 0)

		sess := s.startSession(t)

		first := s.addItem(t, sess, productID, &variantID)
		require.True(t, first.Added)
		require.Len(t, first.Cart.Items, 1)
		require.Equal(t, "£75.00", first.Cart.Items[0].UnitPrice)
		require.Equal(t, "UK 9", first.Cart.Items[0].Variation)

		second := s.addItem(t, sess, productID, &variantID)
		require.False(t, second.Added, "repeat add must merge, not append")
		require.Len(t, second.Cart.Items, 1)
		require.Equal(t, 2, second.Cart.Items[0].Quantity)
		require.Equal(t, "£150.00", second.Cart.Total)

		key := second.Cart.Items[0].Key
		w := httptest.PerformRequestWithCookies(t, s.Router, http.MethodDelete, itemsURL+"/"+key, nil, sess.cookies, sess.csrf)
		require.Equal(t, http.StatusOK, w.Code)

		var after response.CartResponse
		require.NoError(t, httptest.DecodeResponseBody(t, w.Body, &after))
		require.Empty(t, after.Items)
		require.Equal(t, "£0.00", after.Total)
	})

	s.Run("Error case: out-of-stock variant is rejected", func() {
		t := s.T()
		productID := dbtest.CreateTestProduct(t, s.DB, "Trail Running Shoe", true, 100)
		variantID := dbtest.CreateTestVariant(t, s.DB, productID, "UK 8", false, 100, 0, 0)

		sess := s.startSession(t)

		reqBody := map[string]any{"product_id": productID, "variant_id": variantID}
		w := httptest.PerformRequestWithCookies(t, s.Router, http.MethodPost, itemsURL, reqBody, sess.cookies, sess.csrf)
		require.Equal(t, http.StatusConflict, w.Code)
	})

	s.Run("Error case: mutation without a CSRF token is forbidden", func() {
		t := s.T()
		productID := dbtest.CreateTestProduct(t, s.DB, "Trail Running Shoe", true, 100)

		sess := s.startSession(t)

		reqBody := map[string]any{"product_id": productID}
		w := httptest.PerformRequestWithCookies(t, s.Router, http.MethodPost, itemsURL, reqBody, sess.cookies, "")
		require.Equal(t, http.StatusForbidden, w.Code)
	})

	s.Run("Error case: CSRF token from another session is forbidden", func() {
		t := s.T()
		productID := dbtest.CreateTestProduct(t, s.DB, "Trail Running Shoe", true, 100)

		sess := s.startSession(t)
		other := s.startSession(t)

		reqBody := map[string]any{"product_id": productID}
		w := httptest.PerformRequestWithCookies(t, s.Router, http.MethodPost, itemsURL, reqBody, sess.cookies, other.csrf)
		require.Equal(t, http.StatusForbidden, w.Code)
	})

	s.Run("Normal case: carts are isolated per session", func() {
		t := s.T()
		productID := dbtest.CreateTestProduct(t, s.DB, "Trail Running Shoe", true, 100)

		alice := s.startSession(t)
		bob := s.startSession(t)

		s.addItem(t, alice, productID, nil)

		require.Equal(t, 1, s.getCart(t, alice).Count)
		require.Equal(t, 0, s.getCart(t, bob).Count)
	})
}

// =============================================================================
// TestCoupons - coupon application through the full HTTP stack
// =============================================================================

func (s *CartFlowSuite) TestCoupons() {
	s.Run("Normal case: fixed coupon discounts the total", func() {
		t := s.T()
		productID := dbtest.CreateTestProduct(t, s.DB, "Trail Running Shoe", true, 50)
		dbtest.CreateTestCoupon(t, s.DB, "SAVE5", 5)

		sess := s.startSession(t)
		s.addItem(t, sess, productID, nil)

		reqBody := map[string]any{"code": "save5"}
		w := httptest.PerformRequestWithCookies(t, s.Router, http.MethodPost, couponsURL, reqBody, sess.cookies, sess.csrf)
		require.Equal(t, http.StatusOK, w.Code, w.Body.String())

		var cart response.CartResponse
		require.NoError(t, httptest.DecodeResponseBody(t, w.Body, &cart))
		require.Len(t, cart.AppliedCoupons, 1)
		require.Equal(t, "SAVE5", cart.AppliedCoupons[0].Code)
		require.Equal(t, "-£5.00", cart.AppliedCoupons[0].DiscountFormatted)
		require.Equal(t, "£45.00", cart.Total)
	})

	s.Run("Error case: unknown coupon is rejected", func() {
		t := s.T()
		sess := s.startSession(t)

		reqBody := map[string]any{"code": "NOPE1"}
		w := httptest.PerformRequestWithCookies(t, s.Router, http.MethodPost, couponsURL, reqBody, sess.cookies, sess.csrf)
		require.Equal(t, http.StatusUnprocessableEntity, w.Code)
	})

	s.Run("Normal case: removing coupons restores the full total", func() {
		t := s.T()
		productID := dbtest.CreateTestProduct(t, s.DB, "Trail Running Shoe", true, 50)
		dbtest.CreateTestCoupon(t, s.DB, "SAVE5", 5)

		sess := s.startSession(t)
		s.addItem(t, sess, productID, nil)

		reqBody := map[string]any{"code": "SAVE5"}
		w := httptest.PerformRequestWithCookies(t, s.Router, http.MethodPost, couponsURL, reqBody, sess.cookies, sess.csrf)
		require.Equal(t, http.StatusOK, w.Code)

		w = httptest.PerformRequestWithCookies(t, s.Router, http.MethodDelete, couponsURL, nil, sess.cookies, sess.csrf)
		require.Equal(t, http.StatusOK, w.Code)

		var cart response.CartResponse
		require.NoError(t, httptest.DecodeResponseBody(t, w.Body, &cart))
		require.Empty(t, cart.AppliedCoupons)
		require.Equal(t, "£50.00", cart.Total)
	})
}

// =============================================================================
// TestCheckout - order creation through the full HTTP stack
// =============================================================================

func (s *CartFlowSuite) TestCheckout() {
	s.Run("Normal case: checkout persists the order and clears the cart", func() {
		t := s.T()
		shoes := dbtest.CreateTestProduct(t, s.DB, "Trail Running Shoe", true, 20)
		socks := dbtest.CreateTestProduct(t, s.DB, "Running Socks", true, 30)
		dbtest.CreateTestCoupon(t, s.DB, "SAVE5", 5)

		sess := s.startSession(t)
		s.addItem(t, sess, shoes, nil)
		s.addItem(t, sess, socks, nil)

		couponBody := map[string]any{"code": "SAVE5"}
		w := httptest.PerformRequestWithCookies(t, s.Router, http.MethodPost, couponsURL, couponBody, sess.cookies, sess.csrf)
		require.Equal(t, http.StatusOK, w.Code)

		checkoutBody := builder.BuildCheckoutRequestDTO()
		w = httptest.PerformRequestWithCookies(t, s.Router, http.MethodPost, checkoutURL, checkoutBody, sess.cookies, sess.csrf)
		require.Equal(t, http.StatusCreated, w.Code, w.Body.String())

		var created response.CheckoutResponse
		require.NoError(t, httptest.DecodeResponseBody(t, w.Body, &created))
		require.NotEqual(t, uuid.Nil, created.OrderID)
		require.Equal(t, "/order-received/"+created.OrderID.String(), created.RedirectURL)

		var subtotal, discount, total string
		err := s.DB.QueryRow(t.Context(),
			"SELECT subtotal::text, discount_total::text, total::text FROM orders WHERE id = $1",
			created.OrderID).Scan(&subtotal, &discount, &total)
		require.NoError(t, err)
		require.Equal(t, "50.00", subtotal)
		require.Equal(t, "5.00", discount)
		require.Equal(t, "45.00", total)

		var lineCount int
		require.NoError(t, s.DB.QueryRow(t.Context(),
			"SELECT count(*) FROM order_lines WHERE order_id = $1", created.OrderID).Scan(&lineCount))
		require.Equal(t, 2, lineCount)

		// The cart is cleared only after the order committed.
		require.Equal(t, 0, s.getCart(t, sess).Count)
	})

	s.Run("Error case: empty cart cannot check out", func() {
		t := s.T()
		sess := s.startSession(t)

		checkoutBody := builder.BuildCheckoutRequestDTO()
		w := httptest.PerformRequestWithCookies(t, s.Router, http.MethodPost, checkoutURL, checkoutBody, sess.cookies, sess.csrf)
		require.Equal(t, http.StatusConflict, w.Code)
	})

	s.Run("Error case: incomplete billing is rejected", func() {
		t := s.T()
		productID := dbtest.CreateTestProduct(t, s.DB, "Trail Running Shoe", true, 20)

		sess := s.startSession(t)
		s.addItem(t, sess, productID, nil)

		checkoutBody := builder.BuildCheckoutRequestDTO()
		checkoutBody.Email = ""
		w := httptest.PerformRequestWithCookies(t, s.Router, http.MethodPost, checkoutURL, checkoutBody, sess.cookies, sess.csrf)
		require.Equal(t, http.StatusBadRequest, w.Code)
	})
}
