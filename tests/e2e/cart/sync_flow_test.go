//go:build e2e

package cart_test

import (
	"net/http/httptest"
	"testing"

	"storefront/internal/handler/dto/response"
	storesync "storefront/internal/storefront/sync"
	"storefront/tests/common/dbtest"
	"storefront/tests/e2e"

	"github.com/stretchr/testify/require"
	"github.com/stretchr/testify/suite"
)

// SyncFlowSuite drives the client core (HTTP gateway + synchronizer) against
// the real API over a live listener, cookies and CSRF included.
type SyncFlowSuite struct {
	e2e.SharedSuite
}

func TestSyncFlowSuite(t *testing.T) {
	t.Parallel()
	suite.Run(t, new(SyncFlowSuite))
}

// panelRecorder captures everything the synchronizer draws.
type panelRecorder struct {
	carts   []*response.CartResponse
	notices []string
}

func (p *panelRecorder) RenderCart(snapshot *response.CartResponse) {
	p.carts = append(p.carts, snapshot)
}

func (p *panelRecorder) RenderNotice(message string) {
	p.notices = append(p.notices, message)
}

func (s *SyncFlowSuite) startClient(t *testing.T, serverURL string) (*storesync.Synchronizer, *panelRecorder) {
	t.Helper()
	gateway, err := storesync.NewHTTPGateway(serverURL)
	require.NoError(t, err)
	require.NoError(t, gateway.EnsureSession(t.Context()))

	panel := &panelRecorder{}
	return storesync.NewSynchronizer(gateway, panel), panel
}

func (s *SyncFlowSuite) TestSynchronizerAgainstLiveAPI() {
	s.Run("Normal case: open, add and remove render server snapshots", func() {
		t := s.T()
		ctx := t.Context()
		productID := dbtest.CreateTestProduct(t, s.DB, "Trail Running Shoe", true, 100)
		variantID := dbtest.CreateTestVariant(t, s.DB, productID, "UK 9", true, 100, 75, 0)

		server := httptest.NewServer(s.Router)
		defer server.Close()

		syncer, panel := s.startClient(t, server.URL)

		syncer.Open(ctx)
		require.Len(t, panel.carts, 1)
		require.Equal(t, "£0.00", panel.carts[0].Total)

		syncer.Add(ctx, productID, &variantID, map[string]string{"size": "UK 9"})
		require.Len(t, panel.carts, 2)
		added := panel.carts[1]
		require.Equal(t, 1, added.Count)
		require.Equal(t, "£75.00", added.Items[0].UnitPrice)
		require.Equal(t, "UK 9", added.Items[0].Variation)

		syncer.Remove(ctx, added.Items[0].Key)
		require.Len(t, panel.carts, 3)
		require.Equal(t, 0, panel.carts[2].Count)
		require.Empty(t, panel.notices)
	})

	s.Run("Normal case: coupons apply and clear through the gateway", func() {
		t := s.T()
		ctx := t.Context()
		productID := dbtest.CreateTestProduct(t, s.DB, "Trail Running Shoe", true, 50)
		dbtest.CreateTestCoupon(t, s.DB, "SAVE5", 5)

		server := httptest.NewServer(s.Router)
		defer server.Close()

		syncer, panel := s.startClient(t, server.URL)
		syncer.Add(ctx, productID, nil, nil)

		syncer.ApplyCoupon(ctx, "save5")
		require.Len(t, panel.carts, 2)
		require.Equal(t, "£45.00", panel.carts[1].Total)

		syncer.ClearCoupons(ctx)
		require.Len(t, panel.carts, 3)
		require.Equal(t, "£50.00", panel.carts[2].Total)
		require.Empty(t, panel.notices)
	})

	s.Run("Error case: server rejections surface as notices, panel keeps last good", func() {
		t := s.T()
		ctx := t.Context()
		productID := dbtest.CreateTestProduct(t, s.DB, "Trail Running Shoe", true, 100)
		oosVariant := dbtest.CreateTestVariant(t, s.DB, productID, "UK 8", false, 100, 0, 0)

		server := httptest.NewServer(s.Router)
		defer server.Close()

		syncer, panel := s.startClient(t, server.URL)
		syncer.Open(ctx)
		require.Len(t, panel.carts, 1)

		syncer.Add(ctx, productID, &oosVariant, nil)
		require.Equal(t, []string{"Failed to add to cart"}, panel.notices)

		syncer.ApplyCoupon(ctx, "NOPE1")
		require.Equal(t, "This coupon cannot be applied", panel.notices[1])

		// Both failures left the rendered cart alone.
		require.Len(t, panel.carts, 1)
		require.Same(t, panel.carts[0], syncer.LastRendered())
	})

	s.Run("Normal case: removing an already-gone line refetches silently", func() {
		t := s.T()
		ctx := t.Context()
		productID := dbtest.CreateTestProduct(t, s.DB, "Trail Running Shoe", true, 100)

		server := httptest.NewServer(s.Router)
		defer server.Close()

		syncer, panel := s.startClient(t, server.URL)
		syncer.Add(ctx, productID, nil, nil)
		require.Len(t, panel.carts, 1)

		syncer.Remove(ctx, "deadbeef")
		require.Len(t, panel.carts, 2)
		require.Equal(t, 1, panel.carts[1].Count, "refetched snapshot keeps the line")
		require.Empty(t, panel.notices)
	})
}
