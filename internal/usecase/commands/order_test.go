//go:build unit

package commands_test

import (
	"context"
	"testing"
	"time"

	"github.com/alicebob/miniredis/v2"
	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
	goredis "github.com/redis/go-redis/v9"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"storefront/internal/domain/order"
	"storefront/internal/infra"
	"storefront/internal/infra/repository"
	"storefront/internal/pkg/clock"
	"storefront/internal/pkg/config"
	"storefront/internal/pkg/errs"
	"storefront/internal/usecase/commands"
	"storefront/tests/common/builder"
)

// fakeTx satisfies pgx.Tx for the calls the order transaction makes.
type fakeTx struct {
	pgx.Tx
	committed  bool
	rolledBack bool
}

func (t *fakeTx) Commit(context.Context) error {
	t.committed = true
	return nil
}

func (t *fakeTx) Rollback(context.Context) error {
	if t.committed {
		return pgx.ErrTxClosed
	}
	t.rolledBack = true
	return nil
}

type fakeDB struct {
	tx       *fakeTx
	beginErr error
}

func (f *fakeDB) Begin(context.Context) (pgx.Tx, error) {
	if f.beginErr != nil {
		return nil, f.beginErr
	}
	f.tx = &fakeTx{}
	return f.tx, nil
}

type fakeOrders struct {
	created   []*order.Order
	createErr error
}

func (f *fakeOrders) Create(_ context.Context, _ pgx.Tx, o *order.Order) error {
	if f.createErr != nil {
		return f.createErr
	}
	f.created = append(f.created, o)
	return nil
}

type orderCommandsFixture struct {
	cmds      commands.OrderCommands
	cartRepo  *repository.CartRepository
	orders    *fakeOrders
	db        *fakeDB
	sessionID uuid.UUID
}

func setupOrderCommands(t *testing.T) *orderCommandsFixture {
	t.Helper()
	mr := miniredis.RunT(t)
	client := goredis.NewClient(&goredis.Options{Addr: mr.Addr()})
	t.Cleanup(func() { client.Close() })

	cfg := config.NewTestConfig()
	cartRepo := repository.NewCartRepository(client, cfg.Redis.CartTTL, cfg.Redis.LeaseTTL, cfg.Redis.LeaseWait)
	orders := &fakeOrders{}
	db := &fakeDB{}
	clk := clock.NewMockClock(time.Date(2026, 3, 10, 12, 0, 0, 0, time.UTC))

	return &orderCommandsFixture{
		cmds:      commands.NewOrderCommands(cartRepo, orders, order.NewFactory(clk), db, clk),
		cartRepo:  cartRepo,
		orders:    orders,
		db:        db,
		sessionID: uuid.New(),
	}
}

func seedTwoLineCart(t *testing.T, fx *orderCommandsFixture) {
	t.Helper()
	c := builder.NewCartBuilder().
		WithSession(fx.sessionID).
		WithLine("Trail Running Shoe", 20, 1).
		WithLine("Running Socks", 30, 1).
		BuildDomain()
	require.NoError(t, fx.cartRepo.Save(context.Background(), c))
}

func checkoutBilling() order.BillingDetails {
	return order.BillingDetails{
		FirstName: "Alex",
		LastName:  "Taylor",
		Address1:  "12 Market Street",
		City:      "London",
		Postcode:  "E1 6AN",
		Country:   "GB",
		Email:     "alex.taylor@example.com",
		Phone:     "07700900000",
	}
}

func TestCreateOrder(t *testing.T) {
	ctx := context.Background()

	t.Run("commits the order and clears the cart", func(t *testing.T) {
		fx := setupOrderCommands(t)
		seedTwoLineCart(t, fx)

		result, err := fx.cmds.CreateOrder(ctx, fx.sessionID, checkoutBilling(), "card")
		require.NoError(t, err)

		assert.Equal(t, "/order-received/"+result.OrderID.String(), result.RedirectTarget)
		require.Len(t, fx.orders.created, 1)
		assert.True(t, fx.db.tx.committed)

		_, err = fx.cartRepo.Get(ctx, fx.sessionID)
		assert.True(t, infra.IsKind(err, infra.KindNotFound), "cart must be gone after the commit")
	})

	t.Run("failed persist keeps the cart intact", func(t *testing.T) {
		fx := setupOrderCommands(t)
		seedTwoLineCart(t, fx)
		fx.orders.createErr = errs.New("insert failed")

		_, err := fx.cmds.CreateOrder(ctx, fx.sessionID, checkoutBilling(), "card")
		assert.ErrorIs(t, err, commands.ErrOrderCreationFailed)
		assert.True(t, fx.db.tx.rolledBack)
		assert.False(t, fx.db.tx.committed)

		after, err := fx.cartRepo.Get(ctx, fx.sessionID)
		require.NoError(t, err)
		require.Len(t, after.Items, 2)
		assert.Equal(t, "50.00", after.CalculateTotals().Subtotal.StringFixed(2))
	})

	t.Run("failed transaction begin keeps the cart intact", func(t *testing.T) {
		fx := setupOrderCommands(t)
		seedTwoLineCart(t, fx)
		fx.db.beginErr = errs.New("pool exhausted")

		_, err := fx.cmds.CreateOrder(ctx, fx.sessionID, checkoutBilling(), "card")
		assert.ErrorIs(t, err, commands.ErrOrderCreationFailed)

		after, err := fx.cartRepo.Get(ctx, fx.sessionID)
		require.NoError(t, err)
		assert.Len(t, after.Items, 2)
	})

	t.Run("session without a cart cannot check out", func(t *testing.T) {
		fx := setupOrderCommands(t)

		_, err := fx.cmds.CreateOrder(ctx, fx.sessionID, checkoutBilling(), "card")
		assert.ErrorIs(t, err, commands.ErrEmptyCart)
		assert.Empty(t, fx.orders.created)
	})

	t.Run("incomplete billing leaves the cart intact", func(t *testing.T) {
		fx := setupOrderCommands(t)
		seedTwoLineCart(t, fx)

		billing := checkoutBilling()
		billing.Email = ""
		_, err := fx.cmds.CreateOrder(ctx, fx.sessionID, billing, "card")
		assert.ErrorIs(t, err, commands.ErrInvalidBilling)

		after, err := fx.cartRepo.Get(ctx, fx.sessionID)
		require.NoError(t, err)
		assert.Len(t, after.Items, 2)
	})

	t.Run("held lease reports the cart busy", func(t *testing.T) {
		fx := setupOrderCommands(t)
		seedTwoLineCart(t, fx)

		release, err := fx.cartRepo.AcquireLease(ctx, fx.sessionID)
		require.NoError(t, err)
		defer release()

		_, err = fx.cmds.CreateOrder(ctx, fx.sessionID, checkoutBilling(), "card")
		assert.ErrorIs(t, err, commands.ErrCartBusy)
		assert.Empty(t, fx.orders.created)
	})
}
