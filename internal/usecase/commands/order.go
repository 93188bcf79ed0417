package commands

import (
	"context"
	"errors"
	"log/slog"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"

	"storefront/internal/domain/cart"
	"storefront/internal/domain/order"
	"storefront/internal/infra"
	"storefront/internal/pkg/clock"
	"storefront/internal/pkg/errs"
)

var (
	ErrEmptyCart           = errs.New("cart is empty")
	ErrInvalidBilling      = errs.New("billing details are invalid")
	ErrOrderCreationFailed = errs.New("order creation failed")
)

type CreateOrderResult struct {
	OrderID uuid.UUID
	// RedirectTarget is the order-received path the client navigates to.
	RedirectTarget string
}

type OrderCommands interface {
	CreateOrder(ctx context.Context, sessionID uuid.UUID, billing order.BillingDetails, paymentMethod string) (*CreateOrderResult, error)
}

type orderCommandsImpl struct {
	cartRepo     CartRepository
	orderRepo    OrderRepository
	orderFactory *order.Factory
	db           TxBeginner
	clock        clock.Clock
}

func NewOrderCommands(
	cartRepo CartRepository,
	orderRepo OrderRepository,
	orderFactory *order.Factory,
	db TxBeginner,
	clk clock.Clock,
) OrderCommands {
	return &orderCommandsImpl{
		cartRepo:     cartRepo,
		orderRepo:    orderRepo,
		orderFactory: orderFactory,
		db:           db,
		clock:        clk,
	}
}

// CreateOrder converts the live cart into a persisted order. The whole
// sequence runs under the session lease so a concurrent add/remove either
// waits or fails, never lands half-reflected in the order. The cart is
// cleared strictly after the order commit; any earlier failure leaves it
// untouched for retry.
func (o *orderCommandsImpl) CreateOrder(
	ctx context.Context,
	sessionID uuid.UUID,
	billing order.BillingDetails,
	paymentMethod string,
) (*CreateOrderResult, error) {
	release, err := o.cartRepo.AcquireLease(ctx, sessionID)
	if err != nil {
		if infra.IsKind(err, infra.KindLeaseHeld) {
			return nil, ErrCartBusy
		}
		return nil, errs.Mark(err, ErrOrderCreationFailed)
	}
	defer release()

	snapshot, err := o.cartRepo.Get(ctx, sessionID)
	if err != nil {
		if infra.IsKind(err, infra.KindNotFound) {
			return nil, ErrEmptyCart
		}
		return nil, errs.Mark(err, ErrOrderCreationFailed)
	}
	if snapshot.IsEmpty() {
		return nil, ErrEmptyCart
	}

	orderEntity, err := o.orderFactory.CreateFromCart(snapshot, billing, paymentMethod)
	if err != nil {
		if errors.Is(err, order.ErrEmptyCart) {
			return nil, ErrEmptyCart
		}
		if errors.Is(err, order.ErrMissingBilling) {
			return nil, ErrInvalidBilling
		}
		return nil, errs.Mark(err, ErrOrderCreationFailed)
	}

	if err := o.persistOrder(ctx, orderEntity); err != nil {
		return nil, err
	}

	// The order exists from here on. A failed cart clear must not fail the
	// checkout; the stale cart ages out via TTL.
	o.clearCart(ctx, snapshot)

	return &CreateOrderResult{
		OrderID:        orderEntity.ID(),
		RedirectTarget: orderEntity.ConfirmationPath(),
	}, nil
}

func (o *orderCommandsImpl) persistOrder(ctx context.Context, orderEntity *order.Order) error {
	tx, err := o.db.Begin(ctx)
	if err != nil {
		return errs.Mark(err, ErrOrderCreationFailed)
	}
	defer func() {
		if rollbackErr := tx.Rollback(ctx); rollbackErr != nil && !errors.Is(rollbackErr, pgx.ErrTxClosed) {
			slog.Warn("failed to rollback order transaction", "error", rollbackErr)
		}
	}()

	if err := o.orderRepo.Create(ctx, tx, orderEntity); err != nil {
		return errs.Mark(err, ErrOrderCreationFailed)
	}

	if commitErr := tx.Commit(ctx); commitErr != nil {
		return errs.Mark(commitErr, ErrOrderCreationFailed)
	}
	return nil
}

func (o *orderCommandsImpl) clearCart(ctx context.Context, snapshot *cart.Cart) {
	if err := o.cartRepo.Delete(ctx, snapshot.SessionID); err != nil {
		slog.Error("failed to clear cart after order creation",
			"session_id", snapshot.SessionID,
			"error", err)
	}
}
