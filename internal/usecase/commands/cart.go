package commands

import (
	"context"
	"errors"
	"sort"
	"strings"

	"github.com/google/uuid"

	"storefront/internal/domain/cart"
	"storefront/internal/domain/coupon"
	"storefront/internal/infra"
	"storefront/internal/pkg/clock"
	"storefront/internal/pkg/config"
	"storefront/internal/pkg/errs"
)

var (
	ErrAddRejected         = errs.New("product or variant rejected the add")
	ErrLineNotFound        = errs.New("cart line not found")
	ErrEmptyCouponCode     = errs.New("coupon code is empty")
	ErrInvalidCoupon       = errs.New("invalid coupon")
	ErrCartBusy            = errs.New("cart is busy")
	ErrCartStorageFailed   = errs.New("cart storage failed")
	ErrCatalogLookupFailed = errs.New("catalog lookup failed")
)

type AddToCartResult struct {
	Cart *cart.Cart
	// Added distinguishes a fresh line from a merge into an existing one.
	Added bool
}

type CartCommands interface {
	AddToCart(ctx context.Context, sessionID, productID uuid.UUID, variantID *uuid.UUID, attributes map[string]string) (*AddToCartResult, error)
	RemoveFromCart(ctx context.Context, sessionID uuid.UUID, lineKey string) (*cart.Cart, error)
	ApplyCoupon(ctx context.Context, sessionID uuid.UUID, code string) (*cart.Cart, error)
	RemoveCoupons(ctx context.Context, sessionID uuid.UUID) (*cart.Cart, error)
}

type cartCommandsImpl struct {
	cartRepo    CartRepository
	catalogRepo CatalogRepository
	couponRepo  CouponRepository
	clock       clock.Clock
	store       config.StoreConfig
}

func NewCartCommands(
	cartRepo CartRepository,
	catalogRepo CatalogRepository,
	couponRepo CouponRepository,
	clk clock.Clock,
	cfg config.Config,
) CartCommands {
	return &cartCommandsImpl{
		cartRepo:    cartRepo,
		catalogRepo: catalogRepo,
		couponRepo:  couponRepo,
		clock:       clk,
		store:       cfg.Store,
	}
}

func (c *cartCommandsImpl) AddToCart(
	ctx context.Context,
	sessionID, productID uuid.UUID,
	variantID *uuid.UUID,
	attributes map[string]string,
) (*AddToCartResult, error) {
	item, err := c.buildLineItem(ctx, productID, variantID, attributes)
	if err != nil {
		return nil, err
	}

	var (
		result   *cart.Cart
		wasFresh bool
	)
	err = c.withCart(ctx, sessionID, func(current *cart.Cart) error {
		wasFresh = !hasLine(current, item.Key)
		current.AddItem(*item, c.clock.Now())
		result = current
		return nil
	})
	if err != nil {
		return nil, err
	}

	return &AddToCartResult{Cart: result, Added: wasFresh}, nil
}

func (c *cartCommandsImpl) RemoveFromCart(ctx context.Context, sessionID uuid.UUID, lineKey string) (*cart.Cart, error) {
	if strings.TrimSpace(lineKey) == "" {
		return nil, ErrLineNotFound
	}

	var result *cart.Cart
	err := c.withCart(ctx, sessionID, func(current *cart.Cart) error {
		if !current.RemoveItem(lineKey, c.clock.Now()) {
			return ErrLineNotFound
		}
		result = current
		return nil
	})
	if err != nil {
		return nil, err
	}
	return result, nil
}

func (c *cartCommandsImpl) ApplyCoupon(ctx context.Context, sessionID uuid.UUID, code string) (*cart.Cart, error) {
	normalized, err := coupon.NewCode(code)
	if err != nil {
		if errors.Is(err, coupon.ErrEmptyCouponCode) {
			return nil, ErrEmptyCouponCode
		}
		return nil, ErrInvalidCoupon
	}

	snap, err := c.couponRepo.FindByCode(ctx, normalized.String())
	if err != nil {
		if infra.IsKind(err, infra.KindNotFound) {
			return nil, ErrInvalidCoupon
		}
		return nil, errs.Mark(err, ErrCartStorageFailed)
	}

	couponEntity, err := coupon.NewCoupon(snap.ID, snap.Code, snap.AmountOff, snap.PercentOff, snap.ValidFrom, snap.ValidTo)
	if err != nil {
		return nil, ErrInvalidCoupon
	}
	if err := couponEntity.ValidateUsage(c.clock.Now()); err != nil {
		return nil, ErrInvalidCoupon
	}

	var result *cart.Cart
	err = c.withCart(ctx, sessionID, func(current *cart.Cart) error {
		// Re-apply of an applied code is silently idempotent.
		current.ApplyCoupon(couponEntity, c.clock.Now())
		result = current
		return nil
	})
	if err != nil {
		return nil, err
	}
	return result, nil
}

func (c *cartCommandsImpl) RemoveCoupons(ctx context.Context, sessionID uuid.UUID) (*cart.Cart, error) {
	var result *cart.Cart
	err := c.withCart(ctx, sessionID, func(current *cart.Cart) error {
		current.RemoveCoupons(c.clock.Now())
		result = current
		return nil
	})
	if err != nil {
		return nil, err
	}
	return result, nil
}

// withCart loads (or creates) the session cart under the mutation lease,
// applies fn and persists the result. fn errors abort without saving.
func (c *cartCommandsImpl) withCart(ctx context.Context, sessionID uuid.UUID, fn func(*cart.Cart) error) error {
	release, err := c.cartRepo.AcquireLease(ctx, sessionID)
	if err != nil {
		if infra.IsKind(err, infra.KindLeaseHeld) {
			return ErrCartBusy
		}
		return errs.Mark(err, ErrCartStorageFailed)
	}
	defer release()

	current, err := c.cartRepo.Get(ctx, sessionID)
	if err != nil {
		if !infra.IsKind(err, infra.KindNotFound) {
			return errs.Mark(err, ErrCartStorageFailed)
		}
		current = cart.New(sessionID, c.clock.Now())
	}

	if err := fn(current); err != nil {
		return err
	}

	if err := c.cartRepo.Save(ctx, current); err != nil {
		return errs.Mark(err, ErrCartStorageFailed)
	}
	return nil
}

// buildLineItem validates the product/variant combination against the catalog
// and snapshots the price the buyer pays right now. An out-of-stock or
// unknown combination is an upstream rejection, mirrored to the client as
// "failed to add to cart".
func (c *cartCommandsImpl) buildLineItem(
	ctx context.Context,
	productID uuid.UUID,
	variantID *uuid.UUID,
	attributes map[string]string,
) (*cart.LineItem, error) {
	product, err := c.catalogRepo.FindProduct(ctx, productID)
	if err != nil {
		if infra.IsKind(err, infra.KindNotFound) {
			return nil, ErrAddRejected
		}
		return nil, errs.Mark(err, ErrCatalogLookupFailed)
	}

	item := cart.LineItem{
		Key:       cart.LineKey(productID, variantID, attributes),
		ProductID: productID,
		VariantID: variantID,
		Name:      product.Name,
		UnitPrice: product.Price(),
		Quantity:  1,
		ImageURL:  resolveLineImage("", product.ImageURL, c.store.PlaceholderImage),
	}

	if variantID == nil {
		if !product.InStock {
			return nil, ErrAddRejected
		}
		return &item, nil
	}

	variant, err := c.catalogRepo.FindVariant(ctx, *variantID)
	if err != nil {
		if infra.IsKind(err, infra.KindNotFound) {
			return nil, ErrAddRejected
		}
		return nil, errs.Mark(err, ErrCatalogLookupFailed)
	}
	if variant.ProductID != productID || !variant.InStock {
		return nil, ErrAddRejected
	}

	item.UnitPrice = variant.Price()
	item.ImageURL = resolveLineImage(variant.ImageURL, product.ImageURL, c.store.PlaceholderImage)
	item.VariationDescription = describeVariation(attributes, variant.Attributes)

	return &item, nil
}

// resolveLineImage applies the display-image fallback chain: the variant's
// own image, then the product's, then the parent product's (identical to the
// product here, where variants hang off a single parent row), then the
// generic placeholder. First non-empty wins.
func resolveLineImage(variantImage, productImage, placeholder string) string {
	for _, candidate := range []string{variantImage, productImage} {
		if candidate != "" {
			return candidate
		}
	}
	return placeholder
}

// describeVariation renders "UK 9" style text from the request attributes,
// falling back to the catalog's own attribute values.
func describeVariation(requested, catalog map[string]string) string {
	attrs := requested
	if len(attrs) == 0 {
		attrs = catalog
	}

	keys := make([]string, 0, len(attrs))
	for k := range attrs {
		keys = append(keys, k)
	}
	sort.Strings(keys)

	values := make([]string, 0, len(keys))
	for _, k := range keys {
		if v := strings.TrimSpace(attrs[k]); v != "" {
			values = append(values, v)
		}
	}
	return strings.Join(values, ", ")
}

func hasLine(c *cart.Cart, key string) bool {
	for _, item := range c.Items {
		if item.Key == key {
			return true
		}
	}
	return false
}
