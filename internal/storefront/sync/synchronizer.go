package sync

import (
	"context"
	"errors"
	"log/slog"
	stdsync "sync"

	"github.com/google/uuid"

	"storefront/internal/handler/dto/response"
)

// CartRenderer is the panel surface the synchronizer draws into. RenderCart
// replaces the whole panel; RenderNotice surfaces a failure inline without
// touching the rendered cart.
type CartRenderer interface {
	RenderCart(snapshot *response.CartResponse)
	RenderNotice(message string)
}

// Synchronizer keeps the cart panel consistent with the authoritative server
// cart across overlapping asynchronous operations. Each operation is tagged
// with a generation at issue time; a response only renders if nothing newer
// has rendered already, so a slow stale response can never overwrite a
// fresher snapshot. A failed operation leaves the last-known-good panel in
// place.
type Synchronizer struct {
	gateway  CartGateway
	renderer CartRenderer

	mu           stdsync.Mutex
	nextGen      uint64
	renderedGen  uint64
	lastRendered *response.CartResponse
}

func NewSynchronizer(gateway CartGateway, renderer CartRenderer) *Synchronizer {
	return &Synchronizer{
		gateway:  gateway,
		renderer: renderer,
	}
}

// Open hydrates the panel from the server. Used when the cart panel is first
// shown; safe to call again at any time.
func (s *Synchronizer) Open(ctx context.Context) {
	gen := s.begin()
	snapshot, err := s.gateway.FetchCart(ctx)
	if err != nil {
		s.fail(err, "Could not load your basket")
		return
	}
	s.complete(gen, snapshot)
}

// Add requests one unit of the product/variant. The server merges a repeat
// add into the existing line; the panel is re-rendered from the returned
// snapshot either way, never locally incremented.
func (s *Synchronizer) Add(ctx context.Context, productID uuid.UUID, variantID *uuid.UUID, attributes map[string]string) {
	gen := s.begin()
	result, err := s.gateway.AddToCart(ctx, productID, variantID, attributes)
	if err != nil {
		if errors.Is(err, ErrAddFailed) {
			s.fail(err, "Failed to add to cart")
			return
		}
		s.fail(err, "Could not update your basket")
		return
	}
	s.complete(gen, &result.Cart)
}

// Remove drops a line by key. A line already gone (removed by a concurrent
// request) is success-equivalent: the current state is re-fetched and
// rendered with no notice shown.
func (s *Synchronizer) Remove(ctx context.Context, lineKey string) {
	gen := s.begin()
	snapshot, err := s.gateway.RemoveFromCart(ctx, lineKey)
	if err != nil {
		if errors.Is(err, ErrNotFound) {
			slog.Debug("line already removed, refetching", "line_key", lineKey)
			snapshot, err = s.gateway.FetchCart(ctx)
			if err != nil {
				s.fail(err, "Could not update your basket")
				return
			}
			s.complete(gen, snapshot)
			return
		}
		s.fail(err, "Could not update your basket")
		return
	}
	s.complete(gen, snapshot)
}

func (s *Synchronizer) ApplyCoupon(ctx context.Context, code string) {
	gen := s.begin()
	snapshot, err := s.gateway.ApplyCoupon(ctx, code)
	if err != nil {
		if errors.Is(err, ErrInvalidCoupon) || errors.Is(err, ErrValidation) {
			s.fail(err, "This coupon cannot be applied")
			return
		}
		s.fail(err, "Could not update your basket")
		return
	}
	s.complete(gen, snapshot)
}

func (s *Synchronizer) ClearCoupons(ctx context.Context) {
	gen := s.begin()
	snapshot, err := s.gateway.RemoveCoupons(ctx)
	if err != nil {
		s.fail(err, "Could not update your basket")
		return
	}
	s.complete(gen, snapshot)
}

// LastRendered returns the most recent snapshot drawn into the panel, or nil
// before the first successful render.
func (s *Synchronizer) LastRendered() *response.CartResponse {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.lastRendered
}

func (s *Synchronizer) begin() uint64 {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.nextGen++
	return s.nextGen
}

// complete renders the snapshot unless a response issued later has rendered
// already, in which case this one is stale and dropped.
func (s *Synchronizer) complete(gen uint64, snapshot *response.CartResponse) {
	s.mu.Lock()
	defer s.mu.Unlock()

	if gen <= s.renderedGen {
		slog.Debug("discarding stale cart response", "generation", gen, "rendered", s.renderedGen)
		return
	}
	s.renderedGen = gen
	s.lastRendered = snapshot
	s.renderer.RenderCart(snapshot)
}

func (s *Synchronizer) fail(err error, message string) {
	slog.Warn("cart operation failed", "error", err.Error())
	if errors.Is(err, ErrAuthFailure) {
		message = "Security check failed"
	}
	s.renderer.RenderNotice(message)
}
