package sync

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"net/http/cookiejar"
	stdsync "sync"
	"time"

	"github.com/google/uuid"

	"storefront/internal/handler/dto/response"
	"storefront/internal/handler/middleware"
	"storefront/internal/pkg/errs"
)

// HTTPGateway talks to the cart API over HTTP. The session rides on the
// cookie jar; the CSRF token is fetched once from the session endpoint and
// attached to every mutation.
type HTTPGateway struct {
	baseURL string
	client  *http.Client

	mu        stdsync.Mutex
	csrfToken string
}

func NewHTTPGateway(baseURL string) (*HTTPGateway, error) {
	jar, err := cookiejar.New(nil)
	if err != nil {
		return nil, errs.Wrap(err, "failed to create cookie jar")
	}
	return &HTTPGateway{
		baseURL: baseURL,
		client: &http.Client{
			Jar:     jar,
			Timeout: 10 * time.Second,
		},
	}, nil
}

// EnsureSession establishes the session cookie and caches a CSRF token.
// Called lazily before the first mutation; call it again after an
// ErrAuthFailure to refresh an expired token.
func (g *HTTPGateway) EnsureSession(ctx context.Context) error {
	req, err := http.NewRequestWithContext(ctx, http.MethodPost, g.baseURL+"/api/session", nil)
	if err != nil {
		return errs.Wrap(err, "failed to build session request")
	}

	res, err := g.client.Do(req)
	if err != nil {
		return errs.Mark(err, ErrGatewayFailure)
	}
	defer res.Body.Close()

	if res.StatusCode != http.StatusOK {
		return errs.Mark(fmt.Errorf("session endpoint returned %d", res.StatusCode), ErrGatewayFailure)
	}

	var session response.SessionResponse
	if err := json.NewDecoder(res.Body).Decode(&session); err != nil {
		return errs.Mark(err, ErrGatewayFailure)
	}

	g.mu.Lock()
	g.csrfToken = session.CSRFToken
	g.mu.Unlock()
	return nil
}

func (g *HTTPGateway) FetchCart(ctx context.Context) (*response.CartResponse, error) {
	var snapshot response.CartResponse
	if err := g.do(ctx, http.MethodGet, "/api/cart", nil, &snapshot); err != nil {
		return nil, err
	}
	return &snapshot, nil
}

func (g *HTTPGateway) AddToCart(ctx context.Context, productID uuid.UUID, variantID *uuid.UUID, attributes map[string]string) (*response.AddToCartResponse, error) {
	body := map[string]any{"product_id": productID}
	if variantID != nil {
		body["variant_id"] = *variantID
	}
	if len(attributes) > 0 {
		body["attributes"] = attributes
	}

	var result response.AddToCartResponse
	if err := g.do(ctx, http.MethodPost, "/api/cart/items", body, &result); err != nil {
		return nil, err
	}
	return &result, nil
}

func (g *HTTPGateway) RemoveFromCart(ctx context.Context, lineKey string) (*response.CartResponse, error) {
	var snapshot response.CartResponse
	if err := g.do(ctx, http.MethodDelete, "/api/cart/items/"+lineKey, nil, &snapshot); err != nil {
		return nil, err
	}
	return &snapshot, nil
}

func (g *HTTPGateway) ApplyCoupon(ctx context.Context, code string) (*response.CartResponse, error) {
	var snapshot response.CartResponse
	if err := g.do(ctx, http.MethodPost, "/api/cart/coupons", map[string]any{"code": code}, &snapshot); err != nil {
		return nil, err
	}
	return &snapshot, nil
}

func (g *HTTPGateway) RemoveCoupons(ctx context.Context) (*response.CartResponse, error) {
	var snapshot response.CartResponse
	if err := g.do(ctx, http.MethodDelete, "/api/cart/coupons", nil, &snapshot); err != nil {
		return nil, err
	}
	return &snapshot, nil
}

func (g *HTTPGateway) do(ctx context.Context, method, path string, body any, out any) error {
	payload := &bytes.Buffer{}
	if body != nil {
		if err := json.NewEncoder(payload).Encode(body); err != nil {
			return errs.Wrap(err, "failed to encode request body")
		}
	}

	if method != http.MethodGet {
		if err := g.ensureCSRF(ctx); err != nil {
			return err
		}
	}

	req, err := http.NewRequestWithContext(ctx, method, g.baseURL+path, payload)
	if err != nil {
		return errs.Wrap(err, "failed to build request")
	}
	req.Header.Set("Content-Type", "application/json")
	if method != http.MethodGet {
		g.mu.Lock()
		req.Header.Set(middleware.CSRFHeaderName, g.csrfToken)
		g.mu.Unlock()
	}

	res, err := g.client.Do(req)
	if err != nil {
		return errs.Mark(err, ErrGatewayFailure)
	}
	defer res.Body.Close()

	if err := statusToError(res.StatusCode, method, path); err != nil {
		return err
	}

	if err := json.NewDecoder(res.Body).Decode(out); err != nil {
		return errs.Mark(err, ErrGatewayFailure)
	}
	return nil
}

func (g *HTTPGateway) ensureCSRF(ctx context.Context) error {
	g.mu.Lock()
	have := g.csrfToken != ""
	g.mu.Unlock()
	if have {
		return nil
	}
	return g.EnsureSession(ctx)
}

func statusToError(status int, method, path string) error {
	if status >= 200 && status < 300 {
		return nil
	}

	cause := fmt.Errorf("%s %s returned %d", method, path, status)
	switch status {
	case http.StatusForbidden:
		return errs.Mark(cause, ErrAuthFailure)
	case http.StatusBadRequest:
		return errs.Mark(cause, ErrValidation)
	case http.StatusNotFound:
		return errs.Mark(cause, ErrNotFound)
	case http.StatusConflict:
		return errs.Mark(cause, ErrAddFailed)
	case http.StatusUnprocessableEntity:
		return errs.Mark(cause, ErrInvalidCoupon)
	default:
		return errs.Mark(cause, ErrGatewayFailure)
	}
}
