package response

import (
	"github.com/google/uuid"
)

type CheckoutResponse struct {
	OrderID uuid.UUID `json:"order_id"`
	// RedirectURL is where the client navigates after a successful order.
	RedirectURL string `json:"redirect_url"`
}
