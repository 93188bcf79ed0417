package request

import (
	"strings"

	"storefront/internal/domain/order"
)

type CheckoutRequest struct {
	FirstName     string `json:"first_name" binding:"required"`
	LastName      string `json:"last_name" binding:"required"`
	Address1      string `json:"address_1" binding:"required"`
	City          string `json:"city"`
	Postcode      string `json:"postcode"`
	Country       string `json:"country"`
	Email         string `json:"email" binding:"required,email"`
	Phone         string `json:"phone"`
	PaymentMethod string `json:"payment_method"`
}

func (r CheckoutRequest) ToDomain() order.BillingDetails {
	return order.BillingDetails{
		FirstName: strings.TrimSpace(r.FirstName),
		LastName:  strings.TrimSpace(r.LastName),
		Address1:  strings.TrimSpace(r.Address1),
		City:      strings.TrimSpace(r.City),
		Postcode:  strings.TrimSpace(r.Postcode),
		Country:   strings.TrimSpace(r.Country),
		Email:     strings.TrimSpace(r.Email),
		Phone:     strings.TrimSpace(r.Phone),
	}
}
