package response

import (
	"github.com/google/uuid"
	"github.com/jinzhu/copier"

	"storefront/internal/pkg/errs"
	"storefront/internal/usecase/queries"
)

type ProductSelectorResponse struct {
	ProductID uuid.UUID         `json:"product_id"`
	Name      string            `json:"name"`
	InStock   bool              `json:"in_stock"`
	Variants  []VariantResponse `json:"variants"`
}

type VariantResponse struct {
	ID           uuid.UUID `json:"id"`
	SizeLabel    string    `json:"size_label"`
	InStock      bool      `json:"in_stock"`
	RegularPrice string    `json:"regular_price"`
	SalePrice    *string   `json:"sale_price,omitempty"`
	OnSale       bool      `json:"on_sale"`
	PercentOff   int       `json:"percent_off"`
	ImageURL     string    `json:"image_url,omitempty"`
}

func FromProductSelectorView(view *queries.ProductSelectorView) (*ProductSelectorResponse, error) {
	var resp ProductSelectorResponse
	if err := copier.Copy(&resp, view); err != nil {
		return nil, errs.Wrap(err, "failed to convert selector view")
	}
	return &resp, nil
}
