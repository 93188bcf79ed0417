package selection

import (
	"fmt"

	"github.com/google/uuid"

	"storefront/internal/domain/catalog"
	"storefront/internal/pkg/money"
)

// View is everything the selector surface needs for one render: the size
// tiles, the add-to-basket button, and the price block. It is computed as a
// pure function of the variant index and the current selection.
type View struct {
	Tiles  []TileView
	Button ButtonView
	Price  PriceView
}

type TileView struct {
	VariantID uuid.UUID
	Label     string
	InStock   bool
	Selected  bool
}

type ButtonView struct {
	Label   string
	Enabled bool
}

// PriceView renders one of three shapes: a struck-through regular price next
// to the sale price with a percent-off badge, a single price for an
// out-of-stock variant, or the plain regular price.
type PriceView struct {
	Current       string
	Regular       string
	RegularStruck bool
	Badge         string
}

const (
	buttonLabelAdd     = "ADD TO BASKET"
	buttonLabelSoldOut = "SOLD OUT"
)

func buttonFor(v catalog.Variant, globallyOut bool) ButtonView {
	if globallyOut || !v.InStock {
		return ButtonView{Label: buttonLabelSoldOut, Enabled: false}
	}
	return ButtonView{Label: buttonLabelAdd, Enabled: true}
}

func priceFor(v catalog.Variant) PriceView {
	if !v.InStock {
		// Out of stock shows a single price with no sale treatment.
		return PriceView{Current: money.FormatGBP(v.CurrentPrice())}
	}
	if v.OnSale() {
		return PriceView{
			Current:       fmt.Sprintf("Now %s", money.FormatGBP(*v.SalePrice)),
			Regular:       money.FormatGBP(v.RegularPrice),
			RegularStruck: true,
			Badge:         fmt.Sprintf("%d%% OFF", v.PercentOff()),
		}
	}
	return PriceView{Current: money.FormatGBP(v.RegularPrice)}
}
