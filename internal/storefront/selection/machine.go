package selection

import (
	"github.com/google/uuid"

	"storefront/internal/domain/catalog"
	"storefront/internal/pkg/errs"
)

var ErrUnknownVariant = errs.New("variant not in index")

// Renderer receives the full selector view on every state change. The machine
// never patches individual pieces; each render replaces the whole surface.
type Renderer interface {
	RenderSelection(view View)
}

// Machine holds the selected variant for one product page. It is
// single-threaded by contract: drive it from one goroutine, the same way a
// UI event loop would. Selection never reverts to empty once made.
type Machine struct {
	index    *catalog.VariantIndex
	renderer Renderer

	selectedID  uuid.UUID
	hasSelected bool
}

func NewMachine(index *catalog.VariantIndex, renderer Renderer) *Machine {
	return &Machine{
		index:    index,
		renderer: renderer,
	}
}

// Start performs the initial render, auto-selecting the first in-stock
// variant by catalog order, or the first variant at all when everything is
// out of stock, so a selection always exists before the user can act.
func (m *Machine) Start() {
	v, ok := m.index.FirstSelectable()
	if !ok {
		m.renderer.RenderSelection(m.view())
		return
	}
	m.selectedID = v.ID
	m.hasSelected = true
	m.renderer.RenderSelection(m.view())
}

// Select moves the selection to the given variant and re-renders. Selecting
// the already-selected variant is a no-op with no render. Purely local, no
// network involved.
func (m *Machine) Select(variantID uuid.UUID) error {
	if _, ok := m.index.ByID(variantID); !ok {
		return ErrUnknownVariant
	}
	if m.hasSelected && m.selectedID == variantID {
		return nil
	}

	m.selectedID = variantID
	m.hasSelected = true
	m.renderer.RenderSelection(m.view())
	return nil
}

// Selected returns the current variant, valid once Start has run against a
// non-empty index.
func (m *Machine) Selected() (catalog.Variant, bool) {
	if !m.hasSelected {
		return catalog.Variant{}, false
	}
	return m.index.ByID(m.selectedID)
}

func (m *Machine) view() View {
	variants := m.index.Variants()
	tiles := make([]TileView, 0, len(variants))
	for _, v := range variants {
		tiles = append(tiles, TileView{
			VariantID: v.ID,
			Label:     v.DisplaySize(),
			InStock:   v.InStock,
			Selected:  m.hasSelected && v.ID == m.selectedID,
		})
	}

	view := View{Tiles: tiles}
	if selected, ok := m.Selected(); ok {
		view.Button = buttonFor(selected, m.index.GloballyOutOfStock())
		view.Price = priceFor(selected)
	} else {
		view.Button = ButtonView{Label: buttonLabelSoldOut, Enabled: false}
	}
	return view
}
