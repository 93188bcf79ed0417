//go:build unit

package selection_test

import (
	"testing"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"storefront/internal/storefront/selection"
	"storefront/tests/common/builder"
)

// recordingRenderer captures every render so tests can assert both the final
// view and how many renders happened.
type recordingRenderer struct {
	views []selection.View
}

func (r *recordingRenderer) RenderSelection(view selection.View) {
	r.views = append(r.views, view)
}

func (r *recordingRenderer) last(t *testing.T) selection.View {
	t.Helper()
	require.NotEmpty(t, r.views)
	return r.views[len(r.views)-1]
}

func selectedTiles(view selection.View) []string {
	var labels []string
	for _, tile := range view.Tiles {
		if tile.Selected {
			labels = append(labels, tile.Label)
		}
	}
	return labels
}

func TestMachineStart(t *testing.T) {
	t.Run("auto-selects the first in-stock variant", func(t *testing.T) {
		index := builder.NewProductBuilder().
			WithVariant("UK 8", false, 100, 0).
			WithVariant("UK 9", true, 100, 0).
			WithVariant("UK 10", true, 100, 0).
			BuildIndex()
		renderer := &recordingRenderer{}

		m := selection.NewMachine(index, renderer)
		m.Start()

		view := renderer.last(t)
		assert.Equal(t, []string{"9"}, selectedTiles(view))
		assert.True(t, view.Button.Enabled)
		assert.Equal(t, "ADD TO BASKET", view.Button.Label)
	})

	t.Run("falls back to the first variant when all are out of stock", func(t *testing.T) {
		index := builder.NewProductBuilder().
			WithVariant("UK 8", false, 100, 0).
			WithVariant("UK 9", false, 100, 0).
			BuildIndex()
		renderer := &recordingRenderer{}

		m := selection.NewMachine(index, renderer)
		m.Start()

		view := renderer.last(t)
		assert.Equal(t, []string{"8"}, selectedTiles(view))
		assert.False(t, view.Button.Enabled)
		assert.Equal(t, "SOLD OUT", view.Button.Label)
	})

	t.Run("empty index renders a disabled button and no tiles", func(t *testing.T) {
		index := builder.NewProductBuilder().BuildIndex()
		renderer := &recordingRenderer{}

		m := selection.NewMachine(index, renderer)
		m.Start()

		view := renderer.last(t)
		assert.Empty(t, view.Tiles)
		assert.False(t, view.Button.Enabled)
		_, ok := m.Selected()
		assert.False(t, ok)
	})
}

func TestMachineSelect(t *testing.T) {
	t.Run("moves the selection and re-renders", func(t *testing.T) {
		pb := builder.NewProductBuilder().
			WithVariant("UK 8", true, 100, 0).
			WithVariant("UK 9", true, 100, 0)
		index := pb.BuildIndex()
		renderer := &recordingRenderer{}

		m := selection.NewMachine(index, renderer)
		m.Start()

		target, ok := index.BySize("UK 9")
		require.True(t, ok)
		require.NoError(t, m.Select(target.ID))

		view := renderer.last(t)
		assert.Equal(t, []string{"9"}, selectedTiles(view))
		assert.Len(t, renderer.views, 2)

		selected, ok := m.Selected()
		require.True(t, ok)
		assert.Equal(t, target.ID, selected.ID)
	})

	t.Run("re-selecting the current variant does not render", func(t *testing.T) {
		index := builder.NewProductBuilder().
			WithVariant("UK 8", true, 100, 0).
			BuildIndex()
		renderer := &recordingRenderer{}

		m := selection.NewMachine(index, renderer)
		m.Start()
		require.Len(t, renderer.views, 1)

		selected, ok := m.Selected()
		require.True(t, ok)
		require.NoError(t, m.Select(selected.ID))

		assert.Len(t, renderer.views, 1)
	})

	t.Run("unknown variant is rejected without touching the selection", func(t *testing.T) {
		index := builder.NewProductBuilder().
			WithVariant("UK 8", true, 100, 0).
			BuildIndex()
		renderer := &recordingRenderer{}

		m := selection.NewMachine(index, renderer)
		m.Start()

		err := m.Select(uuid.New())
		assert.ErrorIs(t, err, selection.ErrUnknownVariant)
		assert.Equal(t, []string{"8"}, selectedTiles(renderer.last(t)))
	})

	t.Run("selecting an out-of-stock variant disables the button", func(t *testing.T) {
		index := builder.NewProductBuilder().
			WithVariant("UK 8", true, 100, 0).
			WithVariant("UK 9", false, 100, 0).
			BuildIndex()
		renderer := &recordingRenderer{}

		m := selection.NewMachine(index, renderer)
		m.Start()

		target, ok := index.BySize("UK 9")
		require.True(t, ok)
		require.NoError(t, m.Select(target.ID))

		view := renderer.last(t)
		assert.False(t, view.Button.Enabled)
		assert.Equal(t, "SOLD OUT", view.Button.Label)
	})

	t.Run("globally out-of-stock product disables every selection", func(t *testing.T) {
		index := builder.NewProductBuilder().
			OutOfStock().
			WithVariant("UK 8", true, 100, 0).
			BuildIndex()
		renderer := &recordingRenderer{}

		m := selection.NewMachine(index, renderer)
		m.Start()

		view := renderer.last(t)
		assert.False(t, view.Button.Enabled)
		assert.Equal(t, "SOLD OUT", view.Button.Label)
	})
}

func TestMachinePriceView(t *testing.T) {
	t.Run("on-sale variant shows struck regular price and badge", func(t *testing.T) {
		index := builder.NewProductBuilder().
			WithVariant("UK 9", true, 100, 75).
			BuildIndex()
		renderer := &recordingRenderer{}

		selection.NewMachine(index, renderer).Start()

		price := renderer.last(t).Price
		assert.Equal(t, "Now £75.00", price.Current)
		assert.Equal(t, "£100.00", price.Regular)
		assert.True(t, price.RegularStruck)
		assert.Equal(t, "25% OFF", price.Badge)
	})

	t.Run("regular variant shows a single price", func(t *testing.T) {
		index := builder.NewProductBuilder().
			WithVariant("UK 9", true, 100, 0).
			BuildIndex()
		renderer := &recordingRenderer{}

		selection.NewMachine(index, renderer).Start()

		price := renderer.last(t).Price
		assert.Equal(t, "£100.00", price.Current)
		assert.Empty(t, price.Regular)
		assert.False(t, price.RegularStruck)
		assert.Empty(t, price.Badge)
	})

	t.Run("out-of-stock variant drops the sale treatment", func(t *testing.T) {
		index := builder.NewProductBuilder().
			WithVariant("UK 9", false, 100, 75).
			BuildIndex()
		renderer := &recordingRenderer{}

		selection.NewMachine(index, renderer).Start()

		price := renderer.last(t).Price
		assert.Equal(t, "£75.00", price.Current)
		assert.Empty(t, price.Badge)
		assert.False(t, price.RegularStruck)
	})
}
