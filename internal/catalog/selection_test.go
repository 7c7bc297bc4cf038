package catalog_test

import (
	"testing"

	"github.com/seruni/etalase/internal/catalog"
	"github.com/seruni/etalase/internal/domain"
	"github.com/stretchr/testify/assert"
)

func Test_Selection_StateMachine(t *testing.T) {
	set := catalog.NewVariantSet(testVariants())
	sel := catalog.NewSelection(set)

	assert.Equal(t, catalog.SelectionNone, sel.State())
	assert.Equal(t, int64(1), sel.Quantity)

	sel.ChooseSize("M")
	assert.Equal(t, catalog.SelectionPartial, sel.State())
	assert.Nil(t, sel.Variant)

	sel.ChooseColor("Black")
	assert.Equal(t, catalog.SelectionResolved, sel.State())
	assert.Equal(t, "v1", sel.Variant.ID)

	// Size M + color Navy is filtered out of the working set: both axes are
	// set but nothing matches. The state blocks commit until an axis changes.
	sel.ChooseColor("Navy")
	assert.Equal(t, catalog.SelectionUnavailable, sel.State())
	assert.Nil(t, sel.Variant)

	// Changing an axis recovers.
	sel.ChooseSize("L")
	sel.ChooseColor("Olive")
	assert.Equal(t, catalog.SelectionResolved, sel.State())
	assert.Equal(t, "v4", sel.Variant.ID)
}

func Test_Selection_ResetOnProductChange(t *testing.T) {
	set := catalog.NewVariantSet(testVariants())
	sel := catalog.NewSelection(set)

	sel.ChooseSize("L")
	sel.ChooseColor("Black")
	sel.Quantity = 4

	sel.Reset()
	assert.Equal(t, catalog.SelectionNone, sel.State())
	assert.Empty(t, sel.Size)
	assert.Empty(t, sel.Color)
	assert.Equal(t, int64(1), sel.Quantity)
	assert.Nil(t, sel.Variant)
}

func Test_Selection_MaxStock(t *testing.T) {
	set := catalog.NewVariantSet(testVariants())
	sel := catalog.NewSelection(set)

	productStock := int64(5)
	withStock := &domain.Product{ID: "p1", Stock: &productStock}
	withoutStock := &domain.Product{ID: "p2"}

	// No variant matched: the product's own stock applies.
	assert.Equal(t, int64(5), sel.MaxStock(withStock))

	// No variant and no product stock: the default ceiling applies.
	assert.Equal(t, int64(domain.DefaultQuantityCeiling), sel.MaxStock(withoutStock))

	// A matched variant's stock wins over both.
	sel.ChooseSize("M")
	sel.ChooseColor("Black")
	assert.Equal(t, int64(2), sel.MaxStock(withStock))
}
