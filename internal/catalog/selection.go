package catalog

import "github.com/seruni/etalase/internal/domain"

// SelectionState is the display state of the shopper's current pick.
type SelectionState string

const (
	// SelectionNone means neither axis has been chosen yet.
	SelectionNone SelectionState = "none"
	// SelectionPartial means exactly one of size/color is chosen.
	SelectionPartial SelectionState = "partial"
	// SelectionResolved means both axes are chosen and a variant matched.
	SelectionResolved SelectionState = "resolved"
	// SelectionUnavailable means both axes are chosen but no variant exists
	// for the pair. Commit is blocked until the shopper changes an axis.
	SelectionUnavailable SelectionState = "unavailable"
)

// Selection tracks the transient (size, color, quantity) pick on a product
// detail view. It is created fresh whenever the viewed product changes.
//
// Resolution depends only on the final (size, color) pair, so choosing size
// then color yields the same variant as color then size.
type Selection struct {
	set *VariantSet

	Size     string
	Color    string
	Quantity int64

	// Variant is the matched working-set variant, nil until both axes are
	// chosen and a variant exists for the exact pair.
	Variant *domain.Variant
}

// NewSelection creates a fresh selection over a product's working set.
func NewSelection(set *VariantSet) *Selection {
	return &Selection{set: set, Quantity: 1}
}

// ChooseSize sets the size axis and re-resolves the variant.
func (sel *Selection) ChooseSize(size string) {
	sel.Size = size
	sel.resolve()
}

// ChooseColor sets the color axis and re-resolves the variant.
func (sel *Selection) ChooseColor(color string) {
	sel.Color = color
	sel.resolve()
}

// Reset clears the selection back to its initial state, as when the viewed
// product changes.
func (sel *Selection) Reset() {
	sel.Size = ""
	sel.Color = ""
	sel.Quantity = 1
	sel.Variant = nil
}

func (sel *Selection) resolve() {
	sel.Variant = sel.set.Resolve(sel.Size, sel.Color)
}

// State reports where the selection sits in its lifecycle.
func (sel *Selection) State() SelectionState {
	switch {
	case sel.Size == "" && sel.Color == "":
		return SelectionNone
	case sel.Size == "" || sel.Color == "":
		return SelectionPartial
	case sel.Variant != nil:
		return SelectionResolved
	default:
		return SelectionUnavailable
	}
}

// MaxStock returns the quantity ceiling for the current selection: the
// matched variant's stock, else the product's own stock, else the default
// ceiling.
func (sel *Selection) MaxStock(product *domain.Product) int64 {
	if sel.Variant != nil {
		return sel.Variant.Stock
	}
	if product != nil && product.Stock != nil {
		return *product.Stock
	}
	return domain.DefaultQuantityCeiling
}
