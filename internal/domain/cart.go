package domain

import (
	"context"
	"time"
)

// =============================================================================
// CART DOMAIN ERRORS
// =============================================================================

var (
	ErrVariantRequired = &Error{Code: EINVALID, Message: "Pick a size and color first"}
	ErrInvalidQuantity = &Error{Code: EINVALID, Message: "Quantity must be greater than 0"}
)

// DefaultQuantityCeiling caps line quantity when neither the matched variant
// nor the product tracks stock.
const DefaultQuantityCeiling = 999

// CommitMode selects which flow a purchase intent takes: merging into the
// persisted cart, or bypassing it straight to checkout.
type CommitMode string

const (
	ModeAddToCart CommitMode = "add_to_cart"
	ModeBuyNow    CommitMode = "buy_now"
)

// Disposition tells the caller what a successful commit did, so it can render
// the correct confirmation notice.
type Disposition string

const (
	// DispositionCreated means a new cart line was appended.
	DispositionCreated Disposition = "created"
	// DispositionUpdated means an existing line's quantity was increased.
	DispositionUpdated Disposition = "quantity_updated"
	// DispositionCheckout means a buy-now payload was staged for checkout.
	DispositionCheckout Disposition = "checkout"
)

// CartLine is one persisted purchase intent, keyed by product and (optional)
// variant. Display fields are denormalized at add-time and never re-resolved.
type CartLine struct {
	ID        string `json:"id"`
	ProductID string `json:"productId"`

	// VariantID is empty when the product was purchased without a variant.
	VariantID string `json:"variantId,omitempty"`

	Name     string `json:"nama"`
	Category string `json:"kategori,omitempty"`
	Image    string `json:"gambar,omitempty"`

	Size  string `json:"ukuran,omitempty"`
	Color string `json:"warna,omitempty"`

	Quantity int64 `json:"jumlah"`

	// Price is the unit price resolved at add-time, in whole rupiah.
	// Merging more quantity onto the line never recomputes it.
	Price int64 `json:"harga"`

	WeightGrams int64  `json:"berat,omitempty"`
	Dimensions  string `json:"dimensi,omitempty"`

	AddedAt time.Time `json:"addedAt"`
}

// Key returns the line's uniqueness key. Repeated adds of the same key
// increase quantity rather than duplicating the line.
func (l CartLine) Key() string {
	return l.ProductID + "/" + l.VariantID
}

// Subtotal returns the line total in whole rupiah.
func (l CartLine) Subtotal() int64 {
	return l.Quantity * l.Price
}

// Cart is the ordered sequence of cart lines, persisted as a whole on every
// mutation.
type Cart struct {
	Lines []CartLine `json:"lines"`
}

// Find returns the line matching the given key, or nil.
func (c *Cart) Find(key string) *CartLine {
	for i := range c.Lines {
		if c.Lines[i].Key() == key {
			return &c.Lines[i]
		}
	}
	return nil
}

// ItemCount returns the total quantity across all lines.
func (c *Cart) ItemCount() int64 {
	var n int64
	for _, l := range c.Lines {
		n += l.Quantity
	}
	return n
}

// Subtotal returns the cart total in whole rupiah.
func (c *Cart) Subtotal() int64 {
	var total int64
	for _, l := range c.Lines {
		total += l.Subtotal()
	}
	return total
}

// CheckoutIntent is the buy-now handoff payload: a one-element line sequence
// plus a provenance tag identifying the origin view.
type CheckoutIntent struct {
	Lines  []CartLine `json:"lines"`
	Origin string     `json:"origin"`
}

// CartStore owns all reads and writes of the persisted cart. Collaborators
// call the store; none touch the raw persisted slot directly.
type CartStore interface {
	// Get reads the current cart. A never-written slot yields an empty cart.
	Get(ctx context.Context) (*Cart, error)

	// Merge folds a line into the cart under the (productId, variantId) key,
	// capped at maxStock, and rewrites the whole cart on success. On failure
	// the persisted cart is untouched.
	Merge(ctx context.Context, line CartLine, maxStock int64) (*Cart, Disposition, error)

	// Clear empties the persisted cart.
	Clear(ctx context.Context) error
}
