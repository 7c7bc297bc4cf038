package domain

import "context"

// =============================================================================
// CATALOG DOMAIN TYPES
// =============================================================================

// Product represents a storefront product offering.
// This is the domain type - collaborators map from their own records.
type Product struct {
	ID       string `json:"id"`
	Name     string `json:"nama"`
	Category string `json:"kategori,omitempty"`

	// BasePrice is the product price in whole rupiah. A matched variant's
	// PriceOverride supersedes it at add-time.
	BasePrice int64 `json:"hargaDasar"`

	// Images is the ordered image list. The source catalog stores it as a
	// single delimited string; collaborators split it at the boundary.
	Images []string `json:"gambar"`

	// Stock is the product's own stock, used only when the product has no
	// purchasable variants. Nil means the source does not track it and the
	// default quantity ceiling applies.
	Stock *int64 `json:"stok,omitempty"`

	// Shipping attributes, defaulted when the source omits them.
	WeightGrams int64  `json:"berat,omitempty"`
	Dimensions  string `json:"dimensi,omitempty"`

	Active bool `json:"aktif"`
}

// Variant is a specific purchasable combination of size and color for a
// Product, with its own stock and optional price override.
type Variant struct {
	ID        string `json:"id"`
	ProductID string `json:"productId"`

	Size  string `json:"ukuran"`
	Color string `json:"warna"`

	Stock  int64 `json:"stok"`
	Active bool  `json:"aktif"`

	// PriceOverride supersedes the product base price when non-nil.
	PriceOverride *int64 `json:"hargaOverride,omitempty"`

	// Image is an optional representative image for this variant's color.
	Image string `json:"gambar,omitempty"`
}

// HasPriceOverride reports whether this variant carries its own price.
func (v *Variant) HasPriceOverride() bool {
	return v != nil && v.PriceOverride != nil
}

// =============================================================================
// COLLABORATOR INTERFACES
// =============================================================================

// VariantSource supplies catalog snapshots for the engine. Implementations
// fetch from wherever the catalog lives (Postgres, a remote API, a fixture);
// the engine treats the result as a given input snapshot.
type VariantSource interface {
	// Product retrieves a product by ID.
	Product(ctx context.Context, id string) (*Product, error)

	// VariantsForProduct retrieves all variants of a product, active or not.
	// The engine filters inactive and out-of-stock variants before building
	// its working set.
	VariantsForProduct(ctx context.Context, productID string) ([]Variant, error)
}

// Catalog domain errors.
var (
	ErrProductNotFound = &Error{Code: ENOTFOUND, Message: "Product not found"}
	ErrProductInactive = &Error{Code: EINVALID, Message: "This product is no longer available"}
)
