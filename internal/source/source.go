// Package source validates loosely-typed catalog records into the strict
// domain model. Upstream catalogs (the Postgres snapshot, a remote API dump)
// funnel through one Decoder so the engine never handles missing or
// malformed fields itself.
package source

import (
	"encoding/json"
	"strings"

	"github.com/go-playground/validator/v10"
	"github.com/seruni/etalase/internal/domain"
)

// Defaults applied when the source omits optional shipping attributes.
const (
	DefaultWeightGrams = 1000
	DefaultDimensions  = "10x10x10"
)

// ProductRecord is a product as the source catalog ships it: attribute names
// from the catalog, images as one delimited string, optional fields nullable.
type ProductRecord struct {
	ID        string `json:"id" validate:"required"`
	Name      string `json:"nama" validate:"required"`
	Category  string `json:"kategori"`
	BasePrice int64  `json:"hargaDasar" validate:"gte=0"`

	// Images is a comma-delimited URL list, the catalog's native encoding.
	Images string `json:"gambar"`

	Stock       *int64  `json:"stok"`
	WeightGrams *int64  `json:"berat"`
	Dimensions  *string `json:"dimensi"`
	Active      bool    `json:"aktif"`
}

// VariantRecord is a variant as the source catalog ships it.
type VariantRecord struct {
	ID        string `json:"id" validate:"required"`
	ProductID string `json:"productId" validate:"required"`

	Size  string `json:"ukuran" validate:"required"`
	Color string `json:"warna" validate:"required"`

	Stock  int64 `json:"stok" validate:"gte=0"`
	Active bool  `json:"aktif"`

	PriceOverride *int64 `json:"hargaOverride"`
	Image         string `json:"gambar"`
}

// Decoder validates source records and maps them to domain types.
type Decoder struct {
	validate *validator.Validate
}

// NewDecoder creates a record decoder.
func NewDecoder() *Decoder {
	return &Decoder{validate: validator.New()}
}

// Product validates a product record and maps it to the domain model,
// applying defaults for absent optional fields.
func (d *Decoder) Product(rec ProductRecord) (*domain.Product, error) {
	if err := d.validate.Struct(rec); err != nil {
		return nil, &domain.Error{
			Code:    domain.EINVALID,
			Op:      "source.product",
			Message: "malformed product record",
			Err:     err,
		}
	}

	p := &domain.Product{
		ID:          rec.ID,
		Name:        rec.Name,
		Category:    rec.Category,
		BasePrice:   rec.BasePrice,
		Images:      SplitImages(rec.Images),
		Stock:       rec.Stock,
		WeightGrams: DefaultWeightGrams,
		Dimensions:  DefaultDimensions,
		Active:      rec.Active,
	}
	if rec.WeightGrams != nil {
		p.WeightGrams = *rec.WeightGrams
	}
	if rec.Dimensions != nil && *rec.Dimensions != "" {
		p.Dimensions = *rec.Dimensions
	}
	return p, nil
}

// Variant validates a variant record and maps it to the domain model.
func (d *Decoder) Variant(rec VariantRecord) (*domain.Variant, error) {
	if err := d.validate.Struct(rec); err != nil {
		return nil, &domain.Error{
			Code:    domain.EINVALID,
			Op:      "source.variant",
			Message: "malformed variant record",
			Err:     err,
		}
	}

	return &domain.Variant{
		ID:            rec.ID,
		ProductID:     rec.ProductID,
		Size:          rec.Size,
		Color:         rec.Color,
		Stock:         rec.Stock,
		Active:        rec.Active,
		PriceOverride: rec.PriceOverride,
		Image:         rec.Image,
	}, nil
}

// DecodeProduct unmarshals and validates one product payload.
func (d *Decoder) DecodeProduct(data []byte) (*domain.Product, error) {
	var rec ProductRecord
	if err := json.Unmarshal(data, &rec); err != nil {
		return nil, &domain.Error{
			Code:    domain.EINVALID,
			Op:      "source.product",
			Message: "malformed product payload",
			Err:     err,
		}
	}
	return d.Product(rec)
}

// DecodeVariants unmarshals and validates a variant list payload.
func (d *Decoder) DecodeVariants(data []byte) ([]domain.Variant, error) {
	var recs []VariantRecord
	if err := json.Unmarshal(data, &recs); err != nil {
		return nil, &domain.Error{
			Code:    domain.EINVALID,
			Op:      "source.variants",
			Message: "malformed variant payload",
			Err:     err,
		}
	}

	variants := make([]domain.Variant, 0, len(recs))
	for _, rec := range recs {
		v, err := d.Variant(rec)
		if err != nil {
			return nil, err
		}
		variants = append(variants, *v)
	}
	return variants, nil
}

// SplitImages turns the catalog's single delimited image string into an
// ordered URL list, dropping empty entries.
func SplitImages(raw string) []string {
	if strings.TrimSpace(raw) == "" {
		return nil
	}

	parts := strings.Split(raw, ",")
	images := make([]string, 0, len(parts))
	for _, p := range parts {
		p = strings.TrimSpace(p)
		if p == "" {
			continue
		}
		images = append(images, p)
	}
	return images
}
