package catalog

import "github.com/seruni/etalase/internal/domain"

// VariantSet is the engine's working set of purchasable variants: the source
// snapshot with inactive and out-of-stock variants filtered away, in source
// order.
type VariantSet struct {
	variants []domain.Variant
}

// NewVariantSet builds a working set from a source snapshot, dropping
// variants with Active == false or Stock <= 0.
func NewVariantSet(variants []domain.Variant) *VariantSet {
	working := make([]domain.Variant, 0, len(variants))
	for _, v := range variants {
		if !v.Active || v.Stock <= 0 {
			continue
		}
		working = append(working, v)
	}
	return &VariantSet{variants: working}
}

// Len returns the number of purchasable variants in the set.
func (s *VariantSet) Len() int {
	return len(s.variants)
}

// Variants returns the working set in source order.
func (s *VariantSet) Variants() []domain.Variant {
	return s.variants
}

// Resolve returns the variant matching the exact (size, color) pair. A
// partial selection (either axis unset) resolves to nil without error.
// Should the data ever hold duplicate pairs, the first match wins.
func (s *VariantSet) Resolve(size, color string) *domain.Variant {
	if size == "" || color == "" {
		return nil
	}
	for i := range s.variants {
		if s.variants[i].Size == size && s.variants[i].Color == color {
			return &s.variants[i]
		}
	}
	return nil
}

// Sizes returns the distinct sizes in first-seen display order.
func (s *VariantSet) Sizes() []string {
	return s.distinct(func(v domain.Variant) string { return v.Size })
}

// Colors returns the distinct colors in first-seen display order.
func (s *VariantSet) Colors() []string {
	return s.distinct(func(v domain.Variant) string { return v.Color })
}

func (s *VariantSet) distinct(attr func(domain.Variant) string) []string {
	seen := make(map[string]bool, len(s.variants))
	out := make([]string, 0, len(s.variants))
	for _, v := range s.variants {
		val := attr(v)
		if val == "" || seen[val] {
			continue
		}
		seen[val] = true
		out = append(out, val)
	}
	return out
}

// ColorImageMap maps each distinct color to its representative image. The
// first variant carrying an image for a given color wins; later duplicates
// for the same color are ignored.
func (s *VariantSet) ColorImageMap() map[string]string {
	m := make(map[string]string)
	for _, v := range s.variants {
		if v.Image == "" {
			continue
		}
		if _, ok := m[v.Color]; ok {
			continue
		}
		m[v.Color] = v.Image
	}
	return m
}

// EffectivePrice returns the variant's price override when present, else the
// product base price.
func EffectivePrice(basePrice int64, variant *domain.Variant) int64 {
	if variant.HasPriceOverride() {
		return *variant.PriceOverride
	}
	return basePrice
}
