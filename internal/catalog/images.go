// Package catalog implements the pure product-detail logic: reconciling a
// product's flat image list against per-variant color images, and resolving a
// (size, color) selection to a specific stocked variant.
package catalog

import "strings"

// OrderImages produces a deterministic ordering of a product's images grouped
// by color: for each color in display order, the image matching that color's
// representative comes first, followed by every remaining image in its
// original position. The result is always a permutation of raw.
//
// An empty colorImage map, or a result that would be empty, degrades to
// returning raw unchanged.
func OrderImages(raw []string, colorImage map[string]string, colorsInOrder []string) []string {
	if len(colorImage) == 0 {
		return raw
	}

	used := make([]bool, len(raw))
	out := make([]string, 0, len(raw))

	seen := make(map[string]bool, len(colorsInOrder))
	for _, color := range colorsInOrder {
		if seen[color] {
			continue
		}
		seen[color] = true

		rep, ok := colorImage[color]
		if !ok || strings.TrimSpace(rep) == "" {
			continue
		}

		for i, img := range raw {
			if used[i] {
				continue
			}
			if tolerantMatch(img, rep) {
				out = append(out, img)
				used[i] = true
				break
			}
		}
	}

	for i, img := range raw {
		if !used[i] {
			out = append(out, img)
		}
	}

	if len(out) == 0 {
		return raw
	}
	return out
}

// ImageIndexForColor resolves a selected color back to an index into images,
// using the same tolerant match as OrderImages. The second return is false
// when no image matches, meaning the displayed index should not change.
func ImageIndexForColor(images []string, colorImage map[string]string, color string) (int, bool) {
	rep, ok := colorImage[color]
	if !ok || strings.TrimSpace(rep) == "" {
		return -1, false
	}

	for i, img := range images {
		if tolerantMatch(img, rep) {
			return i, true
		}
	}
	return -1, false
}

// tolerantMatch treats equality, substring, and superstring as equivalent,
// absorbing whitespace and host-prefix differences between image URLs that
// refer to the same asset. Equality is checked first so an exact hit never
// loses to a containment hit.
func tolerantMatch(a, b string) bool {
	a = strings.TrimSpace(a)
	b = strings.TrimSpace(b)
	if a == "" || b == "" {
		return false
	}
	if a == b {
		return true
	}
	return strings.Contains(a, b) || strings.Contains(b, a)
}
