// Package variant maps attribute selections to concrete product variants.
// Everything here is pure: no I/O, deterministic for a fixed variant slice.
package variant

import (
	"github.com/Lari-oliv/olive-beauty/models"
)

// StandardLabel names the single option group of products whose variants
// carry no attributes.
const StandardLabel = "Standard"

// Resolve returns the variant a shopper lands on after changing key to value
// while selected is the current selection. It returns nil when no variant
// carries that value, which callers treat as a disabled choice.
func Resolve(variants []models.ProductVariant, selected models.Attributes, key, value string) *models.ProductVariant {
	if exact := ExactMatch(variants, selected.With(key, value)); exact != nil {
		return exact
	}

	var candidates []*models.ProductVariant
	for i := range variants {
		v := &variants[i]
		if v.Attributes[key] != value {
			continue
		}
		if compatible(v.Attributes, selected, key) {
			candidates = append(candidates, v)
		}
	}

	for _, c := range candidates {
		if c.InStock() {
			return c
		}
	}
	if len(candidates) > 0 {
		return candidates[0]
	}
	return nil
}

// ExactMatch returns the first variant whose mapping equals attrs on every
// key present on either side.
func ExactMatch(variants []models.ProductVariant, attrs models.Attributes) *models.ProductVariant {
	for i := range variants {
		if variants[i].Attributes.Equal(attrs) {
			return &variants[i]
		}
	}
	return nil
}

// compatible reports whether attrs agrees with every selected key other than
// skip. A key the variant does not carry at all counts as a wildcard.
func compatible(attrs, selected models.Attributes, skip string) bool {
	for k, want := range selected {
		if k == skip {
			continue
		}
		if got, ok := attrs[k]; ok && got != want {
			return false
		}
	}
	return true
}

// DefaultSelection is the selection a product page opens with: the first
// in-stock variant, else the first variant.
func DefaultSelection(variants []models.ProductVariant) models.Attributes {
	for i := range variants {
		if variants[i].InStock() {
			return copyAttrs(variants[i].Attributes)
		}
	}
	if len(variants) > 0 {
		return copyAttrs(variants[0].Attributes)
	}
	return models.Attributes{}
}
