package variant

import (
	"fmt"
	"sort"

	"github.com/google/uuid"

	"github.com/Lari-oliv/olive-beauty/models"
)

// StandardKey is the group key used when variants have no attributes.
const StandardKey = "variant"

// Option is one selectable value inside a group.
type Option struct {
	Value     string     `json:"value"`
	Label     string     `json:"label"`
	Available bool       `json:"available"`
	Selected  bool       `json:"selected"`
	VariantID *uuid.UUID `json:"variantId,omitempty"`
}

// OptionGroup lists the values of one attribute key.
type OptionGroup struct {
	Key     string   `json:"key"`
	Label   string   `json:"label"`
	Options []Option `json:"options"`
}

// Groups builds the selector model for a product given the current
// selection. Every value of every key is listed; a value is Available when a
// variant carrying it, compatible with the other selected keys, has stock.
func Groups(variants []models.ProductVariant, selected models.Attributes) []OptionGroup {
	if len(variants) == 0 {
		return []OptionGroup{}
	}

	keys := Keys(variants)
	if len(keys) == 0 {
		return []OptionGroup{standardGroup(variants)}
	}

	groups := make([]OptionGroup, 0, len(keys))
	for _, key := range keys {
		group := OptionGroup{Key: key, Label: key, Options: []Option{}}
		index := make(map[string]int)

		for i := range variants {
			v := &variants[i]
			val, ok := v.Attributes[key]
			if !ok {
				continue
			}
			pos, seen := index[val]
			if !seen {
				pos = len(group.Options)
				index[val] = pos
				group.Options = append(group.Options, Option{
					Value:    val,
					Label:    val,
					Selected: selected[key] == val,
				})
			}
			if v.InStock() && compatible(v.Attributes, selected, key) {
				group.Options[pos].Available = true
			}
		}
		groups = append(groups, group)
	}
	return groups
}

// Keys returns every attribute key in first-appearance order. Keys of a
// single variant are visited alphabetically so the result is deterministic.
func Keys(variants []models.ProductVariant) []string {
	var keys []string
	seen := make(map[string]bool)
	for i := range variants {
		own := make([]string, 0, len(variants[i].Attributes))
		for k := range variants[i].Attributes {
			own = append(own, k)
		}
		sort.Strings(own)
		for _, k := range own {
			if !seen[k] {
				seen[k] = true
				keys = append(keys, k)
			}
		}
	}
	return keys
}

// standardGroup lists each attribute-less variant as its own option.
func standardGroup(variants []models.ProductVariant) OptionGroup {
	group := OptionGroup{Key: StandardKey, Label: StandardLabel, Options: make([]Option, 0, len(variants))}
	for i := range variants {
		id := variants[i].ID
		label := StandardLabel
		if i > 0 {
			label = fmt.Sprintf("%s %d", StandardLabel, i+1)
		}
		group.Options = append(group.Options, Option{
			Value:     id.String(),
			Label:     label,
			Available: variants[i].InStock(),
			VariantID: &id,
		})
	}
	return group
}

func copyAttrs(a models.Attributes) models.Attributes {
	out := make(models.Attributes, len(a))
	for k, v := range a {
		out[k] = v
	}
	return out
}
