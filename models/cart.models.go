package models

import (
	"encoding/json"
	"fmt"
	"strconv"
)

// VariationSelection maps a variation axis name to the chosen option,
// e.g. {"Type": "Roasted"}.
type VariationSelection map[string]string

// Equal compares two selections by full key/value equality, independent of
// key order. A nil selection is only equal to another nil selection; an
// empty map and nil are distinct configurations.
func (v VariationSelection) Equal(other VariationSelection) bool {
	if (v == nil) != (other == nil) {
		return false
	}
	if len(v) != len(other) {
		return false
	}
	for name, option := range v {
		got, ok := other[name]
		if !ok || got != option {
			return false
		}
	}
	return true
}

// Clone returns an independent copy of the selection. A nil selection stays
// nil, since nil and empty are distinct configurations.
func (v VariationSelection) Clone() VariationSelection {
	if v == nil {
		return nil
	}
	clone := make(VariationSelection, len(v))
	for name, option := range v {
		clone[name] = option
	}
	return clone
}

// CartItem is one cart row: a product plus the chosen options and a quantity.
type CartItem struct {
	Product           Product            `json:"product"`
	Quantity          int                `json:"quantity"`
	SelectedVariation VariationSelection `json:"selected_variation,omitempty"`
	SelectedWeight    *float64           `json:"selected_weight,omitempty"`
}

// Matches reports whether this line refers to the same purchasable
// configuration, i.e. whether the identity keys are equal.
func (ci CartItem) Matches(productID string, variation VariationSelection, weight *float64) bool {
	if ci.Product.ID != productID {
		return false
	}
	if !ci.SelectedVariation.Equal(variation) {
		return false
	}
	return weightEqual(ci.SelectedWeight, weight)
}

func weightEqual(a, b *float64) bool {
	if a == nil || b == nil {
		return a == b
	}
	return *a == *b
}

// NormalizeProductID renders a product identifier to its canonical string
// form so that "7" and 7 refer to the same product.
func NormalizeProductID(id any) string {
	switch v := id.(type) {
	case string:
		return v
	case int:
		return strconv.Itoa(v)
	case int32:
		return strconv.FormatInt(int64(v), 10)
	case int64:
		return strconv.FormatInt(v, 10)
	case float64:
		return strconv.FormatFloat(v, 'f', -1, 64)
	case json.Number:
		return v.String()
	case fmt.Stringer:
		return v.String()
	default:
		return fmt.Sprintf("%v", v)
	}
}

// SameProductID compares product identifiers by value, regardless of whether
// they arrive as numbers or strings.
func SameProductID(a, b any) bool {
	return NormalizeProductID(a) == NormalizeProductID(b)
}
