package domain

import "github.com/shopspring/decimal"

// Option is a size or style sub-option of a menu item.
type Option struct {
	Label string          `json:"label"`
	Price decimal.Decimal `json:"price"`
}

// MenuSelection describes a menu item as the collaborator presents it.
// Exactly one pricing source applies: a fixed price, or sizes and/or styles.
type MenuSelection struct {
	ItemID     string           `json:"item_id"`
	Name       string           `json:"name"`
	FixedPrice *decimal.Decimal `json:"fixed_price,omitempty"`
	Sizes      []Option         `json:"sizes,omitempty"`
	Styles     []Option         `json:"styles,omitempty"`
}

// HasFixedPrice reports whether the item is sold at a single price.
func (m MenuSelection) HasFixedPrice() bool {
	return m.FixedPrice != nil
}

// FindSize returns the size option with the given label.
func (m MenuSelection) FindSize(label string) (Option, bool) {
	return findOption(m.Sizes, label)
}

// FindStyle returns the style option with the given label.
func (m MenuSelection) FindStyle(label string) (Option, bool) {
	return findOption(m.Styles, label)
}

func findOption(opts []Option, label string) (Option, bool) {
	for _, o := range opts {
		if o.Label == label {
			return o, true
		}
	}
	return Option{}, false
}
