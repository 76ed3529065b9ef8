package domain

import "github.com/shopspring/decimal"

// CartLine is one orderable unit in the cart, keyed by item and variant.
type CartLine struct {
	ItemID    string          `json:"item_id"`
	Name      string          `json:"name"`
	UnitPrice decimal.Decimal `json:"unit_price"`
	Variant   string          `json:"variant,omitempty"` // empty when the item has no variant
	Quantity  int             `json:"quantity"`
}

// LineTotal returns UnitPrice × Quantity.
func (l CartLine) LineTotal() decimal.Decimal {
	return l.UnitPrice.Mul(decimal.NewFromInt(int64(l.Quantity)))
}

// SameIdentity reports whether the line is keyed by (itemID, variant).
func (l CartLine) SameIdentity(itemID, variant string) bool {
	return l.ItemID == itemID && l.Variant == variant
}

// SumLines returns Σ unitPrice × quantity over lines.
func SumLines(lines []CartLine) decimal.Decimal {
	total := decimal.Zero
	for _, l := range lines {
		total = total.Add(l.LineTotal())
	}
	return total
}
