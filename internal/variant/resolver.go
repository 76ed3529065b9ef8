package variant

import (
	"errors"

	"github.com/loscheesy/ordering/internal/domain"
	"github.com/shopspring/decimal"
)

var (
	ErrNoPrice       = errors.New("no price can be determined for the selection")
	ErrUnknownOption = errors.New("highlighted option does not belong to the item")
)

// Choice carries the option labels the collaborator reports as highlighted.
// Empty means nothing is highlighted in that group.
type Choice struct {
	Size  string `json:"size,omitempty"`
	Style string `json:"style,omitempty"`
}

type Resolution struct {
	UnitPrice decimal.Decimal
	Variant   string
}

// Resolve picks the effective unit price and variant label for a selection.
// Order: fixed price, then highlighted size, then highlighted style.
func Resolve(sel domain.MenuSelection, choice Choice) (Resolution, error) {
	if sel.HasFixedPrice() {
		return Resolution{UnitPrice: *sel.FixedPrice}, nil
	}

	if choice.Size != "" {
		o, ok := sel.FindSize(choice.Size)
		if !ok {
			return Resolution{}, ErrUnknownOption
		}
		return Resolution{UnitPrice: o.Price, Variant: o.Label}, nil
	}

	if choice.Style != "" {
		o, ok := sel.FindStyle(choice.Style)
		if !ok {
			return Resolution{}, ErrUnknownOption
		}
		return Resolution{UnitPrice: o.Price, Variant: o.Label}, nil
	}

	return Resolution{}, ErrNoPrice
}
