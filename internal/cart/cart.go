package cart

import (
	"errors"

	"github.com/loscheesy/ordering/internal/domain"
	"github.com/shopspring/decimal"
)

var (
	ErrLineOutOfRange = errors.New("cart line index out of range")
	ErrNegativePrice  = errors.New("unit price must not be negative")
)

// Cart is the line-item collection of one customer session.
// It is not safe for concurrent use; the session controller serializes access.
type Cart struct {
	lines []domain.CartLine
}

func New() *Cart {
	return &Cart{}
}

// Add merges into the line keyed by (itemID, variant) or appends a new one.
func (c *Cart) Add(itemID, name string, unitPrice decimal.Decimal, variant string) error {
	if unitPrice.IsNegative() {
		return ErrNegativePrice
	}

	for i := range c.lines {
		if c.lines[i].SameIdentity(itemID, variant) {
			c.lines[i].Quantity++
			return nil
		}
	}

	c.lines = append(c.lines, domain.CartLine{
		ItemID:    itemID,
		Name:      name,
		UnitPrice: unitPrice,
		Variant:   variant,
		Quantity:  1,
	})
	return nil
}

func (c *Cart) Increment(index int) error {
	if !c.inRange(index) {
		return ErrLineOutOfRange
	}
	c.lines[index].Quantity++
	return nil
}

// Decrement removes the line instead of letting its quantity reach zero.
func (c *Cart) Decrement(index int) error {
	if !c.inRange(index) {
		return ErrLineOutOfRange
	}
	if c.lines[index].Quantity > 1 {
		c.lines[index].Quantity--
		return nil
	}
	c.removeAt(index)
	return nil
}

func (c *Cart) Remove(index int) error {
	if !c.inRange(index) {
		return ErrLineOutOfRange
	}
	c.removeAt(index)
	return nil
}

func (c *Cart) Total() decimal.Decimal {
	return domain.SumLines(c.lines)
}

func (c *Cart) Clear() {
	c.lines = nil
}

// Lines returns a copy of the lines in display order.
func (c *Cart) Lines() []domain.CartLine {
	out := make([]domain.CartLine, len(c.lines))
	copy(out, c.lines)
	return out
}

func (c *Cart) Len() int {
	return len(c.lines)
}

func (c *Cart) IsEmpty() bool {
	return len(c.lines) == 0
}

func (c *Cart) inRange(index int) bool {
	return index >= 0 && index < len(c.lines)
}

func (c *Cart) removeAt(index int) {
	c.lines = append(c.lines[:index], c.lines[index+1:]...)
}
