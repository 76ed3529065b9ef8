package domain

import (
	"strings"
	"time"

	"github.com/shopspring/decimal"
)

// Location is a pickup location key such as "hatillo". The zero value means none selected.
type Location string

func (l Location) IsSet() bool {
	return l != ""
}

// CustomerInfo is what the checkout form collects.
type CustomerInfo struct {
	Name  string `json:"name"`
	Phone string `json:"phone"`
	Email string `json:"email,omitempty"`
	Notes string `json:"notes,omitempty"`
}

// HasEmail reports whether a confirmation can be sent to the customer.
func (c CustomerInfo) HasEmail() bool {
	return strings.TrimSpace(c.Email) != ""
}

// OrderRecord is built once per submission attempt and never mutated afterwards.
type OrderRecord struct {
	OrderNumber  string
	Customer     CustomerInfo
	LocationName string
	Lines        []CartLine
	Notes        string
	Total        decimal.Decimal
	CreatedAt    time.Time
}

// NewOrderRecord snapshots lines and computes the total from them.
func NewOrderRecord(number string, customer CustomerInfo, locationName string, lines []CartLine, now time.Time) OrderRecord {
	snapshot := make([]CartLine, len(lines))
	copy(snapshot, lines)
	return OrderRecord{
		OrderNumber:  number,
		Customer:     customer,
		LocationName: locationName,
		Lines:        snapshot,
		Notes:        customer.Notes,
		Total:        SumLines(snapshot),
		CreatedAt:    now,
	}
}

// Receipt is what the customer sees on the confirmation screen.
type Receipt struct {
	OrderNumber  string          `json:"order_number"`
	LocationName string          `json:"location"`
	Total        decimal.Decimal `json:"total"`
	Summary      string          `json:"summary"`
	PlacedAt     time.Time       `json:"placed_at"`
}
