package http

import (
	"time"

	"github.com/loscheesy/ordering/internal/domain"
	"github.com/loscheesy/ordering/internal/menu"
	"github.com/loscheesy/ordering/internal/session"
)

type optionResponse struct {
	Label string `json:"label"`
	Price string `json:"price"`
}

type menuItemResponse struct {
	ItemID string           `json:"item_id"`
	Name   string           `json:"name"`
	Price  string           `json:"price,omitempty"`
	Sizes  []optionResponse `json:"sizes,omitempty"`
	Styles []optionResponse `json:"styles,omitempty"`
}

type menuSectionResponse struct {
	Name  string             `json:"name"`
	Items []menuItemResponse `json:"items"`
}

type lineResponse struct {
	Index     int    `json:"index"`
	ItemID    string `json:"item_id"`
	Name      string `json:"name"`
	Variant   string `json:"variant,omitempty"`
	UnitPrice string `json:"unit_price"`
	Quantity  int    `json:"quantity"`
	LineTotal string `json:"line_total"`
}

type receiptResponse struct {
	OrderNumber string    `json:"order_number"`
	Location    string    `json:"location"`
	Total       string    `json:"total"`
	Summary     string    `json:"summary"`
	PlacedAt    time.Time `json:"placed_at"`
}

type sessionResponse struct {
	SessionID       string                   `json:"session_id"`
	State           domain.SessionState      `json:"state"`
	Lines           []lineResponse           `json:"lines"`
	Total           string                   `json:"total"`
	Location        string                   `json:"location,omitempty"`
	LocationName    string                   `json:"location_name,omitempty"`
	CheckoutEnabled bool                     `json:"checkout_enabled"`
	Submission      session.SubmissionStatus `json:"submission"`
	Receipt         *receiptResponse         `json:"receipt,omitempty"`
}

type locationRequest struct {
	Location string `json:"location"`
}

type addItemRequest struct {
	ItemID string `json:"item_id"`
	Size   string `json:"size,omitempty"`
	Style  string `json:"style,omitempty"`
}

type quantityRequest struct {
	Delta int `json:"delta"`
}

type submitRequest struct {
	Name  string `json:"name"`
	Phone string `json:"phone"`
	Email string `json:"email"`
	Notes string `json:"notes"`
}

func (r submitRequest) customer() domain.CustomerInfo {
	return domain.CustomerInfo{
		Name:  r.Name,
		Phone: r.Phone,
		Email: r.Email,
		Notes: r.Notes,
	}
}

func toOptions(opts []domain.Option) []optionResponse {
	if len(opts) == 0 {
		return nil
	}
	out := make([]optionResponse, len(opts))
	for i, o := range opts {
		out[i] = optionResponse{Label: o.Label, Price: o.Price.StringFixed(2)}
	}
	return out
}

func toMenuResponse(sections []menu.Section) []menuSectionResponse {
	out := make([]menuSectionResponse, len(sections))
	for i, s := range sections {
		items := make([]menuItemResponse, len(s.Items))
		for j, it := range s.Items {
			item := menuItemResponse{
				ItemID: it.ItemID,
				Name:   it.Name,
				Sizes:  toOptions(it.Sizes),
				Styles: toOptions(it.Styles),
			}
			if it.HasFixedPrice() {
				item.Price = it.FixedPrice.StringFixed(2)
			}
			items[j] = item
		}
		out[i] = menuSectionResponse{Name: s.Name, Items: items}
	}
	return out
}

func toReceiptResponse(r domain.Receipt) *receiptResponse {
	return &receiptResponse{
		OrderNumber: r.OrderNumber,
		Location:    r.LocationName,
		Total:       r.Total.StringFixed(2),
		Summary:     r.Summary,
		PlacedAt:    r.PlacedAt,
	}
}

func toSessionResponse(id string, v session.View) sessionResponse {
	lines := make([]lineResponse, len(v.Lines))
	for i, l := range v.Lines {
		lines[i] = lineResponse{
			Index:     i,
			ItemID:    l.ItemID,
			Name:      l.Name,
			Variant:   l.Variant,
			UnitPrice: l.UnitPrice.StringFixed(2),
			Quantity:  l.Quantity,
			LineTotal: l.LineTotal().StringFixed(2),
		}
	}

	resp := sessionResponse{
		SessionID:       id,
		State:           v.State,
		Lines:           lines,
		Total:           v.Total.StringFixed(2),
		Location:        string(v.Location),
		CheckoutEnabled: v.CheckoutEnabled,
		Submission:      v.Submission,
	}
	if v.Location.IsSet() {
		resp.LocationName = menu.LocationName(v.Location)
	}
	if v.Receipt != nil {
		resp.Receipt = toReceiptResponse(*v.Receipt)
	}
	return resp
}
