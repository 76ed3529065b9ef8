package menu

import (
	"errors"
	"sort"

	"github.com/loscheesy/ordering/internal/domain"
	"github.com/shopspring/decimal"
)

var (
	ErrItemNotFound    = errors.New("menu item not found")
	ErrUnknownLocation = errors.New("unknown pickup location")
)

// Section groups items the way the printed menu does. It is display only;
// summaries group by category.Classify instead.
type Section struct {
	Name  string                 `json:"name"`
	Items []domain.MenuSelection `json:"items"`
}

// Catalog is the read-only menu the collaborator renders and selects from.
type Catalog struct {
	sections []Section
	byID     map[string]domain.MenuSelection
}

func NewCatalog(sections []Section) *Catalog {
	c := &Catalog{
		sections: sections,
		byID:     make(map[string]domain.MenuSelection),
	}
	for _, s := range sections {
		for _, item := range s.Items {
			c.byID[item.ItemID] = item
		}
	}
	return c
}

// Default returns the restaurant's current menu.
func Default() *Catalog {
	return NewCatalog(defaultSections())
}

func (c *Catalog) Sections() []Section {
	return c.sections
}

func (c *Catalog) Item(itemID string) (domain.MenuSelection, error) {
	item, ok := c.byID[itemID]
	if !ok {
		return domain.MenuSelection{}, ErrItemNotFound
	}
	return item, nil
}

var locationNames = map[domain.Location]string{
	"hatillo":   "Hatillo",
	"dorado":    "Dorado",
	"aguadilla": "Aguadilla",
	"condado":   "Condado",
}

// LocationName returns the display name for loc, or the raw value when it is not known.
func LocationName(loc domain.Location) string {
	if name, ok := locationNames[loc]; ok {
		return name
	}
	return string(loc)
}

// ParseLocation validates a location key against the fixed set.
func ParseLocation(value string) (domain.Location, error) {
	loc := domain.Location(value)
	if _, ok := locationNames[loc]; !ok {
		return "", ErrUnknownLocation
	}
	return loc, nil
}

// LocationInfo is a pickup location as listed to the collaborator.
type LocationInfo struct {
	Key  domain.Location `json:"key"`
	Name string          `json:"name"`
}

// Locations returns every pickup location sorted by key.
func Locations() []LocationInfo {
	out := make([]LocationInfo, 0, len(locationNames))
	for key, name := range locationNames {
		out = append(out, LocationInfo{Key: key, Name: name})
	}
	sort.Slice(out, func(i, j int) bool { return out[i].Key < out[j].Key })
	return out
}

func price(s string) decimal.Decimal {
	return decimal.RequireFromString(s)
}

func fixed(id, name, p string) domain.MenuSelection {
	v := price(p)
	return domain.MenuSelection{ItemID: id, Name: name, FixedPrice: &v}
}

func opt(label, p string) domain.Option {
	return domain.Option{Label: label, Price: price(p)}
}
