package submission

import "github.com/loscheesy/ordering/internal/domain"

// EndpointTable routes each pickup location to its intake destination.
type EndpointTable struct {
	byLocation map[domain.Location]string
	fallback   string
}

// NewEndpointTable copies byLocation; blank entries behave as unmapped.
func NewEndpointTable(byLocation map[domain.Location]string, fallback string) *EndpointTable {
	t := &EndpointTable{
		byLocation: make(map[domain.Location]string, len(byLocation)),
		fallback:   fallback,
	}
	for loc, url := range byLocation {
		if url != "" {
			t.byLocation[loc] = url
		}
	}
	return t
}

// Resolve returns the location's destination, or the fallback when unmapped.
func (t *EndpointTable) Resolve(loc domain.Location) string {
	if url, ok := t.byLocation[loc]; ok {
		return url
	}
	return t.fallback
}
