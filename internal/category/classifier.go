// Package category maps menu item identifiers to the section names used in
// order summaries. The keyword table is consumed by downstream readers of the
// summary text, so keywords and their order must not change.
package category

import "strings"

// Other is returned when no rule matches.
const Other = "Otros"

type rule struct {
	keywords []string
	category string
}

var rules = []rule{
	{[]string{"onion-smash", "bacon-smash", "deluxe-smash"}, "Smash Burgers"},
	{[]string{"philly", "chopped-cheese", "tripleta"}, "Sandwiches"},
	{[]string{"supreme"}, "Nachos o Papas Supreme"},
	{[]string{"quesadilla"}, "Quesadillas"},
	{[]string{
		"nachos-queso", "sorullitos", "queso-frito", "mazorcas-parmesana-2x",
		"mozzarella-sticks", "alitas", "queso-fundido", "surtido",
	}, "Aperitivos"},
	{[]string{
		"papas", "nachos-cheesy", "sorullitos-complemento", "mazorca-parmesana",
		"mozzarella-sticks-complemento",
	}, "Complementos"},
	{[]string{"cheesecake", "milkshake"}, "Postres"},
	{[]string{"coca-cola", "sprite", "agua"}, "Bebidas"},
}

// Classify returns the category of itemID. First matching rule wins.
func Classify(itemID string) string {
	id := strings.ToLower(itemID)
	for _, r := range rules {
		for _, kw := range r.keywords {
			if strings.Contains(id, kw) {
				return r.category
			}
		}
	}
	return Other
}
