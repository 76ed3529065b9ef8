package menu

import "github.com/loscheesy/ordering/internal/domain"

func defaultSections() []Section {
	return []Section{
		{
			Name: "Smash Burgers",
			Items: []domain.MenuSelection{
				{ItemID: "onion-smash", Name: "Onion Smash", Sizes: []domain.Option{opt("sencilla", "9.00"), opt("doble", "12.00")}},
				{ItemID: "bacon-smash", Name: "Bacon Smash", Sizes: []domain.Option{opt("sencilla", "10.00"), opt("doble", "13.00")}},
				{ItemID: "deluxe-smash", Name: "Deluxe Smash", Sizes: []domain.Option{opt("sencilla", "11.00"), opt("doble", "14.00")}},
			},
		},
		{
			Name: "Sandwiches",
			Items: []domain.MenuSelection{
				fixed("philly", "Philly Cheesesteak", "12.00"),
				fixed("chopped-cheese", "Chopped Cheese", "11.00"),
				fixed("tripleta", "Tripleta", "11.50"),
			},
		},
		{
			Name: "Nachos o Papas Supreme",
			Items: []domain.MenuSelection{
				{ItemID: "supreme-pollo", Name: "Supreme de Pollo", Styles: []domain.Option{opt("nachos", "12.00"), opt("papas", "12.50")}},
				{ItemID: "supreme-res", Name: "Supreme de Res", Styles: []domain.Option{opt("nachos", "13.00"), opt("papas", "13.50")}},
			},
		},
		{
			Name: "Quesadillas",
			Items: []domain.MenuSelection{
				fixed("quesadilla-pollo", "Quesadilla de Pollo", "10.00"),
				fixed("quesadilla-res", "Quesadilla de Res", "11.00"),
			},
		},
		{
			Name: "Aperitivos",
			Items: []domain.MenuSelection{
				fixed("nachos-queso", "Nachos con Queso", "7.00"),
				fixed("sorullitos", "Sorullitos", "6.00"),
				fixed("queso-frito", "Queso Frito", "7.00"),
				fixed("mazorcas-parmesana-2x", "Mazorcas Parmesana (2)", "6.50"),
				fixed("mozzarella-sticks", "Mozzarella Sticks", "7.50"),
				{ItemID: "alitas", Name: "Alitas", Sizes: []domain.Option{opt("6", "8.00"), opt("12", "14.00")}},
				fixed("queso-fundido", "Queso Fundido", "9.00"),
				fixed("surtido", "Surtido Cheesy", "18.00"),
			},
		},
		{
			Name: "Complementos",
			Items: []domain.MenuSelection{
				{ItemID: "papas", Name: "Papas", Styles: []domain.Option{opt("regular", "3.50"), opt("cheesy", "5.00"), opt("bacon", "5.50")}},
				fixed("nachos-cheesy", "Nachos Cheesy", "4.50"),
				fixed("sorullitos-complemento", "Sorullitos (complemento)", "4.00"),
				fixed("mazorca-parmesana", "Mazorca Parmesana", "3.50"),
				fixed("mozzarella-sticks-complemento", "Mozzarella Sticks (complemento)", "4.50"),
			},
		},
		{
			Name: "Postres",
			Items: []domain.MenuSelection{
				fixed("cheesecake", "Cheesecake", "6.00"),
				{ItemID: "milkshake", Name: "Milkshake", Styles: []domain.Option{opt("vainilla", "6.50"), opt("chocolate", "6.50"), opt("fresa", "6.50")}},
			},
		},
		{
			Name: "Bebidas",
			Items: []domain.MenuSelection{
				fixed("coca-cola", "Coca-Cola", "2.00"),
				fixed("sprite", "Sprite", "2.00"),
				fixed("agua", "Agua", "1.50"),
			},
		},
	}
}
