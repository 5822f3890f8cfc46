package order

import "karak-pos/internal/pricing"

// applyAttrs flattens the typed product attributes onto the persisted
// record. Only the fields that exist for the item's category are set.
func applyAttrs(o *Order, attrs pricing.ItemAttrs) {
	o.DrinkType = attrs.Drink()
	switch a := attrs.(type) {
	case pricing.HotDrink:
		o.CupType = a.Cup
		o.Sugar = a.Sugar
		o.TeaType = a.Tea
	case pricing.ColdDrink:
		o.ColdDrinkName = a.Name
	case pricing.Sweets:
		o.SweetsOption = a.Option
		o.CustomPrice = a.CustomPrice
	}
}

// Attrs rebuilds the typed product attributes from a persisted record.
// Returns nil for separators and records with an unknown drink type.
func (o Order) Attrs() pricing.ItemAttrs {
	switch {
	case o.DrinkType == pricing.DrinkCold:
		return pricing.ColdDrink{Name: o.ColdDrinkName}
	case o.DrinkType == pricing.DrinkSweets:
		return pricing.Sweets{Option: o.SweetsOption, CustomPrice: o.CustomPrice}
	case o.DrinkType.IsHot():
		return pricing.HotDrink{Type: o.DrinkType, Cup: o.CupType, Sugar: o.Sugar, Tea: o.TeaType}
	}
	return nil
}
