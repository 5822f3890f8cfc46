package pricing

import "math"

// Quote is the priced result of one cart line.
type Quote struct {
	UnitPrice  float64
	TotalPrice float64
	TotalCost  float64
}

// Round3 rounds to the 3 decimal places used for OMR amounts.
func Round3(v float64) float64 {
	return math.Round(v*1000) / 1000
}

// PriceItem computes sale price and cost of goods for a cart line. It is
// a pure function of its inputs: the same attrs, quantity and cost table
// always yield the same quote. costs may be nil, in which case the
// factory defaults apply.
func PriceItem(attrs ItemAttrs, quantity int, costs map[string]float64) (Quote, error) {
	if quantity <= 0 {
		return Quote{}, ErrInvalidQuantity
	}
	if costs == nil {
		costs = DefaultUnitCosts
	}

	var unit, cost float64

	switch a := attrs.(type) {
	case ColdDrink:
		if a.Name == "" {
			return Quote{}, ErrMissingColdDrink
		}
		unit = ColdDrinkPrices[a.Name]
		cost = costs[string(a.Name)]

	case Sweets:
		if a.Option == "" {
			return Quote{}, ErrMissingSweets
		}
		if a.CustomPrice != nil {
			unit = *a.CustomPrice
		} else {
			unit = SweetsBasePrices[a.Option]
		}
		cost = costs[string(a.Option)]
		if cost == 0 {
			// No configured cost, estimate from the sale price.
			cost = unit * sweetsCostFallbackRatio
		}

	case HotDrink:
		if !a.Type.IsHot() {
			return Quote{}, ErrUnknownDrinkType
		}
		if a.Cup == "" {
			return Quote{}, ErrMissingCupType
		}
		unit = CupPrices[a.Type][a.Cup]
		// Cost is cup cost plus drink ingredient cost.
		cost = costs[string(a.Cup)] + costs[string(a.Type)]

	default:
		return Quote{}, ErrUnknownDrinkType
	}

	return Quote{
		UnitPrice:  unit,
		TotalPrice: Round3(unit * float64(quantity)),
		TotalCost:  Round3(cost * float64(quantity)),
	}, nil
}
