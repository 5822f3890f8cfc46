package pricing

// Sale prices for hot drinks by cup size, in OMR.
var CupPrices = map[DrinkType]map[CupType]float64{
	DrinkKarak: {
		CupPaperRegular: 0.400,
		CupGlassSmall:   0.500,
		CupGlassLarge:   0.600,
	},
	DrinkAlmohib: {
		CupPaperRegular: 0.300,
		CupGlassSmall:   0.400,
		CupGlassLarge:   0.500,
	},
	DrinkRedTea: {
		CupPaperRegular: 0.300,
		CupGlassSmall:   0.400,
		CupGlassLarge:   0.500,
	},
	DrinkLemon: {
		CupPaperRegular: 0.300,
		CupGlassSmall:   0.400,
		CupGlassLarge:   0.500,
	},
}

var ColdDrinkPrices = map[ColdDrinkName]float64{
	ColdPassionMojito: 0.800,
	ColdBlueMojito:    0.800,
	ColdKarkadeh:      0.700,
	ColdWater:         0.100,
}

var SweetsBasePrices = map[SweetsOption]float64{
	SweetsBiscuit: 0.100,
	SweetsCastir:  0.600,
	SweetsCookies: 0.600,
}

// CupSizesML drives thermos depletion per served cup.
var CupSizesML = map[CupType]int{
	CupPaperRegular: 200,
	CupGlassSmall:   175,
	CupGlassLarge:   210,
}

// DefaultUnitCosts is the factory COGS table. Runtime overrides from
// settings take precedence, see Service.Costs.
var DefaultUnitCosts = map[string]float64{
	// Cups (cup + lid + stirrer, glass is washing/breakage average)
	"Paper Cup (Regular)": 0.015,
	"Glass Cup (Small)":   0.005,
	"Glass Cup (Large)":   0.005,

	// Hot drink ingredients per cup
	"Karak":   0.030,
	"Almohib": 0.030,
	"Red Tea": 0.010,
	"Lemon":   0.015,

	// Cold drinks (cup + ice + syrup + soda)
	"Passion Fruit Mojito": 0.250,
	"Blue Mojito":          0.250,
	"Hibiscus (Karkadeh)":  0.150,
	"Drinking Water":       0.040,

	"Biscuit / Other (0.100)": 0.100,
	"Castir (0.600)":          0.350,
	"Cookies (0.600)":         0.350,
}

// sweetsCostFallbackRatio estimates COGS for sweets with no configured
// cost as a fraction of the sale price.
const sweetsCostFallbackRatio = 0.5
