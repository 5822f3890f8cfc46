package pricing

// DrinkType is the top-level product category picked on the order form.
type DrinkType string

const (
	DrinkKarak   DrinkType = "Karak"
	DrinkAlmohib DrinkType = "Almohib"
	DrinkRedTea  DrinkType = "Red Tea"
	DrinkLemon   DrinkType = "Lemon"
	DrinkCold    DrinkType = "Cold Drink"
	DrinkSweets  DrinkType = "Sweets"
)

// IsHot reports whether d is served from a thermos.
func (d DrinkType) IsHot() bool {
	switch d {
	case DrinkKarak, DrinkAlmohib, DrinkRedTea, DrinkLemon:
		return true
	}
	return false
}

type CupType string

const (
	CupPaperRegular CupType = "Paper Cup (Regular)"
	CupGlassSmall   CupType = "Glass Cup (Small)"
	CupGlassLarge   CupType = "Glass Cup (Large)"
)

type SugarLevel string

const (
	SugarNone   SugarLevel = "No Sugar"
	SugarLight  SugarLevel = "Light Sugar"
	SugarMedium SugarLevel = "Medium Sugar (Standard)"
	SugarExtra  SugarLevel = "Extra Sugar"
)

type TeaType string

const (
	TeaStandardRed   TeaType = "Standard Red Tea"
	TeaHabakWithMint TeaType = "Habak with mint Tea"
	TeaHabak         TeaType = "Habak Tea"
	TeaMint          TeaType = "Mint Tea"
)

type ColdDrinkName string

const (
	ColdPassionMojito ColdDrinkName = "Passion Fruit Mojito"
	ColdBlueMojito    ColdDrinkName = "Blue Mojito"
	ColdKarkadeh      ColdDrinkName = "Hibiscus (Karkadeh)"
	ColdWater         ColdDrinkName = "Drinking Water"
)

type SweetsOption string

const (
	SweetsBiscuit SweetsOption = "Biscuit / Other (0.100)"
	SweetsCastir  SweetsOption = "Castir (0.600)"
	SweetsCookies SweetsOption = "Cookies (0.600)"
)

// ItemAttrs is the product description of one cart line. Each drink
// category carries only the fields that exist for it, so an impossible
// combination (a cold drink with a sugar level, say) cannot be
// represented.
type ItemAttrs interface {
	Drink() DrinkType
	itemAttrs()
}

// HotDrink covers Karak, Almohib, Red Tea and Lemon. Tea is only set for
// Red Tea.
type HotDrink struct {
	Type  DrinkType
	Cup   CupType
	Sugar SugarLevel
	Tea   TeaType
}

func (h HotDrink) Drink() DrinkType { return h.Type }
func (HotDrink) itemAttrs()         {}

type ColdDrink struct {
	Name ColdDrinkName
}

func (ColdDrink) Drink() DrinkType { return DrinkCold }
func (ColdDrink) itemAttrs()       {}

// Sweets price is adjustable at the counter; CustomPrice overrides the
// option's base price when set.
type Sweets struct {
	Option      SweetsOption
	CustomPrice *float64
}

func (Sweets) Drink() DrinkType { return DrinkSweets }
func (Sweets) itemAttrs()       {}
