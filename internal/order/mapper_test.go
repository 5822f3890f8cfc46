package order

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"karak-pos/internal/pricing"
)

func TestAttrsRoundTrip(t *testing.T) {
	custom := 0.25
	attrs := []pricing.ItemAttrs{
		pricing.HotDrink{Type: pricing.DrinkRedTea, Cup: pricing.CupGlassSmall, Sugar: pricing.SugarLight, Tea: pricing.TeaHabak},
		pricing.ColdDrink{Name: pricing.ColdKarkadeh},
		pricing.Sweets{Option: pricing.SweetsBiscuit, CustomPrice: &custom},
	}
	for _, a := range attrs {
		var o Order
		o.Type = TypeItem
		applyAttrs(&o, a)
		assert.Equal(t, a, o.Attrs())
	}
}

func TestAttrs_Separator(t *testing.T) {
	o := Order{Type: TypeSeparator}
	assert.Nil(t, o.Attrs())
}
