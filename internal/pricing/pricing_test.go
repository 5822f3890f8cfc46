package pricing

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"karak-pos/internal/store"
)

func TestPriceItem_HotDrink(t *testing.T) {
	q, err := PriceItem(HotDrink{Type: DrinkKarak, Cup: CupPaperRegular, Sugar: SugarMedium}, 3, nil)
	require.NoError(t, err)
	assert.Equal(t, 0.400, q.UnitPrice)
	assert.Equal(t, 1.200, q.TotalPrice)
	// 0.015 cup + 0.030 karak, times 3
	assert.Equal(t, 0.135, q.TotalCost)
}

func TestPriceItem_HotDrinkVariants(t *testing.T) {
	tests := []struct {
		drink DrinkType
		cup   CupType
		want  float64
	}{
		{DrinkKarak, CupGlassLarge, 0.600},
		{DrinkAlmohib, CupPaperRegular, 0.300},
		{DrinkRedTea, CupGlassSmall, 0.400},
		{DrinkLemon, CupGlassLarge, 0.500},
	}
	for _, tt := range tests {
		q, err := PriceItem(HotDrink{Type: tt.drink, Cup: tt.cup}, 1, nil)
		require.NoError(t, err)
		assert.Equal(t, tt.want, q.UnitPrice, "%s / %s", tt.drink, tt.cup)
		assert.Equal(t, tt.want, q.TotalPrice)
	}
}

func TestPriceItem_ColdDrink(t *testing.T) {
	q, err := PriceItem(ColdDrink{Name: ColdKarkadeh}, 2, nil)
	require.NoError(t, err)
	assert.Equal(t, 0.700, q.UnitPrice)
	assert.Equal(t, 1.400, q.TotalPrice)
	assert.Equal(t, 0.300, q.TotalCost)
}

func TestPriceItem_SweetsBasePrice(t *testing.T) {
	q, err := PriceItem(Sweets{Option: SweetsCastir}, 1, nil)
	require.NoError(t, err)
	assert.Equal(t, 0.600, q.UnitPrice)
	assert.Equal(t, 0.350, q.TotalCost)
}

func TestPriceItem_SweetsCustomPrice(t *testing.T) {
	custom := 0.250
	q, err := PriceItem(Sweets{Option: SweetsBiscuit, CustomPrice: &custom}, 2, nil)
	require.NoError(t, err)
	assert.Equal(t, 0.250, q.UnitPrice)
	assert.Equal(t, 0.500, q.TotalPrice)
}

func TestPriceItem_SweetsCostFallback(t *testing.T) {
	// No configured cost for the option: cost falls back to half the
	// sale price.
	custom := 1.000
	q, err := PriceItem(Sweets{Option: SweetsBiscuit, CustomPrice: &custom}, 1, map[string]float64{})
	require.NoError(t, err)
	assert.Equal(t, 0.500, q.TotalCost)
}

func TestPriceItem_CostOverrides(t *testing.T) {
	costs := map[string]float64{
		"Paper Cup (Regular)": 0.020,
		"Karak":               0.050,
	}
	q, err := PriceItem(HotDrink{Type: DrinkKarak, Cup: CupPaperRegular}, 2, costs)
	require.NoError(t, err)
	assert.Equal(t, 0.140, q.TotalCost)
}

func TestPriceItem_InvalidInput(t *testing.T) {
	_, err := PriceItem(HotDrink{Type: DrinkKarak}, 1, nil)
	assert.ErrorIs(t, err, ErrMissingCupType)

	_, err = PriceItem(ColdDrink{}, 1, nil)
	assert.ErrorIs(t, err, ErrMissingColdDrink)

	_, err = PriceItem(Sweets{}, 1, nil)
	assert.ErrorIs(t, err, ErrMissingSweets)

	_, err = PriceItem(HotDrink{Type: DrinkKarak, Cup: CupPaperRegular}, 0, nil)
	assert.ErrorIs(t, err, ErrInvalidQuantity)

	_, err = PriceItem(HotDrink{Type: DrinkCold, Cup: CupPaperRegular}, 1, nil)
	assert.ErrorIs(t, err, ErrUnknownDrinkType)
}

func TestCostService_MergesOverrides(t *testing.T) {
	st := store.NewMemory()
	svc := NewService(st)
	ctx := context.Background()

	costs, err := svc.Costs(ctx)
	require.NoError(t, err)
	assert.Equal(t, 0.030, costs["Karak"])

	require.NoError(t, svc.UpdateCost(ctx, "Karak", 0.0456))

	costs, err = svc.Costs(ctx)
	require.NoError(t, err)
	assert.Equal(t, 0.046, costs["Karak"], "override rounded to 3 decimals")
	assert.Equal(t, 0.015, costs["Paper Cup (Regular)"], "defaults still present")
}

func TestCostService_RejectsNegative(t *testing.T) {
	svc := NewService(store.NewMemory())
	err := svc.UpdateCost(context.Background(), "Karak", -1)
	assert.ErrorIs(t, err, ErrInvalidCostValue)
}
