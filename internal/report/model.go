package report

import "karak-pos/internal/order"

// ShiftSummary aggregates the completed orders of the current shift.
type ShiftSummary struct {
	Total     float64
	TotalCost float64
	ByPayment map[string]float64
	// Logs holds the completed orders newest-first, capped so a long
	// shift cannot flood a device.
	Logs []order.Order
}

// PaymentStat is one payment method's share of a day.
type PaymentStat struct {
	Count  int
	Amount float64
}

// DayReport summarizes one logical day (05:00 cutoff) of completed
// orders.
type DayReport struct {
	DateKey   string
	Count     int
	Total     float64
	ByPayment map[string]PaymentStat
}

// Consumables projects physical supplies used by a set of completed
// orders: glassware to wash, sachets and lids to restock.
type Consumables struct {
	SmallGlasses int
	BigGlasses   int
	SugarSachets int
	CupLids      int
	SevenUpCans  int
	// MilkCans is an estimate: a 1L karak pot (5 cups) uses about 1.75
	// cans, so 0.35 cans per cup, rounded up at the end.
	MilkCans int
}

// Profit is the day's bottom line.
type Profit struct {
	Revenue     float64
	COGS        float64
	Operational float64
	Net         float64
}

// Breakeven tracks the shift target against revenue.
type Breakeven struct {
	Target    float64
	Revenue   float64
	CarryOver float64
}
