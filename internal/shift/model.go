package shift

import (
	"karak-pos/internal/ledger"
	"karak-pos/internal/loyalty"
	"karak-pos/internal/order"
)

// Snapshot is the portable end-of-shift record: enough to hand the
// stall over to the next operator's device, or to archive the night.
type Snapshot struct {
	ExportedAt      int64                     `json:"exportedAt"`
	Breakeven       BreakevenState            `json:"breakeven"`
	Payments        map[string]float64        `json:"payments"`
	CompletedOrders []order.Order             `json:"completedOrders"`
	Loyalty         map[string]loyalty.Record `json:"loyalty"`
	Thermoses       ledger.ThermosSet         `json:"thermoses"`
}

// BreakevenState freezes the target math at export time so the next
// shift can carry the shortfall without recomputing it.
type BreakevenState struct {
	Target    float64 `json:"target"`
	Revenue   float64 `json:"revenue"`
	CarryOver float64 `json:"carryOver"`
}
