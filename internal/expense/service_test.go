package expense

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"karak-pos/internal/ledger"
	"karak-pos/internal/pricing"
	"karak-pos/internal/store"
)

func newService(t *testing.T) (Service, *store.Memory, ledger.InventoryService, pricing.Service) {
	t.Helper()
	st := store.NewMemory()
	costs := pricing.NewService(st)
	inv := ledger.NewInventoryService(st)
	return NewService(st, costs, inv), st, inv, costs
}

func TestAddAndList(t *testing.T) {
	svc, _, _, _ := newService(t)
	ctx := context.Background()

	e, err := svc.Add(ctx, Expense{Category: "Unexpected", NameEn: "Ice bag", NameAr: "ثلج", Cost: 1.5})
	require.NoError(t, err)
	assert.NotEmpty(t, e.ID)
	assert.Equal(t, TypeOperational, e.Type)
	assert.NotZero(t, e.Timestamp)

	list, err := svc.List(ctx)
	require.NoError(t, err)
	require.Len(t, list, 1)
	assert.Equal(t, "Ice bag", list[0].NameEn)

	require.NoError(t, svc.Delete(ctx, e.ID))
	list, _ = svc.List(ctx)
	assert.Empty(t, list)
}

func TestAdd_RejectsNonPositive(t *testing.T) {
	svc, _, _, _ := newService(t)
	_, err := svc.Add(context.Background(), Expense{NameEn: "x", Cost: 0})
	assert.ErrorIs(t, err, ErrInvalidAmount)
}

func TestTodayOperationalTotal(t *testing.T) {
	svc, st, _, _ := newService(t)
	ctx := context.Background()
	now := time.Date(2026, 8, 29, 20, 0, 0, 0, time.Local)
	st.Now = func() int64 { return now.UnixMilli() }

	_, err := svc.Add(ctx, Expense{NameEn: "today A", Cost: 2})
	require.NoError(t, err)
	_, err = svc.Add(ctx, Expense{NameEn: "today stock", Cost: 5, Type: TypeInventory})
	require.NoError(t, err)
	_, err = svc.Add(ctx, Expense{NameEn: "yesterday", Cost: 9, Timestamp: now.AddDate(0, 0, -1).UnixMilli()})
	require.NoError(t, err)

	total, err := svc.TodayOperationalTotal(ctx)
	require.NoError(t, err)
	// Inventory purchases and other days are excluded.
	assert.Equal(t, 2.0, total)
}

func TestTodayOperationalTotal_EarlyMorningKeepsEveningExpenses(t *testing.T) {
	svc, st, _, _ := newService(t)
	ctx := context.Background()

	// The shift day rolls over at 05:00, not midnight: at 00:30 the
	// previous evening's expenses still belong to the running shift.
	evening := time.Date(2026, 8, 29, 23, 0, 0, 0, time.Local)
	st.Now = func() int64 {
		return time.Date(2026, 8, 30, 0, 30, 0, 0, time.Local).UnixMilli()
	}

	_, err := svc.Add(ctx, Expense{NameEn: "Gas refill", Cost: 3.5, Timestamp: evening.UnixMilli()})
	require.NoError(t, err)
	_, err = svc.Add(ctx, Expense{NameEn: "Morning before open", Cost: 9,
		Timestamp: time.Date(2026, 8, 29, 4, 0, 0, 0, time.Local).UnixMilli()})
	require.NoError(t, err)

	total, err := svc.TodayOperationalTotal(ctx)
	require.NoError(t, err)
	assert.Equal(t, 3.5, total)
}

func TestRestock(t *testing.T) {
	svc, _, inv, costs := newService(t)
	ctx := context.Background()

	e, err := svc.Restock(ctx, Restock{
		Category:       "Stock",
		NameEn:         "Syrups (All Flavors)",
		NameAr:         "سيروب",
		Cost:           7.5,
		Qty:            3,
		UpdateUnitCost: true,
	})
	require.NoError(t, err)
	assert.Equal(t, 7.5, e.Cost)

	level, err := inv.Level(ctx, ledger.InvSyrups)
	require.NoError(t, err)
	assert.Equal(t, 3.0, level)

	table, err := costs.Costs(ctx)
	require.NoError(t, err)
	assert.Equal(t, 2.5, table["Syrups (All Flavors)"])
}

func TestRestock_DailyStaysOutOfInventory(t *testing.T) {
	svc, _, inv, _ := newService(t)
	ctx := context.Background()

	_, err := svc.Restock(ctx, Restock{Category: "Daily", NameEn: "Milk", Cost: 4, Qty: 10})
	require.NoError(t, err)

	levels, err := inv.Levels(ctx)
	require.NoError(t, err)
	assert.Empty(t, levels)
}

func TestLogWaste_ValuesAtUnitCost(t *testing.T) {
	svc, _, _, _ := newService(t)
	ctx := context.Background()

	w, err := svc.LogWaste(ctx, "Karak", 4)
	require.NoError(t, err)
	assert.InDelta(t, 0.12, w.Cost, 1e-9)
	assert.Equal(t, "Manual Waste Log", w.Note)

	// Unknown items still log, at zero loss.
	w, err = svc.LogWaste(ctx, "Mystery jar", 2)
	require.NoError(t, err)
	assert.Equal(t, 0.0, w.Cost)

	logs, err := svc.ListWaste(ctx)
	require.NoError(t, err)
	assert.Len(t, logs, 2)
}
