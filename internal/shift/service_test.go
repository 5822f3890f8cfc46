package shift

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"karak-pos/internal/expense"
	"karak-pos/internal/ledger"
	"karak-pos/internal/loyalty"
	"karak-pos/internal/order"
	"karak-pos/internal/pricing"
	"karak-pos/internal/report"
	"karak-pos/internal/store"
)

type fixture struct {
	st      *store.Memory
	repo    order.Repository
	reports report.Service
	loyal   loyalty.Service
	thermos ledger.ThermosService
	svc     Service
	ctx     context.Context
}

func newFixture(t *testing.T) *fixture {
	t.Helper()
	st := store.NewMemory()
	st.Now = func() int64 { return 1_700_000_000_000 }
	ctx := context.Background()

	repo := order.NewRepository(st)
	costs := pricing.NewService(st)
	expenses := expense.NewService(st, costs, ledger.NewInventoryService(st))
	reports := report.NewService(repo, expenses, st)
	loyal := loyalty.NewService(st)
	thermos := ledger.NewThermosService(st)
	require.NoError(t, thermos.Init(ctx))

	return &fixture{
		st:      st,
		repo:    repo,
		reports: reports,
		loyal:   loyal,
		thermos: thermos,
		svc:     NewService(reports, loyal, thermos, st),
		ctx:     ctx,
	}
}

func (f *fixture) completeOrder(t *testing.T, completedAt int64, price float64, pm order.PaymentMethod) {
	t.Helper()
	_, err := f.repo.Create(f.ctx, order.Order{
		Type:          order.TypeItem,
		Status:        order.StatusCompleted,
		CreatedAt:     completedAt - 1000,
		CompletedAt:   completedAt,
		PaymentMethod: pm,
		DrinkType:     pricing.DrinkKarak,
		CupType:       pricing.CupPaperRegular,
		Quantity:      1,
		TotalPrice:    price,
		TotalCost:     0.045,
	})
	require.NoError(t, err)
}

func TestExport(t *testing.T) {
	f := newFixture(t)
	f.completeOrder(t, 1_699_999_000_000, 0.4, order.PayCash)
	f.completeOrder(t, 1_699_999_100_000, 0.6, order.PayMachine)
	_, err := f.loyal.RecordVisit(f.ctx, "1234", time.UnixMilli(1_699_999_000_000))
	require.NoError(t, err)
	require.NoError(t, f.thermos.Adjust(f.ctx, ledger.ThermosKarak, -600))

	snap, err := f.svc.Export(f.ctx)
	require.NoError(t, err)

	assert.Equal(t, int64(1_700_000_000_000), snap.ExportedAt)
	assert.Len(t, snap.CompletedOrders, 2)
	assert.InDelta(t, 0.4, snap.Payments["Cash"], 1e-9)
	assert.InDelta(t, 0.6, snap.Payments["Machine"], 1e-9)
	assert.Equal(t, 100.0, snap.Breakeven.Target)
	assert.Equal(t, 1.0, snap.Breakeven.Revenue)
	assert.Equal(t, 99.0, snap.Breakeven.CarryOver)
	assert.Equal(t, 1, snap.Loyalty["1234"].Count)
	assert.Equal(t, 2400.0, snap.Thermoses.Karak.CurrentLevelML)
}

func TestImport_RestoresLoyaltyAndCarriesShortfall(t *testing.T) {
	f := newFixture(t)

	err := f.svc.Import(f.ctx, Snapshot{
		Breakeven: BreakevenState{Target: 100, Revenue: 60, CarryOver: 40},
		Loyalty: map[string]loyalty.Record{
			"1234": {Count: 4, LastVisitShift: "2026-08-28"},
			"9876": {Count: 1, LastVisitShift: "2026-08-28"},
		},
	})
	require.NoError(t, err)

	rec, err := f.loyal.Get(f.ctx, "1234")
	require.NoError(t, err)
	assert.Equal(t, 4, rec.Count)

	// No stored target on this device: the carry lands on the fresh
	// base of 25.
	be, err := f.reports.Breakeven(f.ctx)
	require.NoError(t, err)
	assert.Equal(t, 65.0, be.Target)
}

func TestImport_EmptySnapshotIsANoOp(t *testing.T) {
	f := newFixture(t)
	require.NoError(t, f.svc.Import(f.ctx, Snapshot{}))

	be, err := f.reports.Breakeven(f.ctx)
	require.NoError(t, err)
	assert.Equal(t, 100.0, be.Target)
}

func TestReset(t *testing.T) {
	f := newFixture(t)
	f.completeOrder(t, 1_699_999_000_000, 0.4, order.PayCash)
	require.NoError(t, f.thermos.Adjust(f.ctx, ledger.ThermosKarak, -1200))

	require.NoError(t, f.svc.Reset(f.ctx, 15))

	set, err := f.thermos.State(f.ctx)
	require.NoError(t, err)
	assert.Equal(t, 3000.0, set.Karak.CurrentLevelML)
	assert.Equal(t, 0, set.Karak.Refills)

	cash, err := f.reports.OpeningCash(f.ctx)
	require.NoError(t, err)
	assert.Equal(t, 15.0, cash)

	// The old shift's orders no longer count toward the new one.
	sum, err := f.reports.ShiftSummary(f.ctx)
	require.NoError(t, err)
	assert.Zero(t, sum.Total)
}
