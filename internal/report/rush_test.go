package report

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"karak-pos/internal/order"
	"karak-pos/internal/pricing"
)

func (f *fixture) item(t *testing.T, createdAt int64, status order.Status) {
	t.Helper()
	f.seed(t, order.Order{
		Status:     status,
		CreatedAt:  createdAt,
		DrinkType:  pricing.DrinkKarak,
		CupType:    pricing.CupPaperRegular,
		Quantity:   1,
		TotalPrice: 0.4,
	})
}

func TestRushHistogram_Bins(t *testing.T) {
	f := newFixture(t)

	f.item(t, millis(2026, time.August, 29, 17, 0), order.StatusCompleted)  // first bin
	f.item(t, millis(2026, time.August, 29, 17, 14), order.StatusPreparing) // still first bin, status irrelevant
	f.item(t, millis(2026, time.August, 29, 17, 15), order.StatusReady)
	f.item(t, millis(2026, time.August, 29, 23, 59), order.StatusCompleted)

	bins, err := f.svc.RushHistogram(f.ctx)
	require.NoError(t, err)
	require.Len(t, bins, RushBinCount)
	assert.Equal(t, 2, bins[0])
	assert.Equal(t, 1, bins[1])
	assert.Equal(t, 1, bins[(23*60+59-rushStartMin)/rushBinMin])
}

func TestRushHistogram_PastMidnightWrapsToSameEvening(t *testing.T) {
	f := newFixture(t)

	f.item(t, millis(2026, time.August, 30, 0, 59), order.StatusCompleted) // 00:59 -> 24:59
	f.item(t, millis(2026, time.August, 30, 1, 0), order.StatusCompleted)  // last bin edge
	f.item(t, millis(2026, time.August, 30, 1, 1), order.StatusCompleted)  // past the window
	f.item(t, millis(2026, time.August, 29, 16, 59), order.StatusCompleted)

	bins, err := f.svc.RushHistogram(f.ctx)
	require.NoError(t, err)
	assert.Equal(t, 1, bins[(24*60+59-rushStartMin)/rushBinMin])
	assert.Equal(t, 1, bins[RushBinCount-1])

	var total int
	for _, n := range bins {
		total += n
	}
	// 16:59 wraps to the next night's 40:59 and 01:01 falls past the
	// window; neither is counted.
	assert.Equal(t, 2, total)
}

func TestRushHistogram_IgnoresSeparators(t *testing.T) {
	f := newFixture(t)
	f.seed(t, order.Order{Type: order.TypeSeparator, CreatedAt: millis(2026, time.August, 29, 18, 0)})
	f.item(t, millis(2026, time.August, 29, 18, 0), order.StatusCompleted)

	bins, err := f.svc.RushHistogram(f.ctx)
	require.NoError(t, err)
	var total int
	for _, n := range bins {
		total += n
	}
	assert.Equal(t, 1, total)
}

func TestResetRush_HidesEarlierOrders(t *testing.T) {
	f := newFixture(t)
	f.item(t, f.clock-60_000, order.StatusCompleted)

	require.NoError(t, f.svc.ResetRush(f.ctx))

	bins, err := f.svc.RushHistogram(f.ctx)
	require.NoError(t, err)
	for i, n := range bins {
		assert.Zero(t, n, "bin %d", i)
	}

	f.item(t, f.clock+60_000, order.StatusCompleted)
	bins, err = f.svc.RushHistogram(f.ctx)
	require.NoError(t, err)
	assert.Equal(t, 1, bins[(20*60+1-rushStartMin)/rushBinMin])
}
