package ledger

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"karak-pos/internal/store"
)

func TestSafeID(t *testing.T) {
	assert.Equal(t, "syrups__all_flavors_", SafeID("Syrups (All Flavors)"))
	assert.Equal(t, "paper_cups__all_sizes_", SafeID("Paper Cups (All sizes)"))
	assert.Equal(t, "lids__black_white_", SafeID("Lids (Black/White)"))
}

func TestInventoryPaperCups_AllowsNegative(t *testing.T) {
	st := store.NewMemory()
	svc := NewInventoryService(st)
	ctx := context.Background()

	// Level was never counted: decrement tracks the deficit.
	require.NoError(t, svc.ConsumePaperCups(ctx, 5))
	v, err := svc.Level(ctx, InvPaperCups)
	require.NoError(t, err)
	assert.Equal(t, -5.0, v)

	require.NoError(t, svc.Add(ctx, InvPaperCups, 100))
	v, _ = svc.Level(ctx, InvPaperCups)
	assert.Equal(t, 95.0, v)
}

func TestInventorySyrup_ClampsAtZero(t *testing.T) {
	st := store.NewMemory()
	svc := NewInventoryService(st)
	ctx := context.Background()

	require.NoError(t, svc.Add(ctx, InvSyrups, 0.1))
	require.NoError(t, svc.ConsumeSyrup(ctx, 3*SyrupBottlesPerCup))

	v, err := svc.Level(ctx, InvSyrups)
	require.NoError(t, err)
	assert.Equal(t, 0.0, v)
}

func TestInventoryConsume_IgnoresNonPositive(t *testing.T) {
	st := store.NewMemory()
	svc := NewInventoryService(st)
	ctx := context.Background()

	require.NoError(t, svc.ConsumePaperCups(ctx, 0))
	require.NoError(t, svc.ConsumeSyrup(ctx, -1))

	levels, err := svc.Levels(ctx)
	require.NoError(t, err)
	assert.Empty(t, levels)
}

func TestInventoryLevels(t *testing.T) {
	st := store.NewMemory()
	svc := NewInventoryService(st)
	ctx := context.Background()

	require.NoError(t, svc.Add(ctx, InvPaperCups, 200))
	require.NoError(t, svc.Add(ctx, SafeID("Tissues"), 12))

	levels, err := svc.Levels(ctx)
	require.NoError(t, err)
	assert.Equal(t, map[string]float64{
		"paperCups": 200,
		"tissues":   12,
	}, levels)
}
