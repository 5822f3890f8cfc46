package order

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func item(id string, at int64, status Status, price float64) Order {
	return Order{ID: id, Type: TypeItem, Status: status, CreatedAt: at, TotalPrice: price}
}

func separator(id string, at int64) Order {
	return Order{ID: id, Type: TypeSeparator, CreatedAt: at}
}

func TestSortRows_TiebreakByID(t *testing.T) {
	rows := []Order{
		item("b", 100, StatusPreparing, 1),
		item("a", 100, StatusPreparing, 1),
		item("c", 50, StatusPreparing, 1),
	}
	SortRows(rows)
	assert.Equal(t, "c", rows[0].ID)
	assert.Equal(t, "a", rows[1].ID)
	assert.Equal(t, "b", rows[2].ID)
}

func TestBuildGroups_SeparatorClosesGroup(t *testing.T) {
	rows := []Order{
		item("A", 1, StatusPreparing, 0.4),
		item("B", 2, StatusPreparing, 0.3),
		separator("s1", 3),
		item("C", 4, StatusPreparing, 0.6),
	}
	groups := BuildGroups(rows)

	require.Len(t, groups, 2)
	assert.Equal(t, []string{"A", "B"}, ids(groups[0].Items))
	assert.Equal(t, []string{"s1"}, groups[0].Separators)
	assert.Equal(t, []string{"C"}, ids(groups[1].Items))
}

func TestBuildGroups_TrailingSeparatorLeavesEmptyGroup(t *testing.T) {
	rows := []Order{
		item("A", 1, StatusPreparing, 0.4),
		separator("s1", 2),
	}
	groups := BuildGroups(rows)

	require.Len(t, groups, 2)
	assert.Equal(t, []string{"A"}, ids(groups[0].Items))
	assert.Empty(t, groups[1].Items)
}

func TestBuildGroups_Empty(t *testing.T) {
	groups := BuildGroups(nil)
	require.Len(t, groups, 1)
	assert.Empty(t, groups[0].Items)
}

func TestPreparingGroups_NewestFirst(t *testing.T) {
	rows := []Order{
		item("A", 1, StatusPreparing, 0.4),
		item("B", 2, StatusPreparing, 0.3),
		separator("s1", 3),
		item("C", 4, StatusPreparing, 0.6),
	}

	groups := PreparingGroups(rows)

	require.Len(t, groups, 2)
	// Newest group first, and newest item first within a group.
	assert.Equal(t, []string{"C"}, ids(groups[0].Items))
	assert.Equal(t, []string{"B", "A"}, ids(groups[1].Items))
}

func TestPreparingGroups_HidesCompletedAndZeroPriced(t *testing.T) {
	rows := []Order{
		item("done", 1, StatusCompleted, 0.4),
		item("free", 2, StatusPreparing, 0),
		item("live", 3, StatusPreparing, 0.3),
		item("ready", 4, StatusReady, 0.5),
	}

	groups := PreparingGroups(rows)

	require.Len(t, groups, 1)
	assert.Equal(t, []string{"live"}, ids(groups[0].Items))
}

func TestReadyGroups_KeepArrivalOrder(t *testing.T) {
	rows := []Order{
		item("A", 1, StatusReady, 0.4),
		item("B", 2, StatusReady, 0.3),
		separator("s1", 3),
		item("C", 4, StatusReady, 0.6),
		item("D", 5, StatusPreparing, 0.6),
	}

	groups := ReadyGroups(rows)

	require.Len(t, groups, 2)
	// Oldest group first and items oldest-first: payment clears the
	// queue in arrival order.
	assert.Equal(t, []string{"A", "B"}, ids(groups[0].Items))
	assert.InDelta(t, 0.7, groups[0].Total(), 1e-9)
	assert.Equal(t, []string{"C"}, ids(groups[1].Items))
}

func ids(rows []Order) []string {
	out := make([]string, 0, len(rows))
	for _, r := range rows {
		out = append(out, r.ID)
	}
	return out
}
