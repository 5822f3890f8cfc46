package order

import "sort"

// SortRows orders entries the way every view consumes them: by
// creation time ascending, with the storage key as a stable tiebreak
// for entries created in the same millisecond.
func SortRows(rows []Order) {
	sort.Slice(rows, func(i, j int) bool {
		if rows[i].CreatedAt != rows[j].CreatedAt {
			return rows[i].CreatedAt < rows[j].CreatedAt
		}
		return rows[i].ID < rows[j].ID
	})
}

// BuildGroups splits sorted rows into car-visit groups. A separator
// closes the group before it; the trailing run after the last
// separator forms a final group, which may be empty when the stream
// ends in a separator.
func BuildGroups(rows []Order) []Group {
	groups := []Group{}
	current := Group{}
	for _, r := range rows {
		if r.IsSeparator() {
			current.Separators = append(current.Separators, r.ID)
			groups = append(groups, current)
			current = Group{}
			continue
		}
		current.Items = append(current.Items, r)
	}
	groups = append(groups, current)
	return groups
}

// visibleWithStatus keeps the group's items that are in the given
// status and actually bill something. Zero-priced strays are hidden
// from the board but stay in the store.
func visibleWithStatus(g Group, status Status) []Order {
	var out []Order
	for _, r := range g.Items {
		if r.Status == status && r.TotalPrice > 0 {
			out = append(out, r)
		}
	}
	return out
}

// PreparingGroups returns the groups still being worked, newest group
// first and newest item first within each group, mirroring how the
// cashier reads the board.
func PreparingGroups(rows []Order) []Group {
	var live []Order
	for _, r := range rows {
		if r.Status != StatusCompleted {
			live = append(live, r)
		}
	}
	var out []Group
	groups := BuildGroups(live)
	for i := len(groups) - 1; i >= 0; i-- {
		items := visibleWithStatus(groups[i], StatusPreparing)
		if len(items) == 0 {
			continue
		}
		reversed := make([]Order, 0, len(items))
		for j := len(items) - 1; j >= 0; j-- {
			reversed = append(reversed, items[j])
		}
		g := Group{Items: reversed, Separators: groups[i].Separators}
		if g.Total() <= 0 {
			continue
		}
		out = append(out, g)
	}
	return out
}

// ReadyGroups returns the groups awaiting payment in arrival order.
func ReadyGroups(rows []Order) []Group {
	var out []Group
	for _, g := range BuildGroups(rows) {
		items := visibleWithStatus(g, StatusReady)
		if len(items) == 0 {
			continue
		}
		rg := Group{Items: items, Separators: g.Separators}
		if rg.Total() <= 0 {
			continue
		}
		out = append(out, rg)
	}
	return out
}
