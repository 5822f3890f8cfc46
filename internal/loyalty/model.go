package loyalty

// Record is the per-plate visit counter at loyalty/{plate}.
// LastVisitShift holds the shift day key of the most recent counted
// visit so repeat payments within one shift do not inflate the count.
type Record struct {
	Count          int    `json:"count"`
	LastVisitShift string `json:"lastVisitShift,omitempty"`
}

// Milestone is returned when a visit crosses a count worth announcing
// at the counter.
type Milestone struct {
	Plate string
	Count int
}

// IsMilestone reports whether a visit count should be announced: the
// second and third visits, and every visit from the fifth on.
func IsMilestone(count int) bool {
	return count == 2 || count == 3 || count >= 5
}

// PlateNote is a weekly free-form note about a regular's plate, stored
// at plateNotes/{plate}/{weekKey}.
type PlateNote struct {
	Note      string `json:"note"`
	UpdatedAt int64  `json:"updatedAt"`
}
