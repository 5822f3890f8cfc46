package report

import (
	"context"
	"time"
)

// The stall trades evenings: the histogram window runs 17:00 through
// 01:00 the next morning in 15-minute bins.
const (
	rushResetPath = "stats/rush/resetAt"

	rushStartMin = 17 * 60
	rushEndMin   = 25 * 60
	rushBinMin   = 15

	// RushBinCount covers the window inclusively on both edges.
	RushBinCount = (rushEndMin-rushStartMin)/rushBinMin + 1
)

func (s *service) RushHistogram(ctx context.Context) ([]int, error) {
	resetAt, err := s.readInt64(ctx, rushResetPath)
	if err != nil {
		return nil, err
	}
	rows, err := s.orders.List(ctx)
	if err != nil {
		return nil, err
	}

	bins := make([]int, RushBinCount)
	for _, o := range rows {
		if !o.IsItem() || o.CreatedAt == 0 {
			continue
		}
		if resetAt != 0 && o.CreatedAt < resetAt {
			continue
		}
		d := time.UnixMilli(o.CreatedAt).In(s.loc)
		mins := d.Hour()*60 + d.Minute()
		// Early-morning orders belong to the previous evening.
		if mins < rushStartMin {
			mins += 24 * 60
		}
		if mins < rushStartMin || mins > rushEndMin {
			continue
		}
		bins[(mins-rushStartMin)/rushBinMin]++
	}
	return bins, nil
}

func (s *service) ResetRush(ctx context.Context) error {
	now, err := s.st.ServerTime(ctx)
	if err != nil {
		return err
	}
	return s.st.Write(ctx, rushResetPath, now)
}
