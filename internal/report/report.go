package report

import (
	"context"
	"encoding/json"
	"math"
	"sort"
	"strings"
	"time"

	"karak-pos/internal/expense"
	"karak-pos/internal/order"
	"karak-pos/internal/pricing"
	"karak-pos/internal/shiftclock"
	"karak-pos/internal/store"
)

const (
	shiftStartPath      = "stats/shift/startAt"
	openingCashPath     = "stats/shift/openingCash"
	breakevenTargetPath = "stats/breakeven/target"

	defaultBreakevenTarget = 100

	// maxShiftLogs caps the order log returned with a shift summary.
	maxShiftLogs = 200
)

type Service interface {
	// ShiftSummary totals the orders completed since the shift
	// started. With no shift start recorded, every completed order
	// counts.
	ShiftSummary(ctx context.Context) (ShiftSummary, error)
	// DayReport summarizes one logical day of completed orders.
	// Orders completed before 05:00 belong to the previous day.
	DayReport(ctx context.Context, dateKey string) (DayReport, error)
	// Consumables projects the supplies used by the current shift's
	// completed orders.
	Consumables(ctx context.Context) (Consumables, error)
	// NetProfit is revenue minus COGS minus today's operational
	// expenses.
	NetProfit(ctx context.Context) (Profit, error)

	Breakeven(ctx context.Context) (Breakeven, error)
	SetBreakevenTarget(ctx context.Context, target float64) error
	// AddBreakevenCarryOver raises the target by an imported shift's
	// shortfall.
	AddBreakevenCarryOver(ctx context.Context, carry float64) error

	OpeningCash(ctx context.Context) (float64, error)
	// StartShift stamps a new shift start and records the opening cash
	// float, in one write.
	StartShift(ctx context.Context, openingCash float64) error

	// RushHistogram counts order placements in 15-minute bins across
	// the evening window.
	RushHistogram(ctx context.Context) ([]int, error)
	ResetRush(ctx context.Context) error
}

type service struct {
	orders   order.Repository
	expenses expense.Service
	st       store.Store
	loc      *time.Location
}

func NewService(orders order.Repository, expenses expense.Service, st store.Store) Service {
	return &service{orders: orders, expenses: expenses, st: st, loc: time.Local}
}

func (s *service) ShiftSummary(ctx context.Context) (ShiftSummary, error) {
	shiftStart, err := s.readInt64(ctx, shiftStartPath)
	if err != nil {
		return ShiftSummary{}, err
	}
	completed, err := s.orders.CompletedSince(ctx, shiftStart)
	if err != nil {
		return ShiftSummary{}, err
	}

	sum := ShiftSummary{ByPayment: map[string]float64{}}
	for _, o := range completed {
		sum.Total += o.TotalPrice
		sum.TotalCost += o.TotalCost
		pm := string(o.PaymentMethod)
		if pm == "" {
			pm = "Unknown"
		}
		sum.ByPayment[pm] += o.TotalPrice
	}
	sum.Total = pricing.Round3(sum.Total)
	sum.TotalCost = pricing.Round3(sum.TotalCost)

	sort.Slice(completed, func(i, j int) bool {
		return completed[i].CompletedAt > completed[j].CompletedAt
	})
	if len(completed) > maxShiftLogs {
		completed = completed[:maxShiftLogs]
	}
	sum.Logs = completed
	return sum, nil
}

func (s *service) DayReport(ctx context.Context, dateKey string) (DayReport, error) {
	rows, err := s.orders.List(ctx)
	if err != nil {
		return DayReport{}, err
	}
	rep := DayReport{DateKey: dateKey, ByPayment: map[string]PaymentStat{}}
	for _, o := range rows {
		if !o.IsItem() || o.Status != order.StatusCompleted {
			continue
		}
		ts := o.CompletedAt
		if ts == 0 {
			ts = o.CreatedAt
		}
		if shiftclock.DayKeyMillis(ts, s.loc) != dateKey {
			continue
		}
		rep.Count++
		rep.Total += o.TotalPrice
		pm := string(o.PaymentMethod)
		if pm == "" {
			pm = "Unknown"
		}
		stat := rep.ByPayment[pm]
		stat.Count++
		stat.Amount += o.TotalPrice
		rep.ByPayment[pm] = stat
	}
	rep.Total = pricing.Round3(rep.Total)
	return rep, nil
}

func (s *service) Consumables(ctx context.Context) (Consumables, error) {
	sum, err := s.ShiftSummary(ctx)
	if err != nil {
		return Consumables{}, err
	}
	return ProjectConsumables(sum.Logs), nil
}

// ProjectConsumables tallies physical supplies for a set of completed
// orders.
func ProjectConsumables(orders []order.Order) Consumables {
	var c Consumables
	var milk float64
	for _, o := range orders {
		if !o.IsItem() {
			continue
		}
		qty := o.Quantity

		switch o.CupType {
		case pricing.CupGlassSmall:
			c.SmallGlasses += qty
		case pricing.CupGlassLarge:
			c.BigGlasses += qty
		case pricing.CupPaperRegular:
			// Winter: every paper cup goes out with a lid.
			c.CupLids += qty
		}

		switch o.DrinkType {
		case pricing.DrinkKarak:
			c.SugarSachets += qty
			milk += 0.35 * float64(qty)
		case pricing.DrinkAlmohib:
			c.SugarSachets += qty
		case pricing.DrinkCold:
			if o.ColdDrinkName == pricing.ColdKarkadeh {
				c.SugarSachets += qty
			}
			if strings.Contains(string(o.ColdDrinkName), "Mojito") {
				c.SevenUpCans += qty
			}
		}
	}
	c.MilkCans = int(math.Ceil(milk))
	return c
}

func (s *service) NetProfit(ctx context.Context) (Profit, error) {
	sum, err := s.ShiftSummary(ctx)
	if err != nil {
		return Profit{}, err
	}
	operational, err := s.expenses.TodayOperationalTotal(ctx)
	if err != nil {
		return Profit{}, err
	}
	return Profit{
		Revenue:     sum.Total,
		COGS:        sum.TotalCost,
		Operational: operational,
		Net:         pricing.Round3(sum.Total - sum.TotalCost - operational),
	}, nil
}

func (s *service) Breakeven(ctx context.Context) (Breakeven, error) {
	raw, err := s.st.Get(ctx, breakevenTargetPath)
	if err != nil {
		return Breakeven{}, err
	}
	target := float64(defaultBreakevenTarget)
	if ok, err := store.Decode(raw, &target); err != nil {
		return Breakeven{}, err
	} else if !ok {
		target = defaultBreakevenTarget
	}

	sum, err := s.ShiftSummary(ctx)
	if err != nil {
		return Breakeven{}, err
	}
	return Breakeven{
		Target:    target,
		Revenue:   sum.Total,
		CarryOver: math.Max(0, pricing.Round3(target-sum.Total)),
	}, nil
}

func (s *service) SetBreakevenTarget(ctx context.Context, target float64) error {
	return s.st.Write(ctx, breakevenTargetPath, target)
}

func (s *service) AddBreakevenCarryOver(ctx context.Context, carry float64) error {
	if carry <= 0 {
		return nil
	}
	return s.st.AtomicUpdate(ctx, breakevenTargetPath, func(current json.RawMessage) (any, error) {
		// An imported shift lands on a fresh day: base target 25.
		base := 25.0
		if _, err := store.Decode(current, &base); err != nil {
			return nil, err
		}
		return pricing.Round3(base + carry), nil
	})
}

func (s *service) OpeningCash(ctx context.Context) (float64, error) {
	return s.readFloat(ctx, openingCashPath)
}

func (s *service) StartShift(ctx context.Context, openingCash float64) error {
	now, err := s.st.ServerTime(ctx)
	if err != nil {
		return err
	}
	return s.st.Update(ctx, map[string]any{
		shiftStartPath:  now,
		openingCashPath: openingCash,
	})
}

func (s *service) readInt64(ctx context.Context, path string) (int64, error) {
	raw, err := s.st.Get(ctx, path)
	if err != nil {
		return 0, err
	}
	var v int64
	if _, err := store.Decode(raw, &v); err != nil {
		return 0, err
	}
	return v, nil
}

func (s *service) readFloat(ctx context.Context, path string) (float64, error) {
	raw, err := s.st.Get(ctx, path)
	if err != nil {
		return 0, err
	}
	var v float64
	if _, err := store.Decode(raw, &v); err != nil {
		return 0, err
	}
	return v, nil
}
