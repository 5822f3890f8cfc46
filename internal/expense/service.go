package expense

import (
	"context"
	"errors"
	"sort"
	"strings"
	"time"

	"github.com/google/uuid"
	"go.uber.org/zap"

	"karak-pos/internal/ledger"
	"karak-pos/internal/logger"
	"karak-pos/internal/pricing"
	"karak-pos/internal/shiftclock"
	"karak-pos/internal/store"
)

const (
	expensesPrefix = "expenses"
	wastePrefix    = "waste_logs"

	// Daily essentials are consumed the day they are bought, so a
	// restock in that category never lands in counted inventory.
	dailyCategory = "Daily"
)

var ErrInvalidAmount = errors.New("invalid amount")

type Service interface {
	Add(ctx context.Context, e Expense) (*Expense, error)
	List(ctx context.Context) ([]Expense, error)
	Delete(ctx context.Context, id string) error
	// TodayOperationalTotal sums the current logical day's expenses
	// (05:00 cutoff) excluding inventory purchases, for the net profit
	// line.
	TodayOperationalTotal(ctx context.Context) (float64, error)

	// Restock logs the purchase as an expense and pushes the quantity
	// into counted inventory, optionally refreshing the unit cost.
	Restock(ctx context.Context, r Restock) (*Expense, error)

	// LogWaste values the loss at the item's current unit cost.
	LogWaste(ctx context.Context, item string, qty float64) (*WasteLog, error)
	ListWaste(ctx context.Context) ([]WasteLog, error)
}

type service struct {
	st        store.Store
	costs     pricing.Service
	inventory ledger.InventoryService
	loc       *time.Location
}

func NewService(st store.Store, costs pricing.Service, inventory ledger.InventoryService) Service {
	return &service{st: st, costs: costs, inventory: inventory, loc: time.Local}
}

func (s *service) Add(ctx context.Context, e Expense) (*Expense, error) {
	if e.Cost <= 0 {
		return nil, ErrInvalidAmount
	}
	if e.Type == "" {
		e.Type = TypeOperational
	}
	if e.Timestamp == 0 {
		now, err := s.st.ServerTime(ctx)
		if err != nil {
			return nil, err
		}
		e.Timestamp = now
	}
	e.ID = uuid.New().String()
	if err := s.st.Write(ctx, expensesPrefix+"/"+e.ID, e); err != nil {
		return nil, err
	}
	return &e, nil
}

func (s *service) List(ctx context.Context) ([]Expense, error) {
	snap, err := s.st.List(ctx, expensesPrefix)
	if err != nil {
		return nil, err
	}
	out := make([]Expense, 0, len(snap))
	for path, raw := range snap {
		var e Expense
		if ok, err := store.Decode(raw, &e); err != nil || !ok {
			continue
		}
		e.ID = strings.TrimPrefix(path, expensesPrefix+"/")
		out = append(out, e)
	}
	sortByTimestamp(out, func(e Expense) int64 { return e.Timestamp })
	return out, nil
}

func (s *service) Delete(ctx context.Context, id string) error {
	return s.st.Update(ctx, map[string]any{expensesPrefix + "/" + id: nil})
}

func (s *service) TodayOperationalTotal(ctx context.Context) (float64, error) {
	expenses, err := s.List(ctx)
	if err != nil {
		return 0, err
	}
	now, err := s.st.ServerTime(ctx)
	if err != nil {
		return 0, err
	}
	today := shiftclock.DayKeyMillis(now, s.loc)
	var total float64
	for _, e := range expenses {
		if e.Type == TypeInventory {
			continue
		}
		if shiftclock.DayKeyMillis(e.Timestamp, s.loc) == today {
			total += e.Cost
		}
	}
	return total, nil
}

func (s *service) Restock(ctx context.Context, r Restock) (*Expense, error) {
	e, err := s.Add(ctx, Expense{
		Category: r.Category,
		NameEn:   r.NameEn,
		NameAr:   r.NameAr,
		Cost:     r.Cost,
		Type:     TypeOperational,
	})
	if err != nil {
		return nil, err
	}

	log := logger.FromCtx(ctx).With(zap.String("item", r.NameEn))

	if r.UpdateUnitCost && r.Qty > 0 {
		if err := s.costs.UpdateCost(ctx, r.NameEn, r.Cost/r.Qty); err != nil {
			log.Warn("unit cost update failed", zap.Error(err))
		}
	}
	if r.Qty > 0 && r.Category != dailyCategory {
		if err := s.inventory.Add(ctx, ledger.SafeID(r.NameEn), r.Qty); err != nil {
			log.Warn("inventory increment failed", zap.Error(err))
		}
	}
	return e, nil
}

func (s *service) LogWaste(ctx context.Context, item string, qty float64) (*WasteLog, error) {
	if item == "" || qty == 0 {
		return nil, ErrInvalidAmount
	}
	costs, err := s.costs.Costs(ctx)
	if err != nil {
		return nil, err
	}
	now, err := s.st.ServerTime(ctx)
	if err != nil {
		return nil, err
	}
	w := WasteLog{
		ID:        uuid.New().String(),
		Item:      item,
		Qty:       qty,
		Cost:      costs[item] * qty,
		Timestamp: now,
		Note:      "Manual Waste Log",
	}
	if err := s.st.Write(ctx, wastePrefix+"/"+w.ID, w); err != nil {
		return nil, err
	}
	return &w, nil
}

func (s *service) ListWaste(ctx context.Context) ([]WasteLog, error) {
	snap, err := s.st.List(ctx, wastePrefix)
	if err != nil {
		return nil, err
	}
	out := make([]WasteLog, 0, len(snap))
	for path, raw := range snap {
		var w WasteLog
		if ok, err := store.Decode(raw, &w); err != nil || !ok {
			continue
		}
		w.ID = strings.TrimPrefix(path, wastePrefix+"/")
		out = append(out, w)
	}
	sortByTimestamp(out, func(w WasteLog) int64 { return w.Timestamp })
	return out, nil
}

// sortByTimestamp orders newest first for display.
func sortByTimestamp[T any](items []T, ts func(T) int64) {
	sort.Slice(items, func(i, j int) bool { return ts(items[i]) > ts(items[j]) })
}
