package order

import (
	"context"
	"encoding/json"
	"time"

	"github.com/google/uuid"
	"go.uber.org/zap"

	"karak-pos/internal/alert"
	"karak-pos/internal/ledger"
	"karak-pos/internal/logger"
	"karak-pos/internal/loyalty"
	"karak-pos/internal/pricing"
	"karak-pos/internal/store"
)

const (
	autoSeparatorGuardPath = "stats/lastAutoSeparatorAt"
	autoSeparatorIdle      = 2 * time.Minute
)

type Service interface {
	// SubmitCart prices and persists a cart as one batch. Stock
	// depletion (thermos ml, paper cups, syrup) is best-effort: a
	// failed decrement is logged but never fails the sale.
	SubmitCart(ctx context.Context, entries []CartEntry, plate, notes string) ([]Order, error)
	MarkReady(ctx context.Context, id string) error
	// CompleteGroup settles a ready group with one payment method and
	// a single completion timestamp. It returns the loyalty milestones
	// crossed by the plates in the group, if any.
	CompleteGroup(ctx context.Context, ids []string, method PaymentMethod) ([]loyalty.Milestone, error)
	// Delete removes an order, permitted only while preparing. Stock
	// decrements made at submission are not reversed.
	Delete(ctx context.Context, id string) error
	// UpdatePlateNotes rewrites plate and notes on every item sharing
	// the order's batch.
	UpdatePlateNotes(ctx context.Context, id, plate, notes string) error
	Board(ctx context.Context) (Board, error)
	List(ctx context.Context) ([]Order, error)
	// EnsureAutoSeparator closes the open group with an automatic
	// separator once the counter has been idle past the threshold.
	// Returns true when a separator was inserted.
	EnsureAutoSeparator(ctx context.Context) (bool, error)
}

type service struct {
	repo      Repository
	costs     pricing.Service
	thermos   ledger.ThermosService
	inventory ledger.InventoryService
	loyalty   loyalty.Service
	alerts    alert.Service
	st        store.Store
}

func NewService(
	repo Repository,
	costs pricing.Service,
	thermos ledger.ThermosService,
	inventory ledger.InventoryService,
	loyal loyalty.Service,
	alerts alert.Service,
	st store.Store,
) Service {
	return &service{
		repo:      repo,
		costs:     costs,
		thermos:   thermos,
		inventory: inventory,
		loyalty:   loyal,
		alerts:    alerts,
		st:        st,
	}
}

func (s *service) SubmitCart(ctx context.Context, entries []CartEntry, plate, notes string) ([]Order, error) {
	log := logger.FromCtx(ctx).With(
		zap.String("layer", "service"),
		zap.String("method", "SubmitCart"),
		zap.Int("entry_count", len(entries)),
	)

	if len(entries) == 0 {
		return nil, ErrEmptyCart
	}

	// 1. Load the live cost table so COGS reflects current prices.
	costs, err := s.costs.Costs(ctx)
	if err != nil {
		return nil, err
	}

	now, err := s.st.ServerTime(ctx)
	if err != nil {
		return nil, err
	}

	// 2. Build the batch. Entries get strictly increasing timestamps
	// so cart order, separators included, survives the createdAt sort.
	batchID := uuid.New().String()
	orders := make([]Order, 0, len(entries))
	for i, e := range entries {
		o := Order{
			CreatedAt:    now + int64(i),
			BatchID:      batchID,
			LicensePlate: plate,
			Notes:        notes,
		}
		if e.Separator {
			o.Type = TypeSeparator
		} else {
			q, err := pricing.PriceItem(e.Attrs, e.Quantity, costs)
			if err != nil {
				return nil, err
			}
			o.Type = TypeItem
			o.Status = StatusPreparing
			o.Quantity = e.Quantity
			o.UnitPrice = q.UnitPrice
			o.TotalPrice = q.TotalPrice
			o.TotalCost = q.TotalCost
			applyAttrs(&o, e.Attrs)
		}
		orders = append(orders, o)
	}

	// 3. Persist.
	for i := range orders {
		id, err := s.repo.Create(ctx, orders[i])
		if err != nil {
			return nil, err
		}
		orders[i].ID = id
	}

	log = log.With(zap.String("batch_id", batchID))
	log.Info("cart submitted")

	// 4. Weekly plate note.
	if plate != "" {
		if err := s.loyalty.SaveNote(ctx, plate, notes, time.UnixMilli(now)); err != nil {
			log.Warn("plate note save failed", zap.Error(err))
		}
	}

	// 5. Deplete stock for what was just sold.
	s.depleteStock(ctx, log, orders)

	// 6. Tell the other devices.
	s.alerts.Publish(ctx, alert.TypePlaced, "New order placed")

	return orders, nil
}

// depleteStock mirrors a submitted batch into the thermos and
// inventory ledgers. Lemon is brewed per cup, so it draws no thermos
// ml; glass and paper hot drinks alike consume a paper cup count per
// the stall's counting convention.
func (s *service) depleteStock(ctx context.Context, log *zap.Logger, orders []Order) {
	var usage ledger.ThermosUsage
	cupsUsed := 0
	syrupBottles := 0.0

	for _, o := range orders {
		if !o.IsItem() {
			continue
		}
		if o.CupType != "" {
			ml := float64(pricing.CupSizesML[o.CupType] * o.Quantity)
			switch o.DrinkType {
			case pricing.DrinkKarak:
				usage.Karak += ml
			case pricing.DrinkAlmohib:
				usage.Almohib += ml
			case pricing.DrinkRedTea:
				usage.OtherTeas += ml
			}
		}
		switch o.DrinkType {
		case pricing.DrinkKarak, pricing.DrinkAlmohib, pricing.DrinkRedTea:
			cupsUsed += o.Quantity
		}
		if o.ColdDrinkName == pricing.ColdPassionMojito ||
			o.ColdDrinkName == pricing.ColdBlueMojito ||
			o.ColdDrinkName == pricing.ColdKarkadeh {
			syrupBottles += ledger.SyrupBottlesPerCup * float64(o.Quantity)
		}
	}

	if usage != (ledger.ThermosUsage{}) {
		if err := s.thermos.Drain(ctx, usage); err != nil {
			log.Warn("thermos drain failed", zap.Error(err))
		}
	}
	if cupsUsed > 0 {
		if err := s.inventory.ConsumePaperCups(ctx, cupsUsed); err != nil {
			log.Warn("paper cup decrement failed", zap.Error(err))
		}
	}
	if syrupBottles > 0 {
		if err := s.inventory.ConsumeSyrup(ctx, syrupBottles); err != nil {
			log.Warn("syrup decrement failed", zap.Error(err))
		}
	}
}

func (s *service) MarkReady(ctx context.Context, id string) error {
	o, err := s.repo.Get(ctx, id)
	if err != nil {
		return err
	}
	if !o.IsItem() || o.Status != StatusPreparing {
		return ErrInvalidTransition
	}
	o.Status = StatusReady
	if err := s.repo.Save(ctx, *o); err != nil {
		return err
	}
	s.alerts.Publish(ctx, alert.TypeReady, "Order marked ready")
	return nil
}

func (s *service) CompleteGroup(ctx context.Context, ids []string, method PaymentMethod) ([]loyalty.Milestone, error) {
	log := logger.FromCtx(ctx).With(
		zap.String("layer", "service"),
		zap.String("method", "CompleteGroup"),
		zap.Int("order_count", len(ids)),
	)

	if len(ids) == 0 {
		return nil, ErrEmptyGroup
	}
	if !method.Valid() {
		return nil, ErrInvalidPayment
	}

	// 1. Load and validate every order before touching any of them.
	orders := make([]Order, 0, len(ids))
	for _, id := range ids {
		o, err := s.repo.Get(ctx, id)
		if err != nil {
			return nil, err
		}
		if !o.IsItem() || o.Status != StatusReady {
			return nil, ErrInvalidTransition
		}
		orders = append(orders, *o)
	}

	// 2. One timestamp and one payment method for the whole group.
	now, err := s.st.ServerTime(ctx)
	if err != nil {
		return nil, err
	}
	for i := range orders {
		orders[i].Status = StatusCompleted
		orders[i].PaymentMethod = method
		orders[i].CompletedAt = now
	}
	if err := s.repo.SaveAll(ctx, orders); err != nil {
		return nil, err
	}
	log.Info("group completed", zap.String("payment_method", string(method)))

	// 3. Count at most one visit per plate for this shift.
	seen := map[string]bool{}
	var milestones []loyalty.Milestone
	for _, o := range orders {
		p := o.LicensePlate
		if p == "" || seen[p] {
			continue
		}
		seen[p] = true
		count, err := s.loyalty.RecordVisit(ctx, p, time.UnixMilli(now))
		if err != nil {
			log.Warn("loyalty visit failed", zap.Error(err), zap.String("plate", p))
			continue
		}
		if loyalty.IsMilestone(count) {
			milestones = append(milestones, loyalty.Milestone{Plate: p, Count: count})
		}
	}

	return milestones, nil
}

func (s *service) Delete(ctx context.Context, id string) error {
	o, err := s.repo.Get(ctx, id)
	if err != nil {
		return err
	}
	if o.Status != StatusPreparing {
		return ErrNotPreparing
	}
	return s.repo.Delete(ctx, id)
}

func (s *service) UpdatePlateNotes(ctx context.Context, id, plate, notes string) error {
	o, err := s.repo.Get(ctx, id)
	if err != nil {
		return err
	}
	if o.BatchID == "" {
		o.LicensePlate = plate
		o.Notes = notes
		return s.repo.Save(ctx, *o)
	}

	rows, err := s.repo.List(ctx)
	if err != nil {
		return err
	}
	var batch []Order
	for _, r := range rows {
		if r.BatchID == o.BatchID && r.IsItem() {
			r.LicensePlate = plate
			r.Notes = notes
			batch = append(batch, r)
		}
	}
	return s.repo.SaveAll(ctx, batch)
}

func (s *service) Board(ctx context.Context) (Board, error) {
	rows, err := s.repo.List(ctx)
	if err != nil {
		return Board{}, err
	}
	return Board{
		Preparing: PreparingGroups(rows),
		Ready:     ReadyGroups(rows),
	}, nil
}

func (s *service) List(ctx context.Context) ([]Order, error) {
	return s.repo.List(ctx)
}

func (s *service) EnsureAutoSeparator(ctx context.Context) (bool, error) {
	rows, err := s.repo.List(ctx)
	if err != nil {
		return false, err
	}

	var lastItem, lastSeparator int64
	for _, r := range rows {
		if r.IsItem() && r.CreatedAt > lastItem {
			lastItem = r.CreatedAt
		}
		if r.IsSeparator() && r.CreatedAt > lastSeparator {
			lastSeparator = r.CreatedAt
		}
	}
	if lastItem == 0 || lastSeparator >= lastItem {
		return false, nil
	}

	now, err := s.st.ServerTime(ctx)
	if err != nil {
		return false, err
	}
	if now-lastItem <= autoSeparatorIdle.Milliseconds() {
		return false, nil
	}

	// The guard timestamp is advanced atomically so concurrent devices
	// cannot both insert a separator for the same idle gap.
	won := false
	err = s.st.AtomicUpdate(ctx, autoSeparatorGuardPath, func(current json.RawMessage) (any, error) {
		var last int64
		if _, err := store.Decode(current, &last); err != nil {
			return nil, err
		}
		if now-last <= autoSeparatorIdle.Milliseconds() {
			return nil, store.ErrAbort
		}
		won = true
		return now, nil
	})
	if err != nil || !won {
		return false, err
	}

	_, err = s.repo.Create(ctx, Order{
		Type:      TypeSeparator,
		CreatedAt: now,
		BatchID:   uuid.New().String(),
		Auto:      true,
	})
	if err != nil {
		return false, err
	}
	logger.FromCtx(ctx).Info("auto separator inserted", zap.Int64("idle_ms", now-lastItem))
	return true, nil
}
