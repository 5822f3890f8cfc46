package shift

import (
	"context"

	"go.uber.org/zap"

	"karak-pos/internal/ledger"
	"karak-pos/internal/logger"
	"karak-pos/internal/loyalty"
	"karak-pos/internal/report"
	"karak-pos/internal/store"
)

type Service interface {
	// Export captures the current shift as a portable snapshot.
	Export(ctx context.Context) (*Snapshot, error)
	// Import merges a snapshot from another device: loyalty records
	// are restored and the exported shortfall is added to the current
	// breakeven target.
	Import(ctx context.Context, snap Snapshot) error
	// Reset starts a fresh shift: full thermoses, a new shift start
	// stamp and the opening cash float.
	Reset(ctx context.Context, openingCash float64) error
}

type service struct {
	reports report.Service
	loyalty loyalty.Service
	thermos ledger.ThermosService
	st      store.Store
}

func NewService(reports report.Service, loyal loyalty.Service, thermos ledger.ThermosService, st store.Store) Service {
	return &service{reports: reports, loyalty: loyal, thermos: thermos, st: st}
}

func (s *service) Export(ctx context.Context) (*Snapshot, error) {
	log := logger.FromCtx(ctx).With(
		zap.String("layer", "service"),
		zap.String("method", "Export"),
	)

	// 1. Shift totals and order log.
	sum, err := s.reports.ShiftSummary(ctx)
	if err != nil {
		return nil, err
	}

	// 2. Breakeven state, frozen at export time.
	be, err := s.reports.Breakeven(ctx)
	if err != nil {
		return nil, err
	}

	// 3. Loyalty table and thermos levels.
	records, err := s.loyalty.All(ctx)
	if err != nil {
		return nil, err
	}
	thermoses, err := s.thermos.State(ctx)
	if err != nil {
		return nil, err
	}

	now, err := s.st.ServerTime(ctx)
	if err != nil {
		return nil, err
	}

	snap := &Snapshot{
		ExportedAt: now,
		Breakeven: BreakevenState{
			Target:    be.Target,
			Revenue:   be.Revenue,
			CarryOver: be.CarryOver,
		},
		Payments:        sum.ByPayment,
		CompletedOrders: sum.Logs,
		Loyalty:         records,
		Thermoses:       thermoses,
	}
	log.Info("shift exported",
		zap.Int("orders", len(snap.CompletedOrders)),
		zap.Float64("revenue", be.Revenue),
	)
	return snap, nil
}

func (s *service) Import(ctx context.Context, snap Snapshot) error {
	log := logger.FromCtx(ctx).With(
		zap.String("layer", "service"),
		zap.String("method", "Import"),
	)

	// 1. Restore loyalty counters from the exporting device.
	if len(snap.Loyalty) > 0 {
		if err := s.loyalty.Restore(ctx, snap.Loyalty); err != nil {
			return err
		}
	}

	// 2. Carry the exported shortfall into today's target.
	if err := s.reports.AddBreakevenCarryOver(ctx, snap.Breakeven.CarryOver); err != nil {
		return err
	}

	log.Info("shift imported",
		zap.Int("loyalty_records", len(snap.Loyalty)),
		zap.Float64("carry_over", snap.Breakeven.CarryOver),
	)
	return nil
}

func (s *service) Reset(ctx context.Context, openingCash float64) error {
	// 1. Fresh thermoses for the new shift.
	if err := s.thermos.ResetToDefaults(ctx); err != nil {
		return err
	}

	// 2. New shift start stamp and opening cash.
	if err := s.reports.StartShift(ctx, openingCash); err != nil {
		return err
	}

	logger.FromCtx(ctx).Info("shift reset",
		zap.String("layer", "service"),
		zap.Float64("opening_cash", openingCash),
	)
	return nil
}
