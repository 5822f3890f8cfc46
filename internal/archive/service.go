package archive

import (
	"context"
	"errors"
	"time"

	"go.uber.org/zap"

	"karak-pos/internal/logger"
	"karak-pos/internal/order"
	"karak-pos/internal/store"
)

// maxPerRun bounds one archival sweep so a huge backlog cannot stall
// the store.
const maxPerRun = 500

var ErrInvalidCutoff = errors.New("cutoff must be at least one day")

type Service interface {
	// Run moves completed orders older than the cutoff into cold
	// storage and deletes them from the live store. It returns the
	// number of orders moved; callers loop while the count stays at
	// the per-run cap.
	Run(ctx context.Context, olderThanDays int) (int, error)
}

type service struct {
	orders order.Repository
	sink   Repository
	st     store.Store
}

func NewService(orders order.Repository, sink Repository, st store.Store) Service {
	return &service{orders: orders, sink: sink, st: st}
}

func (s *service) Run(ctx context.Context, olderThanDays int) (int, error) {
	log := logger.FromCtx(ctx).With(
		zap.String("layer", "service"),
		zap.String("method", "Run"),
	)

	if olderThanDays < 1 {
		return 0, ErrInvalidCutoff
	}

	// 1. Everything completed at or before the cutoff is eligible.
	now, err := s.st.ServerTime(ctx)
	if err != nil {
		return 0, err
	}
	cutoff := now - int64(olderThanDays)*24*time.Hour.Milliseconds()
	eligible, err := s.orders.CompletedBetween(ctx, 0, cutoff)
	if err != nil {
		return 0, err
	}
	if len(eligible) == 0 {
		return 0, nil
	}
	if len(eligible) > maxPerRun {
		eligible = eligible[:maxPerRun]
	}

	// 2. Copy to cold storage before touching the live store.
	if err := s.sink.SaveBatch(ctx, eligible, now); err != nil {
		return 0, err
	}

	// 3. Drop the archived rows from the live store.
	ids := make([]string, len(eligible))
	for i, o := range eligible {
		ids[i] = o.ID
	}
	if err := s.orders.DeleteMany(ctx, ids); err != nil {
		return 0, err
	}

	log.Info("orders archived",
		zap.Int("count", len(ids)),
		zap.Int64("cutoff", cutoff),
	)
	return len(ids), nil
}
