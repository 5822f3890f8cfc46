// Package alert fans short-lived counter notifications out to every
// connected device.
package alert

import (
	"context"
	"time"

	"github.com/google/uuid"
	"go.uber.org/zap"

	"karak-pos/internal/logger"
	"karak-pos/internal/store"
)

type Type string

const (
	TypePlaced Type = "placed"
	TypeReady  Type = "ready"
)

// Alert is a transient event under alerts/{id}. Records expire after
// TTL so the tree does not grow without bound.
type Alert struct {
	Type      Type   `json:"type"`
	Message   string `json:"message"`
	CreatedAt int64  `json:"createdAt"`
}

const TTL = 30 * time.Second

type Service interface {
	// Publish writes an alert for all devices. Failures are logged,
	// never surfaced: an order must not fail because a beep did.
	Publish(ctx context.Context, typ Type, message string)
	// Subscribe streams alerts as they are published.
	Subscribe(ctx context.Context) (<-chan Alert, error)
}

type service struct {
	st store.Store
}

func NewService(st store.Store) Service {
	return &service{st: st}
}

func (s *service) Publish(ctx context.Context, typ Type, message string) {
	now, err := s.st.ServerTime(ctx)
	if err != nil {
		logger.FromCtx(ctx).Warn("alert publish failed", zap.Error(err))
		return
	}
	a := Alert{Type: typ, Message: message, CreatedAt: now}
	if err := s.st.WriteTTL(ctx, "alerts/"+uuid.New().String(), a, TTL); err != nil {
		logger.FromCtx(ctx).Warn("alert publish failed", zap.Error(err), zap.String("type", string(typ)))
	}
}

func (s *service) Subscribe(ctx context.Context) (<-chan Alert, error) {
	events, err := s.st.Subscribe(ctx, "alerts")
	if err != nil {
		return nil, err
	}
	out := make(chan Alert, 8)
	go func() {
		defer close(out)
		for ev := range events {
			var a Alert
			if ok, err := store.Decode(ev.Value, &a); err != nil || !ok {
				continue
			}
			select {
			case out <- a:
			case <-ctx.Done():
				return
			}
		}
	}()
	return out, nil
}
