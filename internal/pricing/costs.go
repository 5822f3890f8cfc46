package pricing

import (
	"context"
	"encoding/json"
	"fmt"

	"karak-pos/internal/store"
)

const costsPath = "settings/costs"

// Service exposes the runtime unit-cost table. Overrides are persisted
// as a single document so a read always sees a consistent table.
type Service interface {
	Costs(ctx context.Context) (map[string]float64, error)
	UpdateCost(ctx context.Context, item string, cost float64) error
}

type service struct {
	st store.Store
}

func NewService(st store.Store) Service {
	return &service{st: st}
}

// Costs returns the factory defaults merged with any persisted
// overrides. The returned map is owned by the caller.
func (s *service) Costs(ctx context.Context) (map[string]float64, error) {
	merged := make(map[string]float64, len(DefaultUnitCosts))
	for k, v := range DefaultUnitCosts {
		merged[k] = v
	}

	raw, err := s.st.Get(ctx, costsPath)
	if err != nil {
		return nil, fmt.Errorf("load cost overrides: %w", err)
	}
	var overrides map[string]float64
	if ok, err := store.Decode(raw, &overrides); err != nil {
		return nil, fmt.Errorf("decode cost overrides: %w", err)
	} else if !ok {
		return merged, nil
	}
	for k, v := range overrides {
		merged[k] = v
	}
	return merged, nil
}

// UpdateCost persists an override for one item, rounded to 3 decimals.
func (s *service) UpdateCost(ctx context.Context, item string, cost float64) error {
	if item == "" {
		return ErrInvalidInput
	}
	if cost < 0 {
		return ErrInvalidCostValue
	}
	return s.st.AtomicUpdate(ctx, costsPath, func(current json.RawMessage) (any, error) {
		overrides := map[string]float64{}
		if _, err := store.Decode(current, &overrides); err != nil {
			return nil, err
		}
		overrides[item] = Round3(cost)
		return overrides, nil
	})
}
