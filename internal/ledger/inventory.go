package ledger

import (
	"context"
	"encoding/json"
	"math"
	"strings"

	"karak-pos/internal/store"
)

const inventoryPrefix = "stats/inventory"

// Well-known inventory keys. Other items are keyed by SafeID of their
// English name.
const (
	InvPaperCups = "paperCups"
	InvSyrups    = "syrups__all_flavors_"
)

// SyrupBottlesPerCup is the syrup drawn per mojito or karkadeh cup.
// One bottle makes 25 cups.
const SyrupBottlesPerCup = 0.04

// SafeID normalizes an item name into a storage key.
func SafeID(name string) string {
	var b strings.Builder
	for _, r := range name {
		if (r >= 'a' && r <= 'z') || (r >= 'A' && r <= 'Z') || (r >= '0' && r <= '9') {
			b.WriteRune(r)
		} else {
			b.WriteByte('_')
		}
	}
	return strings.ToLower(b.String())
}

// InventoryService tracks counted stock levels. Levels are plain
// numbers keyed under stats/inventory.
type InventoryService interface {
	Levels(ctx context.Context) (map[string]float64, error)
	Level(ctx context.Context, key string) (float64, error)
	// Add increments a stock level, creating it at qty if missing.
	Add(ctx context.Context, key string, qty float64) error
	// ConsumePaperCups decrements the cup count. The level is allowed
	// to go negative to track a deficit when stock was never counted.
	ConsumePaperCups(ctx context.Context, qty int) error
	// ConsumeSyrup decrements the syrup bottle count, clamped at zero.
	ConsumeSyrup(ctx context.Context, bottles float64) error
}

type inventoryService struct {
	st store.Store
}

func NewInventoryService(st store.Store) InventoryService {
	return &inventoryService{st: st}
}

func (s *inventoryService) Levels(ctx context.Context) (map[string]float64, error) {
	snap, err := s.st.List(ctx, inventoryPrefix)
	if err != nil {
		return nil, err
	}
	levels := make(map[string]float64, len(snap))
	for path, raw := range snap {
		var v float64
		if ok, err := store.Decode(raw, &v); err != nil || !ok {
			continue
		}
		levels[strings.TrimPrefix(path, inventoryPrefix+"/")] = v
	}
	return levels, nil
}

func (s *inventoryService) Level(ctx context.Context, key string) (float64, error) {
	raw, err := s.st.Get(ctx, inventoryPrefix+"/"+key)
	if err != nil {
		return 0, err
	}
	var v float64
	if _, err := store.Decode(raw, &v); err != nil {
		return 0, err
	}
	return v, nil
}

func (s *inventoryService) Add(ctx context.Context, key string, qty float64) error {
	return s.adjust(ctx, key, qty, false)
}

func (s *inventoryService) ConsumePaperCups(ctx context.Context, qty int) error {
	if qty <= 0 {
		return nil
	}
	return s.adjust(ctx, InvPaperCups, -float64(qty), false)
}

func (s *inventoryService) ConsumeSyrup(ctx context.Context, bottles float64) error {
	if bottles <= 0 {
		return nil
	}
	return s.adjust(ctx, InvSyrups, -bottles, true)
}

func (s *inventoryService) adjust(ctx context.Context, key string, delta float64, clampAtZero bool) error {
	return s.st.AtomicUpdate(ctx, inventoryPrefix+"/"+key, func(current json.RawMessage) (any, error) {
		var v float64
		if _, err := store.Decode(current, &v); err != nil {
			return nil, err
		}
		v += delta
		if clampAtZero {
			v = math.Max(0, v)
		}
		return v, nil
	})
}
