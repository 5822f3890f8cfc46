package ledger

import (
	"context"
	"encoding/json"
	"math"

	"go.uber.org/zap"

	"karak-pos/internal/logger"
	"karak-pos/internal/store"
)

const thermosPath = "stats/thermos"

// ThermosService tracks fill levels and reheat history of the tea
// thermoses. All mutations go through atomic read-modify-write so
// concurrent devices cannot lose updates.
type ThermosService interface {
	// Init creates the record on first boot and migrates any legacy
	// cup-count schema to the ml schema.
	Init(ctx context.Context) error
	State(ctx context.Context) (ThermosSet, error)
	// Adjust moves a level by deltaML, clamped to [0, maxCapacity].
	Adjust(ctx context.Context, key ThermosKey, deltaML float64) error
	// Drain subtracts the ml consumed by a submitted cart, clamping
	// each thermos at zero. A missing record is left untouched.
	Drain(ctx context.Context, usage ThermosUsage) error
	LogRefillAndReheat(ctx context.Context, key ThermosKey) error
	LogReheat(ctx context.Context, key ThermosKey) error
	ResetRefillCounters(ctx context.Context) error
	// ResetToDefaults writes a fresh full set, used on shift reset.
	ResetToDefaults(ctx context.Context) error
}

type thermosService struct {
	st store.Store
}

func NewThermosService(st store.Store) ThermosService {
	return &thermosService{st: st}
}

// legacyThermos is the old cup-count schema. A record with `remaining`
// set and no `currentLevel_ml` predates ml tracking.
type legacyThermos struct {
	CurrentLevelML *float64 `json:"currentLevel_ml"`
	MaxCapacityML  *float64 `json:"maxCapacity_ml"`
	Refills        int      `json:"refills"`
	LastReheatedAt int64    `json:"lastReheatedAt"`
	Remaining      *float64 `json:"remaining"`
}

func (s *thermosService) Init(ctx context.Context) error {
	return s.st.AtomicUpdate(ctx, thermosPath, func(current json.RawMessage) (any, error) {
		if current == nil {
			return DefaultThermosSet(), nil
		}

		var raw map[string]legacyThermos
		if _, err := store.Decode(current, &raw); err != nil {
			return nil, err
		}

		migrated := ThermosSet{}
		needsMigration := false
		for _, key := range ThermosKeys {
			old, ok := raw[string(key)]
			slot := migrated.Get(key)
			switch {
			case ok && old.Remaining != nil && old.CurrentLevelML == nil:
				// Legacy cup-count record, reset to full on migration.
				needsMigration = true
				*slot = Thermos{
					CurrentLevelML: defaultCapacityML,
					MaxCapacityML:  defaultCapacityML,
					Refills:        old.Refills,
				}
			case ok && old.CurrentLevelML != nil:
				*slot = Thermos{
					CurrentLevelML: *old.CurrentLevelML,
					MaxCapacityML:  derefOr(old.MaxCapacityML, defaultCapacityML),
					Refills:        old.Refills,
					LastReheatedAt: old.LastReheatedAt,
				}
			default:
				needsMigration = true
				*slot = Thermos{CurrentLevelML: defaultCapacityML, MaxCapacityML: defaultCapacityML}
			}
		}
		if !needsMigration {
			return nil, store.ErrAbort
		}
		logger.FromCtx(ctx).Info("migrated thermos record to ml schema")
		return migrated, nil
	})
}

func (s *thermosService) State(ctx context.Context) (ThermosSet, error) {
	raw, err := s.st.Get(ctx, thermosPath)
	if err != nil {
		return ThermosSet{}, err
	}
	var set ThermosSet
	if ok, err := store.Decode(raw, &set); err != nil {
		return ThermosSet{}, err
	} else if !ok {
		return DefaultThermosSet(), nil
	}
	return set, nil
}

func (s *thermosService) Adjust(ctx context.Context, key ThermosKey, deltaML float64) error {
	return s.mutate(ctx, func(set *ThermosSet) error {
		t := set.Get(key)
		if t == nil {
			return ErrUnknownThermos
		}
		t.CurrentLevelML = clamp(t.CurrentLevelML+deltaML, 0, t.MaxCapacityML)
		return nil
	})
}

func (s *thermosService) Drain(ctx context.Context, usage ThermosUsage) error {
	err := s.st.AtomicUpdate(ctx, thermosPath, func(current json.RawMessage) (any, error) {
		var set ThermosSet
		if ok, err := store.Decode(current, &set); err != nil {
			return nil, err
		} else if !ok {
			// Nothing to drain from yet.
			return nil, store.ErrAbort
		}
		set.Karak.CurrentLevelML = math.Max(0, set.Karak.CurrentLevelML-usage.Karak)
		set.Almohib.CurrentLevelML = math.Max(0, set.Almohib.CurrentLevelML-usage.Almohib)
		set.OtherTeas.CurrentLevelML = math.Max(0, set.OtherTeas.CurrentLevelML-usage.OtherTeas)
		return set, nil
	})
	if err != nil {
		logger.FromCtx(ctx).Error("thermos drain failed", zap.Error(err))
	}
	return err
}

func (s *thermosService) LogRefillAndReheat(ctx context.Context, key ThermosKey) error {
	now, err := s.st.ServerTime(ctx)
	if err != nil {
		return err
	}
	return s.mutate(ctx, func(set *ThermosSet) error {
		t := set.Get(key)
		if t == nil {
			return ErrUnknownThermos
		}
		t.Refills++
		t.LastReheatedAt = now
		return nil
	})
}

func (s *thermosService) LogReheat(ctx context.Context, key ThermosKey) error {
	now, err := s.st.ServerTime(ctx)
	if err != nil {
		return err
	}
	return s.mutate(ctx, func(set *ThermosSet) error {
		t := set.Get(key)
		if t == nil {
			return ErrUnknownThermos
		}
		t.LastReheatedAt = now
		return nil
	})
}

func (s *thermosService) ResetRefillCounters(ctx context.Context) error {
	return s.mutate(ctx, func(set *ThermosSet) error {
		set.Karak.Refills = 0
		set.Almohib.Refills = 0
		set.OtherTeas.Refills = 0
		return nil
	})
}

func (s *thermosService) ResetToDefaults(ctx context.Context) error {
	return s.st.Write(ctx, thermosPath, DefaultThermosSet())
}

// mutate applies fn to the current record, skipping the write when no
// record exists yet.
func (s *thermosService) mutate(ctx context.Context, fn func(*ThermosSet) error) error {
	return s.st.AtomicUpdate(ctx, thermosPath, func(current json.RawMessage) (any, error) {
		var set ThermosSet
		if ok, err := store.Decode(current, &set); err != nil {
			return nil, err
		} else if !ok {
			return nil, store.ErrAbort
		}
		if err := fn(&set); err != nil {
			return nil, err
		}
		return set, nil
	})
}

func clamp(v, lo, hi float64) float64 {
	return math.Max(lo, math.Min(hi, v))
}

func derefOr(p *float64, def float64) float64 {
	if p == nil {
		return def
	}
	return *p
}
