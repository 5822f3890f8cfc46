package ledger

import (
	"context"

	"karak-pos/internal/store"
)

const timersPrefix = "stats/ingredientTimers"

const (
	minTimerMinutes = 1
	maxTimerMinutes = 100
)

// TimerService manages the shared brewing countdowns shown on every
// device.
type TimerService interface {
	All(ctx context.Context) (map[TimerType]IngredientTimer, error)
	Start(ctx context.Context, typ TimerType, minutes int) error
	Stop(ctx context.Context, typ TimerType) error
}

type timerService struct {
	st store.Store
}

func NewTimerService(st store.Store) TimerService {
	return &timerService{st: st}
}

func (s *timerService) All(ctx context.Context) (map[TimerType]IngredientTimer, error) {
	out := make(map[TimerType]IngredientTimer, len(timerNames))
	snap, err := s.st.List(ctx, timersPrefix)
	if err != nil {
		return nil, err
	}
	for typ, name := range timerNames {
		timer := IngredientTimer{Name: name}
		if raw, ok := snap[timersPrefix+"/"+string(typ)]; ok {
			if _, err := store.Decode(raw, &timer); err != nil {
				return nil, err
			}
		}
		out[typ] = timer
	}
	return out, nil
}

func (s *timerService) Start(ctx context.Context, typ TimerType, minutes int) error {
	name, ok := timerNames[typ]
	if !ok {
		return ErrUnknownTimer
	}
	if minutes < minTimerMinutes {
		minutes = minTimerMinutes
	} else if minutes > maxTimerMinutes {
		minutes = maxTimerMinutes
	}
	now, err := s.st.ServerTime(ctx)
	if err != nil {
		return err
	}
	end := now + int64(minutes)*60*1000
	return s.st.Write(ctx, timersPrefix+"/"+string(typ), IngredientTimer{
		Name:     name,
		EndTime:  &end,
		Duration: minutes,
	})
}

func (s *timerService) Stop(ctx context.Context, typ TimerType) error {
	name, ok := timerNames[typ]
	if !ok {
		return ErrUnknownTimer
	}
	return s.st.Write(ctx, timersPrefix+"/"+string(typ), IngredientTimer{Name: name})
}
