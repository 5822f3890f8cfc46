package loyalty

import (
	"context"
	"encoding/json"
	"errors"
	"strings"
	"time"

	"karak-pos/internal/shiftclock"
	"karak-pos/internal/store"
)

var ErrInvalidPlate = errors.New("license plate required")

// Service tracks repeat visits per license plate and the weekly notes
// attached to a plate.
type Service interface {
	// RecordVisit counts a completed visit for a plate, at most once
	// per shift. It returns the count after the visit.
	RecordVisit(ctx context.Context, plate string, at time.Time) (int, error)
	Get(ctx context.Context, plate string) (Record, error)
	All(ctx context.Context) (map[string]Record, error)
	// Restore overwrites the whole loyalty table, used by shift import.
	Restore(ctx context.Context, records map[string]Record) error

	SaveNote(ctx context.Context, plate, note string, at time.Time) error
	// NoteForWeek returns the note for the plate's current week, if
	// any.
	NoteForWeek(ctx context.Context, plate string, at time.Time) (*PlateNote, error)
}

type service struct {
	st store.Store
}

func NewService(st store.Store) Service {
	return &service{st: st}
}

func (s *service) RecordVisit(ctx context.Context, plate string, at time.Time) (int, error) {
	if plate == "" {
		return 0, ErrInvalidPlate
	}
	shift := shiftclock.DayKey(at)
	var after int
	err := s.st.AtomicUpdate(ctx, "loyalty/"+plate, func(current json.RawMessage) (any, error) {
		var rec Record
		ok, err := store.Decode(current, &rec)
		if err != nil {
			return nil, err
		}
		if !ok {
			// First visit ever.
			after = 1
			return Record{Count: 1, LastVisitShift: shift}, nil
		}
		if rec.LastVisitShift == shift {
			// Already counted this shift.
			after = rec.Count
			return nil, store.ErrAbort
		}
		rec.Count++
		rec.LastVisitShift = shift
		after = rec.Count
		return rec, nil
	})
	if err != nil {
		return 0, err
	}
	return after, nil
}

func (s *service) Get(ctx context.Context, plate string) (Record, error) {
	raw, err := s.st.Get(ctx, "loyalty/"+plate)
	if err != nil {
		return Record{}, err
	}
	var rec Record
	if _, err := store.Decode(raw, &rec); err != nil {
		return Record{}, err
	}
	return rec, nil
}

func (s *service) All(ctx context.Context) (map[string]Record, error) {
	snap, err := s.st.List(ctx, "loyalty")
	if err != nil {
		return nil, err
	}
	out := make(map[string]Record, len(snap))
	for path, raw := range snap {
		var rec Record
		if ok, err := store.Decode(raw, &rec); err != nil || !ok {
			continue
		}
		out[strings.TrimPrefix(path, "loyalty/")] = rec
	}
	return out, nil
}

func (s *service) Restore(ctx context.Context, records map[string]Record) error {
	values := make(map[string]any, len(records))
	for plate, rec := range records {
		values["loyalty/"+plate] = rec
	}
	return s.st.Update(ctx, values)
}

func (s *service) SaveNote(ctx context.Context, plate, note string, at time.Time) error {
	note = strings.TrimSpace(note)
	if plate == "" || note == "" {
		return nil
	}
	week := shiftclock.WeekKey(at)
	return s.st.Write(ctx, "plateNotes/"+plate+"/"+week, PlateNote{
		Note:      note,
		UpdatedAt: at.UnixMilli(),
	})
}

func (s *service) NoteForWeek(ctx context.Context, plate string, at time.Time) (*PlateNote, error) {
	week := shiftclock.WeekKey(at)
	raw, err := s.st.Get(ctx, "plateNotes/"+plate+"/"+week)
	if err != nil {
		return nil, err
	}
	var n PlateNote
	if ok, err := store.Decode(raw, &n); err != nil || !ok {
		return nil, err
	}
	return &n, nil
}
