package order

import (
	"context"
	"strings"

	"github.com/google/uuid"

	"karak-pos/internal/store"
)

const prefix = "orders"

// Repository persists order entries in the shared store. All listing
// methods return rows sorted by SortRows.
type Repository interface {
	Create(ctx context.Context, o Order) (string, error)
	Get(ctx context.Context, id string) (*Order, error)
	List(ctx context.Context) ([]Order, error)
	Save(ctx context.Context, o Order) error
	// SaveAll writes every order in one multi-path update so a group
	// completion lands atomically.
	SaveAll(ctx context.Context, orders []Order) error
	Delete(ctx context.Context, id string) error
	DeleteMany(ctx context.Context, ids []string) error
	CompletedBetween(ctx context.Context, startMillis, endMillis int64) ([]Order, error)
	CompletedSince(ctx context.Context, startMillis int64) ([]Order, error)
}

type repository struct {
	st store.Store
}

func NewRepository(st store.Store) Repository {
	return &repository{st: st}
}

func (r *repository) Create(ctx context.Context, o Order) (string, error) {
	id := uuid.New().String()
	o.ID = id
	if err := r.st.Write(ctx, prefix+"/"+id, o); err != nil {
		return "", err
	}
	return id, nil
}

func (r *repository) Get(ctx context.Context, id string) (*Order, error) {
	raw, err := r.st.Get(ctx, prefix+"/"+id)
	if err != nil {
		return nil, err
	}
	var o Order
	if ok, err := store.Decode(raw, &o); err != nil {
		return nil, err
	} else if !ok {
		return nil, ErrNotFound
	}
	o.ID = id
	return &o, nil
}

func (r *repository) List(ctx context.Context) ([]Order, error) {
	snap, err := r.st.List(ctx, prefix)
	if err != nil {
		return nil, err
	}
	rows := make([]Order, 0, len(snap))
	for path, raw := range snap {
		var o Order
		if ok, err := store.Decode(raw, &o); err != nil || !ok {
			continue
		}
		o.ID = strings.TrimPrefix(path, prefix+"/")
		rows = append(rows, o)
	}
	SortRows(rows)
	return rows, nil
}

func (r *repository) Save(ctx context.Context, o Order) error {
	if o.ID == "" {
		return ErrNotFound
	}
	return r.st.Write(ctx, prefix+"/"+o.ID, o)
}

func (r *repository) SaveAll(ctx context.Context, orders []Order) error {
	values := make(map[string]any, len(orders))
	for _, o := range orders {
		if o.ID == "" {
			return ErrNotFound
		}
		values[prefix+"/"+o.ID] = o
	}
	return r.st.Update(ctx, values)
}

func (r *repository) Delete(ctx context.Context, id string) error {
	return r.st.Update(ctx, map[string]any{prefix + "/" + id: nil})
}

func (r *repository) DeleteMany(ctx context.Context, ids []string) error {
	values := make(map[string]any, len(ids))
	for _, id := range ids {
		values[prefix+"/"+id] = nil
	}
	return r.st.Update(ctx, values)
}

func (r *repository) CompletedBetween(ctx context.Context, startMillis, endMillis int64) ([]Order, error) {
	return r.completed(ctx, func(o Order) bool {
		return o.CompletedAt >= startMillis && o.CompletedAt <= endMillis
	})
}

func (r *repository) CompletedSince(ctx context.Context, startMillis int64) ([]Order, error) {
	return r.completed(ctx, func(o Order) bool {
		return o.CompletedAt >= startMillis
	})
}

func (r *repository) completed(ctx context.Context, match func(Order) bool) ([]Order, error) {
	rows, err := r.List(ctx)
	if err != nil {
		return nil, err
	}
	var out []Order
	for _, o := range rows {
		if o.Status == StatusCompleted && match(o) {
			out = append(out, o)
		}
	}
	return out, nil
}
