package archive

import (
	"context"
	"database/sql"
	"encoding/json"

	"karak-pos/internal/order"
)

// Repository is the cold-storage sink for completed orders. The shared
// store only keeps the live shift; old nights land in Postgres.
type Repository interface {
	SaveBatch(ctx context.Context, orders []order.Order, archivedAt int64) error
}

type repository struct {
	db *sql.DB
}

func NewRepository(db *sql.DB) Repository {
	return &repository{db: db}
}

func (r *repository) SaveBatch(ctx context.Context, orders []order.Order, archivedAt int64) error {
	if len(orders) == 0 {
		return nil
	}

	tx, err := r.db.BeginTx(ctx, nil)
	if err != nil {
		return err
	}

	for _, o := range orders {
		payload, err := json.Marshal(o)
		if err != nil {
			tx.Rollback()
			return err
		}
		_, err = tx.ExecContext(ctx, `
			INSERT INTO archived_orders (id,
			batch_id,
			created_at,
			completed_at,
			payment_method,
			total_price,
			total_cost,
			payload,
			archived_at)
			VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9)
			ON CONFLICT (id) DO NOTHING
		`,
			o.ID, o.BatchID, o.CreatedAt, o.CompletedAt, string(o.PaymentMethod),
			o.TotalPrice, o.TotalCost, payload, archivedAt,
		)
		if err != nil {
			tx.Rollback()
			return err
		}
	}

	return tx.Commit()
}
