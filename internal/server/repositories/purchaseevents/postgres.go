package purchaseevents

import (
	"context"
	"fmt"

	"github.com/google/uuid"

	"github.com/obelousov/pixelboard/internal/dbx"
	"github.com/obelousov/pixelboard/internal/server/models"
)

type PostgresRepository struct {
	db dbx.DBTX
}

func NewPostgresRepository(db dbx.DBTX) *PostgresRepository {
	return &PostgresRepository{db: db}
}

func (r *PostgresRepository) Create(ctx context.Context, event *models.PurchaseEvent) (*models.PurchaseEvent, error) {
	if event.ID == "" {
		event.ID = uuid.NewString()
	}
	if event.Status == "" {
		event.Status = models.EventStatusPending
	}

	query :=
		`INSERT INTO purchase_events (id, pixel_id, customer_name, fb_trace_id, status)
		 VALUES ($1, $2, $3, $4, $5)
		 RETURNING created_at
		 `

	err := r.db.QueryRowContext(ctx, query,
		event.ID, event.PixelID, event.CustomerName, event.FBTraceID, event.Status).
		Scan(&event.CreatedAt)

	if err != nil {
		return nil, fmt.Errorf("db error: %w", err)
	}

	return event, nil
}

func (r *PostgresRepository) Count(ctx context.Context, filter *models.EventFilter) (int64, error) {
	query :=
		`SELECT COUNT(*) FROM purchase_events
		 WHERE ($1::timestamptz IS NULL OR created_at >= $1)
		   AND ($2::timestamptz IS NULL OR created_at <= $2)
		   AND ($3 = '' OR status = $3)
		 `

	var count int64
	err := r.db.QueryRowContext(ctx, query,
		dbx.NullTime(filter.From), dbx.NullTime(filter.To), filter.Status).Scan(&count)
	if err != nil {
		return 0, fmt.Errorf("db error: %w", err)
	}

	return count, nil
}

// List returns one page of events, newest first, and the exact total number
// of rows matching the filter regardless of paging.
func (r *PostgresRepository) List(ctx context.Context, filter *models.EventFilter) ([]*models.PurchaseEvent, int64, error) {
	total, err := r.Count(ctx, filter)
	if err != nil {
		return nil, 0, err
	}

	limit := filter.Limit
	if limit <= 0 {
		limit = 10
	}

	query :=
		`SELECT id, pixel_id, customer_name, fb_trace_id, status, created_at
		 FROM purchase_events
		 WHERE ($1::timestamptz IS NULL OR created_at >= $1)
		   AND ($2::timestamptz IS NULL OR created_at <= $2)
		   AND ($3 = '' OR status = $3)
		 ORDER BY created_at DESC
		 LIMIT $4 OFFSET $5
		 `

	rows, err := r.db.QueryContext(ctx, query,
		dbx.NullTime(filter.From), dbx.NullTime(filter.To), filter.Status, limit, filter.Offset)
	if err != nil {
		return nil, 0, fmt.Errorf("db error: %w", err)
	}
	defer rows.Close()

	var result []*models.PurchaseEvent
	for rows.Next() {
		event := &models.PurchaseEvent{}
		if err := rows.Scan(&event.ID, &event.PixelID, &event.CustomerName,
			&event.FBTraceID, &event.Status, &event.CreatedAt); err != nil {
			return nil, 0, fmt.Errorf("db error: %w", err)
		}
		result = append(result, event)
	}

	if err := rows.Err(); err != nil {
		return nil, 0, fmt.Errorf("db error: %w", err)
	}

	return result, total, nil
}
