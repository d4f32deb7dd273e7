package leadevents

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

func (r *PostgresRepository) Create(ctx context.Context, event *models.LeadEvent) (*models.LeadEvent, error) {
	if event.ID == "" {
		event.ID = uuid.NewString()
	}

	query :=
		`INSERT INTO lead_events (id, pixel_id, page_id, phone_number, click_id)
		 VALUES ($1, $2, $3, $4, $5)
		 RETURNING created_at
		 `

	err := r.db.QueryRowContext(ctx, query,
		event.ID, event.PixelID, event.PageID, event.PhoneNumber, event.ClickID).
		Scan(&event.CreatedAt)

	if err != nil {
		return nil, fmt.Errorf("db error: %w", err)
	}

	return event, nil
}

func (r *PostgresRepository) Count(ctx context.Context, filter *models.EventFilter) (int64, error) {
	query :=
		`SELECT COUNT(*) FROM lead_events
		 WHERE ($1::timestamptz IS NULL OR created_at >= $1)
		   AND ($2::timestamptz IS NULL OR created_at <= $2)
		 `

	var count int64
	err := r.db.QueryRowContext(ctx, query, dbx.NullTime(filter.From), dbx.NullTime(filter.To)).Scan(&count)
	if err != nil {
		return 0, fmt.Errorf("db error: %w", err)
	}

	return count, nil
}

// List returns one page of leads, newest first, and the exact total number
// of rows matching the filter regardless of paging.
func (r *PostgresRepository) List(ctx context.Context, filter *models.EventFilter) ([]*models.LeadEvent, int64, error) {
	total, err := r.Count(ctx, filter)
	if err != nil {
		return nil, 0, err
	}

	limit := filter.Limit
	if limit <= 0 {
		limit = 10
	}

	query :=
		`SELECT id, pixel_id, page_id, phone_number, click_id, created_at
		 FROM lead_events
		 WHERE ($1::timestamptz IS NULL OR created_at >= $1)
		   AND ($2::timestamptz IS NULL OR created_at <= $2)
		 ORDER BY created_at DESC
		 LIMIT $3 OFFSET $4
		 `

	rows, err := r.db.QueryContext(ctx, query,
		dbx.NullTime(filter.From), dbx.NullTime(filter.To), limit, filter.Offset)
	if err != nil {
		return nil, 0, fmt.Errorf("db error: %w", err)
	}
	defer rows.Close()

	var result []*models.LeadEvent
	for rows.Next() {
		event := &models.LeadEvent{}
		if err := rows.Scan(&event.ID, &event.PixelID, &event.PageID,
			&event.PhoneNumber, &event.ClickID, &event.CreatedAt); err != nil {
			return nil, 0, fmt.Errorf("db error: %w", err)
		}
		result = append(result, event)
	}

	if err := rows.Err(); err != nil {
		return nil, 0, fmt.Errorf("db error: %w", err)
	}

	return result, total, nil
}
