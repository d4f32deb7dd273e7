package webhooks

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

func (r *PostgresRepository) Create(ctx context.Context, webhook *models.Webhook) (*models.Webhook, error) {
	if webhook.ID == "" {
		webhook.ID = uuid.NewString()
	}

	query :=
		`INSERT INTO webhook_urls (id, url)
		 VALUES ($1, $2)
		 RETURNING created_at
		 `

	if err := r.db.QueryRowContext(ctx, query, webhook.ID, webhook.URL).Scan(&webhook.CreatedAt); err != nil {
		return nil, fmt.Errorf("db error: %w", err)
	}

	return webhook, nil
}

func (r *PostgresRepository) List(ctx context.Context) ([]*models.Webhook, error) {
	query :=
		`SELECT id, url, created_at FROM webhook_urls
		 ORDER BY created_at DESC
		 `

	rows, err := r.db.QueryContext(ctx, query)
	if err != nil {
		return nil, fmt.Errorf("db error: %w", err)
	}
	defer rows.Close()

	var result []*models.Webhook
	for rows.Next() {
		webhook := &models.Webhook{}
		if err := rows.Scan(&webhook.ID, &webhook.URL, &webhook.CreatedAt); err != nil {
			return nil, fmt.Errorf("db error: %w", err)
		}
		result = append(result, webhook)
	}

	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("db error: %w", err)
	}

	return result, nil
}
