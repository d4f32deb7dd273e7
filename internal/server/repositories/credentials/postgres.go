package credentials

import (
	"context"
	"database/sql"
	"errors"
	"fmt"

	"github.com/google/uuid"

	"github.com/obelousov/pixelboard/internal/common"
	"github.com/obelousov/pixelboard/internal/dbx"
	"github.com/obelousov/pixelboard/internal/server/models"
)

// The tenant has a single credential row; Get always returns the most
// recently created one.
type PostgresRepository struct {
	db dbx.DBTX
}

func NewPostgresRepository(db dbx.DBTX) *PostgresRepository {
	return &PostgresRepository{db: db}
}

func (r *PostgresRepository) Get(ctx context.Context) (*models.PixelCredential, error) {
	query :=
		`SELECT id, pixel_id, access_token, page_id, instruction_link, created_at
		 FROM pixel_credentials
		 ORDER BY created_at DESC
		 LIMIT 1
		 `

	cred := &models.PixelCredential{}
	err := r.db.QueryRowContext(ctx, query).
		Scan(&cred.ID, &cred.PixelID, &cred.AccessToken, &cred.PageID, &cred.InstructionLink, &cred.CreatedAt)

	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, common.ErrorNotFound
		}
		return nil, fmt.Errorf("db error: %w", err)
	}

	return cred, nil
}

func (r *PostgresRepository) Upsert(ctx context.Context, cred *models.PixelCredential) (*models.PixelCredential, error) {
	if cred.ID == "" {
		existing, err := r.Get(ctx)
		switch {
		case err == nil:
			cred.ID = existing.ID
		case errors.Is(err, common.ErrorNotFound):
			cred.ID = uuid.NewString()
		default:
			return nil, err
		}
	}

	query :=
		`INSERT INTO pixel_credentials (id, pixel_id, access_token, page_id, instruction_link)
		 VALUES ($1, $2, $3, $4, $5)
		 ON CONFLICT (id) DO UPDATE SET
		   pixel_id = excluded.pixel_id,
		   access_token = excluded.access_token,
		   page_id = excluded.page_id,
		   instruction_link = excluded.instruction_link
		 RETURNING created_at
		 `

	err := r.db.QueryRowContext(ctx, query,
		cred.ID, cred.PixelID, cred.AccessToken, cred.PageID, cred.InstructionLink).
		Scan(&cred.CreatedAt)

	if err != nil {
		return nil, fmt.Errorf("db error: %w", err)
	}

	return cred, nil
}

func (r *PostgresRepository) Delete(ctx context.Context) error {
	if _, err := r.db.ExecContext(ctx, `DELETE FROM pixel_credentials`); err != nil {
		return fmt.Errorf("db error: %w", err)
	}
	return nil
}
