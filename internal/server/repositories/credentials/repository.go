package credentials

import (
	"context"

	"github.com/obelousov/pixelboard/internal/server/models"
)

type Repository interface {
	Get(ctx context.Context) (*models.PixelCredential, error)
	Upsert(ctx context.Context, cred *models.PixelCredential) (*models.PixelCredential, error)
	Delete(ctx context.Context) error
}
