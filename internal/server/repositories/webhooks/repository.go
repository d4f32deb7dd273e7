package webhooks

import (
	"context"

	"github.com/obelousov/pixelboard/internal/server/models"
)

type Repository interface {
	Create(ctx context.Context, webhook *models.Webhook) (*models.Webhook, error)
	List(ctx context.Context) ([]*models.Webhook, error)
}
