package purchaseevents

import (
	"context"

	"github.com/obelousov/pixelboard/internal/server/models"
)

type Repository interface {
	Create(ctx context.Context, event *models.PurchaseEvent) (*models.PurchaseEvent, error)
	Count(ctx context.Context, filter *models.EventFilter) (int64, error)
	List(ctx context.Context, filter *models.EventFilter) ([]*models.PurchaseEvent, int64, error)
}
