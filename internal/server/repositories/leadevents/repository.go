package leadevents

import (
	"context"

	"github.com/obelousov/pixelboard/internal/server/models"
)

type Repository interface {
	Create(ctx context.Context, event *models.LeadEvent) (*models.LeadEvent, error)
	Count(ctx context.Context, filter *models.EventFilter) (int64, error)
	List(ctx context.Context, filter *models.EventFilter) ([]*models.LeadEvent, int64, error)
}
