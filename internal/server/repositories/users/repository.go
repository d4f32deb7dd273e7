package users

import (
	"context"

	"github.com/obelousov/pixelboard/internal/server/models"
)

type Repository interface {
	Create(ctx context.Context, user *models.User) (*models.User, error)
	GetByID(ctx context.Context, id string) (*models.User, error)
	ListByEmail(ctx context.Context, email string) ([]*models.User, error)
	Update(ctx context.Context, id string, patch *models.UserPatch) (*models.User, error)
}
