// Package services contains the application services of the Pixelboard
// server: user row access, token issuance, event aggregation, and CSV
// exports.
package services

import (
	"context"

	"github.com/obelousov/pixelboard/internal/server/models"
	"github.com/obelousov/pixelboard/internal/server/repositories/repomanager"
)

// UserService exposes the user table as plain row operations. Credential
// verification deliberately does not happen here: the dashboard's session
// layer owns it, the server is a pass-through row store.
type UserService struct {
	repos repomanager.RepositoryManager
}

func NewUserService(m repomanager.RepositoryManager) *UserService {
	return &UserService{repos: m}
}

func (s *UserService) Create(ctx context.Context, user *models.User) (*models.User, error) {
	return s.repos.Users().Create(ctx, user)
}

func (s *UserService) GetByID(ctx context.Context, id string) (*models.User, error) {
	return s.repos.Users().GetByID(ctx, id)
}

func (s *UserService) ListByEmail(ctx context.Context, email string) ([]*models.User, error) {
	return s.repos.Users().ListByEmail(ctx, email)
}

func (s *UserService) Update(ctx context.Context, id string, patch *models.UserPatch) (*models.User, error) {
	return s.repos.Users().Update(ctx, id, patch)
}
