// Package remote implements the dashboard's contract with the data service:
// typed row lookups, inserts and partial updates over authenticated HTTP.
package remote

import (
	"context"
	"time"

	"github.com/obelousov/pixelboard/internal/client/models"
)

// Client is the data-service surface the dashboard depends on.
//
// Error contract:
//   - FindUserByEmail returns common.ErrorNotFound when no row matches and
//     common.ErrAmbiguousMatch when more than one does.
//   - CreateUser returns common.ErrorAlreadyExists when the email is taken.
//   - All other failures are transport errors, wrapped.
type Client interface {
	FindUserByEmail(ctx context.Context, email string) (*models.User, error)
	FindUserByID(ctx context.Context, id string) (*models.User, error)
	CreateUser(ctx context.Context, email string, name string, passwordHash string) (*models.User, error)
	UpdateUser(ctx context.Context, id string, email *string, name *string, passwordHash *string) (*models.User, error)

	CountLeadEvents(ctx context.Context, from time.Time, to time.Time) (int64, error)
	CountPurchaseEvents(ctx context.Context, status string, from time.Time, to time.Time) (int64, error)
	ListLeadEvents(ctx context.Context, query *models.EventQuery) (*models.LeadEventPage, error)
	ListPurchaseEvents(ctx context.Context, query *models.EventQuery) (*models.PurchaseEventPage, error)
	GetEventStats(ctx context.Context, from time.Time, to time.Time) (*models.EventStats, error)
	GetPixelCredentials(ctx context.Context) (*models.PixelCredential, error)
	ListWebhooks(ctx context.Context) ([]*models.Webhook, error)
	RequestEventsExport(ctx context.Context, query *models.EventQuery) (string, error)

	Ping(ctx context.Context) error
	Close() error
}
