package services

import (
	"context"
	"database/sql"
	"time"

	"github.com/obelousov/pixelboard/internal/dbx"
	"github.com/obelousov/pixelboard/internal/server/models"
	"github.com/obelousov/pixelboard/internal/server/repositories/credentials"
	"github.com/obelousov/pixelboard/internal/server/repositories/leadevents"
	"github.com/obelousov/pixelboard/internal/server/repositories/purchaseevents"
	"github.com/obelousov/pixelboard/internal/server/repositories/refreshtokens"
	"github.com/obelousov/pixelboard/internal/server/repositories/users"
	"github.com/obelousov/pixelboard/internal/server/repositories/webhooks"
)

// ---- fake repositories ----

type fakeLeadRepo struct {
	countOut int64
	countErr error
	listOut  []*models.LeadEvent
	listErr  error
	lastSeen *models.EventFilter
}

func (f *fakeLeadRepo) Create(ctx context.Context, e *models.LeadEvent) (*models.LeadEvent, error) {
	return e, nil
}

func (f *fakeLeadRepo) Count(ctx context.Context, filter *models.EventFilter) (int64, error) {
	f.lastSeen = filter
	return f.countOut, f.countErr
}

func (f *fakeLeadRepo) List(ctx context.Context, filter *models.EventFilter) ([]*models.LeadEvent, int64, error) {
	f.lastSeen = filter
	return f.listOut, int64(len(f.listOut)), f.listErr
}

type fakePurchaseRepo struct {
	countByStatus map[string]int64
	listOut       []*models.PurchaseEvent
	listTotal     int64
	listErr       error
	listCalls     []models.EventFilter
}

func (f *fakePurchaseRepo) Create(ctx context.Context, e *models.PurchaseEvent) (*models.PurchaseEvent, error) {
	return e, nil
}

func (f *fakePurchaseRepo) Count(ctx context.Context, filter *models.EventFilter) (int64, error) {
	return f.countByStatus[filter.Status], nil
}

func (f *fakePurchaseRepo) List(ctx context.Context, filter *models.EventFilter) ([]*models.PurchaseEvent, int64, error) {
	f.listCalls = append(f.listCalls, *filter)
	return f.listOut, f.listTotal, f.listErr
}

type fakeCredRepo struct {
	out *models.PixelCredential
	err error
}

func (f *fakeCredRepo) Get(ctx context.Context) (*models.PixelCredential, error) {
	return f.out, f.err
}

func (f *fakeCredRepo) Upsert(ctx context.Context, c *models.PixelCredential) (*models.PixelCredential, error) {
	return c, nil
}

func (f *fakeCredRepo) Delete(ctx context.Context) error { return nil }

type fakeRefreshRepo struct {
	findOut *models.RefreshToken
	findErr error

	created []string
	delErr  error
	deleted []string

	createErr error
}

func (f *fakeRefreshRepo) Create(ctx context.Context, token string, validity time.Duration) error {
	if f.createErr != nil {
		return f.createErr
	}
	f.created = append(f.created, token)
	return nil
}

func (f *fakeRefreshRepo) Find(ctx context.Context, token string) (*models.RefreshToken, error) {
	return f.findOut, f.findErr
}

func (f *fakeRefreshRepo) Delete(ctx context.Context, token string) error {
	if f.delErr != nil {
		return f.delErr
	}
	f.deleted = append(f.deleted, token)
	return nil
}

func (f *fakeRefreshRepo) DeleteExpired(ctx context.Context) error { return nil }

// ---- fake repository manager ----

type fakeRepoManager struct {
	conn     *sql.DB
	leads    *fakeLeadRepo
	purch    *fakePurchaseRepo
	creds    *fakeCredRepo
	refresh  *fakeRefreshRepo
	usersR   users.Repository
	webhooks webhooks.Repository

	// handles passed to RefreshTokens, in call order
	refreshBinds []dbx.DBTX
}

func (f *fakeRepoManager) Conn() *sql.DB                             { return f.conn }
func (f *fakeRepoManager) Users() users.Repository                   { return f.usersR }
func (f *fakeRepoManager) LeadEvents() leadevents.Repository         { return f.leads }
func (f *fakeRepoManager) PurchaseEvents() purchaseevents.Repository { return f.purch }
func (f *fakeRepoManager) Credentials() credentials.Repository       { return f.creds }
func (f *fakeRepoManager) Webhooks() webhooks.Repository             { return f.webhooks }
func (f *fakeRepoManager) RefreshTokens(db dbx.DBTX) refreshtokens.Repository {
	f.refreshBinds = append(f.refreshBinds, db)
	if f.refresh == nil {
		return refreshtokens.NewPostgresRepository(db)
	}
	return f.refresh
}
func (f *fakeRepoManager) RunMigrations(ctx context.Context) error   { return nil }
func (f *fakeRepoManager) Close() error                              { return nil }
