package httpapi

import (
	"context"

	"github.com/google/uuid"

	"github.com/obelousov/pixelboard/internal/common"
	"github.com/obelousov/pixelboard/internal/server/models"
	"github.com/obelousov/pixelboard/internal/server/services"
)

type fakeTokenIssuer struct {
	apiKey       string
	accessToken  string
	refreshToken string
	expired      bool
}

func (f *fakeTokenIssuer) IssueFromAPIKey(_ context.Context, key string) (*services.TokenPair, error) {
	if key != f.apiKey {
		return nil, common.ErrorUnauthorized
	}
	return &services.TokenPair{AccessToken: f.accessToken, RefreshToken: f.refreshToken}, nil
}

func (f *fakeTokenIssuer) Refresh(_ context.Context, refreshToken string) (*services.TokenPair, error) {
	if refreshToken != f.refreshToken {
		return nil, common.ErrorUnauthorized
	}
	return &services.TokenPair{AccessToken: f.accessToken, RefreshToken: f.refreshToken}, nil
}

func (f *fakeTokenIssuer) Validate(tokenString string) error {
	if f.expired {
		return common.ErrTokenExpired
	}
	if tokenString != f.accessToken {
		return common.ErrInvalidToken
	}
	return nil
}

type fakeUserStore struct {
	users map[string]*models.User
}

func newFakeUserStore() *fakeUserStore {
	return &fakeUserStore{users: map[string]*models.User{}}
}

func (f *fakeUserStore) Create(_ context.Context, user *models.User) (*models.User, error) {
	for _, existing := range f.users {
		if existing.Email == user.Email {
			return nil, common.ErrorAlreadyExists
		}
	}
	created := *user
	created.ID = uuid.NewString()
	f.users[created.ID] = &created
	return &created, nil
}

func (f *fakeUserStore) GetByID(_ context.Context, id string) (*models.User, error) {
	user, ok := f.users[id]
	if !ok {
		return nil, common.ErrorNotFound
	}
	return user, nil
}

func (f *fakeUserStore) ListByEmail(_ context.Context, email string) ([]*models.User, error) {
	result := []*models.User{}
	for _, user := range f.users {
		if user.Email == email {
			result = append(result, user)
		}
	}
	return result, nil
}

func (f *fakeUserStore) Update(_ context.Context, id string, patch *models.UserPatch) (*models.User, error) {
	user, ok := f.users[id]
	if !ok {
		return nil, common.ErrorNotFound
	}
	if patch.Email != nil {
		user.Email = *patch.Email
	}
	if patch.Name != nil {
		user.Name = *patch.Name
	}
	if patch.PasswordHash != nil {
		user.PasswordHash = *patch.PasswordHash
	}
	return user, nil
}

type fakeEventStore struct {
	leads     []*models.LeadEvent
	purchases []*models.PurchaseEvent
	err       error
}

func (f *fakeEventStore) CountLeads(_ context.Context, _ *models.EventFilter) (int64, error) {
	if f.err != nil {
		return 0, f.err
	}
	return int64(len(f.leads)), nil
}

func (f *fakeEventStore) CountPurchases(_ context.Context, filter *models.EventFilter) (int64, error) {
	if f.err != nil {
		return 0, f.err
	}
	var count int64
	for _, event := range f.purchases {
		if filter.Status == "" || event.Status == filter.Status {
			count++
		}
	}
	return count, nil
}

func (f *fakeEventStore) ListLeads(_ context.Context, _ *models.EventFilter) ([]*models.LeadEvent, int64, error) {
	if f.err != nil {
		return nil, 0, f.err
	}
	return f.leads, int64(len(f.leads)), nil
}

func (f *fakeEventStore) ListPurchases(_ context.Context, filter *models.EventFilter) ([]*models.PurchaseEvent, int64, error) {
	if f.err != nil {
		return nil, 0, f.err
	}
	result := []*models.PurchaseEvent{}
	for _, event := range f.purchases {
		if filter.Status == "" || event.Status == filter.Status {
			result = append(result, event)
		}
	}
	return result, int64(len(result)), nil
}

func (f *fakeEventStore) CreateLead(_ context.Context, event *models.LeadEvent) (*models.LeadEvent, error) {
	if f.err != nil {
		return nil, f.err
	}
	created := *event
	created.ID = uuid.NewString()
	f.leads = append(f.leads, &created)
	return &created, nil
}

func (f *fakeEventStore) CreatePurchase(_ context.Context, event *models.PurchaseEvent) (*models.PurchaseEvent, error) {
	if f.err != nil {
		return nil, f.err
	}
	created := *event
	created.ID = uuid.NewString()
	if created.Status == "" {
		created.Status = models.EventStatusPending
	}
	f.purchases = append(f.purchases, &created)
	return &created, nil
}

func (f *fakeEventStore) Stats(ctx context.Context, filter *models.EventFilter) (*services.EventStats, error) {
	if f.err != nil {
		return nil, f.err
	}
	leads, _ := f.CountLeads(ctx, filter)
	total, _ := f.CountPurchases(ctx, &models.EventFilter{})
	return &services.EventStats{Leads: leads, Conversions: total}, nil
}

type fakeExporter struct {
	url string
	err error
}

func (f *fakeExporter) ExportPurchaseEvents(_ context.Context, _ *models.EventFilter) (string, error) {
	if f.err != nil {
		return "", f.err
	}
	return f.url, nil
}

type fakeCredentialRepo struct {
	cred *models.PixelCredential
}

func (f *fakeCredentialRepo) Get(_ context.Context) (*models.PixelCredential, error) {
	if f.cred == nil {
		return nil, common.ErrorNotFound
	}
	return f.cred, nil
}

func (f *fakeCredentialRepo) Upsert(_ context.Context, cred *models.PixelCredential) (*models.PixelCredential, error) {
	saved := *cred
	if saved.ID == "" {
		saved.ID = uuid.NewString()
	}
	f.cred = &saved
	return &saved, nil
}

func (f *fakeCredentialRepo) Delete(_ context.Context) error {
	f.cred = nil
	return nil
}

type fakeWebhookRepo struct {
	hooks []*models.Webhook
}

func (f *fakeWebhookRepo) Create(_ context.Context, webhook *models.Webhook) (*models.Webhook, error) {
	created := *webhook
	created.ID = uuid.NewString()
	f.hooks = append(f.hooks, &created)
	return &created, nil
}

func (f *fakeWebhookRepo) List(_ context.Context) ([]*models.Webhook, error) {
	return f.hooks, nil
}
