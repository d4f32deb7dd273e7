package services

import (
	"context"
	"time"

	"github.com/google/uuid"

	"github.com/obelousov/pixelboard/internal/client/models"
	"github.com/obelousov/pixelboard/internal/common"
	"github.com/obelousov/pixelboard/internal/logging"
)

// fakeRemote is an in-memory stand-in for the data service. Call counters
// let tests assert which operations performed remote I/O.
type fakeRemote struct {
	users map[string]*models.User

	findByEmailErr error
	findByIDErr    error
	createErr      error
	updateErr      error

	calls map[string]int

	leadCount     int64
	purchaseCount map[string]int64
	leads         []*models.LeadEvent
	purchases     []*models.PurchaseEvent
	stats         *models.EventStats
	statsErr      error
	cred          *models.PixelCredential
	hooks         []*models.Webhook
	exportURL     string
	pingErr       error
}

func newFakeRemote() *fakeRemote {
	return &fakeRemote{
		users:         map[string]*models.User{},
		calls:         map[string]int{},
		purchaseCount: map[string]int64{},
	}
}

func (f *fakeRemote) addUser(email string, name string, passwordHash string) *models.User {
	user := &models.User{
		ID:           uuid.NewString(),
		Email:        email,
		Name:         name,
		PasswordHash: passwordHash,
		CreatedAt:    time.Now().UTC(),
	}
	f.users[user.ID] = user
	return user
}

func (f *fakeRemote) FindUserByEmail(_ context.Context, email string) (*models.User, error) {
	f.calls["FindUserByEmail"]++
	if f.findByEmailErr != nil {
		return nil, f.findByEmailErr
	}

	var matches []*models.User
	for _, user := range f.users {
		if user.Email == email {
			matches = append(matches, user)
		}
	}

	switch len(matches) {
	case 0:
		return nil, common.ErrorNotFound
	case 1:
		copied := *matches[0]
		return &copied, nil
	default:
		return nil, common.ErrAmbiguousMatch
	}
}

func (f *fakeRemote) FindUserByID(_ context.Context, id string) (*models.User, error) {
	f.calls["FindUserByID"]++
	if f.findByIDErr != nil {
		return nil, f.findByIDErr
	}
	user, ok := f.users[id]
	if !ok {
		return nil, common.ErrorNotFound
	}
	copied := *user
	return &copied, nil
}

func (f *fakeRemote) CreateUser(_ context.Context, email string, name string, passwordHash string) (*models.User, error) {
	f.calls["CreateUser"]++
	if f.createErr != nil {
		return nil, f.createErr
	}
	for _, user := range f.users {
		if user.Email == email {
			return nil, common.ErrorAlreadyExists
		}
	}
	created := f.addUser(email, name, passwordHash)
	copied := *created
	return &copied, nil
}

func (f *fakeRemote) UpdateUser(_ context.Context, id string, email *string, name *string, passwordHash *string) (*models.User, error) {
	f.calls["UpdateUser"]++
	if f.updateErr != nil {
		return nil, f.updateErr
	}
	user, ok := f.users[id]
	if !ok {
		return nil, common.ErrorNotFound
	}
	if email != nil {
		user.Email = *email
	}
	if name != nil {
		user.Name = *name
	}
	if passwordHash != nil {
		user.PasswordHash = *passwordHash
	}
	copied := *user
	return &copied, nil
}

func (f *fakeRemote) CountLeadEvents(_ context.Context, _ time.Time, _ time.Time) (int64, error) {
	f.calls["CountLeadEvents"]++
	return f.leadCount, nil
}

func (f *fakeRemote) CountPurchaseEvents(_ context.Context, status string, _ time.Time, _ time.Time) (int64, error) {
	f.calls["CountPurchaseEvents"]++
	return f.purchaseCount[status], nil
}

func (f *fakeRemote) ListLeadEvents(_ context.Context, _ *models.EventQuery) (*models.LeadEventPage, error) {
	f.calls["ListLeadEvents"]++
	return &models.LeadEventPage{Events: f.leads, Total: int64(len(f.leads))}, nil
}

func (f *fakeRemote) ListPurchaseEvents(_ context.Context, _ *models.EventQuery) (*models.PurchaseEventPage, error) {
	f.calls["ListPurchaseEvents"]++
	return &models.PurchaseEventPage{Events: f.purchases, Total: int64(len(f.purchases))}, nil
}

func (f *fakeRemote) GetEventStats(_ context.Context, _ time.Time, _ time.Time) (*models.EventStats, error) {
	f.calls["GetEventStats"]++
	if f.statsErr != nil {
		return nil, f.statsErr
	}
	if f.stats == nil {
		return &models.EventStats{}, nil
	}
	return f.stats, nil
}

func (f *fakeRemote) GetPixelCredentials(_ context.Context) (*models.PixelCredential, error) {
	f.calls["GetPixelCredentials"]++
	if f.cred == nil {
		return nil, common.ErrorNotFound
	}
	return f.cred, nil
}

func (f *fakeRemote) ListWebhooks(_ context.Context) ([]*models.Webhook, error) {
	f.calls["ListWebhooks"]++
	return f.hooks, nil
}

func (f *fakeRemote) RequestEventsExport(_ context.Context, _ *models.EventQuery) (string, error) {
	f.calls["RequestEventsExport"]++
	return f.exportURL, nil
}

func (f *fakeRemote) Ping(_ context.Context) error {
	f.calls["Ping"]++
	return f.pingErr
}

func (f *fakeRemote) Close() error {
	return nil
}

func (f *fakeRemote) totalCalls() int {
	total := 0
	for _, n := range f.calls {
		total += n
	}
	return total
}

// capturingLogger records error messages so tests can assert on the
// observability sink.
type capturingLogger struct {
	errors []string
}

func (l *capturingLogger) Debug(_ context.Context, _ string, _ ...any) {}
func (l *capturingLogger) Info(_ context.Context, _ string, _ ...any)  {}
func (l *capturingLogger) Warn(_ context.Context, _ string, _ ...any)  {}

func (l *capturingLogger) Error(_ context.Context, msg string, _ ...any) {
	l.errors = append(l.errors, msg)
}

func (l *capturingLogger) With(_ ...any) logging.Logger {
	return l
}
