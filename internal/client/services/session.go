// Package services contains the application services behind the dashboard
// CLI. This file holds the session store: the single source of truth for
// who is currently signed in, backed by the remote user table and a local
// durable snapshot.
package services

import (
	"context"
	"database/sql"
	"encoding/json"
	"errors"
	"fmt"
	"sync"

	"github.com/obelousov/pixelboard/internal/client/models"
	"github.com/obelousov/pixelboard/internal/client/remote"
	"github.com/obelousov/pixelboard/internal/client/repositories/snapshot"
	"github.com/obelousov/pixelboard/internal/common"
	"github.com/obelousov/pixelboard/internal/logging"
	"github.com/obelousov/pixelboard/internal/passwords"
)

// Snapshot is the read-only projection of the session handed to observers.
// User is nil while anonymous; Loading is true only until the startup
// restoration completes.
type Snapshot struct {
	User    *models.User
	Loading bool
}

// SessionService holds at most one authenticated identity at a time.
//
// Lifecycle: the service starts loading; Restore reads the local snapshot
// slot (never the network) and lands in either the authenticated or the
// anonymous state, after which Loading stays false for the process lifetime.
type SessionService struct {
	client remote.Client
	db     *sql.DB
	logger logging.Logger

	mu      sync.Mutex
	user    *models.User
	loading bool
	subs    []func(Snapshot)
}

func NewSessionService(client remote.Client, db *sql.DB, logger logging.Logger) *SessionService {
	return &SessionService{
		client:  client,
		db:      db,
		logger:  logger.With("module", "session"),
		loading: true,
	}
}

func (s *SessionService) snapshotRepo() snapshot.Repository {
	return snapshot.NewSQLiteRepository(s.db)
}

// Snapshot returns the current session projection. The secret is never
// present: identities are stripped before they are stored.
func (s *SessionService) Snapshot() Snapshot {
	s.mu.Lock()
	defer s.mu.Unlock()
	return Snapshot{User: s.user, Loading: s.loading}
}

// Subscribe registers fn to be called synchronously after every committed
// state transition.
func (s *SessionService) Subscribe(fn func(Snapshot)) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.subs = append(s.subs, fn)
}

// commit replaces the held identity and notifies subscribers.
func (s *SessionService) commit(user *models.User) {
	s.mu.Lock()
	s.user = user
	snap := Snapshot{User: s.user, Loading: s.loading}
	subs := s.subs
	s.mu.Unlock()

	for _, fn := range subs {
		fn(snap)
	}
}

func (s *SessionService) currentUser() *models.User {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.user
}

// writeSnapshot persists the stripped identity under the fixed slot key.
// The password hash field is excluded from serialization.
func (s *SessionService) writeSnapshot(ctx context.Context, user *models.User) error {
	value, err := json.Marshal(user)
	if err != nil {
		return fmt.Errorf("snapshot encode error: %w", err)
	}
	return s.snapshotRepo().Set(ctx, common.SnapshotKey, value)
}

// Restore attempts to load the identity persisted by a previous run. A
// corrupted slot is deleted and the session lands anonymous; this never
// touches the network and never fails the caller. Loading turns false
// exactly once, here.
func (s *SessionService) Restore(ctx context.Context) {
	repo := s.snapshotRepo()

	var user *models.User

	value, err := repo.Get(ctx, common.SnapshotKey)
	switch {
	case err != nil:
		s.logger.Error(ctx, "snapshot read failed", "error", err)
	case value != nil:
		var u models.User
		if err := json.Unmarshal(value, &u); err != nil {
			s.logger.Error(ctx, "snapshot corrupted, clearing slot", "error", err)
			if err := repo.Delete(ctx, common.SnapshotKey); err != nil {
				s.logger.Error(ctx, "snapshot delete failed", "error", err)
			}
		} else {
			user = &u
		}
	}

	s.mu.Lock()
	s.loading = false
	s.mu.Unlock()

	s.commit(user)
}

// SignIn looks up exactly one account row by email and verifies the
// password against its stored hash. Zero rows, an ambiguous match and a
// hash mismatch are indistinguishable to the caller. On success the
// stripped identity is persisted first, then committed.
func (s *SessionService) SignIn(ctx context.Context, email string, password []byte) error {
	row, err := s.client.FindUserByEmail(ctx, email)
	if err != nil {
		if errors.Is(err, common.ErrorNotFound) || errors.Is(err, common.ErrAmbiguousMatch) {
			return common.ErrInvalidCredentials
		}
		return fmt.Errorf("%w: %s", common.ErrOperationFailed, err)
	}

	if !passwords.Verify(row.PasswordHash, password) {
		return common.ErrInvalidCredentials
	}

	user := *row
	user.PasswordHash = ""

	if err := s.writeSnapshot(ctx, &user); err != nil {
		return fmt.Errorf("%w: %s", common.ErrOperationFailed, err)
	}

	s.commit(&user)
	return nil
}

// SignUp creates a new account row. The email pre-check fails fast with
// ErrEmailTaken; the server's unique index closes the remaining race and
// its conflict failure maps to the same error. The session itself is not
// touched: the caller still has to sign in.
func (s *SessionService) SignUp(ctx context.Context, email string, password []byte, name string) error {
	_, err := s.client.FindUserByEmail(ctx, email)
	switch {
	case err == nil, errors.Is(err, common.ErrAmbiguousMatch):
		return common.ErrEmailTaken
	case errors.Is(err, common.ErrorNotFound):
	default:
		return fmt.Errorf("%w: %s", common.ErrOperationFailed, err)
	}

	hash, err := passwords.Hash(password)
	if err != nil {
		if errors.Is(err, passwords.ErrTooShort) {
			return err
		}
		return fmt.Errorf("%w: %s", common.ErrOperationFailed, err)
	}

	if _, err := s.client.CreateUser(ctx, email, name, hash); err != nil {
		if errors.Is(err, common.ErrorAlreadyExists) {
			return common.ErrEmailTaken
		}
		return fmt.Errorf("%w: %s", common.ErrOperationFailed, err)
	}

	return nil
}

// SignOut transitions to anonymous unconditionally and removes the local
// snapshot. No remote call is made; calling it while anonymous is a no-op.
func (s *SessionService) SignOut(ctx context.Context) error {
	if err := s.snapshotRepo().Delete(ctx, common.SnapshotKey); err != nil {
		s.logger.Error(ctx, "snapshot delete failed", "error", err)
	}

	s.commit(nil)
	return nil
}

// ResetPassword is reserved for out-of-band credential recovery. It
// performs no I/O and mutates nothing.
func (s *SessionService) ResetPassword(email string) error {
	return common.ErrNotImplemented
}

// UpdateUser partially updates the held identity's row, then commits the
// acknowledged result into memory and the snapshot. Never optimistic: the
// local state changes only after the remote write succeeded.
func (s *SessionService) UpdateUser(ctx context.Context, patch *models.UserPatch) error {
	current := s.currentUser()
	if current == nil {
		return common.ErrUnauthenticated
	}
	if patch == nil || patch.Empty() {
		return nil
	}

	var hash *string
	if len(patch.Password) > 0 {
		h, err := passwords.Hash(patch.Password)
		if err != nil {
			if errors.Is(err, passwords.ErrTooShort) {
				return err
			}
			return fmt.Errorf("%w: %s", common.ErrOperationFailed, err)
		}
		hash = &h
	}

	updated, err := s.client.UpdateUser(ctx, current.ID, patch.Email, patch.Name, hash)
	if err != nil {
		return fmt.Errorf("%w: %s", common.ErrOperationFailed, err)
	}

	user := *updated
	user.PasswordHash = ""

	if err := s.writeSnapshot(ctx, &user); err != nil {
		return fmt.Errorf("%w: %s", common.ErrOperationFailed, err)
	}

	s.commit(&user)
	return nil
}

// RefreshUser re-reads the held identity's row, best effort. Failures go to
// the logger and leave the session untouched.
func (s *SessionService) RefreshUser(ctx context.Context) {
	current := s.currentUser()
	if current == nil {
		return
	}

	row, err := s.client.FindUserByID(ctx, current.ID)
	if err != nil {
		s.logger.Error(ctx, "identity refresh failed", "operation", "refreshUser", "error", err)
		return
	}

	user := *row
	user.PasswordHash = ""

	if err := s.writeSnapshot(ctx, &user); err != nil {
		s.logger.Error(ctx, "snapshot write failed", "operation", "refreshUser", "error", err)
		return
	}

	s.commit(&user)
}
