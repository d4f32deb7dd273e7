package services

import (
	"context"
	"database/sql"
	"testing"
	"time"

	"github.com/DATA-DOG/go-sqlmock"
	"github.com/stretchr/testify/require"

	"github.com/obelousov/pixelboard/internal/common"
	"github.com/obelousov/pixelboard/internal/server/config"
	"github.com/obelousov/pixelboard/internal/server/models"
)

func newTokenService(t *testing.T, rm *fakeRepoManager) *TokenService {
	t.Helper()
	cfg := &config.Config{
		APIKey:                       "service-key",
		SecretKey:                    "k",
		AccessTokenValidityDuration:  time.Hour,
		RefreshTokenValidityDuration: 2 * time.Hour,
	}
	return NewTokenService(rm, cfg)
}

func TestIssueFromAPIKey_Success(t *testing.T) {
	rm := &fakeRepoManager{refresh: &fakeRefreshRepo{}}
	svc := newTokenService(t, rm)

	pair, err := svc.IssueFromAPIKey(context.Background(), "service-key")
	require.NoError(t, err)
	require.NotEmpty(t, pair.AccessToken)
	require.NotEmpty(t, pair.RefreshToken)
	require.Equal(t, []string{pair.RefreshToken}, rm.refresh.created)

	require.NoError(t, svc.Validate(pair.AccessToken))
}

func TestIssueFromAPIKey_WrongKey(t *testing.T) {
	rm := &fakeRepoManager{refresh: &fakeRefreshRepo{}}
	svc := newTokenService(t, rm)

	_, err := svc.IssueFromAPIKey(context.Background(), "wrong")
	require.ErrorIs(t, err, common.ErrorUnauthorized)
	require.Empty(t, rm.refresh.created)
}

func TestRefresh_RotatesToken(t *testing.T) {
	db, mock, err := sqlmock.New()
	require.NoError(t, err)
	t.Cleanup(func() { _ = db.Close() })

	mock.ExpectBegin()
	mock.ExpectCommit()

	rm := &fakeRepoManager{
		conn: db,
		refresh: &fakeRefreshRepo{
			findOut: &models.RefreshToken{Token: "old", Expires: time.Now().Add(time.Hour)},
		},
	}
	svc := newTokenService(t, rm)

	pair, err := svc.Refresh(context.Background(), "old")
	require.NoError(t, err)
	require.Equal(t, []string{"old"}, rm.refresh.deleted)
	require.Equal(t, []string{pair.RefreshToken}, rm.refresh.created)
	require.NotEqual(t, "old", pair.RefreshToken)

	// find runs on the pool; delete and create run on the tx-bound repo
	require.Len(t, rm.refreshBinds, 3)
	require.IsType(t, &sql.Tx{}, rm.refreshBinds[1])
	require.Same(t, rm.refreshBinds[1], rm.refreshBinds[2])
}

func TestRefresh_RotationRunsInTransaction(t *testing.T) {
	db, mock, err := sqlmock.New()
	require.NoError(t, err)
	t.Cleanup(func() { _ = db.Close() })

	rows := sqlmock.NewRows([]string{"token", "expires_at"}).
		AddRow("old", time.Now().Add(time.Hour))
	mock.ExpectQuery("SELECT token, expires_at FROM refresh_tokens").
		WithArgs("old").WillReturnRows(rows)
	mock.ExpectBegin()
	mock.ExpectExec("DELETE FROM refresh_tokens").
		WithArgs("old").WillReturnResult(sqlmock.NewResult(0, 1))
	mock.ExpectExec("INSERT INTO refresh_tokens").
		WillReturnResult(sqlmock.NewResult(1, 1))
	mock.ExpectCommit()

	rm := &fakeRepoManager{conn: db}
	svc := newTokenService(t, rm)

	pair, err := svc.Refresh(context.Background(), "old")
	require.NoError(t, err)
	require.NotEqual(t, "old", pair.RefreshToken)

	require.NoError(t, mock.ExpectationsWereMet())
	require.IsType(t, &sql.Tx{}, rm.refreshBinds[1])
}

func TestRefresh_Expired(t *testing.T) {
	rm := &fakeRepoManager{
		refresh: &fakeRefreshRepo{
			findOut: &models.RefreshToken{Token: "old", Expires: time.Now().Add(-time.Minute)},
		},
	}
	svc := newTokenService(t, rm)

	_, err := svc.Refresh(context.Background(), "old")
	require.ErrorIs(t, err, common.ErrRefreshTokenExpired)
}

func TestRefresh_Unknown(t *testing.T) {
	rm := &fakeRepoManager{refresh: &fakeRefreshRepo{findErr: common.ErrorNotFound}}
	svc := newTokenService(t, rm)

	_, err := svc.Refresh(context.Background(), "nope")
	require.ErrorIs(t, err, common.ErrorUnauthorized)
}

func TestValidate_Expired(t *testing.T) {
	rm := &fakeRepoManager{refresh: &fakeRefreshRepo{}}

	cfg := &config.Config{
		APIKey:                       "service-key",
		SecretKey:                    "k",
		AccessTokenValidityDuration:  -time.Minute,
		RefreshTokenValidityDuration: time.Hour,
	}
	svc := NewTokenService(rm, cfg)

	pair, err := svc.IssueFromAPIKey(context.Background(), "service-key")
	require.NoError(t, err)

	require.ErrorIs(t, svc.Validate(pair.AccessToken), common.ErrTokenExpired)
}
