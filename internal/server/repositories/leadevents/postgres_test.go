package leadevents

import (
	"context"
	"database/sql"
	"testing"
	"time"

	"github.com/DATA-DOG/go-sqlmock"
	"github.com/stretchr/testify/require"

	"github.com/obelousov/pixelboard/internal/server/models"
)

func newRepoWithMock(t *testing.T) (*PostgresRepository, sqlmock.Sqlmock, *sql.DB) {
	t.Helper()
	db, mock, err := sqlmock.New(sqlmock.QueryMatcherOption(sqlmock.QueryMatcherRegexp))
	require.NoError(t, err)
	t.Cleanup(func() { _ = db.Close() })
	return NewPostgresRepository(db), mock, db
}

func TestCreate_AssignsID(t *testing.T) {
	repo, mock, _ := newRepoWithMock(t)

	mock.ExpectQuery(`INSERT\s+INTO\s+lead_events`).
		WithArgs(sqlmock.AnyArg(), "px1", "pg1", "+4917612345678", "click1").
		WillReturnRows(sqlmock.NewRows([]string{"created_at"}).AddRow(time.Now()))

	got, err := repo.Create(context.Background(), &models.LeadEvent{
		PixelID: "px1", PageID: "pg1", PhoneNumber: "+4917612345678", ClickID: "click1",
	})
	require.NoError(t, err)
	require.NotEmpty(t, got.ID)
}

func TestList_ReturnsPageAndTotal(t *testing.T) {
	repo, mock, _ := newRepoWithMock(t)

	mock.ExpectQuery(`SELECT\s+COUNT\(\*\)\s+FROM\s+lead_events`).
		WithArgs(nil, nil).
		WillReturnRows(sqlmock.NewRows([]string{"count"}).AddRow(13))

	rows := sqlmock.NewRows([]string{"id", "pixel_id", "page_id", "phone_number", "click_id", "created_at"}).
		AddRow("l2", "px1", "pg1", "+491111", "c2", time.Now()).
		AddRow("l1", "px1", "pg1", "+492222", "c1", time.Now().Add(-time.Hour))

	mock.ExpectQuery(`(?s)SELECT\s+id,\s+pixel_id.*FROM\s+lead_events.*ORDER\s+BY\s+created_at\s+DESC`).
		WithArgs(nil, nil, 2, 2).
		WillReturnRows(rows)

	got, total, err := repo.List(context.Background(), &models.EventFilter{Limit: 2, Offset: 2})
	require.NoError(t, err)
	require.EqualValues(t, 13, total)
	require.Len(t, got, 2)
	require.Equal(t, "l2", got[0].ID)
	require.Equal(t, "+491111", got[0].PhoneNumber)
}

func TestList_BoundedRange(t *testing.T) {
	repo, mock, _ := newRepoWithMock(t)

	from := time.Date(2026, 8, 1, 0, 0, 0, 0, time.UTC)

	mock.ExpectQuery(`SELECT\s+COUNT\(\*\)\s+FROM\s+lead_events`).
		WithArgs(from, nil).
		WillReturnRows(sqlmock.NewRows([]string{"count"}).AddRow(0))

	mock.ExpectQuery(`(?s)SELECT\s+id,\s+pixel_id.*FROM\s+lead_events`).
		WithArgs(from, nil, 10, 0).
		WillReturnRows(sqlmock.NewRows([]string{"id", "pixel_id", "page_id", "phone_number", "click_id", "created_at"}))

	got, total, err := repo.List(context.Background(), &models.EventFilter{From: from})
	require.NoError(t, err)
	require.EqualValues(t, 0, total)
	require.Empty(t, got)
}
