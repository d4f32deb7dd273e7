package repomanager

import (
	"context"
	"database/sql"
	"fmt"

	_ "github.com/jackc/pgx/v5/stdlib"
	"github.com/pressly/goose/v3"

	"github.com/obelousov/pixelboard/internal/dbx"
	"github.com/obelousov/pixelboard/internal/server/migrations"
	"github.com/obelousov/pixelboard/internal/server/repositories/credentials"
	"github.com/obelousov/pixelboard/internal/server/repositories/leadevents"
	"github.com/obelousov/pixelboard/internal/server/repositories/purchaseevents"
	"github.com/obelousov/pixelboard/internal/server/repositories/refreshtokens"
	"github.com/obelousov/pixelboard/internal/server/repositories/users"
	"github.com/obelousov/pixelboard/internal/server/repositories/webhooks"
)

type PostgresRepositoryManager struct {
	db             *sql.DB
	users          users.Repository
	leadEvents     leadevents.Repository
	purchaseEvents purchaseevents.Repository
	credentials    credentials.Repository
	webhooks       webhooks.Repository
}

func NewPostgresRepositoryManager(dsn string) (*PostgresRepositoryManager, error) {
	db, err := sql.Open("pgx", dsn)
	if err != nil {
		return nil, fmt.Errorf("db open error: %w", err)
	}

	return &PostgresRepositoryManager{
		db:             db,
		users:          users.NewPostgresRepository(db),
		leadEvents:     leadevents.NewPostgresRepository(db),
		purchaseEvents: purchaseevents.NewPostgresRepository(db),
		credentials:    credentials.NewPostgresRepository(db),
		webhooks:       webhooks.NewPostgresRepository(db),
	}, nil
}

func (m *PostgresRepositoryManager) Conn() *sql.DB {
	return m.db
}

func (m *PostgresRepositoryManager) Users() users.Repository {
	return m.users
}

func (m *PostgresRepositoryManager) LeadEvents() leadevents.Repository {
	return m.leadEvents
}

func (m *PostgresRepositoryManager) PurchaseEvents() purchaseevents.Repository {
	return m.purchaseEvents
}

func (m *PostgresRepositoryManager) Credentials() credentials.Repository {
	return m.credentials
}

func (m *PostgresRepositoryManager) Webhooks() webhooks.Repository {
	return m.webhooks
}

func (m *PostgresRepositoryManager) RefreshTokens(db dbx.DBTX) refreshtokens.Repository {
	return refreshtokens.NewPostgresRepository(db)
}

func (m *PostgresRepositoryManager) RunMigrations(ctx context.Context) error {
	goose.SetBaseFS(migrations.Migrations)

	if err := goose.SetDialect("postgres"); err != nil {
		return err
	}

	return goose.UpContext(ctx, m.db, ".")
}

func (m *PostgresRepositoryManager) Close() error {
	return m.db.Close()
}
