// Package repomanager wires table repositories to a shared database handle
// and owns schema migrations.
package repomanager

import (
	"context"
	"database/sql"

	"github.com/obelousov/pixelboard/internal/dbx"
	"github.com/obelousov/pixelboard/internal/server/repositories/credentials"
	"github.com/obelousov/pixelboard/internal/server/repositories/leadevents"
	"github.com/obelousov/pixelboard/internal/server/repositories/purchaseevents"
	"github.com/obelousov/pixelboard/internal/server/repositories/refreshtokens"
	"github.com/obelousov/pixelboard/internal/server/repositories/users"
	"github.com/obelousov/pixelboard/internal/server/repositories/webhooks"
)

type RepositoryManager interface {
	Conn() *sql.DB
	Users() users.Repository
	LeadEvents() leadevents.Repository
	PurchaseEvents() purchaseevents.Repository
	Credentials() credentials.Repository
	Webhooks() webhooks.Repository
	// RefreshTokens binds the repository to the given handle so token
	// rotation can run on a transaction.
	RefreshTokens(db dbx.DBTX) refreshtokens.Repository
	RunMigrations(ctx context.Context) error
	Close() error
}
