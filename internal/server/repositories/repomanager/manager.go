package repomanager

import (
	"context"
	"database/sql"

	"github.com/agency/cryptoservice/internal/dbx"
	"github.com/agency/cryptoservice/internal/server/repositories/messages"
)

// RepositoryManager vends repositories bound to a DBTX (either the pool or
// a transaction handle) and exposes the schema migration hook.
type RepositoryManager interface {
	RunMigrations(context.Context, *sql.DB) error
	Messages(db dbx.DBTX) messages.Repository
}
