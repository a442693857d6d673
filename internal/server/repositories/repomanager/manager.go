package repomanager

import (
	"context"
	"database/sql"

	"github.com/dmitrijs2005/rentals/internal/dbx"
	"github.com/dmitrijs2005/rentals/internal/server/repositories/messages"
	"github.com/dmitrijs2005/rentals/internal/server/repositories/rentals"
	"github.com/dmitrijs2005/rentals/internal/server/repositories/users"
)

// RepositoryManager hands out repositories bound to either the pool or a
// running transaction.
type RepositoryManager interface {
	RunMigrations(context.Context, *sql.DB) error
	Users(db dbx.DBTX) users.Repository
	Rentals(db dbx.DBTX) rentals.Repository
	Messages(db dbx.DBTX) messages.Repository
}
