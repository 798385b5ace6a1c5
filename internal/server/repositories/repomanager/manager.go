package repomanager

import (
	"context"
	"database/sql"

	"github.com/dmitrijs2005/todokeeper/internal/dbx"
	"github.com/dmitrijs2005/todokeeper/internal/server/repositories/todoactions"
	"github.com/dmitrijs2005/todokeeper/internal/server/repositories/todolists"
	"github.com/dmitrijs2005/todokeeper/internal/server/repositories/users"
)

// RepositoryManager vends repositories bound to a handle, which may be the
// pool or a transaction, and owns schema migrations.
type RepositoryManager interface {
	RunMigrations(context.Context, *sql.DB) error
	InTx(ctx context.Context, db *sql.DB, fn func(ctx context.Context, tx dbx.DBTX) error) error
	Users(db dbx.DBTX) users.Repository
	TodoLists(db dbx.DBTX) todolists.Repository
	TodoActions(db dbx.DBTX) todoactions.Repository
}
