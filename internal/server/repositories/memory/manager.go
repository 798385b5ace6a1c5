// Package memory provides an in-process RepositoryManager. It backs the
// server when started with the "memory" DSN and the service and HTTP tests.
// Data lives only as long as the process.
package memory

import (
	"context"
	"database/sql"
	"sync"

	"github.com/dmitrijs2005/todokeeper/internal/dbx"
	"github.com/dmitrijs2005/todokeeper/internal/server/models"
	"github.com/dmitrijs2005/todokeeper/internal/server/repositories/repomanager"
	"github.com/dmitrijs2005/todokeeper/internal/server/repositories/todoactions"
	"github.com/dmitrijs2005/todokeeper/internal/server/repositories/todolists"
	"github.com/dmitrijs2005/todokeeper/internal/server/repositories/users"
)

// DSN selects this manager instead of PostgreSQL.
const DSN = "memory"

type store struct {
	mu sync.Mutex

	users   map[string]*models.User
	lists   []*models.TodoList
	actions []*models.TodoAction

	lastUserID   int64
	lastListID   int64
	lastActionID int64
}

// RepositoryManager hands out repositories sharing one store. The handle
// arguments are ignored.
type RepositoryManager struct {
	txMu  sync.Mutex
	store *store
}

var _ repomanager.RepositoryManager = (*RepositoryManager)(nil)

func NewRepositoryManager() *RepositoryManager {
	return &RepositoryManager{store: &store{users: make(map[string]*models.User)}}
}

func (m *RepositoryManager) RunMigrations(context.Context, *sql.DB) error {
	return nil
}

// InTx serialises transactional blocks against each other. Single repository
// calls outside InTx are not blocked by it.
func (m *RepositoryManager) InTx(ctx context.Context, _ *sql.DB, fn func(ctx context.Context, tx dbx.DBTX) error) error {
	m.txMu.Lock()
	defer m.txMu.Unlock()
	return fn(ctx, nil)
}

func (m *RepositoryManager) Users(dbx.DBTX) users.Repository {
	return &userRepository{s: m.store}
}

func (m *RepositoryManager) TodoLists(dbx.DBTX) todolists.Repository {
	return &listRepository{s: m.store}
}

func (m *RepositoryManager) TodoActions(dbx.DBTX) todoactions.Repository {
	return &actionRepository{s: m.store}
}
