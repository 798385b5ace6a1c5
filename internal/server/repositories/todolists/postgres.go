// Package todolists provides the PostgreSQL-backed todo list store.
package todolists

import (
	"context"
	"database/sql"
	"errors"
	"fmt"

	"github.com/dmitrijs2005/todokeeper/internal/common"
	"github.com/dmitrijs2005/todokeeper/internal/dbx"
	"github.com/dmitrijs2005/todokeeper/internal/server/models"
	"github.com/google/uuid"
)

// PostgresRepository implements Repository over a dbx.DBTX (*sql.DB or *sql.Tx).
type PostgresRepository struct {
	db dbx.DBTX
}

// NewPostgresRepository constructs a repository bound to the given DBTX.
func NewPostgresRepository(db dbx.DBTX) *PostgresRepository {
	return &PostgresRepository{db: db}
}

// Create assigns a fresh random ListGUID, inserts the list and returns it
// with its id filled in. Any ListGUID set by the caller is replaced.
func (r *PostgresRepository) Create(ctx context.Context, list *models.TodoList) (*models.TodoList, error) {
	query :=
		`INSERT INTO todo_lists (list_guid, owner_id, title, description)
		 VALUES ($1, $2, $3, $4)
		 RETURNING id
		`

	list.ListGUID = uuid.New()

	err := r.db.QueryRowContext(ctx, query,
		list.ListGUID, list.OwnerID, list.Title, list.Description).Scan(&list.ID)
	if err != nil {
		return nil, fmt.Errorf("db error: %w", err)
	}

	return list, nil
}

// GetForUpdate is Get with a row lock held until the surrounding
// transaction ends. Concurrent card inserts into the list wait on it.
func (r *PostgresRepository) GetForUpdate(ctx context.Context, listGUID uuid.UUID, ownerID int64) (*models.TodoList, error) {
	query :=
		`SELECT id, list_guid, owner_id, title, description FROM todo_lists
		 WHERE list_guid = $1 AND owner_id = $2
		 FOR UPDATE
		`

	list := &models.TodoList{}
	err := r.db.QueryRowContext(ctx, query, listGUID, ownerID).
		Scan(&list.ID, &list.ListGUID, &list.OwnerID, &list.Title, &list.Description)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, common.ErrorNotFound
		}
		return nil, fmt.Errorf("db error: %w", err)
	}

	return list, nil
}

// Get returns the list only if it belongs to ownerID; otherwise
// common.ErrorNotFound.
func (r *PostgresRepository) Get(ctx context.Context, listGUID uuid.UUID, ownerID int64) (*models.TodoList, error) {
	query :=
		`SELECT id, list_guid, owner_id, title, description FROM todo_lists
		 WHERE list_guid = $1 AND owner_id = $2
		`

	list := &models.TodoList{}
	err := r.db.QueryRowContext(ctx, query, listGUID, ownerID).
		Scan(&list.ID, &list.ListGUID, &list.OwnerID, &list.Title, &list.Description)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, common.ErrorNotFound
		}
		return nil, fmt.Errorf("db error: %w", err)
	}

	return list, nil
}

// ListByOwner returns every list of ownerID in creation order.
func (r *PostgresRepository) ListByOwner(ctx context.Context, ownerID int64) ([]*models.TodoList, error) {
	query :=
		`SELECT id, list_guid, owner_id, title, description FROM todo_lists
		 WHERE owner_id = $1
		 ORDER BY id
		`

	rows, err := r.db.QueryContext(ctx, query, ownerID)
	if err != nil {
		return nil, fmt.Errorf("db error: %w", err)
	}
	defer rows.Close()

	result := make([]*models.TodoList, 0)
	for rows.Next() {
		item := &models.TodoList{}
		if err := rows.Scan(&item.ID, &item.ListGUID, &item.OwnerID, &item.Title, &item.Description); err != nil {
			return nil, fmt.Errorf("scan error: %w", err)
		}
		result = append(result, item)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("rows error: %w", err)
	}

	return result, nil
}

// Delete removes the list of ownerID. Child actions must already be gone.
// Nothing deleted means common.ErrorNotFound.
func (r *PostgresRepository) Delete(ctx context.Context, listGUID uuid.UUID, ownerID int64) error {
	query := `DELETE FROM todo_lists WHERE list_guid = $1 AND owner_id = $2`

	res, err := r.db.ExecContext(ctx, query, listGUID, ownerID)
	if err != nil {
		return fmt.Errorf("db error: %w", err)
	}
	n, err := res.RowsAffected()
	if err != nil {
		return fmt.Errorf("rows affected error: %w", err)
	}
	if n == 0 {
		return common.ErrorNotFound
	}

	return nil
}
