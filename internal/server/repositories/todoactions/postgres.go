// Package todoactions provides the PostgreSQL-backed store for todo actions.
package todoactions

import (
	"context"
	"database/sql"
	"errors"
	"fmt"

	"github.com/dmitrijs2005/todokeeper/internal/common"
	"github.com/dmitrijs2005/todokeeper/internal/dbx"
	"github.com/dmitrijs2005/todokeeper/internal/server/models"
	"github.com/google/uuid"
	"github.com/jackc/pgx/v5/pgconn"
)

// foreignKeyViolation is the PostgreSQL SQLSTATE for a missing referenced row.
const foreignKeyViolation = "23503"

const selectColumns = `SELECT id, card_guid, list_guid, owner_id, title, description, deadline FROM todo_actions`

// PostgresRepository implements Repository over a dbx.DBTX (*sql.DB or *sql.Tx).
type PostgresRepository struct {
	db dbx.DBTX
}

// NewPostgresRepository constructs a repository bound to the given DBTX.
func NewPostgresRepository(db dbx.DBTX) *PostgresRepository {
	return &PostgresRepository{db: db}
}

type scanner interface {
	Scan(dest ...any) error
}

func scanAction(s scanner) (*models.TodoAction, error) {
	a := &models.TodoAction{}
	if err := s.Scan(&a.ID, &a.CardGUID, &a.ListGUID, &a.OwnerID, &a.Title, &a.Description, &a.Deadline); err != nil {
		return nil, err
	}
	return a, nil
}

// Create assigns a fresh CardGUID and inserts the action. The caller is
// responsible for having checked that ListGUID belongs to OwnerID. A list
// deleted in the meantime yields common.ErrListNotFound.
func (r *PostgresRepository) Create(ctx context.Context, action *models.TodoAction) (*models.TodoAction, error) {
	query :=
		`INSERT INTO todo_actions (card_guid, list_guid, owner_id, title, description, deadline)
		 VALUES ($1, $2, $3, $4, $5, $6)
		 RETURNING id
		`

	action.CardGUID = uuid.New()

	err := r.db.QueryRowContext(ctx, query,
		action.CardGUID, action.ListGUID, action.OwnerID, action.Title, action.Description, action.Deadline).
		Scan(&action.ID)
	if err != nil {
		var pgErr *pgconn.PgError
		if errors.As(err, &pgErr) && pgErr.Code == foreignKeyViolation {
			return nil, common.ErrListNotFound
		}
		return nil, fmt.Errorf("db error: %w", err)
	}

	return action, nil
}

// Get looks an action up by owner, list and card in one query.
func (r *PostgresRepository) Get(ctx context.Context, listGUID, cardGUID uuid.UUID, ownerID int64) (*models.TodoAction, error) {
	query := selectColumns + `
		 WHERE owner_id = $1 AND list_guid = $2 AND card_guid = $3
		`

	a, err := scanAction(r.db.QueryRowContext(ctx, query, ownerID, listGUID, cardGUID))
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, common.ErrorNotFound
		}
		return nil, fmt.Errorf("db error: %w", err)
	}

	return a, nil
}

// ListByList returns the actions of one list in creation order.
func (r *PostgresRepository) ListByList(ctx context.Context, listGUID uuid.UUID, ownerID int64) ([]*models.TodoAction, error) {
	query := selectColumns + `
		 WHERE owner_id = $1 AND list_guid = $2
		 ORDER BY id
		`
	return r.query(ctx, query, ownerID, listGUID)
}

// ListByOwner returns every action of ownerID across all lists.
func (r *PostgresRepository) ListByOwner(ctx context.Context, ownerID int64) ([]*models.TodoAction, error) {
	query := selectColumns + `
		 WHERE owner_id = $1
		 ORDER BY id
		`
	return r.query(ctx, query, ownerID)
}

func (r *PostgresRepository) query(ctx context.Context, query string, args ...any) ([]*models.TodoAction, error) {
	rows, err := r.db.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("db error: %w", err)
	}
	defer rows.Close()

	result := make([]*models.TodoAction, 0)
	for rows.Next() {
		a, err := scanAction(rows)
		if err != nil {
			return nil, fmt.Errorf("scan error: %w", err)
		}
		result = append(result, a)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("rows error: %w", err)
	}

	return result, nil
}

// Delete removes one action of ownerID; nothing deleted means
// common.ErrorNotFound.
func (r *PostgresRepository) Delete(ctx context.Context, cardGUID uuid.UUID, ownerID int64) error {
	query := `DELETE FROM todo_actions WHERE card_guid = $1 AND owner_id = $2`

	res, err := r.db.ExecContext(ctx, query, cardGUID, ownerID)
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

// DeleteByList removes all actions under listGUID and reports how many went.
// It is only called after the list itself was found for the caller.
func (r *PostgresRepository) DeleteByList(ctx context.Context, listGUID uuid.UUID) (int64, error) {
	query := `DELETE FROM todo_actions WHERE list_guid = $1`

	res, err := r.db.ExecContext(ctx, query, listGUID)
	if err != nil {
		return 0, fmt.Errorf("db error: %w", err)
	}
	n, err := res.RowsAffected()
	if err != nil {
		return 0, fmt.Errorf("rows affected error: %w", err)
	}

	return n, nil
}
