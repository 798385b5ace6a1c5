package todolists

import (
	"context"

	"github.com/dmitrijs2005/todokeeper/internal/server/models"
	"github.com/google/uuid"
)

// Repository stores todo lists. Every read and delete is scoped by owner, so
// a list owned by someone else is indistinguishable from a missing one.
type Repository interface {
	Create(ctx context.Context, list *models.TodoList) (*models.TodoList, error)
	Get(ctx context.Context, listGUID uuid.UUID, ownerID int64) (*models.TodoList, error)
	GetForUpdate(ctx context.Context, listGUID uuid.UUID, ownerID int64) (*models.TodoList, error)
	ListByOwner(ctx context.Context, ownerID int64) ([]*models.TodoList, error)
	Delete(ctx context.Context, listGUID uuid.UUID, ownerID int64) error
}
