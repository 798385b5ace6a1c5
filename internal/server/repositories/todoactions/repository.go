package todoactions

import (
	"context"

	"github.com/dmitrijs2005/todokeeper/internal/server/models"
	"github.com/google/uuid"
)

// Repository stores todo actions (cards).
type Repository interface {
	Create(ctx context.Context, action *models.TodoAction) (*models.TodoAction, error)
	Get(ctx context.Context, listGUID, cardGUID uuid.UUID, ownerID int64) (*models.TodoAction, error)
	ListByList(ctx context.Context, listGUID uuid.UUID, ownerID int64) ([]*models.TodoAction, error)
	ListByOwner(ctx context.Context, ownerID int64) ([]*models.TodoAction, error)
	Delete(ctx context.Context, cardGUID uuid.UUID, ownerID int64) error
	DeleteByList(ctx context.Context, listGUID uuid.UUID) (int64, error)
}
