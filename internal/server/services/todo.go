package services

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/dmitrijs2005/todokeeper/internal/common"
	"github.com/dmitrijs2005/todokeeper/internal/dbx"
	"github.com/dmitrijs2005/todokeeper/internal/server/models"
	"github.com/dmitrijs2005/todokeeper/internal/server/repositories/repomanager"
	"github.com/google/uuid"
)

// notFoundAs narrows a bare common.ErrorNotFound to the more specific target.
func notFoundAs(err, target error) error {
	if errors.Is(err, common.ErrorNotFound) {
		return target
	}
	return err
}

// NewList is the client-supplied part of a todo list.
type NewList struct {
	Title       string
	Description *string
}

// NewAction is the client-supplied part of a todo action.
type NewAction struct {
	Title       string
	Description string
	Deadline    time.Time
}

// TodoService implements list and action operations for one authenticated
// owner at a time. Every lookup is owner-scoped, so another user's list or
// action surfaces as common.ErrorNotFound exactly like a missing one.
type TodoService struct {
	db          *sql.DB
	repomanager repomanager.RepositoryManager
}

// NewTodoService constructs a TodoService.
func NewTodoService(db *sql.DB, m repomanager.RepositoryManager) *TodoService {
	return &TodoService{db: db, repomanager: m}
}

// GetList returns the list with its cards.
func (s *TodoService) GetList(ctx context.Context, listGUID uuid.UUID, ownerID int64) (*models.TodoList, error) {
	list, err := s.repomanager.TodoLists(s.db).Get(ctx, listGUID, ownerID)
	if err != nil {
		return nil, fmt.Errorf("error fetching list: %w", notFoundAs(err, common.ErrListNotFound))
	}

	cards, err := s.repomanager.TodoActions(s.db).ListByList(ctx, listGUID, ownerID)
	if err != nil {
		return nil, fmt.Errorf("error fetching cards: %w", err)
	}
	list.Cards = cards

	return list, nil
}

// ListLists returns all lists of ownerID, each with its cards, in creation
// order.
func (s *TodoService) ListLists(ctx context.Context, ownerID int64) ([]*models.TodoList, error) {
	lists, err := s.repomanager.TodoLists(s.db).ListByOwner(ctx, ownerID)
	if err != nil {
		return nil, fmt.Errorf("error listing lists: %w", err)
	}
	if len(lists) == 0 {
		return lists, nil
	}

	cards, err := s.repomanager.TodoActions(s.db).ListByOwner(ctx, ownerID)
	if err != nil {
		return nil, fmt.Errorf("error listing cards: %w", err)
	}

	byList := make(map[uuid.UUID][]*models.TodoAction, len(lists))
	for _, c := range cards {
		byList[c.ListGUID] = append(byList[c.ListGUID], c)
	}
	for _, l := range lists {
		l.Cards = byList[l.ListGUID]
		if l.Cards == nil {
			l.Cards = []*models.TodoAction{}
		}
	}

	return lists, nil
}

// CreateList stores a new list under a fresh guid.
func (s *TodoService) CreateList(ctx context.Context, ownerID int64, in NewList) (*models.TodoList, error) {
	if strings.TrimSpace(in.Title) == "" {
		return nil, fmt.Errorf("%w: title is required", common.ErrorValidation)
	}

	list, err := s.repomanager.TodoLists(s.db).Create(ctx, &models.TodoList{
		OwnerID:     ownerID,
		Title:       in.Title,
		Description: in.Description,
	})
	if err != nil {
		return nil, fmt.Errorf("error creating list: %w", err)
	}
	list.Cards = []*models.TodoAction{}

	return list, nil
}

// GetAction checks the list first, then the card, so a foreign or missing
// list is reported before the card is looked at.
func (s *TodoService) GetAction(ctx context.Context, listGUID, cardGUID uuid.UUID, ownerID int64) (*models.TodoAction, error) {
	if _, err := s.repomanager.TodoLists(s.db).Get(ctx, listGUID, ownerID); err != nil {
		return nil, fmt.Errorf("error fetching list: %w", notFoundAs(err, common.ErrListNotFound))
	}

	action, err := s.repomanager.TodoActions(s.db).Get(ctx, listGUID, cardGUID, ownerID)
	if err != nil {
		return nil, fmt.Errorf("error fetching card: %w", notFoundAs(err, common.ErrCardNotFound))
	}

	return action, nil
}

// CreateAction adds a card to a list the caller owns. The card's owner is
// always the caller.
func (s *TodoService) CreateAction(ctx context.Context, listGUID uuid.UUID, ownerID int64, in NewAction) (*models.TodoAction, error) {
	if strings.TrimSpace(in.Title) == "" {
		return nil, fmt.Errorf("%w: title is required", common.ErrorValidation)
	}
	if in.Deadline.IsZero() {
		return nil, fmt.Errorf("%w: deadline is required", common.ErrorValidation)
	}

	if _, err := s.repomanager.TodoLists(s.db).Get(ctx, listGUID, ownerID); err != nil {
		return nil, fmt.Errorf("error fetching list: %w", notFoundAs(err, common.ErrListNotFound))
	}

	action, err := s.repomanager.TodoActions(s.db).Create(ctx, &models.TodoAction{
		ListGUID:    listGUID,
		OwnerID:     ownerID,
		Title:       in.Title,
		Description: in.Description,
		Deadline:    in.Deadline,
	})
	if err != nil {
		return nil, fmt.Errorf("error creating card: %w", err)
	}

	return action, nil
}

// DeleteAction removes a card after confirming it exists for the caller.
func (s *TodoService) DeleteAction(ctx context.Context, listGUID, cardGUID uuid.UUID, ownerID int64) error {
	repo := s.repomanager.TodoActions(s.db)

	action, err := repo.Get(ctx, listGUID, cardGUID, ownerID)
	if err != nil {
		return fmt.Errorf("error fetching card: %w", notFoundAs(err, common.ErrCardNotFound))
	}

	if err := repo.Delete(ctx, action.CardGUID, ownerID); err != nil {
		return fmt.Errorf("error deleting card: %w", err)
	}

	return nil
}

// DeleteList removes a list the caller owns together with its cards, in a
// single transaction. The list row is locked first so no card can be added
// between the two deletes.
func (s *TodoService) DeleteList(ctx context.Context, listGUID uuid.UUID, ownerID int64) error {
	return s.repomanager.InTx(ctx, s.db, func(ctx context.Context, tx dbx.DBTX) error {
		if _, err := s.repomanager.TodoLists(tx).GetForUpdate(ctx, listGUID, ownerID); err != nil {
			return fmt.Errorf("error fetching list: %w", notFoundAs(err, common.ErrListNotFound))
		}
		if _, err := s.repomanager.TodoActions(tx).DeleteByList(ctx, listGUID); err != nil {
			return fmt.Errorf("error deleting cards: %w", err)
		}
		if err := s.repomanager.TodoLists(tx).Delete(ctx, listGUID, ownerID); err != nil {
			return fmt.Errorf("error deleting list: %w", err)
		}
		return nil
	})
}
