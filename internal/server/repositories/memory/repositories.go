package memory

import (
	"context"
	"errors"

	"github.com/dmitrijs2005/todokeeper/internal/common"
	"github.com/dmitrijs2005/todokeeper/internal/server/models"
	"github.com/google/uuid"
)

var errForeignKey = errors.New("foreign key violation")

type userRepository struct{ s *store }

func (r *userRepository) Create(_ context.Context, user *models.User) (*models.User, error) {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()

	if _, ok := r.s.users[user.Email]; ok {
		return nil, common.ErrorAlreadyExists
	}
	r.s.lastUserID++
	user.ID = r.s.lastUserID
	user.IsActive = true

	stored := *user
	r.s.users[user.Email] = &stored
	return user, nil
}

func (r *userRepository) GetUserByEmail(_ context.Context, email string) (*models.User, error) {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()

	u, ok := r.s.users[email]
	if !ok {
		return nil, common.ErrorNotFound
	}
	out := *u
	return &out, nil
}

type listRepository struct{ s *store }

func copyList(l *models.TodoList) *models.TodoList {
	out := *l
	out.Cards = nil
	if l.Description != nil {
		d := *l.Description
		out.Description = &d
	}
	return &out
}

func (r *listRepository) Create(_ context.Context, list *models.TodoList) (*models.TodoList, error) {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()

	r.s.lastListID++
	list.ID = r.s.lastListID
	list.ListGUID = uuid.New()

	r.s.lists = append(r.s.lists, copyList(list))
	return list, nil
}

func (r *listRepository) Get(_ context.Context, listGUID uuid.UUID, ownerID int64) (*models.TodoList, error) {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()

	for _, l := range r.s.lists {
		if l.ListGUID == listGUID && l.OwnerID == ownerID {
			return copyList(l), nil
		}
	}
	return nil, common.ErrorNotFound
}

// GetForUpdate is Get; InTx already serialises transactional blocks.
func (r *listRepository) GetForUpdate(ctx context.Context, listGUID uuid.UUID, ownerID int64) (*models.TodoList, error) {
	return r.Get(ctx, listGUID, ownerID)
}

func (r *listRepository) ListByOwner(_ context.Context, ownerID int64) ([]*models.TodoList, error) {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()

	result := make([]*models.TodoList, 0)
	for _, l := range r.s.lists {
		if l.OwnerID == ownerID {
			result = append(result, copyList(l))
		}
	}
	return result, nil
}

func (r *listRepository) Delete(_ context.Context, listGUID uuid.UUID, ownerID int64) error {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()

	for _, a := range r.s.actions {
		if a.ListGUID == listGUID {
			return errForeignKey
		}
	}
	for i, l := range r.s.lists {
		if l.ListGUID == listGUID && l.OwnerID == ownerID {
			r.s.lists = append(r.s.lists[:i], r.s.lists[i+1:]...)
			return nil
		}
	}
	return common.ErrorNotFound
}

type actionRepository struct{ s *store }

func copyAction(a *models.TodoAction) *models.TodoAction {
	out := *a
	return &out
}

func (r *actionRepository) Create(_ context.Context, action *models.TodoAction) (*models.TodoAction, error) {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()

	found := false
	for _, l := range r.s.lists {
		if l.ListGUID == action.ListGUID {
			found = true
			break
		}
	}
	if !found {
		return nil, common.ErrListNotFound
	}

	r.s.lastActionID++
	action.ID = r.s.lastActionID
	action.CardGUID = uuid.New()

	r.s.actions = append(r.s.actions, copyAction(action))
	return action, nil
}

func (r *actionRepository) Get(_ context.Context, listGUID, cardGUID uuid.UUID, ownerID int64) (*models.TodoAction, error) {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()

	for _, a := range r.s.actions {
		if a.OwnerID == ownerID && a.ListGUID == listGUID && a.CardGUID == cardGUID {
			return copyAction(a), nil
		}
	}
	return nil, common.ErrorNotFound
}

func (r *actionRepository) ListByList(_ context.Context, listGUID uuid.UUID, ownerID int64) ([]*models.TodoAction, error) {
	return r.filter(func(a *models.TodoAction) bool {
		return a.OwnerID == ownerID && a.ListGUID == listGUID
	}), nil
}

func (r *actionRepository) ListByOwner(_ context.Context, ownerID int64) ([]*models.TodoAction, error) {
	return r.filter(func(a *models.TodoAction) bool {
		return a.OwnerID == ownerID
	}), nil
}

func (r *actionRepository) filter(keep func(*models.TodoAction) bool) []*models.TodoAction {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()

	result := make([]*models.TodoAction, 0)
	for _, a := range r.s.actions {
		if keep(a) {
			result = append(result, copyAction(a))
		}
	}
	return result
}

func (r *actionRepository) Delete(_ context.Context, cardGUID uuid.UUID, ownerID int64) error {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()

	for i, a := range r.s.actions {
		if a.CardGUID == cardGUID && a.OwnerID == ownerID {
			r.s.actions = append(r.s.actions[:i], r.s.actions[i+1:]...)
			return nil
		}
	}
	return common.ErrorNotFound
}

func (r *actionRepository) DeleteByList(_ context.Context, listGUID uuid.UUID) (int64, error) {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()

	kept := r.s.actions[:0]
	var n int64
	for _, a := range r.s.actions {
		if a.ListGUID == listGUID {
			n++
			continue
		}
		kept = append(kept, a)
	}
	r.s.actions = kept
	return n, nil
}
