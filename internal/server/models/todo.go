// Package models defines server-side records persisted in the database.
package models

import (
	"time"

	"github.com/google/uuid"
)

// TodoList is a named list owned by exactly one user. ID is internal;
// ListGUID is the only identifier shown to clients.
type TodoList struct {
	ID          int64
	ListGUID    uuid.UUID
	OwnerID     int64
	Title       string
	Description *string

	// Cards is populated by the service layer, never by the lists repository.
	Cards []*TodoAction
}

// TodoAction is a card under a list. OwnerID duplicates the parent list's
// owner so card lookups can be owner-scoped without a join.
type TodoAction struct {
	ID          int64
	CardGUID    uuid.UUID
	ListGUID    uuid.UUID
	OwnerID     int64
	Title       string
	Description string
	Deadline    time.Time
}
