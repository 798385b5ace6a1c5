// Package common defines shared constants and sentinel errors used across
// the todokeeper layers. Callers should use errors.Is to match these values.
package common

import (
	"errors"
	"fmt"
)

var (
	// Repository-level errors.
	ErrorNotFound      = errors.New("not found")
	ErrorAlreadyExists = errors.New("already exists")

	// Both match ErrorNotFound.
	ErrListNotFound = fmt.Errorf("list %w", ErrorNotFound)
	ErrCardNotFound = fmt.Errorf("card %w", ErrorNotFound)

	// Service-level errors.
	ErrorInternal     = errors.New("internal error")
	ErrorUnauthorized = errors.New("unauthorized")
	ErrorInactiveUser = errors.New("inactive user")
	ErrorValidation   = errors.New("validation error")

	// Auth errors (invalid or malformed token).
	ErrInvalidToken = errors.New("invalid token")

	// Token lifecycle errors.
	ErrTokenExpired = errors.New("token expired")
)
