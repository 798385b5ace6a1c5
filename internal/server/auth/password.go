package auth

import (
	"errors"
	"fmt"

	"github.com/dmitrijs2005/todokeeper/internal/common"
	"golang.org/x/crypto/bcrypt"
)

// HashPassword returns a bcrypt digest of password. Each call uses a fresh
// salt, so hashing the same password twice gives different strings.
// Passwords longer than bcrypt's 72-byte limit are a validation error.
func HashPassword(password string) (string, error) {
	hash, err := bcrypt.GenerateFromPassword([]byte(password), bcrypt.DefaultCost)
	if errors.Is(err, bcrypt.ErrPasswordTooLong) {
		return "", fmt.Errorf("%w: password longer than 72 bytes", common.ErrorValidation)
	}
	if err != nil {
		return "", fmt.Errorf("hash password: %w", err)
	}
	return string(hash), nil
}

// CheckPassword reports whether password matches hash. A malformed hash
// counts as a mismatch.
func CheckPassword(password, hash string) bool {
	return bcrypt.CompareHashAndPassword([]byte(hash), []byte(password)) == nil
}
