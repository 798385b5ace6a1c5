package models

// User is a registered account. Users are never updated or deleted once
// created.
type User struct {
	ID             int64
	Email          string
	HashedPassword string
	IsActive       bool
}
