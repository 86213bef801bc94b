package model

import (
	"context"
	"time"

	"github.com/google/uuid"
)

// UserStore defines persistence operations for users. Email and biometric
// key are unique columns; Create reports a violation of either constraint
// as ErrDuplicateKey.
type UserStore interface {
	GetByEmail(ctx context.Context, email string) (User, error)
	GetByBiometricKey(ctx context.Context, key string) (User, error)
	GetByID(ctx context.Context, id uuid.UUID) (User, error)
	Create(ctx context.Context, user User) (User, error)
}

// User represents a registered account. Records are created once at
// registration and never updated or deleted.
type User struct {
	ID           uuid.UUID
	Email        string
	PasswordHash string
	BiometricKey string
	CreatedAt    time.Time
	UpdatedAt    time.Time
}
