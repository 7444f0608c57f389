package repo

import (
	"context"

	"github.com/gomicroshop/auth-service/internal/domain/auth/model"
)

// UserRepo is the store boundary the auth service composes over.
type UserRepo interface {
	CreateUser(ctx context.Context, u model.User) (string, error)

	GetUserByEmail(ctx context.Context, email string) (model.User, error)

	GetUserByID(ctx context.Context, id string) (model.User, error)
}
