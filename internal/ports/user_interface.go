package ports

import (
	"auth-web-server/internal/model"
	"context"
)

type UserRepository interface {
	CreateUser(ctx context.Context, user *model.User) (*model.User, error)
	FindByID(ctx context.Context, id int64) (*model.User, error)
	FindByEmail(ctx context.Context, email string) (*model.User, error)
}

type UserService interface {
	Register(ctx context.Context, email, fullName, password string) (*model.User, error)
	GetUser(ctx context.Context, id int64) (*model.User, error)
}
