package ports

import (
	"auth-service/internal/model"
	"auth-service/internal/model/requestresponse"
	"context"

	"github.com/jmoiron/sqlx"
)

type UserRepository interface {
	Create(ctx context.Context, exec sqlx.ExtContext, user *model.User) (*model.User, error)
	FindByID(ctx context.Context, exec sqlx.ExtContext, id string) (*model.User, error)
	FindByEmail(ctx context.Context, exec sqlx.ExtContext, email string) (*model.User, error)
}

type UserService interface {
	Register(ctx context.Context, req requestresponse.RegisterRequest) (*model.TokensPair, error)
	GetUser(ctx context.Context, id string) (*model.User, error)
}
