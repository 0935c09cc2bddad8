package ports

import (
	"auth-service/internal/model"
	"context"
)

// RefreshTokenCache : Redis слой для записей refresh-токенов
type RefreshTokenCache interface {
	SetRefreshToken(ctx context.Context, token *model.RefreshToken) error
	GetRefreshToken(ctx context.Context, id string) (*model.RefreshToken, error)
	DeleteRefreshTokens(ctx context.Context, ids ...string) error
}
