package ports

import (
	"auth-service/internal/model"
	"context"
	"crypto/rsa"
	"time"

	"github.com/jmoiron/sqlx"
)

type RefreshTokenRepository interface {
	Create(ctx context.Context, exec sqlx.ExtContext, token *model.RefreshToken) (*model.RefreshToken, error)
	FindByID(ctx context.Context, exec sqlx.ExtContext, id string) (*model.RefreshToken, error)
	Delete(ctx context.Context, exec sqlx.ExtContext, id string) (bool, error)
	DeleteByUserID(ctx context.Context, exec sqlx.ExtContext, userID string) ([]string, error)
	// Prune удаляет просроченные записи и все, кроме keep самых новых. При keep < 0 ограничения нет.
	Prune(ctx context.Context, exec sqlx.ExtContext, userID string, now time.Time, keep int) ([]string, error)
}

type PasswordHasher interface {
	Hash(plaintext string) (string, error)
	Verify(plaintext, hash string) bool
	VerifyDummy(plaintext string)
}

type KeyProvider interface {
	PrivateKey(ctx context.Context) (*rsa.PrivateKey, error)
	PublicKey(ctx context.Context) (*rsa.PublicKey, error)
}

type TokenSigner interface {
	SignAccessToken(ctx context.Context, payload model.TokenPayload) (*model.SignedToken, error)
	SignRefreshToken(ctx context.Context, payload model.TokenPayload) (*model.SignedToken, error)
	ParseAccessToken(ctx context.Context, token string) (*model.TokenPayload, error)
	ParseRefreshToken(token string) (*model.TokenPayload, error)
}

type RefreshTokenLedger interface {
	Persist(ctx context.Context, exec sqlx.ExtContext, userID string) (*model.RefreshToken, error)
	FindByID(ctx context.Context, id string) (*model.RefreshToken, error)
	Validate(ctx context.Context, payload *model.TokenPayload) (*model.RefreshToken, error)
	Consume(ctx context.Context, exec sqlx.ExtContext, id string) error
	Revoke(ctx context.Context, id string) error
	RevokeAllForUser(ctx context.Context, userID string) error
	Prune(ctx context.Context, userID string) error
	Evict(ctx context.Context, ids ...string)
}

type TokenIssuer interface {
	Issue(ctx context.Context, exec sqlx.ExtContext, user *model.User) (*model.TokensPair, error)
}
