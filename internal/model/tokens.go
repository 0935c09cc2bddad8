package model

import "time"

// RefreshToken : запись о выданном refresh-токене.
// ID совпадает с claim jti самого токена.
type RefreshToken struct {
	ID        string    `db:"id" json:"id"`
	UserID    string    `db:"user_id" json:"userId"`
	ExpiresAt time.Time `db:"expires_at" json:"expiresAt"`
	CreatedAt time.Time `db:"created_at" json:"createdAt"`
	UpdatedAt time.Time `db:"updated_at" json:"updatedAt"`
}

func (t *RefreshToken) Expired(now time.Time) bool {
	return !now.Before(t.ExpiresAt)
}

// TokenPayload : данные, которые попадают в claims токена.
// ExpiresAt задается только для refresh токена и равен expires_at записи в реестре.
type TokenPayload struct {
	Subject   string
	Role      Role
	TokenID   string
	ExpiresAt time.Time
}

type SignedToken struct {
	Value     string
	IssuedAt  time.Time
	ExpiresAt time.Time
}

// TokensPair содержит пару access и refresh токенов
// swagger:model
type TokensPair struct {
	// Access токен (JWT, RS256)
	AccessToken string `json:"accessToken"`

	// Refresh токен (JWT, HS256)
	RefreshToken string `json:"refreshToken"`

	UserID           string    `json:"-"`
	RefreshTokenID   string    `json:"-"`
	AccessExpiresAt  time.Time `json:"-"`
	RefreshExpiresAt time.Time `json:"-"`
}
