package security

import (
	"auth-service/config"
	"auth-service/internal/apperror"
	"auth-service/internal/model"
	"auth-service/internal/ports"
	"auth-service/internal/util"
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/golang-jwt/jwt/v5"
)

type Claims struct {
	Role string `json:"role,omitempty"`
	jwt.RegisteredClaims
}

// JWTService подписывает access токены ключом RSA (RS256),
// а refresh токены общим секретом (HS256).
type JWTService struct {
	keys          ports.KeyProvider
	refreshSecret []byte
	issuer        string
	accessTTL     time.Duration
	refreshTTL    time.Duration
	now           func() time.Time
}

func NewJWTService(cfg *config.JWTConfig, keys ports.KeyProvider) *JWTService {
	return &JWTService{
		keys:          keys,
		refreshSecret: []byte(cfg.RefreshTokenSecret),
		issuer:        cfg.Issuer,
		accessTTL:     cfg.AccessTokenTTL,
		refreshTTL:    cfg.RefreshTokenTTL,
		now:           time.Now,
	}
}

// WithClock подменяет источник времени, используется в тестах
func (s *JWTService) WithClock(now func() time.Time) *JWTService {
	s.now = now
	return s
}

func (s *JWTService) SignAccessToken(ctx context.Context, payload model.TokenPayload) (*model.SignedToken, error) {
	if payload.Subject == "" {
		return nil, apperror.New(apperror.InvalidPayload, "token subject is required")
	}

	privateKey, err := s.keys.PrivateKey(ctx)
	if err != nil {
		return nil, err
	}

	claims, issuedAt, expiresAt := s.claims(payload, s.accessTTL)
	// jti в access токене не нужен
	claims.ID = ""

	signed, err := jwt.NewWithClaims(jwt.SigningMethodRS256, claims).SignedString(privateKey)
	if err != nil {
		return nil, apperror.Wrap(apperror.KeyUnavailable, "failed to sign access token", util.LogError("[JWTService] ошибка подписи access токена", err))
	}

	return &model.SignedToken{Value: signed, IssuedAt: issuedAt, ExpiresAt: expiresAt}, nil
}

func (s *JWTService) SignRefreshToken(_ context.Context, payload model.TokenPayload) (*model.SignedToken, error) {
	if payload.Subject == "" {
		return nil, apperror.New(apperror.InvalidPayload, "token subject is required")
	}
	if payload.TokenID == "" {
		return nil, apperror.New(apperror.InvalidPayload, "refresh token id is required")
	}
	if len(s.refreshSecret) == 0 {
		return nil, apperror.New(apperror.KeyUnavailable, "refresh token secret is not configured")
	}

	claims, issuedAt, expiresAt := s.claims(payload, s.refreshTTL)
	if !payload.ExpiresAt.IsZero() {
		expiresAt = payload.ExpiresAt.UTC().Truncate(time.Second)
		if !expiresAt.After(issuedAt) {
			return nil, apperror.New(apperror.InvalidPayload, "refresh token expiry must be in the future")
		}
		claims.ExpiresAt = jwt.NewNumericDate(expiresAt)
	}

	signed, err := jwt.NewWithClaims(jwt.SigningMethodHS256, claims).SignedString(s.refreshSecret)
	if err != nil {
		return nil, apperror.Wrap(apperror.KeyUnavailable, "failed to sign refresh token", util.LogError("[JWTService] ошибка подписи refresh токена", err))
	}

	return &model.SignedToken{Value: signed, IssuedAt: issuedAt, ExpiresAt: expiresAt}, nil
}

// ParseAccessToken проверяет access токен публичным ключом
func (s *JWTService) ParseAccessToken(ctx context.Context, token string) (*model.TokenPayload, error) {
	publicKey, err := s.keys.PublicKey(ctx)
	if err != nil {
		return nil, err
	}

	claims, err := s.parse(token, jwt.SigningMethodRS256.Alg(), publicKey)
	if err != nil {
		return nil, err
	}

	return &model.TokenPayload{Subject: claims.Subject, Role: model.Role(claims.Role)}, nil
}

func (s *JWTService) ParseRefreshToken(token string) (*model.TokenPayload, error) {
	claims, err := s.parse(token, jwt.SigningMethodHS256.Alg(), s.refreshSecret)
	if err != nil {
		return nil, err
	}
	if claims.ID == "" {
		return nil, apperror.New(apperror.InvalidToken, "invalid refresh token")
	}

	return &model.TokenPayload{Subject: claims.Subject, Role: model.Role(claims.Role), TokenID: claims.ID}, nil
}

func (s *JWTService) claims(payload model.TokenPayload, ttl time.Duration) (Claims, time.Time, time.Time) {
	issuedAt := s.now().UTC().Truncate(time.Second)
	expiresAt := issuedAt.Add(ttl)

	return Claims{
		Role: string(payload.Role),
		RegisteredClaims: jwt.RegisteredClaims{
			Subject:   payload.Subject,
			Issuer:    s.issuer,
			IssuedAt:  jwt.NewNumericDate(issuedAt),
			ExpiresAt: jwt.NewNumericDate(expiresAt),
			ID:        payload.TokenID,
		},
	}, issuedAt, expiresAt
}

func (s *JWTService) parse(token, alg string, key any) (*Claims, error) {
	claims := &Claims{}

	parsed, err := jwt.ParseWithClaims(token, claims, func(t *jwt.Token) (interface{}, error) {
		return key, nil
	},
		jwt.WithValidMethods([]string{alg}),
		jwt.WithIssuer(s.issuer),
		jwt.WithExpirationRequired(),
		jwt.WithTimeFunc(s.now),
	)
	if err != nil || !parsed.Valid {
		if err == nil {
			err = errors.New("token is not valid")
		}
		return nil, apperror.Wrap(apperror.InvalidToken, "invalid token", fmt.Errorf("[JWTService] невалидный токен: %w", err))
	}
	if claims.Subject == "" {
		return nil, apperror.New(apperror.InvalidToken, "invalid token")
	}

	return claims, nil
}
