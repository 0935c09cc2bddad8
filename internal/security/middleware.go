package security

import (
	"auth-service/internal/apperror"
	"auth-service/internal/model"
	"auth-service/internal/ports"
	"context"
	"net/http"
	"strings"
)

type contextKey string

const (
	UserContextKey contextKey = "user"

	AccessTokenCookie  = "accessToken"
	RefreshTokenCookie = "refreshToken"
)

// JWTMiddleware пропускает запрос дальше только с валидным access токеном.
// Токен берется из cookie accessToken или из заголовка Authorization: Bearer.
func JWTMiddleware(signer ports.TokenSigner, onError func(http.ResponseWriter, error)) func(handler http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(writer http.ResponseWriter, request *http.Request) {
			token := accessTokenFromRequest(request)
			if token == "" {
				onError(writer, apperror.New(apperror.InvalidToken, "access token is required"))
				return
			}

			payload, err := signer.ParseAccessToken(request.Context(), token)
			if err != nil {
				onError(writer, err)
				return
			}

			next.ServeHTTP(writer, request.WithContext(ContextWithClaims(request.Context(), payload)))
		})
	}
}

func accessTokenFromRequest(request *http.Request) string {
	if cookie, err := request.Cookie(AccessTokenCookie); err == nil && cookie.Value != "" {
		return cookie.Value
	}

	authorizationHeader := request.Header.Get("Authorization")
	if strings.HasPrefix(authorizationHeader, "Bearer ") {
		return strings.TrimSpace(strings.TrimPrefix(authorizationHeader, "Bearer "))
	}
	return ""
}

func ContextWithClaims(ctx context.Context, payload *model.TokenPayload) context.Context {
	return context.WithValue(ctx, UserContextKey, payload)
}

func GetClaimsFromContext(ctx context.Context) (*model.TokenPayload, error) {
	claims, ok := ctx.Value(UserContextKey).(*model.TokenPayload)
	if !ok || claims == nil {
		return nil, apperror.New(apperror.InvalidToken, "user is not authorized")
	}
	return claims, nil
}
