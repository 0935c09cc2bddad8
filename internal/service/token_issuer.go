package service

import (
	"auth-service/internal/model"
	"auth-service/internal/ports"
	"context"

	"github.com/jmoiron/sqlx"
)

type TokenIssuer struct {
	signer ports.TokenSigner
	ledger ports.RefreshTokenLedger
}

func NewTokenIssuer(signer ports.TokenSigner, ledger ports.RefreshTokenLedger) *TokenIssuer {
	return &TokenIssuer{signer: signer, ledger: ledger}
}

// Issue выпускает пару токенов на транзакции вызывающего:
// access токен, затем запись в реестре, затем refresh токен с jti = id записи
// и exp = expires_at записи.
// Коммит делает вызывающий и только если Issue вернул nil.
func (i *TokenIssuer) Issue(ctx context.Context, exec sqlx.ExtContext, user *model.User) (*model.TokensPair, error) {
	payload := model.TokenPayload{Subject: user.ID, Role: user.Role}

	access, err := i.signer.SignAccessToken(ctx, payload)
	if err != nil {
		return nil, err
	}

	record, err := i.ledger.Persist(ctx, exec, user.ID)
	if err != nil {
		return nil, err
	}

	payload.TokenID = record.ID
	payload.ExpiresAt = record.ExpiresAt
	refresh, err := i.signer.SignRefreshToken(ctx, payload)
	if err != nil {
		return nil, err
	}

	return &model.TokensPair{
		AccessToken:      access.Value,
		RefreshToken:     refresh.Value,
		UserID:           user.ID,
		RefreshTokenID:   record.ID,
		AccessExpiresAt:  access.ExpiresAt,
		RefreshExpiresAt: refresh.ExpiresAt,
	}, nil
}
