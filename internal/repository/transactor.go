package repository

import (
	"auth-service/config"
	"auth-service/internal/apperror"
	"auth-service/internal/ports"
	"auth-service/internal/util"
	"context"

	"github.com/jmoiron/sqlx"
)

type Transactor struct {
	*config.Database
}

func NewTransactor(database *config.Database) *Transactor {
	return &Transactor{database}
}

func (t *Transactor) Executor() sqlx.ExtContext {
	return t.DB
}

func (t *Transactor) BeginTx(ctx context.Context) (ports.Tx, error) {
	tx, err := t.DB.BeginTxx(ctx, nil)
	if err != nil {
		return nil, apperror.Wrap(apperror.StorageFailure, "failed to start transaction", util.LogError("[Transactor] не удалось начать транзакцию", err))
	}
	return tx, nil
}
