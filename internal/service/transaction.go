package service

import (
	"auth-service/internal/apperror"
	"auth-service/internal/ports"
	"auth-service/internal/util"
	"context"
)

// withTx выполняет fn в транзакции. Любая ошибка fn откатывает транзакцию.
func withTx(ctx context.Context, transactor ports.Transactor, fn func(tx ports.Tx) error) error {
	tx, err := transactor.BeginTx(ctx)
	if err != nil {
		return err
	}
	defer func() { _ = tx.Rollback() }()

	if err := fn(tx); err != nil {
		return err
	}

	if err := tx.Commit(); err != nil {
		return apperror.Wrap(apperror.StorageFailure, "failed to commit transaction", util.LogError("[Tx] не удалось зафиксировать транзакцию", err))
	}
	return nil
}
