package repository

import (
	"auth-service/internal/apperror"
	"auth-service/internal/model"
	"auth-service/internal/util"
	"context"
	"database/sql"
	"errors"
	"time"

	"github.com/jmoiron/sqlx"
)

const refreshTokenColumns = `id, user_id, expires_at, created_at, updated_at`

type RefreshTokenRepository struct{}

func NewRefreshTokenRepository() *RefreshTokenRepository {
	return &RefreshTokenRepository{}
}

// Create сохраняет запись о refresh-токене одним INSERT ... RETURNING
func (r *RefreshTokenRepository) Create(ctx context.Context, exec sqlx.ExtContext, token *model.RefreshToken) (*model.RefreshToken, error) {
	query := `INSERT INTO refresh_tokens (id, user_id, expires_at)
				VALUES ($1, $2, $3)
				RETURNING ` + refreshTokenColumns

	var created model.RefreshToken
	if err := sqlx.GetContext(ctx, exec, &created, query, token.ID, token.UserID, token.ExpiresAt); err != nil {
		return nil, apperror.Wrap(apperror.StorageFailure, "failed to save refresh token", util.LogError("[RefreshTokenRepo] ошибка вставки данных в БД", err))
	}

	return &created, nil
}

// FindByID ищет запись, (nil, nil) если ее нет
func (r *RefreshTokenRepository) FindByID(ctx context.Context, exec sqlx.ExtContext, id string) (*model.RefreshToken, error) {
	query := `SELECT ` + refreshTokenColumns + ` FROM refresh_tokens WHERE id = $1`

	var token model.RefreshToken
	err := sqlx.GetContext(ctx, exec, &token, query, id)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, nil
	}
	if err != nil {
		return nil, apperror.Wrap(apperror.StorageFailure, "failed to load refresh token", util.LogError("[RefreshTokenRepo] ошибка при выполнении запроса", err))
	}

	return &token, nil
}

// Delete возвращает false, если записи уже не было
func (r *RefreshTokenRepository) Delete(ctx context.Context, exec sqlx.ExtContext, id string) (bool, error) {
	result, err := exec.ExecContext(ctx, `DELETE FROM refresh_tokens WHERE id = $1`, id)
	if err != nil {
		return false, apperror.Wrap(apperror.StorageFailure, "failed to delete refresh token", util.LogError("[RefreshTokenRepo] не удалось удалить токен", err))
	}

	rowsAffected, err := result.RowsAffected()
	if err != nil {
		return false, apperror.Wrap(apperror.StorageFailure, "failed to delete refresh token", util.LogError("[RefreshTokenRepo] не удалось проверить, удален ли токен", err))
	}

	return rowsAffected > 0, nil
}

func (r *RefreshTokenRepository) DeleteByUserID(ctx context.Context, exec sqlx.ExtContext, userID string) ([]string, error) {
	var ids []string
	err := sqlx.SelectContext(ctx, exec, &ids, `DELETE FROM refresh_tokens WHERE user_id = $1 RETURNING id`, userID)
	if err != nil {
		return nil, apperror.Wrap(apperror.StorageFailure, "failed to delete refresh tokens", util.LogError("[RefreshTokenRepo] не удалось удалить токены пользователя", err))
	}
	return ids, nil
}

func (r *RefreshTokenRepository) Prune(ctx context.Context, exec sqlx.ExtContext, userID string, now time.Time, keep int) ([]string, error) {
	var (
		ids []string
		err error
	)

	if keep < 0 {
		err = sqlx.SelectContext(ctx, exec, &ids, `
			DELETE FROM refresh_tokens
			WHERE user_id = $1 AND expires_at <= $2
			RETURNING id`, userID, now)
	} else {
		err = sqlx.SelectContext(ctx, exec, &ids, `
			DELETE FROM refresh_tokens
			WHERE user_id = $1
			  AND (expires_at <= $2 OR id IN (
				SELECT id FROM refresh_tokens
				WHERE user_id = $1 AND expires_at > $2
				ORDER BY created_at DESC, id DESC
				OFFSET $3))
			RETURNING id`, userID, now, keep)
	}
	if err != nil {
		return nil, apperror.Wrap(apperror.StorageFailure, "failed to prune refresh tokens", util.LogError("[RefreshTokenRepo] не удалось очистить старые токены", err))
	}

	return ids, nil
}
