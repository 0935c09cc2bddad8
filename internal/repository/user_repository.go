package repository

import (
	"auth-service/internal/apperror"
	"auth-service/internal/model"
	"auth-service/internal/util"
	"context"
	"database/sql"
	"errors"

	"github.com/jmoiron/sqlx"
	"github.com/lib/pq"
)

const uniqueViolation = "23505"

const userColumns = `id, first_name, last_name, email, password_hash, role, created_at, updated_at`

type UserRepository struct{}

func NewUserRepository() *UserRepository {
	return &UserRepository{}
}

// Create : сохраняет нового пользователя.
// Нарушение уникальности email превращается в DuplicateIdentity.
func (r *UserRepository) Create(ctx context.Context, exec sqlx.ExtContext, user *model.User) (*model.User, error) {
	query := `
	INSERT INTO users (id, first_name, last_name, email, password_hash, role)
	VALUES ($1, $2, $3, $4, $5, $6)
	RETURNING ` + userColumns

	var created model.User
	err := sqlx.GetContext(ctx, exec, &created, query,
		user.ID, user.FirstName, user.LastName, user.Email, user.PasswordHash, user.Role)
	if err != nil {
		if isUniqueViolation(err) {
			return nil, apperror.Wrap(apperror.DuplicateIdentity, "Email is already exists!", err)
		}
		return nil, apperror.Wrap(apperror.StorageFailure, "failed to save user", util.LogError("[UserRepo] ошибка вставки данных в БД", err))
	}

	return &created, nil
}

// FindByID : ищет пользователя по id, (nil, nil) если его нет
func (r *UserRepository) FindByID(ctx context.Context, exec sqlx.ExtContext, id string) (*model.User, error) {
	return r.findOne(ctx, exec, `SELECT `+userColumns+` FROM users WHERE id = $1`, id)
}

// FindByEmail : ищет пользователя по нормализованному email, (nil, nil) если его нет
func (r *UserRepository) FindByEmail(ctx context.Context, exec sqlx.ExtContext, email string) (*model.User, error) {
	return r.findOne(ctx, exec, `SELECT `+userColumns+` FROM users WHERE email = $1`, email)
}

func (r *UserRepository) findOne(ctx context.Context, exec sqlx.ExtContext, query string, arg string) (*model.User, error) {
	var user model.User
	err := sqlx.GetContext(ctx, exec, &user, query, arg)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, nil
	}
	if err != nil {
		return nil, apperror.Wrap(apperror.StorageFailure, "failed to load user", util.LogError("[UserRepo] не удалось найти пользователя в БД", err))
	}
	return &user, nil
}

func isUniqueViolation(err error) bool {
	var pqErr *pq.Error
	return errors.As(err, &pqErr) && pqErr.Code == uniqueViolation
}
