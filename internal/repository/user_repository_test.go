package repository_test

import (
	"auth-service/internal/apperror"
	"auth-service/internal/model"
	"auth-service/internal/repository"
	"context"
	"errors"
	"testing"
	"time"

	"github.com/DATA-DOG/go-sqlmock"
	"github.com/lib/pq"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

var userRowColumns = []string{"id", "first_name", "last_name", "email", "password_hash", "role", "created_at", "updated_at"}

func TestUserRepository_Create(t *testing.T) {
	now := time.Now().UTC()
	user := &model.User{ID: "user-1", FirstName: "Ivan", LastName: "Petrov", Email: "ivan@example.com", PasswordHash: "hash", Role: model.RoleCustomer}

	tests := []struct {
		name     string
		setup    func(mock sqlmock.Sqlmock)
		wantKind apperror.Kind
	}{
		{
			name: "success",
			setup: func(mock sqlmock.Sqlmock) {
				mock.ExpectQuery(`INSERT INTO users`).
					WithArgs("user-1", "Ivan", "Petrov", "ivan@example.com", "hash", model.RoleCustomer).
					WillReturnRows(sqlmock.NewRows(userRowColumns).
						AddRow("user-1", "Ivan", "Petrov", "ivan@example.com", "hash", "customer", now, now))
			},
		},
		{
			name: "duplicate email",
			setup: func(mock sqlmock.Sqlmock) {
				mock.ExpectQuery(`INSERT INTO users`).WillReturnError(&pq.Error{Code: "23505", Constraint: "users_email_key"})
			},
			wantKind: apperror.DuplicateIdentity,
		},
		{
			name: "storage failure",
			setup: func(mock sqlmock.Sqlmock) {
				mock.ExpectQuery(`INSERT INTO users`).WillReturnError(errors.New("connection reset"))
			},
			wantKind: apperror.StorageFailure,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			db, mock := newMockDB(t)
			tt.setup(mock)

			created, err := repository.NewUserRepository().Create(context.Background(), db, user)

			if tt.wantKind != "" {
				require.Error(t, err)
				assert.Equal(t, tt.wantKind, apperror.KindOf(err))
				assert.Nil(t, created)
			} else {
				require.NoError(t, err)
				assert.Equal(t, "user-1", created.ID)
				assert.Equal(t, model.RoleCustomer, created.Role)
				assert.Equal(t, now, created.CreatedAt)
			}
			assert.NoError(t, mock.ExpectationsWereMet())
		})
	}
}

func TestUserRepository_FindByEmail(t *testing.T) {
	now := time.Now().UTC()

	t.Run("found", func(t *testing.T) {
		db, mock := newMockDB(t)
		mock.ExpectQuery(`SELECT .* FROM users WHERE email = \$1`).
			WithArgs("ivan@example.com").
			WillReturnRows(sqlmock.NewRows(userRowColumns).
				AddRow("user-1", "Ivan", "Petrov", "ivan@example.com", "hash", "customer", now, now))

		user, err := repository.NewUserRepository().FindByEmail(context.Background(), db, "ivan@example.com")
		require.NoError(t, err)
		require.NotNil(t, user)
		assert.Equal(t, "hash", user.PasswordHash)
		assert.NoError(t, mock.ExpectationsWereMet())
	})

	t.Run("not found", func(t *testing.T) {
		db, mock := newMockDB(t)
		mock.ExpectQuery(`SELECT .* FROM users WHERE email = \$1`).
			WithArgs("nobody@example.com").
			WillReturnRows(sqlmock.NewRows(userRowColumns))

		user, err := repository.NewUserRepository().FindByEmail(context.Background(), db, "nobody@example.com")
		assert.NoError(t, err)
		assert.Nil(t, user)
	})

	t.Run("storage failure", func(t *testing.T) {
		db, mock := newMockDB(t)
		mock.ExpectQuery(`SELECT .* FROM users WHERE id = \$1`).WillReturnError(errors.New("timeout"))

		user, err := repository.NewUserRepository().FindByID(context.Background(), db, "user-1")
		assert.Equal(t, apperror.StorageFailure, apperror.KindOf(err))
		assert.Nil(t, user)
	})
}
