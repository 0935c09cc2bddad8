package service_test

import (
	"auth-service/internal/model"
	"auth-service/internal/ports"
	"context"
	"errors"
	"time"

	"github.com/jmoiron/sqlx"
	"github.com/stretchr/testify/mock"
)

type MockUserRepository struct {
	mock.Mock
}

func (m *MockUserRepository) Create(ctx context.Context, exec sqlx.ExtContext, user *model.User) (*model.User, error) {
	args := m.Called(ctx, exec, user)
	if u := args.Get(0); u != nil {
		return u.(*model.User), args.Error(1)
	}
	return nil, args.Error(1)
}

func (m *MockUserRepository) FindByID(ctx context.Context, exec sqlx.ExtContext, id string) (*model.User, error) {
	args := m.Called(ctx, exec, id)
	if u := args.Get(0); u != nil {
		return u.(*model.User), args.Error(1)
	}
	return nil, args.Error(1)
}

func (m *MockUserRepository) FindByEmail(ctx context.Context, exec sqlx.ExtContext, email string) (*model.User, error) {
	args := m.Called(ctx, exec, email)
	if u := args.Get(0); u != nil {
		return u.(*model.User), args.Error(1)
	}
	return nil, args.Error(1)
}

type MockRefreshTokenRepository struct {
	mock.Mock
}

// Create : в Return можно передать func(*model.RefreshToken) *model.RefreshToken,
// чтобы вернуть запись, построенную из аргумента
func (m *MockRefreshTokenRepository) Create(ctx context.Context, exec sqlx.ExtContext, token *model.RefreshToken) (*model.RefreshToken, error) {
	args := m.Called(ctx, exec, token)
	switch v := args.Get(0).(type) {
	case func(*model.RefreshToken) *model.RefreshToken:
		return v(token), args.Error(1)
	case *model.RefreshToken:
		return v, args.Error(1)
	}
	return nil, args.Error(1)
}

func echoToken(token *model.RefreshToken) *model.RefreshToken {
	created := *token
	created.CreatedAt = token.ExpiresAt.Add(-365 * 24 * time.Hour)
	created.UpdatedAt = created.CreatedAt
	return &created
}

func (m *MockRefreshTokenRepository) FindByID(ctx context.Context, exec sqlx.ExtContext, id string) (*model.RefreshToken, error) {
	args := m.Called(ctx, exec, id)
	if t := args.Get(0); t != nil {
		return t.(*model.RefreshToken), args.Error(1)
	}
	return nil, args.Error(1)
}

func (m *MockRefreshTokenRepository) Delete(ctx context.Context, exec sqlx.ExtContext, id string) (bool, error) {
	args := m.Called(ctx, exec, id)
	return args.Bool(0), args.Error(1)
}

func (m *MockRefreshTokenRepository) DeleteByUserID(ctx context.Context, exec sqlx.ExtContext, userID string) ([]string, error) {
	args := m.Called(ctx, exec, userID)
	ids, _ := args.Get(0).([]string)
	return ids, args.Error(1)
}

func (m *MockRefreshTokenRepository) Prune(ctx context.Context, exec sqlx.ExtContext, userID string, now time.Time, keep int) ([]string, error) {
	args := m.Called(ctx, exec, userID, now, keep)
	ids, _ := args.Get(0).([]string)
	return ids, args.Error(1)
}

type MockCache struct {
	mock.Mock
}

func (m *MockCache) SetRefreshToken(ctx context.Context, token *model.RefreshToken) error {
	return m.Called(ctx, token).Error(0)
}

func (m *MockCache) GetRefreshToken(ctx context.Context, id string) (*model.RefreshToken, error) {
	args := m.Called(ctx, id)
	if t := args.Get(0); t != nil {
		return t.(*model.RefreshToken), args.Error(1)
	}
	return nil, args.Error(1)
}

func (m *MockCache) DeleteRefreshTokens(ctx context.Context, ids ...string) error {
	return m.Called(ctx, ids).Error(0)
}

type MockHasher struct {
	mock.Mock
}

func (m *MockHasher) Hash(plaintext string) (string, error) {
	args := m.Called(plaintext)
	return args.String(0), args.Error(1)
}

func (m *MockHasher) Verify(plaintext, hash string) bool {
	return m.Called(plaintext, hash).Bool(0)
}

func (m *MockHasher) VerifyDummy(plaintext string) {
	m.Called(plaintext)
}

type MockSigner struct {
	mock.Mock
}

func (m *MockSigner) SignAccessToken(ctx context.Context, payload model.TokenPayload) (*model.SignedToken, error) {
	args := m.Called(ctx, payload)
	if t := args.Get(0); t != nil {
		return t.(*model.SignedToken), args.Error(1)
	}
	return nil, args.Error(1)
}

func (m *MockSigner) SignRefreshToken(ctx context.Context, payload model.TokenPayload) (*model.SignedToken, error) {
	args := m.Called(ctx, payload)
	if t := args.Get(0); t != nil {
		return t.(*model.SignedToken), args.Error(1)
	}
	return nil, args.Error(1)
}

func (m *MockSigner) ParseAccessToken(ctx context.Context, token string) (*model.TokenPayload, error) {
	args := m.Called(ctx, token)
	if p := args.Get(0); p != nil {
		return p.(*model.TokenPayload), args.Error(1)
	}
	return nil, args.Error(1)
}

func (m *MockSigner) ParseRefreshToken(token string) (*model.TokenPayload, error) {
	args := m.Called(token)
	if p := args.Get(0); p != nil {
		return p.(*model.TokenPayload), args.Error(1)
	}
	return nil, args.Error(1)
}

type MockLedger struct {
	mock.Mock
}

func (m *MockLedger) Persist(ctx context.Context, exec sqlx.ExtContext, userID string) (*model.RefreshToken, error) {
	args := m.Called(ctx, exec, userID)
	if t := args.Get(0); t != nil {
		return t.(*model.RefreshToken), args.Error(1)
	}
	return nil, args.Error(1)
}

func (m *MockLedger) FindByID(ctx context.Context, id string) (*model.RefreshToken, error) {
	args := m.Called(ctx, id)
	if t := args.Get(0); t != nil {
		return t.(*model.RefreshToken), args.Error(1)
	}
	return nil, args.Error(1)
}

func (m *MockLedger) Validate(ctx context.Context, payload *model.TokenPayload) (*model.RefreshToken, error) {
	args := m.Called(ctx, payload)
	if t := args.Get(0); t != nil {
		return t.(*model.RefreshToken), args.Error(1)
	}
	return nil, args.Error(1)
}

func (m *MockLedger) Consume(ctx context.Context, exec sqlx.ExtContext, id string) error {
	return m.Called(ctx, exec, id).Error(0)
}

func (m *MockLedger) Revoke(ctx context.Context, id string) error {
	return m.Called(ctx, id).Error(0)
}

func (m *MockLedger) RevokeAllForUser(ctx context.Context, userID string) error {
	return m.Called(ctx, userID).Error(0)
}

func (m *MockLedger) Prune(ctx context.Context, userID string) error {
	return m.Called(ctx, userID).Error(0)
}

func (m *MockLedger) Evict(ctx context.Context, ids ...string) {
	m.Called(ctx, ids)
}

type MockTokenIssuer struct {
	mock.Mock
}

func (m *MockTokenIssuer) Issue(ctx context.Context, exec sqlx.ExtContext, user *model.User) (*model.TokensPair, error) {
	args := m.Called(ctx, exec, user)
	if p := args.Get(0); p != nil {
		return p.(*model.TokensPair), args.Error(1)
	}
	return nil, args.Error(1)
}

// fakeTx : транзакция без БД, запоминает commit и rollback
type fakeTx struct {
	sqlx.ExtContext
	committed  bool
	rolledBack bool
	commitErr  error
}

func (tx *fakeTx) Commit() error {
	if tx.commitErr != nil {
		return tx.commitErr
	}
	tx.committed = true
	return nil
}

func (tx *fakeTx) Rollback() error {
	if !tx.committed {
		tx.rolledBack = true
	}
	return nil
}

type fakeTransactor struct {
	txs       []*fakeTx
	beginErr  error
	commitErr error
}

func (f *fakeTransactor) Executor() sqlx.ExtContext {
	return nil
}

func (f *fakeTransactor) BeginTx(context.Context) (ports.Tx, error) {
	if f.beginErr != nil {
		return nil, f.beginErr
	}
	tx := &fakeTx{commitErr: f.commitErr}
	f.txs = append(f.txs, tx)
	return tx, nil
}

func (f *fakeTransactor) lastTx() *fakeTx {
	if len(f.txs) == 0 {
		return nil
	}
	return f.txs[len(f.txs)-1]
}

// inTx : аргумент-исполнитель является открытой транзакцией
var inTx = mock.MatchedBy(func(exec sqlx.ExtContext) bool {
	_, ok := exec.(*fakeTx)
	return ok
})

var errDB = errors.New("db is down")
