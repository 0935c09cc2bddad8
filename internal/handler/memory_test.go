package handler_test

import (
	"auth-service/internal/apperror"
	"auth-service/internal/model"
	"auth-service/internal/ports"
	"context"
	"sort"
	"sync"
	"time"

	"github.com/jmoiron/sqlx"
)

// memTx откладывает записи до Commit, Rollback их отбрасывает
type memTx struct {
	sqlx.ExtContext
	pending []func()
}

func (tx *memTx) Commit() error {
	for _, op := range tx.pending {
		op()
	}
	tx.pending = nil
	return nil
}

func (tx *memTx) Rollback() error {
	tx.pending = nil
	return nil
}

func apply(exec sqlx.ExtContext, op func()) {
	if tx, ok := exec.(*memTx); ok {
		tx.pending = append(tx.pending, op)
		return
	}
	op()
}

type memTransactor struct{}

func (memTransactor) Executor() sqlx.ExtContext { return nil }

func (memTransactor) BeginTx(context.Context) (ports.Tx, error) { return &memTx{}, nil }

type memoryUsers struct {
	mu    sync.Mutex
	byID  map[string]*model.User
	clock func() time.Time
}

func newMemoryUsers() *memoryUsers {
	return &memoryUsers{byID: map[string]*model.User{}, clock: time.Now}
}

func (m *memoryUsers) Create(_ context.Context, exec sqlx.ExtContext, user *model.User) (*model.User, error) {
	m.mu.Lock()
	defer m.mu.Unlock()

	for _, u := range m.byID {
		if u.Email == user.Email {
			return nil, apperror.New(apperror.DuplicateIdentity, "Email is already exists!")
		}
	}

	created := *user
	created.CreatedAt = m.clock()
	created.UpdatedAt = created.CreatedAt
	apply(exec, func() {
		m.mu.Lock()
		defer m.mu.Unlock()
		stored := created
		m.byID[created.ID] = &stored
	})
	return &created, nil
}

func (m *memoryUsers) FindByID(_ context.Context, _ sqlx.ExtContext, id string) (*model.User, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	if u, ok := m.byID[id]; ok {
		copied := *u
		return &copied, nil
	}
	return nil, nil
}

func (m *memoryUsers) FindByEmail(_ context.Context, _ sqlx.ExtContext, email string) (*model.User, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	for _, u := range m.byID {
		if u.Email == email {
			copied := *u
			return &copied, nil
		}
	}
	return nil, nil
}

func (m *memoryUsers) count() int {
	m.mu.Lock()
	defer m.mu.Unlock()
	return len(m.byID)
}

type memoryTokens struct {
	mu   sync.Mutex
	byID map[string]*model.RefreshToken
	seq  int
}

func newMemoryTokens() *memoryTokens {
	return &memoryTokens{byID: map[string]*model.RefreshToken{}}
}

func (m *memoryTokens) Create(_ context.Context, exec sqlx.ExtContext, token *model.RefreshToken) (*model.RefreshToken, error) {
	m.mu.Lock()
	m.seq++
	created := *token
	created.CreatedAt = time.Unix(int64(m.seq), 0)
	created.UpdatedAt = created.CreatedAt
	m.mu.Unlock()

	apply(exec, func() {
		m.mu.Lock()
		defer m.mu.Unlock()
		stored := created
		m.byID[created.ID] = &stored
	})
	return &created, nil
}

func (m *memoryTokens) FindByID(_ context.Context, _ sqlx.ExtContext, id string) (*model.RefreshToken, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	if t, ok := m.byID[id]; ok {
		copied := *t
		return &copied, nil
	}
	return nil, nil
}

func (m *memoryTokens) Delete(_ context.Context, exec sqlx.ExtContext, id string) (bool, error) {
	m.mu.Lock()
	_, ok := m.byID[id]
	m.mu.Unlock()

	apply(exec, func() {
		m.mu.Lock()
		defer m.mu.Unlock()
		delete(m.byID, id)
	})
	return ok, nil
}

func (m *memoryTokens) DeleteByUserID(_ context.Context, _ sqlx.ExtContext, userID string) ([]string, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	var ids []string
	for id, t := range m.byID {
		if t.UserID == userID {
			ids = append(ids, id)
			delete(m.byID, id)
		}
	}
	return ids, nil
}

func (m *memoryTokens) Prune(_ context.Context, _ sqlx.ExtContext, userID string, now time.Time, keep int) ([]string, error) {
	m.mu.Lock()
	defer m.mu.Unlock()

	var active []*model.RefreshToken
	var removed []string
	for id, t := range m.byID {
		if t.UserID != userID {
			continue
		}
		if !now.Before(t.ExpiresAt) {
			removed = append(removed, id)
			delete(m.byID, id)
			continue
		}
		active = append(active, t)
	}

	if keep >= 0 && len(active) > keep {
		sort.Slice(active, func(i, j int) bool { return active[i].CreatedAt.After(active[j].CreatedAt) })
		for _, t := range active[keep:] {
			removed = append(removed, t.ID)
			delete(m.byID, t.ID)
		}
	}
	return removed, nil
}

func (m *memoryTokens) forUser(userID string) []*model.RefreshToken {
	m.mu.Lock()
	defer m.mu.Unlock()
	var out []*model.RefreshToken
	for _, t := range m.byID {
		if t.UserID == userID {
			copied := *t
			out = append(out, &copied)
		}
	}
	return out
}
