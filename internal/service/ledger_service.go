package service

import (
	"auth-service/config"
	"auth-service/internal/apperror"
	"auth-service/internal/model"
	"auth-service/internal/ports"
	"context"
	"log"
	"time"

	"github.com/google/uuid"
	"github.com/jmoiron/sqlx"
)

// LedgerService хранит записи о выданных refresh-токенах.
// Refresh-токен считается действительным только при наличии неистекшей записи.
// Redis используется как кэш чтения и никогда не заменяет БД при записи.
type LedgerService struct {
	repository ports.RefreshTokenRepository
	cache      ports.RefreshTokenCache
	transactor ports.Transactor
	ttl        time.Duration
	maxActive  int
	now        func() time.Time
}

// NewLedgerService : cache может быть nil, тогда все чтения идут в БД.
// maxActive < 0 отключает ограничение числа активных токенов, 0 заменяется значением по умолчанию.
func NewLedgerService(
	repository ports.RefreshTokenRepository,
	cache ports.RefreshTokenCache,
	transactor ports.Transactor,
	ttl time.Duration,
	maxActive int,
) *LedgerService {
	if maxActive == 0 {
		maxActive = config.DefaultMaxActivePerUser
	}
	return &LedgerService{
		repository: repository,
		cache:      cache,
		transactor: transactor,
		ttl:        ttl,
		maxActive:  maxActive,
		now:        time.Now,
	}
}

func (s *LedgerService) WithClock(now func() time.Time) *LedgerService {
	s.now = now
	return s
}

// Persist создает запись в рамках транзакции вызывающего.
// Отсчет ведется от целой секунды: claim exp хранится в секундах и должен совпасть с expires_at.
func (s *LedgerService) Persist(ctx context.Context, exec sqlx.ExtContext, userID string) (*model.RefreshToken, error) {
	token := &model.RefreshToken{
		ID:        uuid.NewString(),
		UserID:    userID,
		ExpiresAt: s.now().UTC().Truncate(time.Second).Add(s.ttl),
	}

	return s.repository.Create(ctx, exec, token)
}

func (s *LedgerService) FindByID(ctx context.Context, id string) (*model.RefreshToken, error) {
	if s.cache != nil {
		cached, err := s.cache.GetRefreshToken(ctx, id)
		if err != nil {
			log.Printf("[LedgerService] кэш недоступен, читаем из БД: %v", err)
		} else if cached != nil {
			return cached, nil
		}
	}

	token, err := s.repository.FindByID(ctx, s.transactor.Executor(), id)
	if err != nil || token == nil {
		return nil, err
	}

	if s.cache != nil {
		if err := s.cache.SetRefreshToken(ctx, token); err != nil {
			log.Printf("[LedgerService] не удалось положить токен %s в кэш: %v", id, err)
		}
	}

	return token, nil
}

// Validate : запись должна существовать, принадлежать subject и не истечь
func (s *LedgerService) Validate(ctx context.Context, payload *model.TokenPayload) (*model.RefreshToken, error) {
	if payload == nil || payload.TokenID == "" {
		return nil, apperror.New(apperror.InvalidToken, "invalid refresh token")
	}

	token, err := s.FindByID(ctx, payload.TokenID)
	if err != nil {
		return nil, err
	}
	if token == nil {
		log.Printf("[LedgerService] запись %s не найдена", payload.TokenID)
		return nil, apperror.New(apperror.InvalidToken, "invalid refresh token")
	}
	if token.UserID != payload.Subject {
		log.Printf("[LedgerService] запись %s принадлежит другому пользователю", payload.TokenID)
		return nil, apperror.New(apperror.InvalidToken, "invalid refresh token")
	}
	if token.Expired(s.now()) {
		log.Printf("[LedgerService] запись %s просрочена", payload.TokenID)
		return nil, apperror.New(apperror.InvalidToken, "invalid refresh token")
	}

	return token, nil
}

// Consume удаляет запись в транзакции вызывающего.
// Если записи уже нет, токен был использован параллельным запросом.
func (s *LedgerService) Consume(ctx context.Context, exec sqlx.ExtContext, id string) error {
	deleted, err := s.repository.Delete(ctx, exec, id)
	if err != nil {
		return err
	}
	if !deleted {
		return apperror.New(apperror.InvalidToken, "invalid refresh token")
	}
	return nil
}

func (s *LedgerService) Revoke(ctx context.Context, id string) error {
	if _, err := s.repository.Delete(ctx, s.transactor.Executor(), id); err != nil {
		return err
	}
	s.Evict(ctx, id)
	return nil
}

func (s *LedgerService) RevokeAllForUser(ctx context.Context, userID string) error {
	ids, err := s.repository.DeleteByUserID(ctx, s.transactor.Executor(), userID)
	if err != nil {
		return err
	}
	s.Evict(ctx, ids...)
	return nil
}

// Prune удаляет просроченные записи пользователя и лишние сверх maxActive
func (s *LedgerService) Prune(ctx context.Context, userID string) error {
	ids, err := s.repository.Prune(ctx, s.transactor.Executor(), userID, s.now().UTC(), s.maxActive)
	if err != nil {
		return err
	}
	if len(ids) > 0 {
		log.Printf("[LedgerService] удалено %d старых токенов пользователя %s", len(ids), userID)
	}
	s.Evict(ctx, ids...)
	return nil
}

func (s *LedgerService) Evict(ctx context.Context, ids ...string) {
	if s.cache == nil || len(ids) == 0 {
		return
	}
	if err := s.cache.DeleteRefreshTokens(ctx, ids...); err != nil {
		log.Printf("[LedgerService] не удалось очистить кэш: %v", err)
	}
}
