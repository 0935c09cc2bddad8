package service

import (
	"auth-service/internal/apperror"
	"auth-service/internal/model"
	"auth-service/internal/model/requestresponse"
	"auth-service/internal/ports"
	"auth-service/internal/util"
	"context"
	"log"
)

const invalidCredentialsMessage = "Email or password does not match."

type AuthenticationService struct {
	userRepository ports.UserRepository
	hasher         ports.PasswordHasher
	signer         ports.TokenSigner
	issuer         ports.TokenIssuer
	ledger         ports.RefreshTokenLedger
	transactor     ports.Transactor
}

func NewAuthenticationService(
	userRepository ports.UserRepository,
	hasher ports.PasswordHasher,
	signer ports.TokenSigner,
	issuer ports.TokenIssuer,
	ledger ports.RefreshTokenLedger,
	transactor ports.Transactor,
) *AuthenticationService {
	return &AuthenticationService{
		userRepository: userRepository,
		hasher:         hasher,
		signer:         signer,
		issuer:         issuer,
		ledger:         ledger,
		transactor:     transactor,
	}
}

// Login проверяет email и пароль и выдает новую пару токенов.
// Неизвестный email и неверный пароль дают одну и ту же ошибку,
// а для неизвестного email выполняется холостое сравнение bcrypt.
func (s *AuthenticationService) Login(ctx context.Context, email, password string) (*model.TokensPair, error) {
	email = requestresponse.NormalizeEmail(email)

	user, err := s.userRepository.FindByEmail(ctx, s.transactor.Executor(), email)
	if err != nil {
		return nil, err
	}

	if user == nil {
		s.hasher.VerifyDummy(password)
		log.Printf("[AuthService] вход с неизвестным email %s", util.MaskEmail(email))
		return nil, apperror.New(apperror.InvalidCredentials, invalidCredentialsMessage)
	}

	if !s.hasher.Verify(password, user.PasswordHash) {
		log.Printf("[AuthService] неверный пароль для пользователя %s", user.ID)
		return nil, apperror.New(apperror.InvalidCredentials, invalidCredentialsMessage)
	}

	tokens, err := s.issue(ctx, user)
	if err != nil {
		return nil, err
	}

	s.prune(ctx, user.ID)
	return tokens, nil
}

// RefreshToken обменивает действующий refresh-токен на новую пару.
// Старая запись удаляется в той же транзакции, где создается новая,
// поэтому один refresh-токен можно использовать только один раз.
func (s *AuthenticationService) RefreshToken(ctx context.Context, refreshToken string) (*model.TokensPair, error) {
	if refreshToken == "" {
		return nil, apperror.New(apperror.InvalidToken, "refresh token is required")
	}

	payload, err := s.signer.ParseRefreshToken(refreshToken)
	if err != nil {
		return nil, err
	}

	record, err := s.ledger.Validate(ctx, payload)
	if err != nil {
		return nil, err
	}

	user, err := s.userRepository.FindByID(ctx, s.transactor.Executor(), payload.Subject)
	if err != nil {
		return nil, err
	}
	if user == nil {
		return nil, apperror.New(apperror.InvalidToken, "invalid refresh token")
	}

	var tokens *model.TokensPair
	err = withTx(ctx, s.transactor, func(tx ports.Tx) error {
		if err := s.ledger.Consume(ctx, tx, record.ID); err != nil {
			return err
		}

		tokens, err = s.issuer.Issue(ctx, tx, user)
		return err
	})
	if err != nil {
		return nil, err
	}

	s.ledger.Evict(ctx, record.ID)
	s.prune(ctx, user.ID)
	return tokens, nil
}

// Logout удаляет запись refresh-токена, если он подписан нами и принадлежит userID.
// Невалидный или чужой токен не считается ошибкой: cookies все равно очищаются.
func (s *AuthenticationService) Logout(ctx context.Context, userID, refreshToken string) error {
	if refreshToken == "" {
		return nil
	}

	payload, err := s.signer.ParseRefreshToken(refreshToken)
	if err != nil {
		log.Printf("[AuthService] logout с невалидным refresh токеном: %v", err)
		return nil
	}
	if payload.Subject != userID {
		log.Printf("[AuthService] logout: refresh токен %s не принадлежит пользователю %s", payload.TokenID, userID)
		return nil
	}

	return s.ledger.Revoke(ctx, payload.TokenID)
}

// LogoutAll удаляет все записи refresh-токенов пользователя
func (s *AuthenticationService) LogoutAll(ctx context.Context, userID string) error {
	return s.ledger.RevokeAllForUser(ctx, userID)
}

func (s *AuthenticationService) issue(ctx context.Context, user *model.User) (*model.TokensPair, error) {
	var tokens *model.TokensPair
	err := withTx(ctx, s.transactor, func(tx ports.Tx) error {
		var err error
		tokens, err = s.issuer.Issue(ctx, tx, user)
		return err
	})
	return tokens, err
}

func (s *AuthenticationService) prune(ctx context.Context, userID string) {
	if err := s.ledger.Prune(ctx, userID); err != nil {
		log.Printf("[AuthService] не удалось очистить старые токены пользователя %s: %v", userID, err)
	}
}
