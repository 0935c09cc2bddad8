package service

import (
	"auth-service/internal/apperror"
	"auth-service/internal/model"
	"auth-service/internal/model/requestresponse"
	"auth-service/internal/ports"
	"auth-service/internal/util"
	"context"
	"log"

	"github.com/google/uuid"
)

type UserService struct {
	userRepository ports.UserRepository
	hasher         ports.PasswordHasher
	issuer         ports.TokenIssuer
	transactor     ports.Transactor
}

func NewUserService(
	userRepository ports.UserRepository,
	hasher ports.PasswordHasher,
	issuer ports.TokenIssuer,
	transactor ports.Transactor,
) *UserService {
	return &UserService{
		userRepository: userRepository,
		hasher:         hasher,
		issuer:         issuer,
		transactor:     transactor,
	}
}

// Register создает пользователя с ролью customer и выдает ему пару токенов.
// Пользователь и запись о refresh-токене создаются в одной транзакции,
// поэтому при любой ошибке в БД не остается ни пользователя, ни записи.
func (s *UserService) Register(ctx context.Context, req requestresponse.RegisterRequest) (*model.TokensPair, error) {
	req.Normalize()

	existing, err := s.userRepository.FindByEmail(ctx, s.transactor.Executor(), req.Email)
	if err != nil {
		return nil, err
	}
	if existing != nil {
		return nil, apperror.New(apperror.DuplicateIdentity, "Email is already exists!")
	}

	hash, err := s.hasher.Hash(req.Password)
	if err != nil {
		return nil, apperror.Wrap(apperror.Internal, "failed to hash password", util.LogError("[UserService] не удалось создать хэш пароля", err))
	}

	user := &model.User{
		ID:           uuid.NewString(),
		FirstName:    req.FirstName,
		LastName:     req.LastName,
		Email:        req.Email,
		PasswordHash: hash,
		Role:         model.RoleCustomer,
	}

	var tokens *model.TokensPair
	err = withTx(ctx, s.transactor, func(tx ports.Tx) error {
		created, err := s.userRepository.Create(ctx, tx, user)
		if err != nil {
			return err
		}

		tokens, err = s.issuer.Issue(ctx, tx, created)
		return err
	})
	if err != nil {
		return nil, err
	}

	log.Printf("[UserService] зарегистрирован пользователь %s (%s)", tokens.UserID, util.MaskEmail(user.Email))
	return tokens, nil
}

func (s *UserService) GetUser(ctx context.Context, id string) (*model.User, error) {
	user, err := s.userRepository.FindByID(ctx, s.transactor.Executor(), id)
	if err != nil {
		return nil, err
	}
	if user == nil {
		return nil, apperror.New(apperror.NotFound, "User not found")
	}
	return user, nil
}
