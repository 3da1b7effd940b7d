package user

import (
	"context"
	"strings"

	"tavolo-be/internal/logger"

	"go.uber.org/zap"
)

type Service interface {
	Register(ctx context.Context, email, password string) (string, *User, error)
	Login(ctx context.Context, email, password string) (string, *User, error)
	GetByID(ctx context.Context, id uint) (*User, error)
	RequestPasswordReset(ctx context.Context, email string) (string, error)
	ResetPassword(ctx context.Context, token, newPassword string) error
}

type service struct {
	repo   Repository
	tokens TokenStore
}

func NewService(repo Repository, tokens TokenStore) Service {
	return &service{repo: repo, tokens: tokens}
}

func (s *service) Register(ctx context.Context, email, password string) (string, *User, error) {
	log := logger.FromCtx(ctx)

	hashed, err := HashPassword(password)
	if err != nil {
		log.Error("failed to hash password", zap.Error(err))
		return "", nil, err
	}

	u, err := s.repo.Create(ctx, email, hashed, string(RoleUser))
	if err != nil {
		if strings.Contains(err.Error(), "users_email_key") {
			return "", nil, ErrEmailExists
		}
		log.Error("failed to create user", zap.String("email", email), zap.Error(err))
		return "", nil, err
	}

	token, err := GenerateJWT(u.ID, string(u.Role), email)
	if err != nil {
		return "", nil, err
	}

	log.Info("user registered", zap.Uint("user_id", u.ID))
	return token, u, nil
}

func (s *service) Login(ctx context.Context, email, password string) (string, *User, error) {
	u, err := s.repo.FindByEmail(ctx, email)
	if err != nil {
		return "", nil, err
	}
	if u == nil || !CheckPasswordHash(password, u.Password) {
		return "", nil, ErrInvalidCredentials
	}

	token, err := GenerateJWT(u.ID, string(u.Role), email)
	if err != nil {
		return "", nil, err
	}
	return token, u, nil
}

func (s *service) GetByID(ctx context.Context, id uint) (*User, error) {
	u, err := s.repo.FindByID(ctx, id)
	if err != nil {
		return nil, err
	}
	if u == nil {
		return nil, ErrUserNotFound
	}
	return u, nil
}

// RequestPasswordReset issues a single-use token. The token is returned
// to the caller for delivery; email sending is outside this service.
func (s *service) RequestPasswordReset(ctx context.Context, email string) (string, error) {
	u, err := s.repo.FindByEmail(ctx, email)
	if err != nil {
		return "", err
	}
	if u == nil {
		return "", ErrUserNotFound
	}
	return s.tokens.Issue(ctx, u.ID)
}

func (s *service) ResetPassword(ctx context.Context, token, newPassword string) error {
	userID, err := s.tokens.Redeem(ctx, token)
	if err != nil {
		return err
	}

	hashed, err := HashPassword(newPassword)
	if err != nil {
		return err
	}

	if err := s.repo.UpdatePassword(ctx, userID, hashed); err != nil {
		return err
	}

	logger.FromCtx(ctx).Info("password reset", zap.Uint("user_id", userID))
	return nil
}
