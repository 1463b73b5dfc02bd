package service

import (
	"context"
	"errors"
	"strings"
	"time"

	"github.com/google/uuid"
	"go.uber.org/zap"

	"github.com/spec-kit/happyfarm/internal/auth"
	"github.com/spec-kit/happyfarm/internal/config"
	"github.com/spec-kit/happyfarm/internal/domain"
	"github.com/spec-kit/happyfarm/internal/repository"
	apperrors "github.com/spec-kit/happyfarm/pkg/util/errorutil"
)

const (
	emailTakenMessage         = "This email address is already registered."
	invalidCredentialsMessage = "The provided credentials are incorrect."
	passwordTooLongMessage    = "The password may not be greater than 72 characters."
)

// AuthResult is returned by register and login.
type AuthResult struct {
	User  *domain.User
	Farm  *domain.Farm
	Token domain.Token
}

// AuthService coordinates registration, login and logout flows.
type AuthService struct {
	users      repository.UserRepository
	farms      repository.FarmRepository
	tokenMgr   *auth.TokenManager
	revoked    auth.RevocationList
	bcryptCost int
	logger     *zap.Logger
	now        func() time.Time
}

// AuthDependencies encapsulates repo requirements for auth service.
type AuthDependencies struct {
	UserRepo   repository.UserRepository
	FarmRepo   repository.FarmRepository
	Revocation auth.RevocationList
	Logger     *zap.Logger
}

// NewAuthService builds the service.
func NewAuthService(cfg config.AuthConfig, deps AuthDependencies) *AuthService {
	logger := deps.Logger
	if logger == nil {
		logger = zap.NewNop()
	}
	return &AuthService{
		users:      deps.UserRepo,
		farms:      deps.FarmRepo,
		tokenMgr:   auth.NewTokenManager(cfg.JWTSecret, cfg.TokenTTL()),
		revoked:    deps.Revocation,
		bcryptCost: cfg.BcryptCost,
		logger:     logger,
		now:        time.Now,
	}
}

// Register creates the user together with their farm and issues a token.
func (s *AuthService) Register(ctx context.Context, name, email, password string) (*AuthResult, error) {
	email = strings.TrimSpace(email)
	if _, err := s.users.GetByEmail(ctx, email); err == nil {
		return nil, apperrors.NewFieldError("email", emailTakenMessage)
	} else if !errors.Is(err, repository.ErrNotFound) {
		return nil, err
	}

	hash, err := auth.HashPassword(password, s.bcryptCost)
	if err != nil {
		if errors.Is(err, auth.ErrPasswordTooLong) {
			return nil, apperrors.NewFieldError("password", passwordTooLongMessage)
		}
		return nil, err
	}

	user := &domain.User{
		ID:           uuid.NewString(),
		Name:         strings.TrimSpace(name),
		Email:        email,
		PasswordHash: hash,
	}
	farm := &domain.Farm{
		ID:     uuid.NewString(),
		UserID: user.ID,
		Name:   domain.DefaultFarmName(user.Name),
	}
	if err := s.users.CreateWithFarm(ctx, user, farm); err != nil {
		if errors.Is(err, repository.ErrEmailTaken) {
			return nil, apperrors.NewFieldError("email", emailTakenMessage)
		}
		return nil, err
	}

	token, err := s.tokenMgr.GenerateToken(user.ID)
	if err != nil {
		return nil, err
	}
	s.logger.Info("user registered", zap.String("user_id", user.ID), zap.String("farm_id", farm.ID))
	return &AuthResult{User: user, Farm: farm, Token: token}, nil
}

// Login authenticates by email and password. Unknown emails and wrong passwords
// are reported identically.
func (s *AuthService) Login(ctx context.Context, email, password string) (*AuthResult, error) {
	user, err := s.users.GetByEmail(ctx, strings.TrimSpace(email))
	if err != nil {
		if errors.Is(err, repository.ErrNotFound) {
			return nil, apperrors.NewFieldError("email", invalidCredentialsMessage)
		}
		return nil, err
	}
	if err := auth.ComparePassword(user.PasswordHash, password); err != nil {
		if !errors.Is(err, auth.ErrPasswordMismatch) {
			s.logger.Warn("stored password hash unusable", zap.String("user_id", user.ID), zap.Error(err))
		}
		return nil, apperrors.NewFieldError("email", invalidCredentialsMessage)
	}

	farm, err := s.farms.GetByUserID(ctx, user.ID)
	if err != nil && !errors.Is(err, repository.ErrNotFound) {
		return nil, err
	}

	token, err := s.tokenMgr.GenerateToken(user.ID)
	if err != nil {
		return nil, err
	}
	return &AuthResult{User: user, Farm: farm, Token: token}, nil
}

// Logout revokes the token the caller authenticated with.
func (s *AuthService) Logout(ctx context.Context, principal *auth.Principal) error {
	ttl := principal.TokenExpiresAt.Sub(s.now())
	if err := s.revoked.Revoke(ctx, principal.TokenID, ttl); err != nil {
		return err
	}
	s.logger.Info("user logged out", zap.String("user_id", principal.User.ID))
	return nil
}

// TokenManager exposes the underlying token manager for middleware usage.
func (s *AuthService) TokenManager() *auth.TokenManager {
	return s.tokenMgr
}
