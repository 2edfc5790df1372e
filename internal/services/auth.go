package services

import (
	"context"
	"errors"
	"strings"
	"time"

	"go.uber.org/zap"

	"articleboard/internal/logger"
	"articleboard/internal/models"
	"articleboard/internal/utils"
)

// ErrUnknownPrincipal carries the user-facing message for a login attempt
// with an unregistered email address.
var ErrUnknownPrincipal = errors.New("this email address is not registered")

type UserRepo interface {
	CreateUser(ctx context.Context, user *models.User) error
	IsEmailTaken(ctx context.Context, email string) (bool, error)
	GetByEmail(ctx context.Context, email string) (*models.User, error)
	SaveRefreshToken(ctx context.Context, userID int, token string) error
	IsRefreshTokenValid(ctx context.Context, userID int, token string) (bool, error)
	DeleteRefreshToken(ctx context.Context, userID int, token string) error
}

type AuthService struct {
	repo UserRepo
}

func NewAuthService(repo UserRepo) *AuthService {
	return &AuthService{repo: repo}
}

func (s *AuthService) RegisterUser(ctx context.Context, input *models.User, plainPassword string) error {
	logger.Log.Info("registering user (service)", zap.String("email", input.Email))
	if exists, err := s.repo.IsEmailTaken(ctx, input.Email); exists || err != nil {
		if err != nil {
			logger.Log.Error("email uniqueness check failed", zap.Error(err))
		}
		return errors.New("this email address is already registered")
	}

	hashed, err := utils.HashPassword(plainPassword)
	if err != nil {
		logger.Log.Error("password hashing failed", zap.Error(err))
		return err
	}

	input.PasswordHash = hashed
	input.Role = "user"

	if err := s.repo.CreateUser(ctx, input); err != nil {
		logger.Log.Error("failed to create user", zap.Error(err))
		return err
	}
	logger.Log.Info("user registered (service)", zap.String("email", input.Email))
	return nil
}

// LoadPrincipal is the authentication adapter: it resolves the email to a
// user and wraps it with the fixed ROLE_USER authority. Every caller gets the
// same single-role principal; there is no other authorization tier.
func (s *AuthService) LoadPrincipal(ctx context.Context, email string) (*models.AuthenticatedUser, error) {
	user, err := s.repo.GetByEmail(ctx, strings.TrimSpace(email))
	if err != nil {
		logger.Log.Warn("principal not found (service)", zap.String("email", email), zap.Error(err))
		return nil, ErrUnknownPrincipal
	}

	return &models.AuthenticatedUser{
		User:        user,
		Authorities: []string{models.RoleUser},
	}, nil
}

func (s *AuthService) LoginUser(
	ctx context.Context,
	email, password, jwtSecret string,
	accessTTL, refreshTTL time.Duration,
) (string, string, *models.AuthenticatedUser, error) {
	logger.Log.Info("login attempt (service)", zap.String("email", email))

	principal, err := s.LoadPrincipal(ctx, email)
	if err != nil {
		return "", "", nil, err
	}
	user := principal.User

	if !utils.CheckPasswordHash(password, user.PasswordHash) {
		logger.Log.Warn("wrong password (service)", zap.String("email", email))
		return "", "", nil, errors.New("wrong password")
	}

	accessToken, err := utils.GenerateToken(jwtSecret, user.ID, user.Role, accessTTL, "access")
	if err != nil {
		logger.Log.Error("failed to generate access token", zap.Error(err))
		return "", "", nil, err
	}

	refreshToken, err := utils.GenerateToken(jwtSecret, user.ID, user.Role, refreshTTL, "refresh")
	if err != nil {
		logger.Log.Error("failed to generate refresh token", zap.Error(err))
		return "", "", nil, err
	}

	if err := s.repo.SaveRefreshToken(ctx, user.ID, refreshToken); err != nil {
		logger.Log.Error("failed to save refresh token", zap.Error(err))
		return "", "", nil, err
	}

	logger.Log.Info("login succeeded (service)", zap.String("email", email))
	return accessToken, refreshToken, principal, nil
}

func (s *AuthService) ValidateRefreshToken(ctx context.Context, userID int, token string) (bool, error) {
	logger.Log.Debug("validating refresh token (service)", zap.Int("user_id", userID))
	return s.repo.IsRefreshTokenValid(ctx, userID, token)
}

func (s *AuthService) Logout(ctx context.Context, userID int, token string) error {
	logger.Log.Info("logging out user (service)", zap.Int("user_id", userID))
	return s.repo.DeleteRefreshToken(ctx, userID, token)
}
