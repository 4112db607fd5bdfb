package service

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/golang-jwt/jwt/v5"
	"go.uber.org/zap"
	"golang.org/x/crypto/bcrypt"

	"github.com/pageza/recipebook/backend/internal/apperrors"
	"github.com/pageza/recipebook/backend/internal/logger"
	"github.com/pageza/recipebook/backend/internal/models"
	"github.com/pageza/recipebook/backend/internal/repository"
	"github.com/pageza/recipebook/backend/internal/types"
)

const tokenType = "Bearer"

var errInvalidCredentials = apperrors.New(apperrors.ErrCodeUnauthorized, "Invalid username or password")

type AuthService struct {
	users      repository.UserStore
	jwtSecret  []byte
	expiration time.Duration
	logger     logger.Logger
}

var _ IAuthService = (*AuthService)(nil)

func NewAuthService(users repository.UserStore, jwtSecret string, expiration time.Duration, log logger.Logger) *AuthService {
	if log == nil {
		log = logger.NewNoopLogger()
	}
	return &AuthService{
		users:      users,
		jwtSecret:  []byte(jwtSecret),
		expiration: expiration,
		logger:     log,
	}
}

// Register creates an account with the default user role.
func (s *AuthService) Register(ctx context.Context, username, email, password string) (*models.User, error) {
	exists, err := s.users.ExistsByUsernameOrEmail(ctx, username, email)
	if err != nil {
		return nil, err
	}
	if exists {
		return nil, apperrors.New(apperrors.ErrCodeConflict, "Username or email is already in use")
	}

	hashedPassword, err := bcrypt.GenerateFromPassword([]byte(password), bcrypt.DefaultCost)
	if err != nil {
		return nil, apperrors.Wrap(apperrors.ErrCodeInternal, "hash password", err)
	}

	user := &models.User{
		Username:     username,
		Email:        email,
		PasswordHash: string(hashedPassword),
		Roles:        models.StringArray{models.RoleUser},
	}
	if err := s.users.Create(ctx, user); err != nil {
		return nil, err
	}

	s.logger.Info("user registered", zap.String("username", username))
	return user, nil
}

// Login checks the credentials and issues a token.
func (s *AuthService) Login(ctx context.Context, username, password string) (*types.TokenResponse, error) {
	user, err := s.users.FindByUsername(ctx, username)
	if apperrors.HasCode(err, apperrors.ErrCodeNotFound) {
		return nil, errInvalidCredentials
	}
	if err != nil {
		return nil, err
	}

	if err := bcrypt.CompareHashAndPassword([]byte(user.PasswordHash), []byte(password)); err != nil {
		s.logger.Debug("login rejected", zap.String("username", username))
		return nil, errInvalidCredentials
	}

	token, err := s.GenerateToken(user)
	if err != nil {
		return nil, err
	}

	return &types.TokenResponse{
		Token:    token,
		Type:     tokenType,
		ID:       user.ID,
		Username: user.Username,
		Email:    user.Email,
		Roles:    []string(user.Roles),
	}, nil
}

func (s *AuthService) GenerateToken(user *models.User) (string, error) {
	now := time.Now()
	claims := &types.TokenClaims{
		RegisteredClaims: jwt.RegisteredClaims{
			Subject:   user.Username,
			IssuedAt:  jwt.NewNumericDate(now),
			ExpiresAt: jwt.NewNumericDate(now.Add(s.expiration)),
		},
		UserID: user.ID,
		Email:  user.Email,
		Roles:  []string(user.Roles),
	}

	token := jwt.NewWithClaims(jwt.SigningMethodHS256, claims)
	signed, err := token.SignedString(s.jwtSecret)
	if err != nil {
		return "", apperrors.Wrap(apperrors.ErrCodeInternal, "sign token", err)
	}
	return signed, nil
}

func (s *AuthService) ValidateToken(tokenString string) (*types.TokenClaims, error) {
	claims := &types.TokenClaims{}
	token, err := jwt.ParseWithClaims(tokenString, claims, func(token *jwt.Token) (interface{}, error) {
		if _, ok := token.Method.(*jwt.SigningMethodHMAC); !ok {
			return nil, fmt.Errorf("unexpected signing method: %v", token.Header["alg"])
		}
		return s.jwtSecret, nil
	})
	if err != nil {
		if errors.Is(err, jwt.ErrTokenExpired) {
			return nil, apperrors.Wrap(apperrors.ErrCodeUnauthorized, "token expired", err)
		}
		return nil, apperrors.Wrap(apperrors.ErrCodeUnauthorized, "invalid token", err)
	}
	if !token.Valid || claims.Subject == "" {
		return nil, apperrors.New(apperrors.ErrCodeUnauthorized, "invalid token claims")
	}
	return claims, nil
}
