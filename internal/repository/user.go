package repository

import (
	"context"
	"errors"

	"gorm.io/gorm"

	"github.com/pageza/recipebook/backend/internal/apperrors"
	"github.com/pageza/recipebook/backend/internal/models"
)

// UserStore persists accounts for the identity service.
type UserStore interface {
	Create(ctx context.Context, user *models.User) error
	FindByUsername(ctx context.Context, username string) (*models.User, error)
	ExistsByUsernameOrEmail(ctx context.Context, username, email string) (bool, error)
}

type GormUserStore struct {
	db *gorm.DB
}

var _ UserStore = (*GormUserStore)(nil)

func NewUserStore(db *gorm.DB) *GormUserStore {
	return &GormUserStore{db: db}
}

func (s *GormUserStore) Create(ctx context.Context, user *models.User) error {
	if err := s.db.WithContext(ctx).Create(user).Error; err != nil {
		return unavailable("create user", err)
	}
	return nil
}

func (s *GormUserStore) FindByUsername(ctx context.Context, username string) (*models.User, error) {
	var user models.User
	err := s.db.WithContext(ctx).Where("username = ?", username).First(&user).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, apperrors.Newf(apperrors.ErrCodeNotFound, "user not found: %s", username)
	}
	if err != nil {
		return nil, unavailable("find user", err)
	}
	return &user, nil
}

func (s *GormUserStore) ExistsByUsernameOrEmail(ctx context.Context, username, email string) (bool, error) {
	var n int64
	err := s.db.WithContext(ctx).Model(&models.User{}).
		Where("username = ? OR email = ?", username, email).
		Count(&n).Error
	if err != nil {
		return false, unavailable("check user", err)
	}
	return n > 0, nil
}
