package store

import (
	"context"
	"errors"
	"fmt"

	"gorm.io/gorm"

	"thunderbuddy/db"
	"thunderbuddy/models"
)

var ErrDuplicateUser = errors.New("user already exists")

type UserStore struct {
	db *db.Manager
}

func NewUserStore(m *db.Manager) *UserStore {
	return &UserStore{db: m}
}

// GetByID возвращает пользователя или nil, если его нет
func (s *UserStore) GetByID(ctx context.Context, id int64) (*models.UserAccount, error) {
	var user models.UserAccount
	err := s.db.Read(ctx).First(&user, "id = ?", id).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("failed to get user: %w", err)
	}
	return &user, nil
}

func (s *UserStore) GetByEmail(ctx context.Context, email string) (*models.UserAccount, error) {
	var user models.UserAccount
	err := s.db.Read(ctx).First(&user, "email = ?", email).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("failed to get user by email: %w", err)
	}
	return &user, nil
}

func (s *UserStore) Create(ctx context.Context, user *models.UserAccount) error {
	err := s.db.Write(ctx).Create(user).Error
	if errors.Is(err, gorm.ErrDuplicatedKey) {
		return ErrDuplicateUser
	}
	if err != nil {
		return fmt.Errorf("failed to create user: %w", err)
	}
	return nil
}

func (s *UserStore) Update(ctx context.Context, user *models.UserAccount) error {
	if err := s.db.Write(ctx).Save(user).Error; err != nil {
		return fmt.Errorf("failed to update user: %w", err)
	}
	return nil
}

// Exists - проверка существования по id (UserDirectory для сервиса дружбы)
func (s *UserStore) Exists(ctx context.Context, id int64) (bool, error) {
	var count int64
	err := s.db.Read(ctx).Model(&models.UserAccount{}).Where("id = ?", id).Count(&count).Error
	if err != nil {
		return false, fmt.Errorf("failed to check user existence: %w", err)
	}
	return count > 0, nil
}
