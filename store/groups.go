package store

import (
	"context"
	"errors"
	"fmt"

	"gorm.io/gorm"

	"thunderbuddy/db"
	"thunderbuddy/models"
)

type GroupStore struct {
	db *db.Manager
}

func NewGroupStore(m *db.Manager) *GroupStore {
	return &GroupStore{db: m}
}

func (s *GroupStore) Create(ctx context.Context, group *models.Group) error {
	if err := s.db.Write(ctx).Create(group).Error; err != nil {
		return fmt.Errorf("failed to create group: %w", err)
	}
	return nil
}

func (s *GroupStore) GetByID(ctx context.Context, id string) (*models.Group, error) {
	var group models.Group
	err := s.db.Read(ctx).First(&group, "id = ?", id).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("failed to get group: %w", err)
	}
	return &group, nil
}

func (s *GroupStore) Update(ctx context.Context, group *models.Group) error {
	if err := s.db.Write(ctx).Save(group).Error; err != nil {
		return fmt.Errorf("failed to update group: %w", err)
	}
	return nil
}

func (s *GroupStore) Delete(ctx context.Context, group *models.Group) error {
	if err := s.db.Write(ctx).Delete(group).Error; err != nil {
		return fmt.Errorf("failed to delete group: %w", err)
	}
	return nil
}
