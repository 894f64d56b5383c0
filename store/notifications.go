package store

import (
	"context"
	"errors"
	"fmt"

	"gorm.io/gorm"

	"thunderbuddy/db"
	"thunderbuddy/models"
)

type NotificationStore struct {
	db *db.Manager
}

func NewNotificationStore(m *db.Manager) *NotificationStore {
	return &NotificationStore{db: m}
}

func (s *NotificationStore) Create(ctx context.Context, n *models.Notification) error {
	if err := s.db.Write(ctx).Create(n).Error; err != nil {
		return fmt.Errorf("failed to create notification: %w", err)
	}
	return nil
}

// GetForUser возвращает уведомление только если оно принадлежит userID
func (s *NotificationStore) GetForUser(ctx context.Context, id, userID int64) (*models.Notification, error) {
	var n models.Notification
	err := s.db.Read(ctx).First(&n, "id = ? AND user_id = ?", id, userID).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("failed to get notification: %w", err)
	}
	return &n, nil
}

func (s *NotificationStore) ListByUser(ctx context.Context, userID int64) ([]models.Notification, error) {
	var notifications []models.Notification
	err := s.db.Read(ctx).
		Where("user_id = ?", userID).
		Order("created_at DESC").
		Find(&notifications).Error
	if err != nil {
		return nil, fmt.Errorf("failed to list notifications: %w", err)
	}
	return notifications, nil
}

func (s *NotificationStore) UpdateStatus(ctx context.Context, n *models.Notification, status string) error {
	n.DeliveryStatus = status
	if err := s.db.Write(ctx).Model(n).Update("delivery_status", status).Error; err != nil {
		return fmt.Errorf("failed to update notification status: %w", err)
	}
	return nil
}
