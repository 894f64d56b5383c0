package store

import (
	"context"
	"errors"
	"fmt"

	"gorm.io/gorm"

	"thunderbuddy/db"
	"thunderbuddy/models"
)

// ErrDuplicatePair - вставка нарушила уникальность нормализованной пары
var ErrDuplicatePair = errors.New("friendship pair already exists")

// FriendshipStore - единственный владелец строк friendship. Поиск всегда
// симметричный: по ключу (pair_low, pair_high) независимо от того, кто из
// пары был инициатором.
type FriendshipStore struct {
	db *db.Manager
}

func NewFriendshipStore(m *db.Manager) *FriendshipStore {
	return &FriendshipStore{db: m}
}

// FindByPair возвращает строку для неупорядоченной пары или nil, если ее нет
func (s *FriendshipStore) FindByPair(ctx context.Context, userID, otherID int64) (*models.Friendship, error) {
	low, high := models.NormalizePair(userID, otherID)

	var friendship models.Friendship
	err := s.db.Read(ctx).
		Where("pair_low = ? AND pair_high = ?", low, high).
		First(&friendship).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("failed to find friendship: %w", err)
	}
	return &friendship, nil
}

// Insert создает строку в статусе pending. Гонку конкурентных вставок
// разрешает уникальный индекс - нарушение поднимается как ErrDuplicatePair.
func (s *FriendshipStore) Insert(ctx context.Context, requesterID, targetID int64) (*models.Friendship, error) {
	low, high := models.NormalizePair(requesterID, targetID)

	friendship := &models.Friendship{
		UserAID:  requesterID,
		UserBID:  targetID,
		PairLow:  low,
		PairHigh: high,
		Status:   models.FriendshipPending,
	}

	err := s.db.Write(ctx).Create(friendship).Error
	if errors.Is(err, gorm.ErrDuplicatedKey) {
		return nil, ErrDuplicatePair
	}
	if err != nil {
		return nil, fmt.Errorf("failed to create friendship: %w", err)
	}
	return friendship, nil
}

// UpdateStatus меняет статус без проверки переходов - валидация на сервисе
func (s *FriendshipStore) UpdateStatus(ctx context.Context, f *models.Friendship, status models.FriendshipStatus) error {
	f.Status = status
	if err := s.db.Write(ctx).Model(f).Update("status", status).Error; err != nil {
		return fmt.Errorf("failed to update friendship status: %w", err)
	}
	return nil
}

func (s *FriendshipStore) Delete(ctx context.Context, f *models.Friendship) error {
	if err := s.db.Write(ctx).Delete(f).Error; err != nil {
		return fmt.Errorf("failed to delete friendship: %w", err)
	}
	return nil
}

// ListAccepted возвращает все подтвержденные дружбы, где userID - любая из сторон
func (s *FriendshipStore) ListAccepted(ctx context.Context, userID int64) ([]models.Friendship, error) {
	var friendships []models.Friendship
	err := s.db.Read(ctx).
		Where("(user_a_id = ? OR user_b_id = ?) AND status = ?", userID, userID, models.FriendshipAccepted).
		Find(&friendships).Error
	if err != nil {
		return nil, fmt.Errorf("failed to list friendships: %w", err)
	}
	return friendships, nil
}

// ListIncomingPending возвращает входящие заявки (userID - адресат)
func (s *FriendshipStore) ListIncomingPending(ctx context.Context, userID int64) ([]models.Friendship, error) {
	var friendships []models.Friendship
	err := s.db.Read(ctx).
		Where("user_b_id = ? AND status = ?", userID, models.FriendshipPending).
		Find(&friendships).Error
	if err != nil {
		return nil, fmt.Errorf("failed to list pending requests: %w", err)
	}
	return friendships, nil
}
