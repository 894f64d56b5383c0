package models

import "time"

type FriendshipStatus string

const (
	FriendshipPending  FriendshipStatus = "pending"
	FriendshipAccepted FriendshipStatus = "accepted"
	FriendshipRejected FriendshipStatus = "rejected"
)

// Friendship - связь между ровно двумя разными пользователями.
// UserAID - инициатор заявки, UserBID - адресат. Для поиска пара неупорядочена:
// нормализованный ключ (PairLow, PairHigh) под уникальным индексом гарантирует
// не больше одной строки на пару даже при конкурентных вставках.
type Friendship struct {
	ID        int64            `gorm:"primaryKey;autoIncrement" json:"id"`
	UserAID   int64            `gorm:"not null;index" json:"user_a_id"`
	UserBID   int64            `gorm:"not null;index" json:"user_b_id"`
	PairLow   int64            `gorm:"not null;uniqueIndex:idx_friendship_pair" json:"-"`
	PairHigh  int64            `gorm:"not null;uniqueIndex:idx_friendship_pair" json:"-"`
	Status    FriendshipStatus `gorm:"size:20;not null" json:"status"`
	CreatedAt time.Time        `json:"created_at"`
}

func (Friendship) TableName() string {
	return "friendship"
}

// OtherID возвращает идентификатор второй стороны пары
func (f *Friendship) OtherID(userID int64) int64 {
	if f.UserAID == userID {
		return f.UserBID
	}
	return f.UserAID
}

// IsTarget - является ли userID адресатом заявки
func (f *Friendship) IsTarget(userID int64) bool {
	return f.UserBID == userID
}

// NormalizePair приводит пару к виду (min, max)
func NormalizePair(id1, id2 int64) (int64, int64) {
	if id1 > id2 {
		return id2, id1
	}
	return id1, id2
}
