package models

import "time"

const (
	NotificationPending   = "pending"
	NotificationDelivered = "delivered"
	NotificationRead      = "read"
)

type Notification struct {
	ID             int64     `gorm:"primaryKey;autoIncrement" json:"notification_id"`
	UserID         int64     `gorm:"not null;index" json:"user_id"`
	Message        string    `gorm:"size:255;not null" json:"message"`
	DeliveryStatus string    `gorm:"size:20;not null" json:"delivery_status"`
	CreatedAt      time.Time `json:"time_created"`
}

func (Notification) TableName() string {
	return "notification"
}
