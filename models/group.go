package models

import "time"

// Group - скелетный CRUD, идентификаторы - uuid строки
type Group struct {
	ID        string    `gorm:"primaryKey;size:36" json:"group_id"`
	Name      string    `gorm:"size:255;not null" json:"group_name"`
	Members   string    `gorm:"size:255" json:"group_members"`
	CreatedAt time.Time `json:"time_created"`
}

func (Group) TableName() string {
	return "group_table"
}
