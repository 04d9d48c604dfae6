package timetable

import "time"

type Event struct {
	ID     uint64 `gorm:"primaryKey" json:"id"`
	UserID uint64 `gorm:"index;not null" json:"user_id"`

	Title       string `gorm:"not null" json:"title"`
	Description string `gorm:"type:text;not null;default:''" json:"description"`

	StartTime time.Time `gorm:"not null" json:"start_time"`
	EndTime   time.Time `gorm:"not null" json:"end_time"`

	Category string `gorm:"not null;default:'study'" json:"category"`
	Color    string `gorm:"not null;default:'blue'" json:"color"`

	CreatedAt time.Time `json:"created_at"`
}

func (Event) TableName() string { return "timetable_events" }
