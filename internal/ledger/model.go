package ledger

import "time"

// Profile holds the per-user gamification counters. One row per user,
// created on demand by the first award.
type Profile struct {
	ID     uint64 `gorm:"primaryKey" json:"-"`
	UserID uint64 `gorm:"uniqueIndex;not null" json:"user_id"`

	TotalPoints   int `gorm:"not null;default:0" json:"total_points"`
	CurrentStreak int `gorm:"not null;default:0" json:"current_streak"`
	LongestStreak int `gorm:"not null;default:0" json:"longest_streak"`

	LastActivityDate *time.Time `json:"last_activity_date"`

	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`
}

// Achievement is append-only. Rows are never updated or deleted.
type Achievement struct {
	ID     uint64 `gorm:"primaryKey" json:"id"`
	UserID uint64 `gorm:"index;not null" json:"user_id"`

	Type         string `gorm:"not null" json:"achievement_type"`
	Name         string `gorm:"not null" json:"achievement_name"`
	Description  string `gorm:"type:text;not null;default:''" json:"description"`
	PointsEarned int    `gorm:"not null" json:"points_earned"`

	CreatedAt time.Time `json:"earned_at"`
}

// Award is the append-only log of every point grant. The optional
// idempotency key makes a retried submission a no-op per user.
type Award struct {
	ID     uint64 `gorm:"primaryKey"`
	UserID uint64 `gorm:"index;not null"`

	Action string `gorm:"not null"`
	Points int    `gorm:"not null"`

	IdempotencyKey *string `gorm:"index"`

	CreatedAt time.Time
}
