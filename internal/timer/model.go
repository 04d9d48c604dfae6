package timer

import "time"

// Session is one Pomodoro run. It is created at start and mutated exactly
// once, at natural completion. A reset or abandoned run leaves the row
// with Completed=false permanently.
type Session struct {
	ID     uint64 `gorm:"primaryKey" json:"id"`
	UserID uint64 `gorm:"index;not null" json:"user_id"`

	DurationMinutes int    `gorm:"not null" json:"duration_minutes"`
	TaskName        string `gorm:"not null;default:'Focus Session'" json:"task_name"`

	Completed   bool       `gorm:"not null;default:false" json:"completed"`
	CompletedAt *time.Time `json:"completed_at"`

	CreatedAt time.Time `json:"created_at"`
}

func (Session) TableName() string { return "pomodoro_sessions" }
