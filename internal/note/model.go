package note

import (
	"time"

	"github.com/lib/pq"
)

type Note struct {
	ID     uint64 `gorm:"primaryKey" json:"id"`
	UserID uint64 `gorm:"index;not null" json:"user_id"`

	Title    string `gorm:"not null" json:"title"`
	Content  string `gorm:"type:text;not null;default:''" json:"content"`
	Category string `gorm:"not null;default:'general'" json:"category"`

	Tags pq.StringArray `gorm:"type:text[]" json:"tags"`

	IsPinned bool `gorm:"not null;default:false" json:"is_pinned"`

	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`
}
