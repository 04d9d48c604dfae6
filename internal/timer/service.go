package timer

import (
	"context"
	"strings"
	"time"

	"gorm.io/gorm"
)

// Service persists focus sessions.
type Service struct {
	DB *gorm.DB
}

func (s *Service) CreateSession(ctx context.Context, userID uint64, durationMinutes int, taskName string) (Session, error) {
	taskName = strings.TrimSpace(taskName)
	if taskName == "" {
		taskName = "Focus Session"
	}
	sess := Session{
		UserID:          userID,
		DurationMinutes: durationMinutes,
		TaskName:        taskName,
	}
	err := s.DB.WithContext(ctx).Create(&sess).Error
	return sess, err
}

// CompleteSession flips the completed flag and stamps the completion time.
// The WHERE guard on completed=false keeps the flip one-way even if called
// twice.
func (s *Service) CompleteSession(ctx context.Context, sessionID uint64) error {
	now := time.Now()
	return s.DB.WithContext(ctx).Model(&Session{}).
		Where("id = ? AND completed = ?", sessionID, false).
		Updates(map[string]any{
			"completed":    true,
			"completed_at": now,
		}).Error
}

// CompletedCount is used by the rewards dashboard.
func (s *Service) CompletedCount(ctx context.Context, userID uint64) (int64, error) {
	var n int64
	err := s.DB.WithContext(ctx).Model(&Session{}).
		Where("user_id = ? AND completed = ?", userID, true).
		Count(&n).Error
	return n, err
}
