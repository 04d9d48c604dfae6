package ledger

import (
	"context"
	"errors"
	"fmt"
	"time"

	"focustube/internal/apperr"

	"gorm.io/gorm"
)

// Actions that grant points, with their fixed values.
const (
	ActionNoteCreated       = "note_created"
	ActionPomodoroCompleted = "pomodoro_completed"

	PointsNoteCreated       = 5
	PointsPomodoroCompleted = 10
)

type Service struct {
	DB *gorm.DB
}

// AchievementInput describes the achievement appended alongside an award.
type AchievementInput struct {
	Type        string
	Name        string
	Description string
}

type AwardInput struct {
	Action      string
	Points      int
	Achievement *AchievementInput
	IdemKey     *string
}

// Award grants points to a user and, when a descriptor is supplied, appends
// one achievement with points_earned equal to the grant. The point counter
// is bumped with a single UPDATE so concurrent awards cannot lose an
// increment. A repeated idempotency key is a no-op that returns the current
// profile.
func (s *Service) Award(ctx context.Context, userID uint64, in AwardInput) (Profile, error) {
	if in.Points <= 0 {
		return Profile{}, fmt.Errorf("%w: points must be positive", apperr.ErrValidation)
	}
	if in.Action == "" {
		return Profile{}, fmt.Errorf("%w: action required", apperr.ErrValidation)
	}

	var out Profile
	err := s.DB.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		if err := tx.Where(Profile{UserID: userID}).FirstOrCreate(&out).Error; err != nil {
			return err
		}

		if in.IdemKey != nil {
			var n int64
			if err := tx.Model(&Award{}).
				Where("user_id = ? AND idempotency_key = ?", userID, *in.IdemKey).
				Count(&n).Error; err != nil {
				return err
			}
			if n > 0 {
				// already applied; re-read and return as-is
				return tx.Where("user_id = ?", userID).First(&out).Error
			}
		}

		award := Award{
			UserID:         userID,
			Action:         in.Action,
			Points:         in.Points,
			IdempotencyKey: in.IdemKey,
		}
		if err := tx.Create(&award).Error; err != nil {
			// a concurrent retry losing the unique-index race lands here
			if errors.Is(err, gorm.ErrDuplicatedKey) {
				return fmt.Errorf("%w: duplicate award", apperr.ErrConflict)
			}
			return err
		}

		if err := tx.Model(&Profile{}).
			Where("user_id = ?", userID).
			UpdateColumn("total_points", gorm.Expr("total_points + ?", in.Points)).Error; err != nil {
			return err
		}

		if err := s.advanceStreak(tx, userID); err != nil {
			return err
		}

		if in.Achievement != nil {
			ach := Achievement{
				UserID:       userID,
				Type:         in.Achievement.Type,
				Name:         in.Achievement.Name,
				Description:  in.Achievement.Description,
				PointsEarned: in.Points,
			}
			if err := tx.Create(&ach).Error; err != nil {
				return err
			}
		}

		return tx.Where("user_id = ?", userID).First(&out).Error
	})
	if err != nil {
		return Profile{}, err
	}
	return out, nil
}

// advanceStreak updates the daily streak counters for an award landing now:
// same day keeps the streak, the day after extends it, anything else
// restarts at one.
func (s *Service) advanceStreak(tx *gorm.DB, userID uint64) error {
	var p Profile
	if err := tx.Where("user_id = ?", userID).First(&p).Error; err != nil {
		return err
	}

	today := time.Now().UTC().Truncate(24 * time.Hour)
	streak := 1
	if p.LastActivityDate != nil {
		last := p.LastActivityDate.UTC().Truncate(24 * time.Hour)
		switch {
		case last.Equal(today):
			streak = p.CurrentStreak
			if streak == 0 {
				streak = 1
			}
		case last.Equal(today.AddDate(0, 0, -1)):
			streak = p.CurrentStreak + 1
		}
	}

	longest := p.LongestStreak
	if streak > longest {
		longest = streak
	}

	return tx.Model(&Profile{}).
		Where("user_id = ?", userID).
		Updates(map[string]any{
			"current_streak":     streak,
			"longest_streak":     longest,
			"last_activity_date": today,
		}).Error
}

// GetProfile returns the user's profile, creating an empty one on first read.
func (s *Service) GetProfile(ctx context.Context, userID uint64) (Profile, error) {
	var p Profile
	err := s.DB.WithContext(ctx).Where(Profile{UserID: userID}).FirstOrCreate(&p).Error
	return p, err
}

// RecentAchievements lists the newest achievements, capped at limit.
func (s *Service) RecentAchievements(ctx context.Context, userID uint64, limit int) ([]Achievement, error) {
	if limit <= 0 || limit > 100 {
		limit = 10
	}
	var out []Achievement
	err := s.DB.WithContext(ctx).
		Where("user_id = ?", userID).
		Order("created_at desc").
		Limit(limit).
		Find(&out).Error
	return out, err
}
