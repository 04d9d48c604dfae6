package ledger

import (
	"context"
	"fmt"
	"testing"
	"time"

	"focustube/internal/apperr"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"
)

func newTestDB(t *testing.T) *gorm.DB {
	t.Helper()
	dsn := fmt.Sprintf("file:%s?mode=memory&cache=shared", t.Name())
	db, err := gorm.Open(sqlite.Open(dsn), &gorm.Config{
		Logger:         logger.Default.LogMode(logger.Silent),
		TranslateError: true,
	})
	require.NoError(t, err)
	require.NoError(t, db.AutoMigrate(&Profile{}, &Achievement{}, &Award{}))
	return db
}

func TestAward_IncrementsAndAppendsAchievement(t *testing.T) {
	svc := &Service{DB: newTestDB(t)}
	ctx := context.Background()

	p, err := svc.Award(ctx, 1, AwardInput{
		Action: ActionPomodoroCompleted,
		Points: 10,
		Achievement: &AchievementInput{
			Type:        "pomodoro",
			Name:        "Focus Master",
			Description: "Completed a Pomodoro session",
		},
	})
	require.NoError(t, err)
	assert.Equal(t, 10, p.TotalPoints)

	var achievements []Achievement
	require.NoError(t, svc.DB.Where("user_id = ?", 1).Find(&achievements).Error)
	require.Len(t, achievements, 1)
	assert.Equal(t, "Focus Master", achievements[0].Name)
	assert.Equal(t, 10, achievements[0].PointsEarned)
}

func TestAward_SequentialAwardsAccumulate(t *testing.T) {
	svc := &Service{DB: newTestDB(t)}
	ctx := context.Background()

	_, err := svc.Award(ctx, 1, AwardInput{Action: ActionNoteCreated, Points: 10})
	require.NoError(t, err)
	p, err := svc.Award(ctx, 1, AwardInput{Action: ActionNoteCreated, Points: 10})
	require.NoError(t, err)
	assert.Equal(t, 20, p.TotalPoints)
}

func TestAward_NoAchievementWithoutDescriptor(t *testing.T) {
	svc := &Service{DB: newTestDB(t)}

	_, err := svc.Award(context.Background(), 1, AwardInput{Action: ActionNoteCreated, Points: 5})
	require.NoError(t, err)

	var n int64
	require.NoError(t, svc.DB.Model(&Achievement{}).Count(&n).Error)
	assert.Zero(t, n)
}

func TestAward_RejectsNonPositiveDelta(t *testing.T) {
	svc := &Service{DB: newTestDB(t)}

	_, err := svc.Award(context.Background(), 1, AwardInput{Action: ActionNoteCreated, Points: 0})
	assert.ErrorIs(t, err, apperr.ErrValidation)

	_, err = svc.Award(context.Background(), 1, AwardInput{Action: ActionNoteCreated, Points: -5})
	assert.ErrorIs(t, err, apperr.ErrValidation)
}

func TestAward_IdempotencyKeyIsNoOpOnRetry(t *testing.T) {
	svc := &Service{DB: newTestDB(t)}
	ctx := context.Background()
	key := "pomodoro:42"

	first, err := svc.Award(ctx, 1, AwardInput{Action: ActionPomodoroCompleted, Points: 10, IdemKey: &key})
	require.NoError(t, err)
	assert.Equal(t, 10, first.TotalPoints)

	second, err := svc.Award(ctx, 1, AwardInput{Action: ActionPomodoroCompleted, Points: 10, IdemKey: &key})
	require.NoError(t, err)
	assert.Equal(t, 10, second.TotalPoints, "retried key must not double-award")
}

func TestAward_StorageFailureIsNotAConflict(t *testing.T) {
	svc := &Service{DB: newTestDB(t)}

	// an unusable awards table is a storage failure, not a duplicate
	require.NoError(t, svc.DB.Exec("drop table awards").Error)

	_, err := svc.Award(context.Background(), 1, AwardInput{Action: ActionNoteCreated, Points: 5})
	require.Error(t, err)
	assert.NotErrorIs(t, err, apperr.ErrConflict)
}

func TestAward_StreakProgression(t *testing.T) {
	svc := &Service{DB: newTestDB(t)}
	ctx := context.Background()

	// first ever award starts a streak of one
	p, err := svc.Award(ctx, 1, AwardInput{Action: ActionNoteCreated, Points: 5})
	require.NoError(t, err)
	assert.Equal(t, 1, p.CurrentStreak)
	assert.Equal(t, 1, p.LongestStreak)

	// same-day award leaves the streak alone
	p, err = svc.Award(ctx, 1, AwardInput{Action: ActionNoteCreated, Points: 5})
	require.NoError(t, err)
	assert.Equal(t, 1, p.CurrentStreak)

	// pretend the last activity was yesterday: the streak extends
	yesterday := time.Now().UTC().Truncate(24 * time.Hour).AddDate(0, 0, -1)
	require.NoError(t, svc.DB.Model(&Profile{}).Where("user_id = ?", 1).
		Update("last_activity_date", yesterday).Error)

	p, err = svc.Award(ctx, 1, AwardInput{Action: ActionNoteCreated, Points: 5})
	require.NoError(t, err)
	assert.Equal(t, 2, p.CurrentStreak)
	assert.Equal(t, 2, p.LongestStreak)

	// a gap resets the streak but keeps the longest
	lastWeek := time.Now().UTC().Truncate(24 * time.Hour).AddDate(0, 0, -7)
	require.NoError(t, svc.DB.Model(&Profile{}).Where("user_id = ?", 1).
		Update("last_activity_date", lastWeek).Error)

	p, err = svc.Award(ctx, 1, AwardInput{Action: ActionNoteCreated, Points: 5})
	require.NoError(t, err)
	assert.Equal(t, 1, p.CurrentStreak)
	assert.Equal(t, 2, p.LongestStreak)
}

func TestGetProfile_CreatesOnFirstRead(t *testing.T) {
	svc := &Service{DB: newTestDB(t)}

	p, err := svc.GetProfile(context.Background(), 7)
	require.NoError(t, err)
	assert.Equal(t, uint64(7), p.UserID)
	assert.Zero(t, p.TotalPoints)
}

func TestRecentAchievements_Limit(t *testing.T) {
	svc := &Service{DB: newTestDB(t)}
	ctx := context.Background()

	for i := 0; i < 12; i++ {
		_, err := svc.Award(ctx, 1, AwardInput{
			Action:      ActionPomodoroCompleted,
			Points:      10,
			Achievement: &AchievementInput{Type: "pomodoro", Name: "Focus Master"},
		})
		require.NoError(t, err)
	}

	out, err := svc.RecentAchievements(ctx, 1, 10)
	require.NoError(t, err)
	assert.Len(t, out, 10)
}
