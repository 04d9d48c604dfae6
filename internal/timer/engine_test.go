package timer

import (
	"context"
	"fmt"
	"io"
	"log/slog"
	"sync"
	"testing"

	"focustube/internal/apperr"
	"focustube/internal/ledger"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"
)

func newTestEngine(t *testing.T) (*Engine, *gorm.DB) {
	t.Helper()
	dsn := fmt.Sprintf("file:%s?mode=memory&cache=shared", t.Name())
	db, err := gorm.Open(sqlite.Open(dsn), &gorm.Config{
		Logger: logger.Default.LogMode(logger.Silent),
	})
	require.NoError(t, err)
	require.NoError(t, db.AutoMigrate(&Session{}, &ledger.Profile{}, &ledger.Achievement{}, &ledger.Award{}))

	ctx, cancel := context.WithCancel(context.Background())
	t.Cleanup(cancel)

	testLogger := slog.New(slog.NewTextHandler(io.Discard, nil))
	e := NewEngine(ctx, &Service{DB: db}, &ledger.Service{DB: db}, testLogger)
	return e, db
}

func TestEngine_StartCreatesSession(t *testing.T) {
	e, db := newTestEngine(t)

	snap, err := e.Start(context.Background(), 1, StartInput{TaskName: "read paper"})
	require.NoError(t, err)
	assert.Equal(t, StateRunning, snap.State)
	assert.Equal(t, 25, snap.Minutes)
	assert.Equal(t, 0, snap.Seconds)

	var sess Session
	require.NoError(t, db.First(&sess, snap.SessionID).Error)
	assert.Equal(t, uint64(1), sess.UserID)
	assert.Equal(t, 25, sess.DurationMinutes)
	assert.Equal(t, "read paper", sess.TaskName)
	assert.False(t, sess.Completed)
}

func TestEngine_ConcurrentStartsCreateOneSession(t *testing.T) {
	e, db := newTestEngine(t)

	const racers = 16
	errs := make(chan error, racers)

	var wg sync.WaitGroup
	for i := 0; i < racers; i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			_, err := e.Start(context.Background(), 1, StartInput{})
			errs <- err
		}()
	}
	wg.Wait()
	close(errs)

	started := 0
	for err := range errs {
		if err == nil {
			started++
		} else {
			assert.ErrorIs(t, err, apperr.ErrConflict)
		}
	}
	assert.Equal(t, 1, started, "exactly one start must win")

	var n int64
	require.NoError(t, db.Model(&Session{}).Where("user_id = ?", 1).Count(&n).Error)
	assert.Equal(t, int64(1), n)
	assert.Equal(t, StateRunning, e.State(1).State)
}

func TestEngine_StartWhileRunningConflicts(t *testing.T) {
	e, _ := newTestEngine(t)

	_, err := e.Start(context.Background(), 1, StartInput{})
	require.NoError(t, err)

	_, err = e.Start(context.Background(), 1, StartInput{})
	assert.ErrorIs(t, err, apperr.ErrConflict)
}

func TestEngine_ResetLeavesSessionRowUntouched(t *testing.T) {
	e, db := newTestEngine(t)

	snap, err := e.Start(context.Background(), 1, StartInput{})
	require.NoError(t, err)
	sessionID := snap.SessionID

	after := e.Reset(1)
	assert.Equal(t, StateIdle, after.State)
	assert.Equal(t, 25, after.Minutes)
	assert.Zero(t, after.SessionID)

	// the abandoned session stays uncompleted forever
	var sess Session
	require.NoError(t, db.First(&sess, sessionID).Error)
	assert.False(t, sess.Completed)
	assert.Nil(t, sess.CompletedAt)
}

func TestEngine_CompletionMarksSessionAndAwardsOnce(t *testing.T) {
	e, db := newTestEngine(t)

	snap, err := e.Start(context.Background(), 1, StartInput{DurationMinutes: 1})
	require.NoError(t, err)
	_, err = e.Pause(1)
	require.NoError(t, err)

	// drive the machine to the completion instant deterministically
	m := e.machine(1)
	m.mu.Lock()
	m.state = StateRunning
	m.remaining = 1
	m.mu.Unlock()

	require.True(t, m.Tick(), "final tick must report completion")
	e.complete(m)

	var sess Session
	require.NoError(t, db.First(&sess, snap.SessionID).Error)
	assert.True(t, sess.Completed)
	require.NotNil(t, sess.CompletedAt)

	var p ledger.Profile
	require.NoError(t, db.Where("user_id = ?", 1).First(&p).Error)
	assert.Equal(t, 10, p.TotalPoints)

	var achievements []ledger.Achievement
	require.NoError(t, db.Where("user_id = ?", 1).Find(&achievements).Error)
	require.Len(t, achievements, 1)
	assert.Equal(t, "Focus Master", achievements[0].Name)
	assert.Equal(t, 10, achievements[0].PointsEarned)

	// a second completion attempt is idempotent end to end
	e.complete(m)
	require.NoError(t, db.Where("user_id = ?", 1).First(&p).Error)
	assert.Equal(t, 10, p.TotalPoints)
}

func TestEngine_PauseWithoutRunningTimer(t *testing.T) {
	e, _ := newTestEngine(t)

	_, err := e.Pause(9)
	assert.ErrorIs(t, err, apperr.ErrConflict)
}
