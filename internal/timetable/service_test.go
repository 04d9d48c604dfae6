package timetable

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

func newTestService(t *testing.T) *Service {
	t.Helper()
	dsn := fmt.Sprintf("file:%s?mode=memory&cache=shared", t.Name())
	db, err := gorm.Open(sqlite.Open(dsn), &gorm.Config{
		Logger: logger.Default.LogMode(logger.Silent),
	})
	require.NoError(t, err)
	require.NoError(t, db.AutoMigrate(&Event{}))
	return &Service{DB: db}
}

func TestCreate_Defaults(t *testing.T) {
	svc := newTestService(t)
	start := time.Date(2026, 9, 1, 9, 0, 0, 0, time.UTC)

	e, err := svc.Create(context.Background(), 1, CreateInput{
		Title:     "Chemistry lecture",
		StartTime: start,
		EndTime:   start.Add(time.Hour),
	})
	require.NoError(t, err)
	assert.Equal(t, "study", e.Category)
	assert.Equal(t, "blue", e.Color)
}

func TestCreate_Validation(t *testing.T) {
	svc := newTestService(t)
	ctx := context.Background()
	start := time.Date(2026, 9, 1, 9, 0, 0, 0, time.UTC)

	_, err := svc.Create(ctx, 1, CreateInput{StartTime: start, EndTime: start.Add(time.Hour)})
	assert.ErrorIs(t, err, apperr.ErrValidation, "title required")

	_, err = svc.Create(ctx, 1, CreateInput{Title: "t", StartTime: start})
	assert.ErrorIs(t, err, apperr.ErrValidation, "end_time required")

	_, err = svc.Create(ctx, 1, CreateInput{Title: "t", StartTime: start, EndTime: start.Add(-time.Minute)})
	assert.ErrorIs(t, err, apperr.ErrValidation, "end before start")
}

func TestList_OrderedByStartTime(t *testing.T) {
	svc := newTestService(t)
	ctx := context.Background()
	base := time.Date(2026, 9, 1, 9, 0, 0, 0, time.UTC)

	_, err := svc.Create(ctx, 1, CreateInput{Title: "later", StartTime: base.Add(2 * time.Hour), EndTime: base.Add(3 * time.Hour)})
	require.NoError(t, err)
	_, err = svc.Create(ctx, 1, CreateInput{Title: "earlier", StartTime: base, EndTime: base.Add(time.Hour)})
	require.NoError(t, err)

	out, err := svc.List(ctx, 1)
	require.NoError(t, err)
	require.Len(t, out, 2)
	assert.Equal(t, "earlier", out[0].Title)
	assert.Equal(t, "later", out[1].Title)
}

func TestDelete_OwnershipScoped(t *testing.T) {
	svc := newTestService(t)
	ctx := context.Background()
	start := time.Date(2026, 9, 1, 9, 0, 0, 0, time.UTC)

	e, err := svc.Create(ctx, 1, CreateInput{Title: "t", StartTime: start, EndTime: start.Add(time.Hour)})
	require.NoError(t, err)

	assert.ErrorIs(t, svc.Delete(ctx, 2, e.ID), apperr.ErrNotFound)
	require.NoError(t, svc.Delete(ctx, 1, e.ID))
}
