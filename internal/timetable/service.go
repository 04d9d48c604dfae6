package timetable

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	"focustube/internal/apperr"

	"gorm.io/gorm"
)

type Service struct {
	DB *gorm.DB
}

type CreateInput struct {
	Title       string
	Description string
	StartTime   time.Time
	EndTime     time.Time
	Category    string
	Color       string
}

func (s *Service) Create(ctx context.Context, userID uint64, in CreateInput) (Event, error) {
	in.Title = strings.TrimSpace(in.Title)
	if in.Title == "" {
		return Event{}, fmt.Errorf("%w: title required", apperr.ErrValidation)
	}
	if in.StartTime.IsZero() || in.EndTime.IsZero() {
		return Event{}, fmt.Errorf("%w: start_time and end_time required", apperr.ErrValidation)
	}
	if !in.EndTime.After(in.StartTime) {
		return Event{}, fmt.Errorf("%w: end_time must be after start_time", apperr.ErrValidation)
	}
	if in.Category == "" {
		in.Category = "study"
	}
	if in.Color == "" {
		in.Color = "blue"
	}

	e := Event{
		UserID:      userID,
		Title:       in.Title,
		Description: in.Description,
		StartTime:   in.StartTime,
		EndTime:     in.EndTime,
		Category:    in.Category,
		Color:       in.Color,
	}
	if err := s.DB.WithContext(ctx).Create(&e).Error; err != nil {
		return Event{}, err
	}
	return e, nil
}

func (s *Service) List(ctx context.Context, userID uint64) ([]Event, error) {
	var out []Event
	err := s.DB.WithContext(ctx).
		Where("user_id = ?", userID).
		Order("start_time asc").
		Find(&out).Error
	return out, err
}

func (s *Service) Update(ctx context.Context, userID, eventID uint64, in CreateInput) (Event, error) {
	var e Event
	if err := s.DB.WithContext(ctx).Where("id = ? AND user_id = ?", eventID, userID).First(&e).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return Event{}, apperr.ErrNotFound
		}
		return Event{}, err
	}

	if t := strings.TrimSpace(in.Title); t != "" {
		e.Title = t
	}
	if in.Description != "" {
		e.Description = in.Description
	}
	if !in.StartTime.IsZero() {
		e.StartTime = in.StartTime
	}
	if !in.EndTime.IsZero() {
		e.EndTime = in.EndTime
	}
	if !e.EndTime.After(e.StartTime) {
		return Event{}, fmt.Errorf("%w: end_time must be after start_time", apperr.ErrValidation)
	}

	if err := s.DB.WithContext(ctx).Save(&e).Error; err != nil {
		return Event{}, err
	}
	return e, nil
}

func (s *Service) Delete(ctx context.Context, userID, eventID uint64) error {
	res := s.DB.WithContext(ctx).Where("id = ? AND user_id = ?", eventID, userID).Delete(&Event{})
	if res.Error != nil {
		return res.Error
	}
	if res.RowsAffected == 0 {
		return apperr.ErrNotFound
	}
	return nil
}
