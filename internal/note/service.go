package note

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"strings"

	"focustube/internal/apperr"
	"focustube/internal/ledger"

	"github.com/lib/pq"
	"gorm.io/gorm"
)

type Service struct {
	DB     *gorm.DB
	Ledger *ledger.Service
	Logger *slog.Logger
}

type CreateInput struct {
	Title    string
	Content  string
	Category string
	IdemKey  *string
}

type UpdateInput struct {
	Title   *string
	Content *string
}

// Create stores a note and grants the creation bonus through the shared
// ledger entry point. A ledger failure does not roll back the note: the
// record is the primary outcome, the points are a side effect.
func (s *Service) Create(ctx context.Context, userID uint64, in CreateInput) (Note, error) {
	in.Title = strings.TrimSpace(in.Title)
	// an untitled note is fine as long as it says something
	if in.Title == "" && strings.TrimSpace(in.Content) == "" {
		return Note{}, fmt.Errorf("%w: title or content required", apperr.ErrValidation)
	}
	if in.Category == "" {
		in.Category = "general"
	}

	n := Note{
		UserID:   userID,
		Title:    in.Title,
		Content:  in.Content,
		Category: in.Category,
		Tags:     pq.StringArray(ExtractTags(in.Content)),
	}
	if err := s.DB.WithContext(ctx).Create(&n).Error; err != nil {
		return Note{}, err
	}

	if _, err := s.Ledger.Award(ctx, userID, ledger.AwardInput{
		Action:  ledger.ActionNoteCreated,
		Points:  ledger.PointsNoteCreated,
		IdemKey: in.IdemKey,
	}); err != nil {
		s.Logger.Warn("note created but award failed",
			slog.Uint64("user_id", userID),
			slog.Uint64("note_id", n.ID),
			slog.Any("error", err))
	}

	return n, nil
}

// List returns the user's notes, pinned first, newest first within each group.
func (s *Service) List(ctx context.Context, userID uint64) ([]Note, error) {
	var out []Note
	err := s.DB.WithContext(ctx).
		Where("user_id = ?", userID).
		Order("is_pinned desc").
		Order("created_at desc").
		Find(&out).Error
	return out, err
}

func (s *Service) Update(ctx context.Context, userID, noteID uint64, in UpdateInput) (Note, error) {
	var n Note
	if err := s.DB.WithContext(ctx).Where("id = ? AND user_id = ?", noteID, userID).First(&n).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return Note{}, apperr.ErrNotFound
		}
		return Note{}, err
	}

	if in.Title != nil {
		n.Title = strings.TrimSpace(*in.Title)
	}
	if in.Content != nil {
		n.Content = *in.Content
		n.Tags = pq.StringArray(ExtractTags(n.Content))
	}
	if n.Title == "" && strings.TrimSpace(n.Content) == "" {
		return Note{}, fmt.Errorf("%w: title or content required", apperr.ErrValidation)
	}

	if err := s.DB.WithContext(ctx).Save(&n).Error; err != nil {
		return Note{}, err
	}
	return n, nil
}

// TogglePin flips the pinned flag. No points are involved.
func (s *Service) TogglePin(ctx context.Context, userID, noteID uint64) (Note, error) {
	var n Note
	if err := s.DB.WithContext(ctx).Where("id = ? AND user_id = ?", noteID, userID).First(&n).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return Note{}, apperr.ErrNotFound
		}
		return Note{}, err
	}
	n.IsPinned = !n.IsPinned
	if err := s.DB.WithContext(ctx).Save(&n).Error; err != nil {
		return Note{}, err
	}
	return n, nil
}

func (s *Service) Delete(ctx context.Context, userID, noteID uint64) error {
	res := s.DB.WithContext(ctx).Where("id = ? AND user_id = ?", noteID, userID).Delete(&Note{})
	if res.Error != nil {
		return res.Error
	}
	if res.RowsAffected == 0 {
		return apperr.ErrNotFound
	}
	return nil
}

// Count is used by the rewards dashboard.
func (s *Service) Count(ctx context.Context, userID uint64) (int64, error) {
	var n int64
	err := s.DB.WithContext(ctx).Model(&Note{}).Where("user_id = ?", userID).Count(&n).Error
	return n, err
}
