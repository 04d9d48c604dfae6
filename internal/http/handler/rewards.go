package handler

import (
	"net/http"

	"focustube/internal/auth"
	"focustube/internal/ledger"
	"focustube/internal/note"
	"focustube/internal/timer"
	"focustube/internal/webutil"
)

type RewardsHandler struct {
	Ledger   *ledger.Service
	Notes    *note.Service
	Sessions *timer.Service
}

// Dashboard aggregates the rewards screen: profile counters, recent
// achievements, and the activity counts. Level is 100 points wide.
func (h *RewardsHandler) Dashboard(w http.ResponseWriter, r *http.Request) {
	uid, _ := auth.UserIDFromContext(r.Context())
	ctx := r.Context()

	profile, err := h.Ledger.GetProfile(ctx, uid)
	if err != nil {
		webutil.WriteError(w, err)
		return
	}

	achievements, err := h.Ledger.RecentAchievements(ctx, uid, 10)
	if err != nil {
		webutil.WriteError(w, err)
		return
	}
	if achievements == nil {
		achievements = []ledger.Achievement{}
	}

	completedSessions, err := h.Sessions.CompletedCount(ctx, uid)
	if err != nil {
		webutil.WriteError(w, err)
		return
	}

	notesCount, err := h.Notes.Count(ctx, uid)
	if err != nil {
		webutil.WriteError(w, err)
		return
	}

	webutil.WriteJSON(w, http.StatusOK, map[string]any{
		"profile":              profile,
		"achievements":         achievements,
		"completed_sessions":   completedSessions,
		"notes_count":          notesCount,
		"level":                profile.TotalPoints/100 + 1,
		"points_to_next_level": 100 - profile.TotalPoints%100,
	})
}
