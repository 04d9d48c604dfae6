package handler

import (
	"net/http"

	"focustube/internal/auth"
	"focustube/internal/timer"
	"focustube/internal/webutil"
)

type TimerHandler struct {
	Engine *timer.Engine
}

type startTimerReq struct {
	DurationMinutes int    `json:"duration_minutes"`
	TaskName        string `json:"task_name"`
}

func (h *TimerHandler) State(w http.ResponseWriter, r *http.Request) {
	uid, _ := auth.UserIDFromContext(r.Context())
	webutil.WriteJSON(w, http.StatusOK, h.Engine.State(uid))
}

func (h *TimerHandler) Start(w http.ResponseWriter, r *http.Request) {
	uid, _ := auth.UserIDFromContext(r.Context())

	// both fields are optional, so an empty body is fine
	var req startTimerReq
	_ = webutil.DecodeJSON(r, &req)

	snap, err := h.Engine.Start(r.Context(), uid, timer.StartInput{
		DurationMinutes: req.DurationMinutes,
		TaskName:        req.TaskName,
	})
	if err != nil {
		webutil.WriteError(w, err)
		return
	}
	webutil.WriteJSON(w, http.StatusOK, snap)
}

func (h *TimerHandler) Pause(w http.ResponseWriter, r *http.Request) {
	uid, _ := auth.UserIDFromContext(r.Context())

	snap, err := h.Engine.Pause(uid)
	if err != nil {
		webutil.WriteError(w, err)
		return
	}
	webutil.WriteJSON(w, http.StatusOK, snap)
}

func (h *TimerHandler) Reset(w http.ResponseWriter, r *http.Request) {
	uid, _ := auth.UserIDFromContext(r.Context())
	webutil.WriteJSON(w, http.StatusOK, h.Engine.Reset(uid))
}
