package handler

import (
	"net/http"
	"time"

	"focustube/internal/auth"
	"focustube/internal/timetable"
	"focustube/internal/webutil"
)

type TimetableHandler struct {
	Svc *timetable.Service
}

type eventReq struct {
	Title       string `json:"title"`
	Description string `json:"description"`
	StartTime   string `json:"start_time"` // RFC3339
	EndTime     string `json:"end_time"`   // RFC3339
	Category    string `json:"category"`
	Color       string `json:"color"`
}

func (req eventReq) toInput(w http.ResponseWriter) (timetable.CreateInput, bool) {
	in := timetable.CreateInput{
		Title:       req.Title,
		Description: req.Description,
		Category:    req.Category,
		Color:       req.Color,
	}
	if req.StartTime != "" {
		t, err := time.Parse(time.RFC3339, req.StartTime)
		if err != nil {
			http.Error(w, "invalid start_time (RFC3339)", http.StatusBadRequest)
			return in, false
		}
		in.StartTime = t
	}
	if req.EndTime != "" {
		t, err := time.Parse(time.RFC3339, req.EndTime)
		if err != nil {
			http.Error(w, "invalid end_time (RFC3339)", http.StatusBadRequest)
			return in, false
		}
		in.EndTime = t
	}
	return in, true
}

func (h *TimetableHandler) Create(w http.ResponseWriter, r *http.Request) {
	uid, _ := auth.UserIDFromContext(r.Context())

	var req eventReq
	if err := webutil.DecodeJSON(r, &req); err != nil {
		webutil.WriteError(w, err)
		return
	}
	in, ok := req.toInput(w)
	if !ok {
		return
	}

	e, err := h.Svc.Create(r.Context(), uid, in)
	if err != nil {
		webutil.WriteError(w, err)
		return
	}
	webutil.WriteJSON(w, http.StatusCreated, e)
}

func (h *TimetableHandler) List(w http.ResponseWriter, r *http.Request) {
	uid, _ := auth.UserIDFromContext(r.Context())

	events, err := h.Svc.List(r.Context(), uid)
	if err != nil {
		webutil.WriteError(w, err)
		return
	}
	webutil.WriteJSON(w, http.StatusOK, events)
}

func (h *TimetableHandler) Update(w http.ResponseWriter, r *http.Request) {
	uid, _ := auth.UserIDFromContext(r.Context())

	id, ok := pathID(w, r)
	if !ok {
		return
	}

	var req eventReq
	if err := webutil.DecodeJSON(r, &req); err != nil {
		webutil.WriteError(w, err)
		return
	}
	in, ok := req.toInput(w)
	if !ok {
		return
	}

	e, err := h.Svc.Update(r.Context(), uid, id, in)
	if err != nil {
		webutil.WriteError(w, err)
		return
	}
	webutil.WriteJSON(w, http.StatusOK, e)
}

func (h *TimetableHandler) Delete(w http.ResponseWriter, r *http.Request) {
	uid, _ := auth.UserIDFromContext(r.Context())

	id, ok := pathID(w, r)
	if !ok {
		return
	}

	if err := h.Svc.Delete(r.Context(), uid, id); err != nil {
		webutil.WriteError(w, err)
		return
	}
	w.WriteHeader(http.StatusNoContent)
}
