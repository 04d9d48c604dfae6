package handler

import (
	"net/http"
	"strconv"
	"strings"

	"focustube/internal/auth"
	"focustube/internal/note"
	"focustube/internal/webutil"

	"github.com/go-chi/chi/v5"
)

type NoteHandler struct {
	Svc *note.Service
}

type createNoteReq struct {
	Title    string `json:"title"`
	Content  string `json:"content"`
	Category string `json:"category"`
}

type updateNoteReq struct {
	Title   *string `json:"title"`
	Content *string `json:"content"`
}

func (h *NoteHandler) Create(w http.ResponseWriter, r *http.Request) {
	uid, _ := auth.UserIDFromContext(r.Context())

	var req createNoteReq
	if err := webutil.DecodeJSON(r, &req); err != nil {
		webutil.WriteError(w, err)
		return
	}

	n, err := h.Svc.Create(r.Context(), uid, note.CreateInput{
		Title:    req.Title,
		Content:  req.Content,
		Category: req.Category,
		IdemKey:  idemKey(r),
	})
	if err != nil {
		webutil.WriteError(w, err)
		return
	}

	webutil.WriteJSON(w, http.StatusCreated, n)
}

func (h *NoteHandler) List(w http.ResponseWriter, r *http.Request) {
	uid, _ := auth.UserIDFromContext(r.Context())

	notes, err := h.Svc.List(r.Context(), uid)
	if err != nil {
		webutil.WriteError(w, err)
		return
	}
	webutil.WriteJSON(w, http.StatusOK, notes)
}

func (h *NoteHandler) Update(w http.ResponseWriter, r *http.Request) {
	uid, _ := auth.UserIDFromContext(r.Context())

	id, ok := pathID(w, r)
	if !ok {
		return
	}

	var req updateNoteReq
	if err := webutil.DecodeJSON(r, &req); err != nil {
		webutil.WriteError(w, err)
		return
	}

	n, err := h.Svc.Update(r.Context(), uid, id, note.UpdateInput{Title: req.Title, Content: req.Content})
	if err != nil {
		webutil.WriteError(w, err)
		return
	}
	webutil.WriteJSON(w, http.StatusOK, n)
}

func (h *NoteHandler) TogglePin(w http.ResponseWriter, r *http.Request) {
	uid, _ := auth.UserIDFromContext(r.Context())

	id, ok := pathID(w, r)
	if !ok {
		return
	}

	n, err := h.Svc.TogglePin(r.Context(), uid, id)
	if err != nil {
		webutil.WriteError(w, err)
		return
	}
	webutil.WriteJSON(w, http.StatusOK, n)
}

func (h *NoteHandler) Delete(w http.ResponseWriter, r *http.Request) {
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

func pathID(w http.ResponseWriter, r *http.Request) (uint64, bool) {
	id, err := strconv.ParseUint(chi.URLParam(r, "id"), 10, 64)
	if err != nil {
		http.Error(w, "invalid id", http.StatusBadRequest)
		return 0, false
	}
	return id, true
}

func idemKey(r *http.Request) *string {
	if k := strings.TrimSpace(r.Header.Get("Idempotency-Key")); k != "" {
		return &k
	}
	return nil
}
