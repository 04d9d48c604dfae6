package handler

import (
	"net/http"

	"focustube/internal/auth"
	"focustube/internal/webutil"
)

type MeHandler struct{}

func (h *MeHandler) Me(w http.ResponseWriter, r *http.Request) {
	uid, _ := auth.UserIDFromContext(r.Context())
	webutil.WriteJSON(w, http.StatusOK, map[string]any{"user_id": uid})
}
