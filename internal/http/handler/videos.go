package handler

import (
	"errors"
	"net/http"

	"focustube/internal/apperr"
	"focustube/internal/video"
	"focustube/internal/webutil"
)

type VideoHandler struct {
	Client *video.Client
}

type searchReq struct {
	Query      string `json:"query"`
	MaxResults int    `json:"maxResults"`
}

func (h *VideoHandler) Search(w http.ResponseWriter, r *http.Request) {
	var req searchReq
	if err := webutil.DecodeJSON(r, &req); err != nil {
		webutil.WriteError(w, err)
		return
	}

	videos, err := h.Client.Search(r.Context(), req.Query, req.MaxResults)
	if err != nil {
		webutil.WriteError(w, err)
		return
	}

	webutil.WriteJSON(w, http.StatusOK, map[string]any{"videos": videos})
}

type transcriptReq struct {
	VideoID string `json:"videoId"`
}

func (h *VideoHandler) Transcript(w http.ResponseWriter, r *http.Request) {
	var req transcriptReq
	if err := webutil.DecodeJSON(r, &req); err != nil {
		webutil.WriteError(w, err)
		return
	}

	bundle, err := h.Client.TranscriptMetadata(r.Context(), req.VideoID)
	if err != nil {
		if errors.Is(err, apperr.ErrNotFound) {
			webutil.WriteJSON(w, http.StatusNotFound, map[string]string{"error": "Video not found"})
			return
		}
		webutil.WriteError(w, err)
		return
	}

	// zero caption tracks is a valid outcome, not a failure; the envelope
	// keeps the explanatory error string the UI shows alongside the 200
	if !bundle.HasCaptions {
		webutil.WriteJSON(w, http.StatusOK, map[string]any{
			"error":      "No captions available for this video",
			"transcript": []any{},
			"videoId":    bundle.VideoID,
			"title":      bundle.Title,
		})
		return
	}

	webutil.WriteJSON(w, http.StatusOK, bundle)
}
