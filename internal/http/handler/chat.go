package handler

import (
	"net/http"

	"focustube/internal/chat"
	"focustube/internal/video"
	"focustube/internal/webutil"
)

type ChatHandler struct {
	Client *chat.Client
}

type chatReq struct {
	Question            string                  `json:"question"`
	Transcript          *video.TranscriptBundle `json:"transcript"`
	ConversationHistory []chat.Turn             `json:"conversationHistory"`
}

func (h *ChatHandler) Ask(w http.ResponseWriter, r *http.Request) {
	var req chatReq
	if err := webutil.DecodeJSON(r, &req); err != nil {
		webutil.WriteError(w, err)
		return
	}

	answer, err := h.Client.Answer(r.Context(), req.Question, req.Transcript, req.ConversationHistory)
	if err != nil {
		webutil.WriteError(w, err)
		return
	}

	webutil.WriteJSON(w, http.StatusOK, map[string]string{"answer": answer})
}
