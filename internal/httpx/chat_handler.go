package httpx

import (
	"context"
	"encoding/json"
	"net/http"
	"time"

	"github.com/go-chi/chi/v5"

	"github.com/yummybites/yummybites-backend/internal/ai"
)

type ChatHandler struct {
	Assistant *ai.Assistant
}

type chatReq struct {
	Message string `json:"message"`
}

func (h *ChatHandler) Register(r chi.Router) {
	r.Post("/api/v1/ai/chat", h.chat)
}

func (h *ChatHandler) chat(w http.ResponseWriter, r *http.Request) {
	var req chatReq
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeError(w, http.StatusBadRequest, "invalid json")
		return
	}
	if req.Message == "" {
		writeError(w, http.StatusBadRequest, "missing message")
		return
	}

	// Completions can be slow; give them more room than the DB endpoints.
	ctx, cancel := context.WithTimeout(r.Context(), 20*time.Second)
	defer cancel()

	reply, err := h.Assistant.Handle(ctx, req.Message)
	if err != nil {
		writeError(w, http.StatusInternalServerError, "assistant unavailable")
		return
	}
	writeJSON(w, http.StatusOK, reply)
}
