package handlers

import (
	"encoding/json"
	"net/http"

	"kone-backend/internal/chat"
	"kone-backend/internal/models"
)

type ChatHandler struct {
	Client *chat.Client
}

func NewChatHandler(client *chat.Client) *ChatHandler {
	return &ChatHandler{Client: client}
}

// Send handles POST /api/chat. The reply is always 200: webhook failures
// surface as the fixed apology message with the error flag set, so the
// transcript renders them in place.
func (h *ChatHandler) Send(w http.ResponseWriter, r *http.Request) {
	var req models.ChatRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		http.Error(w, "Invalid request body", http.StatusBadRequest)
		return
	}
	if req.Message == "" || req.SessionID == "" {
		http.Error(w, "message and sessionId are required", http.StatusBadRequest)
		return
	}

	reply := h.Client.Send(r.Context(), req)

	w.Header().Set("Content-Type", "application/json")
	json.NewEncoder(w).Encode(reply)
}
