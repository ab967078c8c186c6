package handlers

import (
	"net/http"
	"strconv"
	"time"

	"github.com/freshchat-app/freshchat-backend/internal/models"
)

// ChatHistoryResponse is returned when loading historical messages.
type ChatHistoryResponse struct {
	Success  bool             `json:"success"`
	Messages []models.Message `json:"messages"`
	HasMore  bool             `json:"has_more"`
}

// History loads paginated offline messages for a chat.
// Query params:
//
//	chatId (required)
//	before (optional RFC3339 timestamp for pagination)
//	limit  (optional, default 50)
func (h *ChatHandler) History(w http.ResponseWriter, r *http.Request) {
	chatID := r.URL.Query().Get("chatId")
	if chatID == "" {
		writeJSON(w, http.StatusBadRequest, map[string]interface{}{
			"success": false,
			"error":   "chatId is required",
		})
		return
	}

	limit := int64(50)
	if lStr := r.URL.Query().Get("limit"); lStr != "" {
		if parsed, err := strconv.ParseInt(lStr, 10, 64); err == nil && parsed > 0 && parsed <= 100 {
			limit = parsed
		}
	}

	var before *time.Time
	if bStr := r.URL.Query().Get("before"); bStr != "" {
		if t, err := time.Parse(time.RFC3339, bStr); err == nil {
			before = &t
		}
	}

	msgs, hasMore, err := h.Relay.History(r.Context(), chatID, before, limit)
	if err != nil {
		writeJSON(w, http.StatusInternalServerError, map[string]interface{}{
			"success": false,
			"error":   "failed to load messages",
		})
		return
	}

	writeJSON(w, http.StatusOK, ChatHistoryResponse{
		Success:  true,
		Messages: msgs,
		HasMore:  hasMore,
	})
}
