package chat

import (
	"time"

	"github.com/freshchat-app/freshchat-backend/internal/models"
)

// Event kinds broadcast on the shared topic.
const (
	EventMessage  = "message"
	EventAnnounce = "announce"
)

// Event is the payload published to Redis and fanned out to every WebSocket
// subscriber of the shared topic.
type Event struct {
	Type       string    `json:"type"`
	ID         string    `json:"id,omitempty"`
	Content    string    `json:"content,omitempty"`
	SenderID   string    `json:"senderId,omitempty"`
	ReceiverID string    `json:"receiverId,omitempty"`
	ChatID     string    `json:"chatId,omitempty"`
	Timestamp  time.Time `json:"timestamp,omitempty"`
}

// MessageEvent builds the broadcast form of a persisted message, carrying the
// assigned identifier and server timestamp.
func MessageEvent(msg *models.Message) Event {
	return Event{
		Type:       EventMessage,
		ID:         msg.ID.Hex(),
		Content:    msg.Content,
		SenderID:   msg.SenderID,
		ReceiverID: msg.ReceiverID,
		ChatID:     msg.ChatID,
		Timestamp:  msg.Timestamp,
	}
}
