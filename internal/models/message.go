package models

import (
	"time"

	"go.mongodb.org/mongo-driver/bson/primitive"
)

// Message is a single chat message, one MongoDB document per message.
// The timestamp is assigned server-side when the message is built and the
// document is immutable afterwards.
type Message struct {
	ID         primitive.ObjectID `bson:"_id,omitempty" json:"id,omitempty"`
	Content    string             `bson:"content" json:"content"`
	SenderID   string             `bson:"sender_id" json:"senderId"`
	ReceiverID string             `bson:"receiver_id" json:"receiverId"`
	ChatID     string             `bson:"chat_id,omitempty" json:"chatId,omitempty"`
	Timestamp  time.Time          `bson:"timestamp" json:"timestamp"`
}

// NewMessage stamps the message with the server-side timestamp. The storage
// layer fills in the identifier on insert.
func NewMessage(content, senderID, receiverID, chatID string, now time.Time) *Message {
	return &Message{
		Content:    content,
		SenderID:   senderID,
		ReceiverID: receiverID,
		ChatID:     chatID,
		Timestamp:  now.UTC(),
	}
}
