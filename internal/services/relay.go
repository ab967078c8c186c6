package services

import (
	"context"
	"fmt"
	"log"
	"time"

	"github.com/freshchat-app/freshchat-backend/internal/chat"
	"github.com/freshchat-app/freshchat-backend/internal/models"
	"github.com/freshchat-app/freshchat-backend/internal/store"
)

// Broker publishes events to the shared broadcast topic. Satisfied by
// chat.RedisBroker; tests inject a fake.
type Broker interface {
	Publish(ctx context.Context, event chat.Event) error
}

// Inbound is a chat payload received over the realtime transport.
type Inbound struct {
	Content    string
	SenderID   string
	ReceiverID string
	ChatID     string
}

// RelayService persists inbound chat messages and rebroadcasts them to every
// current subscriber of the shared topic. Stateless per call.
type RelayService struct {
	messages store.MessageStore
	broker   Broker

	Now func() time.Time
}

func NewRelayService(messages store.MessageStore, broker Broker) *RelayService {
	return &RelayService{messages: messages, broker: broker, Now: time.Now}
}

// SendMessage stamps the message with a server-side timestamp, persists it,
// and broadcasts the persisted form (id and timestamp included). Persistence
// is in the critical path; the broadcast is best-effort on top of it.
func (s *RelayService) SendMessage(ctx context.Context, in Inbound) (*models.Message, error) {
	msg := models.NewMessage(in.Content, in.SenderID, in.ReceiverID, in.ChatID, s.Now())

	if err := s.messages.SaveMessage(ctx, msg); err != nil {
		return nil, fmt.Errorf("%w: save message: %v", ErrDependency, err)
	}

	if err := s.broker.Publish(ctx, chat.MessageEvent(msg)); err != nil {
		// The message is already durable; subscribers just miss this one.
		log.Printf("failed to publish chat event: %v", err)
	}

	return msg, nil
}

// AnnounceUser rebroadcasts a presence notice unchanged: no persistence, no
// server-side mutation.
func (s *RelayService) AnnounceUser(ctx context.Context, in Inbound) error {
	event := chat.Event{
		Type:       chat.EventAnnounce,
		Content:    in.Content,
		SenderID:   in.SenderID,
		ReceiverID: in.ReceiverID,
		ChatID:     in.ChatID,
	}
	if err := s.broker.Publish(ctx, event); err != nil {
		return fmt.Errorf("%w: publish announce: %v", ErrDependency, err)
	}
	return nil
}

// History returns persisted messages for a chat, newest-first paginated and
// delivered oldest-first.
func (s *RelayService) History(ctx context.Context, chatID string, before *time.Time, limit int64) ([]models.Message, bool, error) {
	msgs, hasMore, err := s.messages.ListMessages(ctx, chatID, before, limit)
	if err != nil {
		return nil, false, fmt.Errorf("%w: load messages: %v", ErrDependency, err)
	}
	return msgs, hasMore, nil
}
