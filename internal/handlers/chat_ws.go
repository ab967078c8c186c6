package handlers

import (
	"context"
	"encoding/json"
	"log"
	"net/http"
	"time"

	"github.com/freshchat-app/freshchat-backend/internal/chat"
	"github.com/freshchat-app/freshchat-backend/internal/services"
	"github.com/gorilla/websocket"
)

var chatUpgrader = websocket.Upgrader{
	ReadBufferSize:  1024,
	WriteBufferSize: 1024,
	CheckOrigin: func(r *http.Request) bool {
		// CORS for WebSocket is handled at the HTTP layer already.
		return true
	},
}

// Inbound frame kinds on the shared channel.
const (
	frameSendMessage  = "send_message"
	frameAnnounceUser = "announce_user"
)

// clientFrame represents events coming from the frontend over WebSocket.
type clientFrame struct {
	Type       string `json:"type"`
	Content    string `json:"content,omitempty"`
	SenderID   string `json:"senderId,omitempty"`
	ReceiverID string `json:"receiverId,omitempty"`
	ChatID     string `json:"chatId,omitempty"`
}

// ChatHandler serves the realtime surface: the WebSocket gateway and chat
// history.
type ChatHandler struct {
	Relay *services.RelayService
	Hub   *chat.Hub
}

// ServeWS upgrades the connection, subscribes it to the shared broadcast
// topic, and relays inbound frames until the client disconnects.
func (h *ChatHandler) ServeWS(w http.ResponseWriter, r *http.Request) {
	conn, err := chatUpgrader.Upgrade(w, r, nil)
	if err != nil {
		return
	}
	defer conn.Close()

	id := h.Hub.Register(conn)
	defer h.Hub.Unregister(id)

	conn.SetReadLimit(64 * 1024)
	_ = conn.SetReadDeadline(time.Now().Add(90 * time.Second))
	conn.SetPongHandler(func(appData string) error {
		_ = conn.SetReadDeadline(time.Now().Add(90 * time.Second))
		return nil
	})

	for {
		_, data, err := conn.ReadMessage()
		if err != nil {
			return
		}

		var frame clientFrame
		if err := json.Unmarshal(data, &frame); err != nil {
			continue
		}
		_ = conn.SetReadDeadline(time.Now().Add(90 * time.Second))

		h.dispatch(r.Context(), frame)
	}
}

func (h *ChatHandler) dispatch(ctx context.Context, frame clientFrame) {
	ctx, cancel := context.WithTimeout(ctx, 5*time.Second)
	defer cancel()

	in := services.Inbound{
		Content:    frame.Content,
		SenderID:   frame.SenderID,
		ReceiverID: frame.ReceiverID,
		ChatID:     frame.ChatID,
	}

	switch frame.Type {
	case frameSendMessage:
		if _, err := h.Relay.SendMessage(ctx, in); err != nil {
			log.Printf("failed to relay message: %v", err)
		}
	case frameAnnounceUser:
		if err := h.Relay.AnnounceUser(ctx, in); err != nil {
			log.Printf("failed to announce user: %v", err)
		}
	}
}
