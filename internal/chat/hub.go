package chat

import (
	"log"
	"sync"

	"github.com/google/uuid"
)

// Conn is the minimal interface our WebSocket implementation must satisfy.
type Conn interface {
	WriteJSON(v interface{}) error
	Close() error
}

// subscriber serializes writes to one connection; gorilla/websocket forbids
// concurrent writers.
type subscriber struct {
	conn Conn
	mu   sync.Mutex
}

func (s *subscriber) write(event Event) {
	s.mu.Lock()
	defer s.mu.Unlock()
	if err := s.conn.WriteJSON(event); err != nil {
		log.Printf("error writing chat event to websocket: %v", err)
	}
}

// Hub is the registry of live connections subscribed to the shared broadcast
// topic. Delivery is at-most-once: a connection registered after a broadcast
// never sees it, and a failed write simply loses that subscriber's copy.
type Hub struct {
	mu   sync.RWMutex
	subs map[uuid.UUID]*subscriber
}

func NewHub() *Hub {
	return &Hub{subs: make(map[uuid.UUID]*subscriber)}
}

// Register adds a connection and returns the handle used to unregister it.
func (h *Hub) Register(conn Conn) uuid.UUID {
	id := uuid.New()
	h.mu.Lock()
	h.subs[id] = &subscriber{conn: conn}
	h.mu.Unlock()
	return id
}

func (h *Hub) Unregister(id uuid.UUID) {
	h.mu.Lock()
	delete(h.subs, id)
	h.mu.Unlock()
}

// Subscribers returns the number of live connections.
func (h *Hub) Subscribers() int {
	h.mu.RLock()
	defer h.mu.RUnlock()
	return len(h.subs)
}

// Broadcast fans the event out to every current subscriber. Best-effort,
// non-blocking for the caller.
func (h *Hub) Broadcast(event Event) {
	h.mu.RLock()
	defer h.mu.RUnlock()

	for _, sub := range h.subs {
		go sub.write(event)
	}
}
