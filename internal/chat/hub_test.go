package chat

import (
	"sync"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type fakeConn struct {
	mu     sync.Mutex
	events []Event
}

func (f *fakeConn) WriteJSON(v interface{}) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.events = append(f.events, v.(Event))
	return nil
}

func (f *fakeConn) Close() error { return nil }

func (f *fakeConn) received() int {
	f.mu.Lock()
	defer f.mu.Unlock()
	return len(f.events)
}

func TestHubBroadcast(t *testing.T) {
	hub := NewHub()
	a, b := &fakeConn{}, &fakeConn{}

	hub.Register(a)
	hub.Register(b)
	require.Equal(t, 2, hub.Subscribers())

	hub.Broadcast(Event{Type: EventMessage, Content: "hi"})

	// Writes are fired on separate goroutines; wait for both copies.
	assert.Eventually(t, func() bool { return a.received() == 1 && b.received() == 1 },
		time.Second, 10*time.Millisecond)

	a.mu.Lock()
	assert.Equal(t, "hi", a.events[0].Content)
	a.mu.Unlock()
}

func TestHubUnregisteredConnMissesBroadcast(t *testing.T) {
	hub := NewHub()
	stays, leaves := &fakeConn{}, &fakeConn{}

	hub.Register(stays)
	id := hub.Register(leaves)
	hub.Unregister(id)
	require.Equal(t, 1, hub.Subscribers())

	hub.Broadcast(Event{Type: EventAnnounce, Content: "bye"})

	assert.Eventually(t, func() bool { return stays.received() == 1 },
		time.Second, 10*time.Millisecond)
	assert.Equal(t, 0, leaves.received())
}

func TestHubLateSubscriberMissesEarlierBroadcast(t *testing.T) {
	hub := NewHub()
	early := &fakeConn{}
	hub.Register(early)

	hub.Broadcast(Event{Type: EventMessage, Content: "first"})
	assert.Eventually(t, func() bool { return early.received() == 1 },
		time.Second, 10*time.Millisecond)

	// No queuing: a connection registered after the broadcast never sees it.
	late := &fakeConn{}
	hub.Register(late)
	assert.Equal(t, 0, late.received())

	hub.Broadcast(Event{Type: EventMessage, Content: "second"})
	assert.Eventually(t, func() bool { return early.received() == 2 && late.received() == 1 },
		time.Second, 10*time.Millisecond)
}
