package chat

import (
	"context"
	"encoding/json"
	"log"
	"sync"
	"time"

	"github.com/redis/go-redis/v9"
)

// broadcastChannel is the single shared topic all chat events travel on.
const broadcastChannel = "chat:public"

// RedisBroker bridges the in-process hub with Redis pub/sub so every backend
// instance fans out the same events.
type RedisBroker struct {
	client  *redis.Client
	hub     *Hub
	started sync.Once
}

func NewRedisBroker(client *redis.Client, hub *Hub) *RedisBroker {
	return &RedisBroker{client: client, hub: hub}
}

// Publish sends an event to the shared topic.
func (b *RedisBroker) Publish(ctx context.Context, event Event) error {
	data, err := json.Marshal(event)
	if err != nil {
		return err
	}
	return b.client.Publish(ctx, broadcastChannel, data).Err()
}

// Start ensures a single shared Redis listener per instance.
func (b *RedisBroker) Start(ctx context.Context) {
	b.started.Do(func() {
		go b.run(ctx)
	})
}

func (b *RedisBroker) run(ctx context.Context) {
	backoff := time.Second

	for {
		select {
		case <-ctx.Done():
			return
		default:
		}

		func() {
			pubsub := b.client.Subscribe(ctx, broadcastChannel)
			defer pubsub.Close()

			log.Printf("✅ Chat Redis subscriber started (channel: %s)", broadcastChannel)

			for {
				msg, err := pubsub.ReceiveMessage(ctx)
				if err != nil {
					if ctx.Err() != nil {
						return
					}
					log.Printf("Redis subscriber error: %v", err)
					time.Sleep(backoff)
					backoff *= 2
					if backoff > 30*time.Second {
						backoff = 30 * time.Second
					}
					return
				}

				backoff = time.Second

				var event Event
				if err := json.Unmarshal([]byte(msg.Payload), &event); err != nil {
					log.Printf("failed to unmarshal chat event: %v", err)
					continue
				}

				// Fan out to local connections.
				b.hub.Broadcast(event)
			}
		}()
	}
}
