package realtime

import (
	"context"
	"encoding/json"
	"log"

	"github.com/redis/go-redis/v9"

	"github.com/whiskershaven/cat-shelter/shelter-stats-service/internal/core/ports"
)

// wireEvent is the envelope carried over the Redis channel so every API
// replica can reconstruct the SSE event name and payload.
type wireEvent struct {
	Event string          `json:"event"`
	Data  json.RawMessage `json:"data"`
}

// RedisPublisher implements ports.CampaignEventPublisher over Redis
// pub/sub, which fans each event out to every subscribed API replica.
type RedisPublisher struct {
	client  *redis.Client
	channel string
}

var _ ports.CampaignEventPublisher = (*RedisPublisher)(nil)

func NewRedisPublisher(client *redis.Client, channel string) *RedisPublisher {
	return &RedisPublisher{client: client, channel: channel}
}

func (p *RedisPublisher) PublishCampaignUpdated(ctx context.Context, evt ports.CampaignUpdatedEvent) error {
	data, err := json.Marshal(evt)
	if err != nil {
		return err
	}
	body, err := json.Marshal(wireEvent{Event: ports.EventCampaignUpdated, Data: data})
	if err != nil {
		return err
	}
	return p.client.Publish(ctx, p.channel, body).Err()
}

// RunBridge subscribes to the Redis channel and forwards every event into
// the local hub. It blocks until the context is cancelled; go-redis
// handles reconnects underneath, so a dropped connection pauses rather
// than kills the bridge.
func RunBridge(ctx context.Context, client *redis.Client, channel string, hub *Hub) error {
	sub := client.Subscribe(ctx, channel)
	defer sub.Close()

	messages := sub.Channel()
	log.Printf("realtime: bridging redis channel %q to sse hub", channel)

	for {
		select {
		case <-ctx.Done():
			return ctx.Err()
		case msg, ok := <-messages:
			if !ok {
				return nil
			}
			var evt wireEvent
			if err := json.Unmarshal([]byte(msg.Payload), &evt); err != nil {
				log.Printf("realtime: discarding malformed event: %v", err)
				continue
			}
			hub.Broadcast(Event{Name: evt.Event, Payload: evt.Data})
		}
	}
}
