// Package realtime delivers socket events to the websocket edge through
// redis pub/sub. The edge servers hold the actual connections and subscribe
// to the per-connection and broadcast channels; this side only publishes.
package realtime

import (
	"context"
	"encoding/json"
	"fmt"

	"github.com/redis/go-redis/v9"
	"go.uber.org/zap"
)

// Channel naming on the redis side
const (
	connectionChannelPrefix = "socket:conn:"
	broadcastChannel        = "socket:broadcast"
)

// Gateway is the realtime delivery contract the fan-out depends on
type Gateway interface {
	Emit(ctx context.Context, socketID, event string, payload any) error
	Broadcast(ctx context.Context, event string, payload any) error
}

// envelope is the wire format published to the edge
type envelope struct {
	Event   string `json:"event"`
	Payload any    `json:"payload"`
}

// RedisGateway publishes socket events over redis pub/sub. It is constructed
// with its client and closed explicitly; nothing here is a lazy singleton.
type RedisGateway struct {
	client *redis.Client
	logger *zap.Logger
}

// NewRedisGateway creates a gateway over an established redis client
func NewRedisGateway(client *redis.Client, logger *zap.Logger) *RedisGateway {
	return &RedisGateway{client: client, logger: logger}
}

// Emit publishes an event to one connection's channel. Emitting to an empty
// socket id is a no-op: the recipient simply is not connected.
func (g *RedisGateway) Emit(ctx context.Context, socketID, event string, payload any) error {
	if socketID == "" {
		return nil
	}
	return g.publish(ctx, connectionChannelPrefix+socketID, event, payload)
}

// Broadcast publishes an event to every connected socket
func (g *RedisGateway) Broadcast(ctx context.Context, event string, payload any) error {
	return g.publish(ctx, broadcastChannel, event, payload)
}

func (g *RedisGateway) publish(ctx context.Context, channel, event string, payload any) error {
	body, err := json.Marshal(envelope{Event: event, Payload: payload})
	if err != nil {
		return fmt.Errorf("failed to encode socket event: %w", err)
	}
	if err := g.client.Publish(ctx, channel, body).Err(); err != nil {
		return fmt.Errorf("failed to publish socket event: %w", err)
	}
	g.logger.Debug("socket event published",
		zap.String("channel", channel),
		zap.String("event", event),
	)
	return nil
}

// Ensure RedisGateway implements Gateway
var _ Gateway = (*RedisGateway)(nil)
