package realtime

import (
	"context"
	"encoding/json"
	"testing"
	"time"

	"github.com/alicebob/miniredis/v2"
	"github.com/redis/go-redis/v9"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
)

func setupGateway(t *testing.T) (*RedisGateway, *redis.Client) {
	mr := miniredis.RunT(t)
	client := redis.NewClient(&redis.Options{Addr: mr.Addr()})
	t.Cleanup(func() { _ = client.Close() })
	return NewRedisGateway(client, zap.NewNop()), client
}

func receive(t *testing.T, ch <-chan *redis.Message) envelope {
	t.Helper()
	select {
	case msg := <-ch:
		var env envelope
		require.NoError(t, json.Unmarshal([]byte(msg.Payload), &env))
		return env
	case <-time.After(time.Second):
		t.Fatal("no socket event received")
		return envelope{}
	}
}

func TestRedisGateway_EmitTargetsOneConnection(t *testing.T) {
	gw, client := setupGateway(t)
	ctx := context.Background()

	sub := client.Subscribe(ctx, "socket:conn:abc123")
	defer sub.Close()
	_, err := sub.Receive(ctx)
	require.NoError(t, err)

	require.NoError(t, gw.Emit(ctx, "abc123", "newMessage", map[string]string{"text": "shelf restocked"}))

	env := receive(t, sub.Channel())
	assert.Equal(t, "newMessage", env.Event)
}

func TestRedisGateway_EmitWithoutSocketIsNoop(t *testing.T) {
	gw, _ := setupGateway(t)
	assert.NoError(t, gw.Emit(context.Background(), "", "newMessage", nil))
}

func TestRedisGateway_Broadcast(t *testing.T) {
	gw, client := setupGateway(t)
	ctx := context.Background()

	sub := client.Subscribe(ctx, "socket:broadcast")
	defer sub.Close()
	_, err := sub.Receive(ctx)
	require.NoError(t, err)

	require.NoError(t, gw.Broadcast(ctx, "newMessage", map[string]string{"text": "hello all"}))

	env := receive(t, sub.Channel())
	assert.Equal(t, "newMessage", env.Event)
}
