package logger

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
	"go.uber.org/zap/zaptest/observer"
)

func TestWithContext_RoundTrip(t *testing.T) {
	l := zap.NewNop()
	ctx := WithContext(context.Background(), l)
	assert.Same(t, l, FromContext(ctx))
}

func TestFromContext_MissingLoggerIsNoop(t *testing.T) {
	l := FromContext(context.Background())
	require.NotNil(t, l)
	// Must be safe to use
	l.Info("ignored")
}

func TestWithRequestID(t *testing.T) {
	core, logs := observer.New(zap.InfoLevel)
	ctx, enriched := WithRequestID(context.Background(), zap.New(core), "req-42")

	assert.Equal(t, "req-42", GetRequestID(ctx))

	enriched.Info("hello")
	require.Equal(t, 1, logs.Len())
	assert.Equal(t, "req-42", logs.All()[0].ContextMap()["request_id"])
}

func TestWithUserID(t *testing.T) {
	ctx, _ := WithUserID(context.Background(), zap.NewNop(), "user-7")
	assert.Equal(t, "user-7", GetUserID(ctx))
	assert.Empty(t, GetUserID(context.Background()))
}
