package push

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
)

func TestHTTPProvider_Send(t *testing.T) {
	var got Notification
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, "Bearer test-key", r.Header.Get("Authorization"))
		require.NoError(t, json.NewDecoder(r.Body).Decode(&got))
		w.WriteHeader(http.StatusOK)
	}))
	defer srv.Close()

	p := NewHTTPProvider(srv.URL, "test-key", zap.NewNop())
	err := p.Send(context.Background(), Notification{
		Tokens: []string{"tok-1", "tok-2"},
		Title:  "New message",
		Body:   "Shelf 4 is empty",
	})
	require.NoError(t, err)
	assert.Equal(t, []string{"tok-1", "tok-2"}, got.Tokens)
}

func TestHTTPProvider_NoTokensIsNoop(t *testing.T) {
	called := false
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		called = true
	}))
	defer srv.Close()

	p := NewHTTPProvider(srv.URL, "", zap.NewNop())
	require.NoError(t, p.Send(context.Background(), Notification{Title: "x"}))
	assert.False(t, called)
}

func TestHTTPProvider_ErrorStatusSurfaced(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		http.Error(w, "invalid token", http.StatusBadGateway)
	}))
	defer srv.Close()

	p := NewHTTPProvider(srv.URL, "", zap.NewNop())
	err := p.Send(context.Background(), Notification{Tokens: []string{"tok"}})
	assert.ErrorContains(t, err, "502")
}
