// Package push sends device push notifications. The provider itself is an
// external service reached over a JSON HTTP API; this package owns only the
// client side of that contract.
package push

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"time"

	"go.uber.org/zap"
)

// Notification is one push message addressed to a set of device tokens
type Notification struct {
	Tokens []string       `json:"to"`
	Title  string         `json:"title"`
	Body   string         `json:"body"`
	Data   map[string]any `json:"data,omitempty"`
}

// Provider is the delivery contract the fan-out depends on
type Provider interface {
	Send(ctx context.Context, n Notification) error
}

// HTTPProvider posts notifications to the configured provider endpoint
type HTTPProvider struct {
	endpoint string
	apiKey   string
	client   *http.Client
	logger   *zap.Logger
}

// NewHTTPProvider creates a provider client for the given endpoint
func NewHTTPProvider(endpoint, apiKey string, logger *zap.Logger) *HTTPProvider {
	return &HTTPProvider{
		endpoint: endpoint,
		apiKey:   apiKey,
		client:   &http.Client{Timeout: 10 * time.Second},
		logger:   logger,
	}
}

// Send delivers one notification. Sending to zero tokens is a no-op.
func (p *HTTPProvider) Send(ctx context.Context, n Notification) error {
	if len(n.Tokens) == 0 {
		return nil
	}

	body, err := json.Marshal(n)
	if err != nil {
		return fmt.Errorf("failed to encode push notification: %w", err)
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, p.endpoint, bytes.NewReader(body))
	if err != nil {
		return err
	}
	req.Header.Set("Content-Type", "application/json")
	if p.apiKey != "" {
		req.Header.Set("Authorization", "Bearer "+p.apiKey)
	}

	resp, err := p.client.Do(req)
	if err != nil {
		return fmt.Errorf("push request failed: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode >= http.StatusBadRequest {
		snippet, _ := io.ReadAll(io.LimitReader(resp.Body, 512))
		return fmt.Errorf("push provider returned %d: %s", resp.StatusCode, snippet)
	}

	p.logger.Debug("push notification sent",
		zap.Int("tokens", len(n.Tokens)),
		zap.String("title", n.Title),
	)
	return nil
}

// Ensure HTTPProvider implements Provider
var _ Provider = (*HTTPProvider)(nil)
