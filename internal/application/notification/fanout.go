// Package notification fans domain events out to the in-app, socket and
// push channels and serves the notification feed.
package notification

import (
	"context"

	"github.com/whizdome/promorama-backend/internal/domain/notification"
	"github.com/whizdome/promorama-backend/internal/infrastructure/push"
	"github.com/whizdome/promorama-backend/internal/infrastructure/realtime"
	"github.com/whizdome/promorama-backend/internal/infrastructure/task"
	"go.uber.org/zap"
)

// socketPayload is the envelope emitted on the realtime channel
type socketPayload struct {
	Type        notification.Type `json:"type"`
	EntityID    string            `json:"entityId"`
	Description string            `json:"description"`
}

// Fanout delivers one event to every recipient over three channels. Each
// channel of each recipient is its own background task: a failing push never
// blocks an in-app insert, and no channel failure reaches the caller.
type Fanout struct {
	notifications notification.Repository
	tokens        notification.DeviceTokenRepository
	gateway       realtime.Gateway
	push          push.Provider
	dispatcher    *task.Dispatcher
	logger        *zap.Logger
}

// NewFanout creates a new Fanout
func NewFanout(
	notifications notification.Repository,
	tokens notification.DeviceTokenRepository,
	gateway realtime.Gateway,
	pushProvider push.Provider,
	dispatcher *task.Dispatcher,
	logger *zap.Logger,
) *Fanout {
	return &Fanout{
		notifications: notifications,
		tokens:        tokens,
		gateway:       gateway,
		push:          pushProvider,
		dispatcher:    dispatcher,
		logger:        logger,
	}
}

// Deliver computes the event's recipients and queues their deliveries.
// It returns immediately; the triggering request never waits on delivery.
func (f *Fanout) Deliver(event notification.Event) {
	recipients := event.Recipients()
	f.logger.Debug("delivering notification event",
		zap.String("type", string(event.Type)),
		zap.Int("recipients", len(recipients)),
	)

	for _, rcpt := range recipients {
		f.queueInApp(event, rcpt)
		f.queueSocket(event, rcpt)
		f.queuePush(event, rcpt)
	}
}

func (f *Fanout) queueInApp(event notification.Event, rcpt notification.Recipient) {
	f.dispatcher.Submit(task.Task{
		Name: "notification.inapp",
		Run: func(ctx context.Context) error {
			n, err := notification.NewInAppNotification(rcpt.UserID, event.EntityID, event.Type, event.Description)
			if err != nil {
				return err
			}
			return f.notifications.Save(ctx, n)
		},
	})
}

func (f *Fanout) queueSocket(event notification.Event, rcpt notification.Recipient) {
	payload := socketPayload{
		Type:        event.Type,
		EntityID:    event.EntityID.String(),
		Description: event.Description,
	}

	if rcpt.Broadcast {
		f.dispatcher.Submit(task.Task{
			Name: "notification.socket.broadcast",
			Run: func(ctx context.Context) error {
				return f.gateway.Broadcast(ctx, string(event.Type), payload)
			},
		})
		return
	}
	if rcpt.SocketID == "" {
		return
	}
	f.dispatcher.Submit(task.Task{
		Name: "notification.socket",
		Run: func(ctx context.Context) error {
			return f.gateway.Emit(ctx, rcpt.SocketID, string(event.Type), payload)
		},
	})
}

func (f *Fanout) queuePush(event notification.Event, rcpt notification.Recipient) {
	// The broadcast channel has no device tokens behind it
	if rcpt.Broadcast || rcpt.SuppressPush {
		return
	}
	f.dispatcher.Submit(task.Task{
		Name: "notification.push",
		Run: func(ctx context.Context) error {
			tokens, err := f.tokens.ListActiveForUser(ctx, rcpt.UserID)
			if err != nil {
				return err
			}
			if len(tokens) == 0 {
				return nil
			}
			values := make([]string, len(tokens))
			for i, tok := range tokens {
				values[i] = tok.Token
			}
			return f.push.Send(ctx, push.Notification{
				Tokens: values,
				Title:  pushTitle(event.Type),
				Body:   event.Description,
				Data:   map[string]any{"entityId": event.EntityID.String(), "type": string(event.Type)},
			})
		},
	})
}

func pushTitle(typ notification.Type) string {
	switch typ {
	case notification.TypeMessage:
		return "New message"
	case notification.TypeMessageReply:
		return "New response"
	case notification.TypeTask:
		return "New task"
	case notification.TypeDeviceChange:
		return "Device update"
	default:
		return "Notification"
	}
}
