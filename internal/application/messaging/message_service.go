// Package messaging implements message and task operations, including the
// notification events they raise.
package messaging

import (
	"context"
	"fmt"

	"github.com/google/uuid"
	"github.com/whizdome/promorama-backend/internal/domain/identity"
	"github.com/whizdome/promorama-backend/internal/domain/initiative"
	"github.com/whizdome/promorama-backend/internal/domain/messaging"
	"github.com/whizdome/promorama-backend/internal/domain/notification"
	"github.com/whizdome/promorama-backend/internal/domain/shared"
	"github.com/whizdome/promorama-backend/internal/infrastructure/query"
	"go.uber.org/zap"
)

// EventSink receives resolved notification events for delivery
type EventSink interface {
	Deliver(event notification.Event)
}

// MessageService handles message creation and the fan-out events messages
// raise. Notification context is resolved inside the request so the
// background delivery needs no further lookups.
type MessageService struct {
	messages   messaging.MessageRepository
	stores     initiative.StoreRepository
	inits      initiative.Repository
	users      identity.UserRepository
	events     EventSink
	logger     *zap.Logger
}

// NewMessageService creates a new MessageService
func NewMessageService(
	messages messaging.MessageRepository,
	stores initiative.StoreRepository,
	inits initiative.Repository,
	users identity.UserRepository,
	events EventSink,
	logger *zap.Logger,
) *MessageService {
	return &MessageService{
		messages: messages,
		stores:   stores,
		inits:    inits,
		users:    users,
		events:   events,
		logger:   logger,
	}
}

// Create posts a message on an initiative-store and raises its notification
// event. Delivery is queued; a delivery failure never fails the request.
func (s *MessageService) Create(ctx context.Context, initiativeStoreID uuid.UUID, author shared.Actor, title, description string) (*messaging.Message, error) {
	store, err := s.stores.FindByID(ctx, initiativeStoreID)
	if err != nil {
		return nil, err
	}

	m, err := messaging.NewMessage(store.ID, author, title, description)
	if err != nil {
		return nil, err
	}
	if err := s.messages.Save(ctx, m); err != nil {
		return nil, err
	}

	event := s.buildEvent(ctx, notification.TypeMessage, m, store)
	s.events.Deliver(event)
	return m, nil
}

// Respond answers an existing message. The response inherits the parent's
// initiative-store and title, and notifies everyone but the responder's
// own role.
func (s *MessageService) Respond(ctx context.Context, parentID uuid.UUID, author shared.Actor, description string) (*messaging.Message, error) {
	parent, err := s.messages.FindByID(ctx, parentID)
	if err != nil {
		return nil, err
	}
	store, err := s.stores.FindByID(ctx, parent.InitiativeStoreID)
	if err != nil {
		return nil, err
	}

	m, err := messaging.NewResponse(parent, author, description)
	if err != nil {
		return nil, err
	}
	if err := s.messages.Save(ctx, m); err != nil {
		return nil, err
	}

	event := s.buildEvent(ctx, notification.TypeMessageReply, m, store)
	s.events.Deliver(event)
	return m, nil
}

// GetByID retrieves a message by ID
func (s *MessageService) GetByID(ctx context.Context, id uuid.UUID) (*messaging.Message, error) {
	return s.messages.FindByID(ctx, id)
}

// List returns messages with the structural total
func (s *MessageService) List(ctx context.Context, qb *query.Builder) ([]messaging.Message, int64, error) {
	messages, err := s.messages.List(ctx, qb)
	if err != nil {
		return nil, 0, err
	}
	total, err := s.messages.Count(ctx, qb)
	if err != nil {
		return nil, 0, err
	}
	return messages, total, nil
}

// buildEvent resolves the initiative-store's parties into a notification
// event. A party whose account cannot be resolved is skipped rather than
// failing the message.
func (s *MessageService) buildEvent(ctx context.Context, typ notification.Type, m *messaging.Message, store *initiative.InitiativeStore) notification.Event {
	event := notification.Event{
		Type:        typ,
		EntityID:    m.ID,
		Description: fmt.Sprintf("%s: %s", m.Title, m.Description),
		Actor:       m.Author,
	}

	init, err := s.inits.FindByID(ctx, store.InitiativeID)
	if err != nil {
		s.logger.Warn("initiative lookup failed for notification",
			zap.String("initiative_store_id", store.ID.String()),
			zap.Error(err),
		)
		return event
	}

	event.ClientUserID, event.ClientSocketID = s.resolveParty(ctx, &init.ClientID)
	event.AgencyUserID, event.AgencySocketID = s.resolveParty(ctx, init.AgencyID)
	event.PromoterUserID, event.PromoterSocketID = s.resolveParty(ctx, store.PromoterID)
	event.SupervisorUserID, event.SupervisorSocketID = s.resolveParty(ctx, store.SupervisorID)
	return event
}

func (s *MessageService) resolveParty(ctx context.Context, entityID *uuid.UUID) (userID, socketID string) {
	if entityID == nil || *entityID == uuid.Nil {
		return "", ""
	}
	user, err := s.users.FindByEntityID(ctx, *entityID)
	if err != nil {
		return "", ""
	}
	return user.ID.String(), user.SocketID
}
