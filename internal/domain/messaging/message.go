package messaging

import (
	"strings"

	"github.com/google/uuid"
	"github.com/whizdome/promorama-backend/internal/domain/shared"
)

// Message is a note raised against an initiative-store, authored by any
// actor involved in the initiative. A response references its parent.
type Message struct {
	shared.BaseEntity
	InitiativeStoreID uuid.UUID    `gorm:"type:uuid;not null;index" json:"initiativeStoreId"`
	Title             string       `gorm:"type:varchar(200);not null" json:"title"`
	Description       string       `gorm:"type:text;not null" json:"description"`
	Author            shared.Actor `gorm:"embedded;embeddedPrefix:author_" json:"author"`
	ParentID          *uuid.UUID   `gorm:"type:uuid;index" json:"parentId,omitempty"`
}

// TableName returns the table name for GORM
func (Message) TableName() string {
	return "messages"
}

// NewMessage creates a top-level message on an initiative-store
func NewMessage(initiativeStoreID uuid.UUID, author shared.Actor, title, description string) (*Message, error) {
	title = strings.TrimSpace(title)
	if title == "" {
		return nil, shared.NewDomainError("INVALID_INPUT", "Message title is required")
	}
	if strings.TrimSpace(description) == "" {
		return nil, shared.NewDomainError("INVALID_INPUT", "Message description is required")
	}
	if !shared.ValidActorKind(author.Kind) {
		return nil, shared.NewDomainError("INVALID_INPUT", "Unknown author kind")
	}

	return &Message{
		BaseEntity:        shared.NewBaseEntity(),
		InitiativeStoreID: initiativeStoreID,
		Title:             title,
		Description:       description,
		Author:            author,
	}, nil
}

// NewResponse creates a response to an existing message
func NewResponse(parent *Message, author shared.Actor, description string) (*Message, error) {
	m, err := NewMessage(parent.InitiativeStoreID, author, "Re: "+parent.Title, description)
	if err != nil {
		return nil, err
	}
	m.ParentID = &parent.ID
	return m, nil
}

// IsResponse reports whether the message answers another message
func (m *Message) IsResponse() bool {
	return m.ParentID != nil
}
