package notification

import (
	"github.com/google/uuid"
	"github.com/whizdome/promorama-backend/internal/domain/shared"
)

// Recipient is one target of a fan-out, computed fresh per event.
// SocketID is empty when the user has no live connection. Broadcast marks
// the admin channel, which emits to every connected socket instead of one.
type Recipient struct {
	UserID       string
	SocketID     string
	Broadcast    bool
	SuppressPush bool
}

// Event describes a domain occurrence the fan-out turns into notifications.
// The triggering service resolves the initiative-store context (who the
// client, agency and field staff are, and their live socket ids) before
// handing the event over, so recipient computation needs no further lookups.
type Event struct {
	Type        Type
	EntityID    uuid.UUID
	Description string
	Actor       shared.Actor

	// Context resolved from the initiative-store the event happened on.
	ClientUserID       string
	ClientSocketID     string
	AgencyUserID       string
	AgencySocketID     string
	PromoterUserID     string
	PromoterSocketID   string
	SupervisorUserID   string
	SupervisorSocketID string

	// Direct targets for events that address specific users (task
	// assignment, device-change grant) rather than initiative roles.
	TargetUserIDs []string
}

// Recipients computes the deduplicated recipient set for the event.
//
// A new message notifies the admin broadcast channel, the initiative's
// client and agency when present, and whichever of promoter/supervisor did
// not write it. A reply uses the same set minus the actor's own role, so
// nobody is notified about their own response. Task and device-change
// events address their explicit targets.
func (e *Event) Recipients() []Recipient {
	switch e.Type {
	case TypeMessage, TypeMessageReply:
		return e.messageRecipients()
	default:
		out := make([]Recipient, 0, len(e.TargetUserIDs))
		seen := make(map[string]bool, len(e.TargetUserIDs))
		for _, id := range e.TargetUserIDs {
			if id == "" || seen[id] {
				continue
			}
			seen[id] = true
			out = append(out, Recipient{UserID: id})
		}
		return out
	}
}

func (e *Event) messageRecipients() []Recipient {
	out := []Recipient{{UserID: RecipientAdmin, Broadcast: true}}
	seen := map[string]bool{}

	add := func(userID, socketID string, kind shared.ActorKind) {
		if userID == "" || seen[userID] {
			return
		}
		if e.Actor.Is(kind) {
			return
		}
		seen[userID] = true
		out = append(out, Recipient{UserID: userID, SocketID: socketID})
	}

	add(e.ClientUserID, e.ClientSocketID, shared.ActorClient)
	add(e.AgencyUserID, e.AgencySocketID, shared.ActorAgency)

	// Exactly one of promoter/supervisor: the one who is not the actor.
	switch {
	case e.Actor.Is(shared.ActorPromoter):
		add(e.SupervisorUserID, e.SupervisorSocketID, shared.ActorSupervisor)
	case e.Actor.Is(shared.ActorSupervisor):
		add(e.PromoterUserID, e.PromoterSocketID, shared.ActorPromoter)
	default:
		if e.SupervisorUserID != "" {
			add(e.SupervisorUserID, e.SupervisorSocketID, shared.ActorSupervisor)
		} else {
			add(e.PromoterUserID, e.PromoterSocketID, shared.ActorPromoter)
		}
	}

	return out
}
