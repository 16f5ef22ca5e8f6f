package notification

import (
	"testing"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/whizdome/promorama-backend/internal/domain/shared"
)

func messageEvent(actor shared.Actor) *Event {
	return &Event{
		Type:               TypeMessage,
		EntityID:           uuid.New(),
		Description:        "Low stock at shelf 4",
		Actor:              actor,
		ClientUserID:       "client-1",
		ClientSocketID:     "sock-client",
		AgencyUserID:       "agency-1",
		PromoterUserID:     "promoter-1",
		PromoterSocketID:   "sock-promoter",
		SupervisorUserID:   "supervisor-1",
		SupervisorSocketID: "sock-supervisor",
	}
}

func recipientIDs(rs []Recipient) []string {
	ids := make([]string, len(rs))
	for i, r := range rs {
		ids[i] = r.UserID
	}
	return ids
}

func TestEventRecipients_MessageFromPromoter(t *testing.T) {
	e := messageEvent(shared.Actor{Kind: shared.ActorPromoter, ID: uuid.New()})

	rs := e.Recipients()

	// Admin broadcast, client, agency, and the supervisor (not the acting
	// promoter).
	assert.Equal(t, []string{RecipientAdmin, "client-1", "agency-1", "supervisor-1"}, recipientIDs(rs))
	assert.True(t, rs[0].Broadcast)
	assert.Equal(t, "sock-supervisor", rs[3].SocketID)
}

func TestEventRecipients_MessageFromSupervisor(t *testing.T) {
	e := messageEvent(shared.Actor{Kind: shared.ActorSupervisor, ID: uuid.New()})

	rs := e.Recipients()

	assert.Equal(t, []string{RecipientAdmin, "client-1", "agency-1", "promoter-1"}, recipientIDs(rs))
}

func TestEventRecipients_ReplyExcludesActorRole(t *testing.T) {
	e := messageEvent(shared.Actor{Kind: shared.ActorClient, ID: uuid.New()})
	e.Type = TypeMessageReply

	rs := e.Recipients()

	// The client authored the reply, so the client role drops out.
	assert.NotContains(t, recipientIDs(rs), "client-1")
	assert.Contains(t, recipientIDs(rs), "agency-1")
	assert.Contains(t, recipientIDs(rs), "supervisor-1")
}

func TestEventRecipients_MissingRolesSkipped(t *testing.T) {
	e := messageEvent(shared.Actor{Kind: shared.ActorPromoter, ID: uuid.New()})
	e.ClientUserID = ""
	e.AgencyUserID = ""
	e.SupervisorUserID = ""

	rs := e.Recipients()

	assert.Equal(t, []string{RecipientAdmin}, recipientIDs(rs))
}

func TestEventRecipients_TargetedEventDeduplicates(t *testing.T) {
	e := &Event{
		Type:          TypeTask,
		EntityID:      uuid.New(),
		Description:   "New task assigned",
		TargetUserIDs: []string{"emp-1", "emp-2", "emp-1", ""},
	}

	rs := e.Recipients()

	assert.Equal(t, []string{"emp-1", "emp-2"}, recipientIDs(rs))
}
