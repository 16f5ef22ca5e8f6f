package shared

import "github.com/google/uuid"

// ActorKind tags which collection an actor reference points into.
type ActorKind string

const (
	ActorAdmin      ActorKind = "admin"
	ActorClient     ActorKind = "client"
	ActorAgency     ActorKind = "agency"
	ActorPromoter   ActorKind = "promoter"
	ActorSupervisor ActorKind = "supervisor"
	ActorSubuser    ActorKind = "subuser"
)

// Actor is a tagged reference to a user-like record. Message authorship and
// subuser main-user links are polymorphic across collections, so the kind
// travels with the id and lookups go through a single dispatcher instead of
// string-keyed model resolution.
type Actor struct {
	Kind ActorKind `gorm:"type:varchar(20);not null" json:"kind"`
	ID   uuid.UUID `gorm:"type:uuid;not null" json:"id"`
}

// Is reports whether the actor has the given kind.
func (a Actor) Is(kind ActorKind) bool {
	return a.Kind == kind
}

// IsZero reports whether the actor reference is unset.
func (a Actor) IsZero() bool {
	return a.Kind == "" && a.ID == uuid.Nil
}

// ValidActorKind reports whether the kind is one of the known actor kinds.
func ValidActorKind(kind ActorKind) bool {
	switch kind {
	case ActorAdmin, ActorClient, ActorAgency, ActorPromoter, ActorSupervisor, ActorSubuser:
		return true
	}
	return false
}
