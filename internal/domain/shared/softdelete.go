package shared

import "time"

// DeletionState describes where a soft-deletable record sits in its lifecycle.
type DeletionState string

const (
	// DeletionStateActive means the record is visible.
	DeletionStateActive DeletionState = "active"
	// DeletionStateDeleted means the record was deleted directly by a user.
	DeletionStateDeleted DeletionState = "deleted"
	// DeletionStateBulkDeleted means the record was deleted as a consequence
	// of an ancestor's cascade and is eligible for cascade restore.
	DeletionStateBulkDeleted DeletionState = "bulk_deleted"
)

// SoftDeletable provides the reversible soft-delete fields shared by Client,
// Initiative, InitiativeStore and Subuser. IsBulkDeleted is true only when
// the record was deleted by an ancestor's cascade; a record a user deleted
// directly keeps IsBulkDeleted=false so a later cascade restore of the
// ancestor never resurrects it.
type SoftDeletable struct {
	IsDeleted     bool       `gorm:"not null;default:false;index" json:"isDeleted"`
	DeletedAt     *time.Time `json:"deletedAt,omitempty"`
	IsBulkDeleted bool       `gorm:"not null;default:false" json:"isBulkDeleted"`
}

// DeletionState reports the current lifecycle state.
func (s *SoftDeletable) DeletionState() DeletionState {
	switch {
	case !s.IsDeleted:
		return DeletionStateActive
	case s.IsBulkDeleted:
		return DeletionStateBulkDeleted
	default:
		return DeletionStateDeleted
	}
}

// SoftDelete marks the record directly deleted. Deleting an already-deleted
// record is a no-op so a direct delete never downgrades a bulk marker.
func (s *SoftDeletable) SoftDelete() {
	if s.IsDeleted {
		return
	}
	now := time.Now()
	s.IsDeleted = true
	s.DeletedAt = &now
	s.IsBulkDeleted = false
}

// CascadeDelete marks the record deleted as part of an ancestor cascade.
// Records already deleted keep their prior marker untouched.
func (s *SoftDeletable) CascadeDelete() {
	if s.IsDeleted {
		return
	}
	now := time.Now()
	s.IsDeleted = true
	s.DeletedAt = &now
	s.IsBulkDeleted = true
}

// Restore returns the record to the active state. Restoring an active
// record is a state-wise no-op.
func (s *SoftDeletable) Restore() {
	s.IsDeleted = false
	s.DeletedAt = nil
	s.IsBulkDeleted = false
}

// CascadeRestore restores the record only when it was bulk-deleted.
// Directly deleted records stay deleted. Returns whether a restore happened.
func (s *SoftDeletable) CascadeRestore() bool {
	if !s.IsDeleted || !s.IsBulkDeleted {
		return false
	}
	s.Restore()
	return true
}
