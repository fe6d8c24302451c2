package models

import (
	"time"
)

// ComplaintStatus defines the lifecycle state of a complaint
type ComplaintStatus string

const (
	StatusPending    ComplaintStatus = "PENDING"
	StatusInProgress ComplaintStatus = "IN_PROGRESS"
	StatusResolved   ComplaintStatus = "RESOLVED"
	StatusRejected   ComplaintStatus = "REJECTED"
	StatusFlagged    ComplaintStatus = "FLAGGED"
)

// IsValid reports whether the status is one of the known states.
func (s ComplaintStatus) IsValid() bool {
	switch s {
	case StatusPending, StatusInProgress, StatusResolved, StatusRejected, StatusFlagged:
		return true
	}
	return false
}

// IsTerminal reports whether the status admits no further warden transitions.
// RESOLVED and REJECTED close the complaint; FLAGGED complaints are reachable
// only at creation and stay parked for admin review.
func (s ComplaintStatus) IsTerminal() bool {
	return s == StatusResolved || s == StatusRejected || s == StatusFlagged
}

// CanTransitionTo reports whether a warden may move a complaint from s to
// target. Any non-terminal state may move to any of the three operational
// targets; there is no ordering constraint (PENDING may go straight to
// RESOLVED, IN_PROGRESS may fall back to PENDING). FLAGGED is never a valid
// target.
func (s ComplaintStatus) CanTransitionTo(target ComplaintStatus) bool {
	if s.IsTerminal() {
		return false
	}
	switch target {
	case StatusPending, StatusInProgress, StatusResolved, StatusRejected:
		return true
	}
	return false
}

// Complaint defines the complaint model based on the 'complaints' table.
// HostelID is snapshotted from the filing student's hostel at creation time
// and never re-derived; reassigning the student later does not move their old
// complaints between warden queues.
type Complaint struct {
	ID            int64           `json:"id" example:"1"`
	Heading       string          `json:"heading" example:"Fan broken"`
	Description   string          `json:"description" example:"Ceiling fan in room 101 stopped working"`
	Category      Category        `json:"category" example:"ELECTRIC"`
	Status        ComplaintStatus `json:"status" example:"PENDING"`
	IsUrgent      bool            `json:"isUrgent"`                  // Escalation flag, set by the student's mentor
	IsAbusive     bool            `json:"isAbusive"`                 // Moderation verdict, fixed at creation
	MentorComment *string         `json:"mentorComment,omitempty"`   // Mentor annotation (nullable)
	WardenComment *string         `json:"wardenComment,omitempty"`   // Warden annotation (nullable)
	CreatedAt     time.Time       `json:"createdAt"`
	ResolvedAt    *time.Time      `json:"resolvedAt,omitempty"` // Set on transition to RESOLVED, cleared otherwise
	UserID        int64           `json:"userId" example:"2"`   // Filing student
	HostelID      int64           `json:"hostelId" example:"1"` // Hostel snapshot at creation
}

// ComplaintUpdate carries a shallow-merge update for a complaint. Nil fields
// are left untouched. ClearResolvedAt nulls resolved_at and wins over a nil
// ResolvedAt; the two are never both set.
type ComplaintUpdate struct {
	Status          *ComplaintStatus
	IsUrgent        *bool
	MentorComment   *string
	WardenComment   *string
	ResolvedAt      *time.Time
	ClearResolvedAt bool
}

// IsEmpty reports whether the update carries no fields at all.
func (u *ComplaintUpdate) IsEmpty() bool {
	return u == nil || (u.Status == nil && u.IsUrgent == nil && u.MentorComment == nil &&
		u.WardenComment == nil && u.ResolvedAt == nil && !u.ClearResolvedAt)
}
