package dto

import (
	"github.com/univoice/backend/internal/app/models"
)

// FileComplaintRequest defines the payload a student submits to file a
// complaint. The author and hostel come from the authenticated actor, never
// from the payload.
type FileComplaintRequest struct {
	Heading     string `json:"heading" binding:"required" example:"Fan broken"`
	Description string `json:"description" binding:"required" example:"Ceiling fan in room 101 stopped working"`
	Category    string `json:"category" binding:"required" example:"ELECTRIC"`
}

// UpdateStatusRequest defines the warden's status transition payload. The
// comment is optional and replaces the previous warden comment when present.
type UpdateStatusRequest struct {
	Status  string  `json:"status" binding:"required" example:"IN_PROGRESS"`
	Comment *string `json:"comment,omitempty" example:"Electrician scheduled for Monday"`
}

// TriageRequest defines the mentor's escalation payload. Both fields are
// optional; absent fields are left untouched.
type TriageRequest struct {
	IsUrgent *bool   `json:"isUrgent,omitempty"`
	Comment  *string `json:"comment,omitempty" example:"Student has follow-up exams, please prioritise"`
}

// ComplaintQueue groups a warden's visible complaints into dashboard
// buckets. Within each bucket complaints are newest first.
type ComplaintQueue struct {
	Urgent     []*models.Complaint `json:"urgent"`     // escalated by a mentor, still open
	Pending    []*models.Complaint `json:"pending"`    // open, not escalated, not started
	InProgress []*models.Complaint `json:"inProgress"` // open, not escalated, being worked
	Completed  []*models.Complaint `json:"completed"`  // resolved or rejected
	Archived   []*models.Complaint `json:"archived"`   // flagged by moderation, awaiting admin review
}

// ComplaintCounts carries per-status complaint totals for one hostel.
type ComplaintCounts struct {
	HostelID int64                            `json:"hostelId"`
	Counts   map[models.ComplaintStatus]int64 `json:"counts"`
}
