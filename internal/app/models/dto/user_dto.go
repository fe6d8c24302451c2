package dto

import (
	"github.com/univoice/backend/internal/app/models"
)

// CreateUserRequest defines the admin's payload for creating a warden,
// mentor or student account. HostelID, MentorID and RoomNumber only apply to
// the roles that carry them.
type CreateUserRequest struct {
	Email      string  `json:"email" binding:"required,email" example:"warden1@univoice.edu"`
	Name       string  `json:"name" binding:"required" example:"Mr. Singh"`
	Password   string  `json:"password" binding:"required" example:"Warden123!"`
	RoleType   string  `json:"roleType" binding:"required" example:"WARDEN"`
	HostelID   *int64  `json:"hostelId,omitempty"`
	MentorID   *int64  `json:"mentorId,omitempty"`
	RoomNumber *string `json:"roomNumber,omitempty"`
}

// UpdateUserRequest defines the admin's shallow-merge user update. Absent
// fields are left untouched; a hostelId or mentorId of zero clears the
// assignment.
type UpdateUserRequest struct {
	Name       *string `json:"name,omitempty"`
	Email      *string `json:"email,omitempty"`
	HostelID   *int64  `json:"hostelId,omitempty"`
	MentorID   *int64  `json:"mentorId,omitempty"`
	RoomNumber *string `json:"roomNumber,omitempty"`
}

// StudentProfile is the admin's deep view of one student: the account plus
// their complaint history, flagged submissions split out.
type StudentProfile struct {
	Student *models.User        `json:"student"`
	Flagged []*models.Complaint `json:"flagged"`
	History []*models.Complaint `json:"history"`
}
