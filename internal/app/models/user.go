package models

import (
	"time"
)

// User defines the user model based on the 'users' table.
// HostelID, MentorID and RoomNumber are nullable: the admin does not live in
// a hostel, wardens may be temporarily unassigned and only students carry a
// mentor and a room.
type User struct {
	ID         int64     `json:"id" db:"id" example:"1"`                             // Unique identifier for the user
	Email      string    `json:"email" db:"email" example:"user@univoice.edu"`       // User's email address
	Password   string    `json:"-" db:"password"`                                    // User's hashed password (excluded from JSON)
	Name       string    `json:"name" db:"name" example:"Riya Sharma"`               // User's full name
	RoleType   RoleType  `json:"roleType" db:"role_type" example:"STUDENT"`          // User's role (ADMIN, STUDENT, WARDEN or MENTOR)
	HostelID   *int64    `json:"hostelId,omitempty" db:"hostel_id" example:"1"`      // Assigned hostel (nullable)
	MentorID   *int64    `json:"mentorId,omitempty" db:"mentor_id" example:"4"`      // Assigned mentor, students only (nullable)
	RoomNumber *string   `json:"roomNumber,omitempty" db:"room_number" example:"101"` // Room number, students only (nullable)
	CreatedAt  time.Time `json:"createdAt" db:"created_at"`                          // Timestamp when the user was created
}

// UserUpdate carries a shallow-merge update for a user. Nil fields are left
// untouched. A HostelID or MentorID of zero clears the assignment.
type UserUpdate struct {
	Name       *string
	Email      *string
	HostelID   *int64
	MentorID   *int64
	RoomNumber *string
}

// IsEmpty reports whether the update carries no fields at all.
func (u *UserUpdate) IsEmpty() bool {
	return u == nil || (u.Name == nil && u.Email == nil && u.HostelID == nil && u.MentorID == nil && u.RoomNumber == nil)
}
