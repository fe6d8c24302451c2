package dto

// CreateHostelRequest defines the admin's payload for creating a hostel
type CreateHostelRequest struct {
	Name       string `json:"name" binding:"required" example:"Kings Palace-1"`
	Gender     string `json:"gender" binding:"required" example:"BOYS"`
	TotalRooms int    `json:"totalRooms" binding:"required,min=1" example:"50"`
}
