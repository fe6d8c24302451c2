package models

// Hostel represents a residential hostel
type Hostel struct {
	ID         int64  `json:"id" example:"1"`
	Name       string `json:"name" example:"Kings Palace-1"`
	Gender     Gender `json:"gender" example:"BOYS"`
	TotalRooms int    `json:"totalRooms" example:"50"` // Room capacity, informational only
}
