package dto

// LoginRequest defines the login payload
type LoginRequest struct {
	Email    string `json:"email" binding:"required,email" example:"student1@univoice.edu"`
	Password string `json:"password" binding:"required" example:"Student123!"`
}

// RefreshTokenRequest defines the token refresh payload
type RefreshTokenRequest struct {
	RefreshToken string `json:"refreshToken" binding:"required"`
}

// TokenResponse defines the token pair returned on login and refresh
type TokenResponse struct {
	AccessToken      string `json:"accessToken"`
	RefreshToken     string `json:"refreshToken"`
	ExpiresIn        int    `json:"expiresIn" example:"3600"`           // Access token lifetime in seconds
	RefreshExpiresIn int    `json:"refreshExpiresIn" example:"2592000"` // Refresh token lifetime in seconds
	TokenType        string `json:"tokenType" example:"Bearer"`
}

// UserProfile defines the profile payload for the authenticated user
type UserProfile struct {
	ID         int64   `json:"id"`
	Email      string  `json:"email"`
	Name       string  `json:"name"`
	RoleType   string  `json:"roleType" example:"STUDENT"`
	HostelID   *int64  `json:"hostelId,omitempty"`
	HostelName *string `json:"hostelName,omitempty"`
	MentorID   *int64  `json:"mentorId,omitempty"`
	RoomNumber *string `json:"roomNumber,omitempty"`
}
