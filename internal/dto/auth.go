package dto

// SignupRequest represents the request payload for account creation
type SignupRequest struct {
	Name               string   `json:"name" validate:"required"`
	Email              string   `json:"email" validate:"required,email"`
	Password           string   `json:"password" validate:"required,min=6"`
	SoftwareBackground string   `json:"softwareBackground,omitempty"`
	HardwareBackground string   `json:"hardwareBackground,omitempty"`
	Experience         string   `json:"experience,omitempty"`
	Interests          []string `json:"interests,omitempty"`
}

// SigninRequest represents the request payload for email/password login
type SigninRequest struct {
	Email    string `json:"email" validate:"required,email"`
	Password string `json:"password" validate:"required"`
}

// ProfileUpdateRequest carries a partial update of the reader's learning
// profile. Absent fields (and empty strings) leave the stored value
// unchanged; a present interests array replaces the stored set entirely.
type ProfileUpdateRequest struct {
	SoftwareBackground *string   `json:"softwareBackground,omitempty"`
	HardwareBackground *string   `json:"hardwareBackground,omitempty"`
	Experience         *string   `json:"experience,omitempty"`
	Interests          *[]string `json:"interests,omitempty"`
}

// UserResponse represents user data in API responses
type UserResponse struct {
	ID                 string   `json:"id"`
	Name               string   `json:"name"`
	Email              string   `json:"email"`
	SoftwareBackground string   `json:"softwareBackground"`
	HardwareBackground string   `json:"hardwareBackground"`
	Experience         string   `json:"experience"`
	Interests          []string `json:"interests"`
	BonusPointsEarned  int      `json:"bonusPointsEarned"`
	JoinedAt           string   `json:"joinedAt"` // RFC3339
}

// AuthResponse represents the response after successful authentication
type AuthResponse struct {
	User  UserResponse `json:"user"`
	Token string       `json:"token"`
}

// MeResponse wraps the current user for GET /api/auth/me and profile updates
type MeResponse struct {
	User UserResponse `json:"user"`
}

// SignoutResponse acknowledges that the auth cookie was cleared
type SignoutResponse struct {
	Success bool `json:"success"`
}

// ErrorResponse represents an error response
type ErrorResponse struct {
	Error   string `json:"error"`
	Message string `json:"message,omitempty"`
}
