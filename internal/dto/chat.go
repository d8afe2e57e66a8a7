package dto

// ChatRequest represents a question forwarded to the book's chatbot backend
type ChatRequest struct {
	Message string `json:"message" validate:"required"`
}

// GoogleUserInfo holds the profile fields read from Google's userinfo API
type GoogleUserInfo struct {
	ID       string `json:"id"`
	Email    string `json:"email"`
	Name     string `json:"name"`
	Picture  string `json:"picture"`
	Verified bool   `json:"verified_email"`
}
