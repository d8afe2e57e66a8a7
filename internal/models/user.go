package models

import (
	"time"

	"github.com/google/uuid"
)

// User represents a reader account in the system
type User struct {
	ID                 uuid.UUID `json:"id" db:"id"`
	Name               string    `json:"name" db:"name"`
	Email              string    `json:"email" db:"email"` // stored lowercase
	PasswordHash       string    `json:"-" db:"password_hash"` // Hidden from JSON responses
	SoftwareBackground string    `json:"softwareBackground" db:"software_background"`
	HardwareBackground string    `json:"hardwareBackground" db:"hardware_background"`
	Experience         string    `json:"experience" db:"experience"`
	Interests          []string  `json:"interests" db:"interests"`
	BonusPointsEarned  int       `json:"bonusPointsEarned" db:"bonus_points_earned"`
	JoinedAt           time.Time `json:"joinedAt" db:"joined_at"`
}
