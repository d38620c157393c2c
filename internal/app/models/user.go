package models

import (
	"time"
)

// User defines the user model based on the 'users' table
type User struct {
	ID                int64     `json:"id" db:"id"`
	Name              string    `json:"name" db:"name"`
	Email             string    `json:"email" db:"email"`
	Password          string    `json:"-" db:"password"` // bcrypt hash, excluded from JSON
	Role              Role      `json:"role" db:"role"`
	Location          string    `json:"location" db:"location"`
	PreferredDistance float64   `json:"preferredDistance" db:"preferred_distance"`
	Preferences       []string  `json:"preferences" db:"preferences"`
	CreatedAt         time.Time `json:"createdAt" db:"created_at"`
	UpdatedAt         time.Time `json:"updatedAt" db:"updated_at"`
}
