package models

import "time"

// User is the local record of an externally authenticated identity.
type User struct {
	ID        string    `json:"id" db:"id"`                // External identity (auth provider subject)
	Email     string    `json:"email" db:"email"`          // Unique email
	CreatedAt time.Time `json:"createdAt" db:"created_at"` // Creation timestamp
	UpdatedAt time.Time `json:"updatedAt" db:"updated_at"` // Last update timestamp
}
