package models

import (
	"time"

	"github.com/jackc/pgx/v5/pgtype"
)

// Channels is an ordered set of distribution channel tags.
type Channels []string

// Scan reads a PostgreSQL TEXT[] column.
func (c *Channels) Scan(src any) error {
	if src == nil {
		*c = nil
		return nil
	}
	var tags []string
	if err := pgtype.NewMap().SQLScanner(&tags).Scan(src); err != nil {
		return err
	}
	*c = tags
	return nil
}

// Profile is the marketing profile of a user. One per user.
type Profile struct {
	ID            string    `json:"id" db:"id"`                        // Generated identifier
	UserID        string    `json:"userId" db:"user_id"`               // Owning user, unique
	Email         string    `json:"email" db:"email"`                  // Email captured at onboarding
	Name          *string   `json:"name,omitempty" db:"name"`          // Optional display name
	BusinessType  string    `json:"businessType" db:"business_type"`   // Business category
	TargetPersona string    `json:"targetPersona" db:"target_persona"` // Target audience description
	Channels      Channels  `json:"channels" db:"channels"`            // Distribution channels
	CreatedAt     time.Time `json:"createdAt" db:"created_at"`
	UpdatedAt     time.Time `json:"updatedAt" db:"updated_at"`
}

// ProfileFields are the replaceable fields of a profile, all required on upsert
// except Name.
type ProfileFields struct {
	Name          *string
	BusinessType  string
	TargetPersona string
	Channels      []string
}

// ProfileUpdate is a partial profile change. Nil fields keep their stored value.
type ProfileUpdate struct {
	Name          *string
	BusinessType  *string
	TargetPersona *string
	Channels      []string
}

// IsEmpty reports whether the update carries no field at all.
func (u ProfileUpdate) IsEmpty() bool {
	return u.Name == nil && u.BusinessType == nil && u.TargetPersona == nil && u.Channels == nil
}
