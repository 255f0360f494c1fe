package models

import "time"

// Credit transaction sources
const (
	SourceGeneration = "generation"
	SourceAdmin      = "admin"
	SourcePurchase   = "purchase"
	SourceGrant      = "grant"
)

// CreditTransaction is one immutable ledger entry.
// Positive amounts grant credits, negative amounts consume them.
type CreditTransaction struct {
	ID        string    `json:"id" db:"id"`
	UserID    string    `json:"userId" db:"user_id"`
	Amount    int64     `json:"amount" db:"amount"`
	Source    *string   `json:"source,omitempty" db:"source"`
	CreatedAt time.Time `json:"createdAt" db:"created_at"`
}
