package models

// Ledger event types
const (
	EventCreditApplied    = "credit_applied"
	EventContentGenerated = "content_generated"
)

// LedgerEvent is published to Kafka after a credit transaction is applied or a
// content item is generated.
type LedgerEvent struct {
	EventID   string `json:"event_id"`             // Unique event identifier
	Type      string `json:"type"`                 // One of the Event* constants
	UserID    string `json:"user_id"`              // Affected user
	Amount    int64  `json:"amount,omitempty"`     // Credit delta for credit events
	Balance   int64  `json:"balance,omitempty"`    // Balance after the credit event
	Source    string `json:"source,omitempty"`     // Credit source label
	ContentID string `json:"content_id,omitempty"` // Generated content id
	Timestamp int64  `json:"timestamp"`            // Unix seconds
}
