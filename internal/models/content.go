package models

import "time"

// ContentType is the closed set of generated artifact categories.
type ContentType string

// Supported content categories
const (
	InstagramPost ContentType = "INSTAGRAM_POST"
	BlogArticle   ContentType = "BLOG_ARTICLE"
	FacebookAd    ContentType = "FACEBOOK_AD"
	EmailCopy     ContentType = "EMAIL_COPY"
	CTACopy       ContentType = "CTA_COPY"
)

// ContentTypes lists every supported category in display order.
var ContentTypes = []ContentType{InstagramPost, BlogArticle, FacebookAd, EmailCopy, CTACopy}

// Valid reports whether t is one of the supported categories.
func (t ContentType) Valid() bool {
	for _, ct := range ContentTypes {
		if ct == t {
			return true
		}
	}
	return false
}

// Content statuses
const (
	StatusActive   = "active"
	StatusArchived = "archived"
)

// ValidStatus reports whether s is a known content status.
func ValidStatus(s string) bool {
	return s == StatusActive || s == StatusArchived
}

// Content is one generated artifact. Immutable after creation except Status.
type Content struct {
	ID        string      `json:"id" db:"id"`
	UserID    string      `json:"userId" db:"user_id"`
	Type      ContentType `json:"type" db:"type"`
	Title     *string     `json:"title,omitempty" db:"title"`
	Body      string      `json:"body" db:"body"`
	Tone      *string     `json:"tone,omitempty" db:"tone"`
	Objective *string     `json:"objective,omitempty" db:"objective"`
	Status    string      `json:"status" db:"status"`
	CreatedAt time.Time   `json:"createdAt" db:"created_at"`
	UpdatedAt time.Time   `json:"updatedAt" db:"updated_at"`
}

// NewContent carries the caller-supplied fields of a content item.
// An empty Status means StatusActive.
type NewContent struct {
	UserID    string
	Type      ContentType
	Body      string
	Title     *string
	Tone      *string
	Objective *string
	Status    string
}
