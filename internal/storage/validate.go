package storage

import (
	"fmt"
	"strings"

	"github.com/sbilibin2017/gw-content-studio/internal/models"
)

// ValidateUser checks that an identity carries both an id and an email.
func ValidateUser(id, email string) error {
	if strings.TrimSpace(id) == "" {
		return fmt.Errorf("%w: user id is required", ErrValidation)
	}
	if strings.TrimSpace(email) == "" {
		return fmt.Errorf("%w: email is required", ErrValidation)
	}
	return nil
}

// ValidateNewContent checks the minimal shape of a content item and fills the
// default status.
func ValidateNewContent(c *models.NewContent) error {
	if c.UserID == "" {
		return fmt.Errorf("%w: user id is required", ErrValidation)
	}
	if !c.Type.Valid() {
		return fmt.Errorf("%w: unknown content type %q", ErrValidation, c.Type)
	}
	if strings.TrimSpace(c.Body) == "" {
		return fmt.Errorf("%w: body must not be empty", ErrValidation)
	}
	if c.Status == "" {
		c.Status = models.StatusActive
	}
	if !models.ValidStatus(c.Status) {
		return fmt.Errorf("%w: unknown status %q", ErrValidation, c.Status)
	}
	return nil
}

// ValidateStatus checks a content status change.
func ValidateStatus(status string) error {
	if !models.ValidStatus(status) {
		return fmt.Errorf("%w: unknown status %q", ErrValidation, status)
	}
	return nil
}

// ValidateProfileFields checks onboarding data and returns the fields with
// channels normalized to an ordered set.
func ValidateProfileFields(userID, email string, f models.ProfileFields) (models.ProfileFields, error) {
	if userID == "" {
		return f, fmt.Errorf("%w: user id is required", ErrValidation)
	}
	if strings.TrimSpace(email) == "" {
		return f, fmt.Errorf("%w: email is required", ErrValidation)
	}
	if strings.TrimSpace(f.BusinessType) == "" {
		return f, fmt.Errorf("%w: business type is required", ErrValidation)
	}
	if strings.TrimSpace(f.TargetPersona) == "" {
		return f, fmt.Errorf("%w: target persona is required", ErrValidation)
	}
	channels, err := NormalizeChannels(f.Channels)
	if err != nil {
		return f, err
	}
	f.Channels = channels
	return f, nil
}

// ValidateProfileUpdate checks the supplied fields of a partial update.
func ValidateProfileUpdate(u models.ProfileUpdate) (models.ProfileUpdate, error) {
	if u.BusinessType != nil && strings.TrimSpace(*u.BusinessType) == "" {
		return u, fmt.Errorf("%w: business type must not be empty", ErrValidation)
	}
	if u.TargetPersona != nil && strings.TrimSpace(*u.TargetPersona) == "" {
		return u, fmt.Errorf("%w: target persona must not be empty", ErrValidation)
	}
	if u.Channels != nil {
		channels, err := NormalizeChannels(u.Channels)
		if err != nil {
			return u, err
		}
		u.Channels = channels
	}
	return u, nil
}

// NormalizeChannels drops duplicate tags keeping the first occurrence.
// At least one non-blank tag is required.
func NormalizeChannels(channels []string) ([]string, error) {
	seen := make(map[string]struct{}, len(channels))
	out := make([]string, 0, len(channels))
	for _, ch := range channels {
		ch = strings.TrimSpace(ch)
		if ch == "" {
			return nil, fmt.Errorf("%w: channel must not be blank", ErrValidation)
		}
		if _, ok := seen[ch]; ok {
			continue
		}
		seen[ch] = struct{}{}
		out = append(out, ch)
	}
	if len(out) == 0 {
		return nil, fmt.Errorf("%w: at least one channel is required", ErrValidation)
	}
	return out, nil
}
