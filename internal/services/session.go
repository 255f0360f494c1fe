package services

import (
	"context"

	"github.com/sbilibin2017/gw-content-studio/internal/logger"
	"github.com/sbilibin2017/gw-content-studio/internal/models"
)

// UserFinder maps an external identity to a local user.
type UserFinder interface {
	FindOrCreateUser(ctx context.Context, id, email string) (*models.User, error)
}

// SessionService opens sessions for externally authenticated users.
type SessionService struct {
	users UserFinder
}

// NewSessionService creates a new SessionService instance.
func NewSessionService(users UserFinder) *SessionService {
	return &SessionService{users: users}
}

// Start returns the local user for the verified identity, creating it on first
// sight. When the email already belongs to a user with a different id, that
// stored user is returned and the mismatch is logged.
func (svc *SessionService) Start(ctx context.Context, id, email string) (*models.User, error) {
	user, err := svc.users.FindOrCreateUser(ctx, id, email)
	if err != nil {
		logger.Log.Errorw("failed to find or create user", "user_id", id, "error", err)
		return nil, err
	}

	if user.ID != id {
		logger.Log.Warnw("identity id differs from stored user with the same email",
			"identity_id", id,
			"stored_id", user.ID,
			"email", email,
		)
	}

	return user, nil
}
