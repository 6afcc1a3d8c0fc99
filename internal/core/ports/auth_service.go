package ports

import (
	"context"

	"github.com/skyrise-games/airport-tycoon/internal/core/domain"
)

// AuthService implements account registration and login.
type AuthService interface {
	// Register creates a new player account. It fails with
	// domain.ErrRegistrationClosed when the allowRegistration setting is off.
	Register(ctx context.Context, username, password, email string) (*domain.User, error)
	// Login verifies credentials and returns a signed bearer token. Banned
	// accounts are rejected with domain.ErrAccountBanned.
	Login(ctx context.Context, username, password string) (string, *domain.User, error)
}
