package ports

import (
	"context"

	"github.com/skyrise-games/airport-tycoon/internal/core/domain"
)

// InitializeResult is returned by game initialisation.
type InitializeResult struct {
	Profile *domain.GameProfile
	Airport *domain.Airport
}

// GameService bootstraps a user's game state.
type GameService interface {
	// Initialize creates the GameProfile and default airport for a user.
	// Fails with domain.ErrProfileExists when called twice.
	Initialize(ctx context.Context, userID string) (*InitializeResult, error)
}
