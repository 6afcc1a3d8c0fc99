package ports

import (
	"context"

	"github.com/skyrise-games/airport-tycoon/internal/core/domain"
)

// SettingsService manages process-wide configuration records.
type SettingsService interface {
	// EnsureDefaults lazily creates missing settings at process start.
	EnsureDefaults(ctx context.Context) error
	RegistrationAllowed(ctx context.Context) bool
	All(ctx context.Context) ([]*domain.Setting, error)
	Get(ctx context.Context, key string) (*domain.Setting, error)
	Update(ctx context.Context, key string, value any) (*domain.Setting, error)
}

// UserAdminService exposes account administration.
type UserAdminService interface {
	List(ctx context.Context) ([]*domain.User, error)
	Get(ctx context.Context, id string) (*domain.User, error)
	// UpdateStatus bans or unbans an account. Admin accounts cannot be banned.
	UpdateStatus(ctx context.Context, id, status string) (*domain.User, error)
	Delete(ctx context.Context, id string) error
}
