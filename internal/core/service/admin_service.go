package service

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/rs/zerolog"

	"github.com/skyrise-games/airport-tycoon/internal/core/domain"
	"github.com/skyrise-games/airport-tycoon/internal/core/ports"
)

// SettingsService manages process-wide configuration records with lazy
// default initialisation.
type SettingsService struct {
	settings ports.SettingRepository
	log      zerolog.Logger
}

func NewSettingsService(settings ports.SettingRepository, log zerolog.Logger) *SettingsService {
	return &SettingsService{settings: settings, log: log}
}

// EnsureDefaults creates any missing default settings. Called once at startup.
func (s *SettingsService) EnsureDefaults(ctx context.Context) error {
	_, err := s.settings.Find(ctx, domain.SettingAllowRegistration)
	if err == nil {
		return nil
	}
	if !errors.Is(err, domain.ErrSettingNotFound) {
		return err
	}

	setting := &domain.Setting{
		Key:         domain.SettingAllowRegistration,
		Value:       true,
		Description: "Whether new user registration is allowed",
		UpdatedAt:   time.Now().UTC(),
	}
	if err := s.settings.Upsert(ctx, setting); err != nil {
		return fmt.Errorf("initialise %s: %w", domain.SettingAllowRegistration, err)
	}
	s.log.Info().Str("key", domain.SettingAllowRegistration).Msg("system setting initialised")
	return nil
}

// RegistrationAllowed reports whether new registrations are accepted. A
// missing setting or a lookup failure both default to allowing registration,
// matching the permissive behavior of the admin toggle.
func (s *SettingsService) RegistrationAllowed(ctx context.Context) bool {
	setting, err := s.settings.Find(ctx, domain.SettingAllowRegistration)
	if err != nil {
		if !errors.Is(err, domain.ErrSettingNotFound) {
			s.log.Warn().Err(err).Msg("registration setting lookup failed, allowing")
		}
		return true
	}
	return setting.BoolValue(true)
}

func (s *SettingsService) All(ctx context.Context) ([]*domain.Setting, error) {
	return s.settings.FindAll(ctx)
}

func (s *SettingsService) Get(ctx context.Context, key string) (*domain.Setting, error) {
	return s.settings.Find(ctx, key)
}

func (s *SettingsService) Update(ctx context.Context, key string, value any) (*domain.Setting, error) {
	setting, err := s.settings.Find(ctx, key)
	if err != nil {
		return nil, err
	}
	setting.Value = value
	setting.UpdatedAt = time.Now().UTC()
	if err := s.settings.Upsert(ctx, setting); err != nil {
		return nil, err
	}
	return setting, nil
}

// UserAdminService exposes account administration for admins.
type UserAdminService struct {
	users ports.UserRepository
	log   zerolog.Logger
}

func NewUserAdminService(users ports.UserRepository, log zerolog.Logger) *UserAdminService {
	return &UserAdminService{users: users, log: log}
}

func (s *UserAdminService) List(ctx context.Context) ([]*domain.User, error) {
	return s.users.FindAll(ctx)
}

func (s *UserAdminService) Get(ctx context.Context, id string) (*domain.User, error) {
	return s.users.FindByID(ctx, id)
}

// UpdateStatus bans or unbans an account. Admin accounts cannot be banned.
func (s *UserAdminService) UpdateStatus(ctx context.Context, id, status string) (*domain.User, error) {
	if status != domain.UserStatusActive && status != domain.UserStatusBanned {
		return nil, fmt.Errorf("%w: unknown status %q", domain.ErrInvalidInput, status)
	}

	user, err := s.users.FindByID(ctx, id)
	if err != nil {
		return nil, err
	}
	if user.Role == domain.RoleAdmin && status == domain.UserStatusBanned {
		return nil, fmt.Errorf("%w: cannot ban admin users", domain.ErrForbidden)
	}

	if err := s.users.UpdateStatus(ctx, id, status); err != nil {
		return nil, err
	}
	user.Status = status

	s.log.Info().Str("user_id", id).Str("status", status).Msg("user status updated")
	return user, nil
}

func (s *UserAdminService) Delete(ctx context.Context, id string) error {
	return s.users.Delete(ctx, id)
}
