package ports

import (
	"context"
	"time"

	"github.com/skyrise-games/airport-tycoon/internal/core/domain"
)

// UserRepository persists account identities.
type UserRepository interface {
	Create(ctx context.Context, user *domain.User) (*domain.User, error)
	FindByID(ctx context.Context, id string) (*domain.User, error)
	FindByUsername(ctx context.Context, username string) (*domain.User, error)
	FindAll(ctx context.Context) ([]*domain.User, error)
	// SetGameProfile links the freshly created profile back to the user document.
	SetGameProfile(ctx context.Context, userID, profileID string) error
	UpdateStatus(ctx context.Context, userID, status string) error
	Delete(ctx context.Context, id string) error
	// UsernamesByIDs resolves display names for aggregations and ledgers.
	UsernamesByIDs(ctx context.Context, ids []string) (map[string]string, error)
}

// ProfileRepository persists per-player economic state.
type ProfileRepository interface {
	Create(ctx context.Context, profile *domain.GameProfile) (*domain.GameProfile, error)
	FindByUser(ctx context.Context, userID string) (*domain.GameProfile, error)
	// Save replaces the whole profile document.
	Save(ctx context.Context, profile *domain.GameProfile) error
	TopByBalance(ctx context.Context, limit int) ([]*domain.GameProfile, error)
}

// AirportRepository persists airports and owns the atomic spot-occupancy
// operations the allocator relies on.
type AirportRepository interface {
	Create(ctx context.Context, airport *domain.Airport) (*domain.Airport, error)
	FindByID(ctx context.Context, id string) (*domain.Airport, error)
	FindFirstByOwner(ctx context.Context, ownerID string) (*domain.Airport, error)
	FindByOwner(ctx context.Context, ownerID string) ([]*domain.Airport, error)
	FindNotOwnedBy(ctx context.Context, ownerID string) ([]*domain.Airport, error)
	// ListIDs returns every airport id, for the reclamation sweep.
	ListIDs(ctx context.Context) ([]string, error)
	Save(ctx context.Context, airport *domain.Airport) error

	// OccupySpot atomically marks one unoccupied spot of the given type as
	// taken and credits the airport's income statistics. It returns
	// domain.ErrSpotConflict when no spot of that type is free at write time,
	// which is the decisive guard against concurrent double allocation.
	OccupySpot(ctx context.Context, airportID string, spotType domain.SpotType, aircraftID string, until time.Time, serviceFee float64) error

	// ClearExpiredSpots atomically releases every spot on the airport whose
	// lease expired before now, in one document write. Re-running against
	// already-cleared spots is a no-op.
	ClearExpiredSpots(ctx context.Context, airportID string, now time.Time) error

	TopByLevelIncome(ctx context.Context, limit int) ([]*domain.Airport, error)
}

// FleetCount is one row of the aircraft-ownership ranking.
type FleetCount struct {
	OwnerID string
	Count   int
}

// AircraftRepository persists aircraft.
type AircraftRepository interface {
	Create(ctx context.Context, aircraft *domain.Aircraft) (*domain.Aircraft, error)
	// FindOwned retrieves an aircraft only when it belongs to ownerID;
	// otherwise domain.ErrAircraftNotFound.
	FindOwned(ctx context.Context, aircraftID, ownerID string) (*domain.Aircraft, error)
	FindByOwner(ctx context.Context, ownerID string) ([]*domain.Aircraft, error)
	Save(ctx context.Context, aircraft *domain.Aircraft) error
	// MarkFreeFloating parks the aircraft with no location, the state a
	// reclaimed aircraft lands in until its owner parks it somewhere again.
	MarkFreeFloating(ctx context.Context, aircraftID string) error
	// FindDueArrivals returns in-flight aircraft whose arrival time has passed.
	FindDueArrivals(ctx context.Context, now time.Time) ([]*domain.Aircraft, error)
	CountByOwner(ctx context.Context, limit int) ([]FleetCount, error)
}

// TransactionRepository is the append-only economy ledger.
type TransactionRepository interface {
	Append(ctx context.Context, tx *domain.Transaction) error
	// FindRecentByUser returns the newest transactions where the user is
	// either party, most recent first.
	FindRecentByUser(ctx context.Context, userID string, limit int) ([]*domain.Transaction, error)
}

// SettingRepository persists process-wide key/value configuration.
type SettingRepository interface {
	Find(ctx context.Context, key string) (*domain.Setting, error)
	FindAll(ctx context.Context) ([]*domain.Setting, error)
	Upsert(ctx context.Context, setting *domain.Setting) error
}
