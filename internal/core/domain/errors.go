package domain

import "errors"

// Sentinel errors shared across services. The HTTP layer maps each of these
// to a deterministic status code in internal/api.
var (
	// Identity / auth.
	ErrUserNotFound       = errors.New("user not found")
	ErrUserExists         = errors.New("user already exists")
	ErrInvalidCredentials = errors.New("invalid credentials")
	ErrRegistrationClosed = errors.New("registration is currently disabled")
	ErrAccountBanned      = errors.New("account is banned")
	ErrForbidden          = errors.New("access forbidden")

	// Game entities.
	ErrProfileNotFound  = errors.New("game profile not found")
	ErrProfileExists    = errors.New("game profile already exists")
	ErrAirportNotFound  = errors.New("airport not found")
	ErrAircraftNotFound = errors.New("aircraft not found")
	ErrSettingNotFound  = errors.New("setting not found")

	// Economy rules.
	ErrInvalidModel       = errors.New("invalid aircraft model")
	ErrInvalidState       = errors.New("operation not allowed in current aircraft state")
	ErrInsufficientFunds  = errors.New("insufficient funds")
	ErrInvalidInput       = errors.New("invalid input")
	ErrInvalidUpgradeType = errors.New("invalid upgrade type")
	ErrMaxLevel           = errors.New("facility already at maximum level")
	ErrNoAvailableSpot    = errors.New("no available parking spot of requested type")

	// ErrSpotConflict signals a lost allocation race: another request occupied
	// the spot (or holds the airport lease) between our read and our write.
	ErrSpotConflict = errors.New("parking spot allocation conflict")

	// ErrStoreUnavailable wraps persistence failures caused by the document
	// store being unreachable or timing out.
	ErrStoreUnavailable = errors.New("entity store unavailable")
)
