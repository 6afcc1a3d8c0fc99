package ports

import (
	"context"
	"time"

	"github.com/skyrise-games/airport-tycoon/internal/core/domain"
)

// FacilitySummary is the abbreviated facility view shown in listings.
type FacilitySummary struct {
	Type  string
	Level int
}

// AvailableAirport annotates a foreign airport with the data a renter needs
// to choose where to park.
type AvailableAirport struct {
	ID             string
	Name           string
	OwnerName      string
	Level          int
	Location       domain.Location
	AvailableSpots int
	Facilities     []FacilitySummary
	// ParkingFees lists the advertised per-hour fee by spot type; zero when
	// the airport has no spot of that type.
	ParkingFees map[domain.SpotType]float64
}

// ParkInput carries a request to park an aircraft at a foreign airport.
type ParkInput struct {
	UserID        string
	AircraftID    string
	AirportID     string
	SpotType      domain.SpotType
	DurationHours int
}

// ParkResult reports the financial outcome of a completed parking operation.
type ParkResult struct {
	AirportName string
	SpotType    domain.SpotType
	ServiceFee  float64
	Dividend    float64
	EndTime     time.Time
	Balance     float64
}

// ParkingService owns per-airport spot inventory: allocation, fee settlement
// and occupancy expiry.
type ParkingService interface {
	ListAvailable(ctx context.Context, userID string) ([]AvailableAirport, error)
	Park(ctx context.Context, in ParkInput) (*ParkResult, error)
	// ReleaseExpired reclaims every expired spot on one airport, freeing the
	// aircraft that overstayed. Idempotent: a second run with no time passing
	// changes nothing.
	ReleaseExpired(ctx context.Context, airportID string, now time.Time) (int, error)
}
