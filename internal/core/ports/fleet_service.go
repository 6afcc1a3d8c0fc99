package ports

import (
	"context"
	"time"

	"github.com/skyrise-games/airport-tycoon/internal/core/domain"
)

// PurchaseInput carries a purchase request for a catalog model.
type PurchaseInput struct {
	UserID string
	Model  string
	// Name is optional; a default of the form "<model>-<n>" is generated
	// when empty.
	Name string
}

// PurchaseResult is returned after a successful purchase.
type PurchaseResult struct {
	Aircraft *domain.Aircraft
	Balance  float64
}

// SetRouteInput carries a route assignment for a parked aircraft.
type SetRouteInput struct {
	UserID        string
	AircraftID    string
	DestinationID string
	DepartureTime time.Time
}

// SetRouteResult is returned after a route is assigned.
type SetRouteResult struct {
	Route    *domain.Route
	Aircraft *domain.Aircraft
}

// FleetService owns the aircraft lifecycle: purchase, route assignment, and
// the arrival settlement that returns in-flight aircraft to parked.
type FleetService interface {
	Purchase(ctx context.Context, in PurchaseInput) (*PurchaseResult, error)
	SetRoute(ctx context.Context, in SetRouteInput) (*SetRouteResult, error)
	// SettleArrivals realises route income for every in-flight aircraft whose
	// arrival time has passed, returning how many flights were settled.
	// Per-aircraft failures are logged and skipped.
	SettleArrivals(ctx context.Context, now time.Time) (int, error)
}
