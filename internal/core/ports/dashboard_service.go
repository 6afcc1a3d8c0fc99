package ports

import (
	"context"

	"github.com/skyrise-games/airport-tycoon/internal/core/domain"
)

// TransactionView is a ledger entry with counterpart usernames resolved.
type TransactionView struct {
	Transaction *domain.Transaction
	FromName    string
	ToName      string
}

// Dashboard aggregates everything a player sees on their home screen.
type Dashboard struct {
	Profile      *domain.GameProfile
	Airports     []*domain.Airport
	Aircraft     []*domain.Aircraft
	Transactions []TransactionView
}

// WealthRank is one row of the balance leaderboard.
type WealthRank struct {
	Username string
	Balance  float64
	Level    int
}

// AirportRank is one row of the airport leaderboard.
type AirportRank struct {
	AirportName string
	OwnerName   string
	Level       int
	Income      float64
}

// FleetRank is one row of the aircraft-count leaderboard.
type FleetRank struct {
	Username      string
	AircraftCount int
}

// Leaderboard bundles the three top-10 rankings.
type Leaderboard struct {
	Wealth   []WealthRank
	Airports []AirportRank
	Fleets   []FleetRank
}

// DashboardService produces read-only projections over game state. It never
// mutates anything.
type DashboardService interface {
	Dashboard(ctx context.Context, userID string) (*Dashboard, error)
	Leaderboard(ctx context.Context) (*Leaderboard, error)
}
