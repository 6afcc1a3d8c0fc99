package service

import (
	"context"

	"github.com/rs/zerolog"

	"github.com/skyrise-games/airport-tycoon/internal/core/ports"
)

const (
	recentTransactionLimit = 10
	leaderboardLimit       = 10
)

// DashboardService assembles read-only projections: the player dashboard and
// the global leaderboards. It holds no invariants of its own beyond correct
// aggregation and never mutates state.
type DashboardService struct {
	users        ports.UserRepository
	profiles     ports.ProfileRepository
	airports     ports.AirportRepository
	aircraft     ports.AircraftRepository
	transactions ports.TransactionRepository
	log          zerolog.Logger
}

func NewDashboardService(
	users ports.UserRepository,
	profiles ports.ProfileRepository,
	airports ports.AirportRepository,
	aircraft ports.AircraftRepository,
	transactions ports.TransactionRepository,
	log zerolog.Logger,
) *DashboardService {
	return &DashboardService{
		users:        users,
		profiles:     profiles,
		airports:     airports,
		aircraft:     aircraft,
		transactions: transactions,
		log:          log,
	}
}

// Dashboard returns the user's profile, holdings, and ten most recent
// transactions with counterpart usernames resolved.
func (s *DashboardService) Dashboard(ctx context.Context, userID string) (*ports.Dashboard, error) {
	profile, err := s.profiles.FindByUser(ctx, userID)
	if err != nil {
		return nil, err
	}

	airports, err := s.airports.FindByOwner(ctx, userID)
	if err != nil {
		return nil, err
	}
	aircraft, err := s.aircraft.FindByOwner(ctx, userID)
	if err != nil {
		return nil, err
	}
	recent, err := s.transactions.FindRecentByUser(ctx, userID, recentTransactionLimit)
	if err != nil {
		return nil, err
	}

	ids := make([]string, 0, len(recent)*2)
	for _, tx := range recent {
		if tx.FromUserID != "" {
			ids = append(ids, tx.FromUserID)
		}
		if tx.ToUserID != "" {
			ids = append(ids, tx.ToUserID)
		}
	}
	names, err := s.users.UsernamesByIDs(ctx, ids)
	if err != nil {
		return nil, err
	}

	views := make([]ports.TransactionView, 0, len(recent))
	for _, tx := range recent {
		views = append(views, ports.TransactionView{
			Transaction: tx,
			FromName:    names[tx.FromUserID],
			ToName:      names[tx.ToUserID],
		})
	}

	return &ports.Dashboard{
		Profile:      profile,
		Airports:     airports,
		Aircraft:     aircraft,
		Transactions: views,
	}, nil
}

// Leaderboard computes the three top-10 rankings: wealth, airports, fleets.
func (s *DashboardService) Leaderboard(ctx context.Context) (*ports.Leaderboard, error) {
	topProfiles, err := s.profiles.TopByBalance(ctx, leaderboardLimit)
	if err != nil {
		return nil, err
	}
	topAirports, err := s.airports.TopByLevelIncome(ctx, leaderboardLimit)
	if err != nil {
		return nil, err
	}
	fleetCounts, err := s.aircraft.CountByOwner(ctx, leaderboardLimit)
	if err != nil {
		return nil, err
	}

	ids := make([]string, 0, len(topProfiles)+len(topAirports)+len(fleetCounts))
	for _, p := range topProfiles {
		ids = append(ids, p.UserID)
	}
	for _, a := range topAirports {
		ids = append(ids, a.OwnerID)
	}
	for _, f := range fleetCounts {
		ids = append(ids, f.OwnerID)
	}
	names, err := s.users.UsernamesByIDs(ctx, ids)
	if err != nil {
		return nil, err
	}

	board := &ports.Leaderboard{
		Wealth:   make([]ports.WealthRank, 0, len(topProfiles)),
		Airports: make([]ports.AirportRank, 0, len(topAirports)),
		Fleets:   make([]ports.FleetRank, 0, len(fleetCounts)),
	}
	for _, p := range topProfiles {
		board.Wealth = append(board.Wealth, ports.WealthRank{
			Username: names[p.UserID],
			Balance:  p.Balance,
			Level:    p.Level,
		})
	}
	for _, a := range topAirports {
		board.Airports = append(board.Airports, ports.AirportRank{
			AirportName: a.Name,
			OwnerName:   names[a.OwnerID],
			Level:       a.Level,
			Income:      a.Statistics.TotalIncome,
		})
	}
	for _, f := range fleetCounts {
		board.Fleets = append(board.Fleets, ports.FleetRank{
			Username:      names[f.OwnerID],
			AircraftCount: f.Count,
		})
	}
	return board, nil
}
