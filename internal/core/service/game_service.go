package service

import (
	"context"
	"fmt"
	"math/rand"
	"time"

	"github.com/rs/zerolog"

	"github.com/skyrise-games/airport-tycoon/internal/core/domain"
	"github.com/skyrise-games/airport-tycoon/internal/core/ports"
)

const (
	defaultSpotCount = 5
	mapSize          = 1000
)

// GameService bootstraps a user's game state: one profile, one airport.
type GameService struct {
	users    ports.UserRepository
	profiles ports.ProfileRepository
	airports ports.AirportRepository
	uow      ports.UnitOfWork
	log      zerolog.Logger

	randInt func(n int) int
}

func NewGameService(users ports.UserRepository, profiles ports.ProfileRepository, airports ports.AirportRepository, uow ports.UnitOfWork, log zerolog.Logger) *GameService {
	return &GameService{
		users:    users,
		profiles: profiles,
		airports: airports,
		uow:      uow,
		log:      log,
		randInt:  rand.Intn,
	}
}

// Initialize creates the GameProfile and default airport for a user. The
// airport composition mirrors what every player starts with: one small
// runway, five standard spots and a level-1 terminal.
func (s *GameService) Initialize(ctx context.Context, userID string) (*ports.InitializeResult, error) {
	user, err := s.users.FindByID(ctx, userID)
	if err != nil {
		return nil, err
	}
	if user.GameProfileID != "" {
		return nil, domain.ErrProfileExists
	}

	now := time.Now().UTC()
	profile := &domain.GameProfile{
		UserID:    userID,
		Balance:   domain.StartingBalance,
		Level:     1,
		LastLogin: now,
		CreatedAt: now,
		UpdatedAt: now,
	}

	spots := make([]domain.ParkingSpot, defaultSpotCount)
	for i := range spots {
		spots[i] = domain.ParkingSpot{Type: domain.SpotStandard, Fee: domain.SpotFee(domain.SpotStandard)}
	}

	airport := &domain.Airport{
		OwnerID: userID,
		Name:    fmt.Sprintf("%s's Airport", user.Username),
		Level:   1,
		Runways: []domain.Runway{
			{Type: "small", Length: domain.RunwayLength("small")},
		},
		ParkingSpots: spots,
		Facilities: []domain.Facility{
			{Type: domain.FacilityTerminal, Level: 1, Capacity: domain.FacilityBaseCapacity(domain.FacilityTerminal)},
		},
		Location:  domain.Location{X: s.randInt(mapSize), Y: s.randInt(mapSize)},
		CreatedAt: now,
		UpdatedAt: now,
	}

	var result ports.InitializeResult
	err = s.uow.Execute(ctx, func(ctx context.Context) error {
		created, err := s.profiles.Create(ctx, profile)
		if err != nil {
			return fmt.Errorf("create profile: %w", err)
		}
		if err := s.users.SetGameProfile(ctx, userID, created.ID); err != nil {
			return fmt.Errorf("link profile: %w", err)
		}
		createdAirport, err := s.airports.Create(ctx, airport)
		if err != nil {
			return fmt.Errorf("create airport: %w", err)
		}
		result = ports.InitializeResult{Profile: created, Airport: createdAirport}
		return nil
	})
	if err != nil {
		return nil, err
	}

	s.log.Info().Str("user_id", userID).Str("airport_id", result.Airport.ID).Msg("game profile initialised")
	return &result, nil
}
