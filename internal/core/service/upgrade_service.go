package service

import (
	"context"
	"fmt"
	"time"

	"github.com/rs/zerolog"

	"github.com/skyrise-games/airport-tycoon/internal/api/metrics"
	"github.com/skyrise-games/airport-tycoon/internal/core/domain"
	"github.com/skyrise-games/airport-tycoon/internal/core/ports"
)

// Upgrade cost schedule.
const (
	runwayCost          = 5000
	parkingSpotCost     = 1000
	newFacilityCost     = 3000
	facilityCostPerLvl  = 2000
	airportLevelPerCost = 10000
	facilityGrowth      = 1.5
)

// UpgradeService owns per-airport capital improvement rules.
type UpgradeService struct {
	profiles     ports.ProfileRepository
	airports     ports.AirportRepository
	transactions ports.TransactionRepository
	uow          ports.UnitOfWork
	log          zerolog.Logger
}

func NewUpgradeService(
	profiles ports.ProfileRepository,
	airports ports.AirportRepository,
	transactions ports.TransactionRepository,
	uow ports.UnitOfWork,
	log zerolog.Logger,
) *UpgradeService {
	return &UpgradeService{
		profiles:     profiles,
		airports:     airports,
		transactions: transactions,
		uow:          uow,
		log:          log,
	}
}

// Upgrade applies one capital improvement to an airport the user owns. The
// cost is computed from pre-upgrade state; the funds check happens after the
// cost is known, and nothing persists unless the whole operation commits.
func (s *UpgradeService) Upgrade(ctx context.Context, in ports.UpgradeInput) (*ports.UpgradeResult, error) {
	airport, err := s.airports.FindByID(ctx, in.AirportID)
	if err != nil {
		return nil, err
	}
	if airport.OwnerID != in.UserID {
		return nil, domain.ErrAirportNotFound
	}

	profile, err := s.profiles.FindByUser(ctx, in.UserID)
	if err != nil {
		return nil, err
	}

	cost, description, err := applyUpgrade(airport, in.Type, in.SubType)
	if err != nil {
		return nil, err
	}

	if !profile.CanAfford(cost) {
		return nil, domain.ErrInsufficientFunds
	}

	now := time.Now().UTC()
	profile.Balance -= cost
	profile.UpdatedAt = now
	airport.UpdatedAt = now

	err = s.uow.Execute(ctx, func(ctx context.Context) error {
		if err := s.profiles.Save(ctx, profile); err != nil {
			return fmt.Errorf("debit owner: %w", err)
		}
		if err := s.airports.Save(ctx, airport); err != nil {
			return fmt.Errorf("save airport: %w", err)
		}
		tx := &domain.Transaction{
			Type:        domain.TxUpgrade,
			FromUserID:  in.UserID,
			Amount:      cost,
			AirportID:   airport.ID,
			Description: description,
			CreatedAt:   now,
		}
		if err := s.transactions.Append(ctx, tx); err != nil {
			return fmt.Errorf("record upgrade: %w", err)
		}
		return nil
	})
	if err != nil {
		return nil, err
	}

	metrics.TransactionsRecordedTotal.WithLabelValues(string(domain.TxUpgrade)).Inc()
	s.log.Info().
		Str("airport_id", airport.ID).
		Str("upgrade", in.Type).
		Str("sub_type", in.SubType).
		Float64("cost", cost).
		Msg("airport upgraded")

	return &ports.UpgradeResult{
		Airport:     airport,
		Cost:        cost,
		Description: description,
		Balance:     profile.Balance,
	}, nil
}

// applyUpgrade mutates the in-memory airport per the cost/effect table and
// returns the computed cost. The caller decides whether to persist.
func applyUpgrade(airport *domain.Airport, upgradeType, subType string) (float64, string, error) {
	switch upgradeType {
	case ports.UpgradeRunway:
		runwayType := subType
		if runwayType == "" {
			runwayType = "small"
		}
		airport.Runways = append(airport.Runways, domain.Runway{
			Type:   runwayType,
			Length: domain.RunwayLength(runwayType),
		})
		return runwayCost, fmt.Sprintf("Added new %s runway", runwayType), nil

	case ports.UpgradeParking:
		spotType := domain.SpotType(subType)
		if subType == "" {
			spotType = domain.SpotStandard
		}
		if !spotType.Valid() {
			return 0, "", fmt.Errorf("%w: unknown spot type %q", domain.ErrInvalidInput, subType)
		}
		airport.ParkingSpots = append(airport.ParkingSpots, domain.ParkingSpot{
			Type: spotType,
			Fee:  domain.SpotFee(spotType),
		})
		return parkingSpotCost, fmt.Sprintf("Added new %s parking spot", spotType), nil

	case ports.UpgradeFacility:
		if existing := airport.FindFacility(subType); existing != nil {
			if existing.Level >= domain.FacilityMaxLevel {
				return 0, "", domain.ErrMaxLevel
			}
			cost := float64(facilityCostPerLvl * existing.Level)
			existing.Level++
			existing.Capacity *= facilityGrowth
			return cost, fmt.Sprintf("Upgraded %s facility to level %d", subType, existing.Level), nil
		}
		airport.Facilities = append(airport.Facilities, domain.Facility{
			Type:     subType,
			Level:    1,
			Capacity: domain.FacilityBaseCapacity(subType),
		})
		return newFacilityCost, fmt.Sprintf("Added new %s facility", subType), nil

	case ports.UpgradeAirport:
		cost := float64(airportLevelPerCost * airport.Level)
		airport.Level++
		return cost, fmt.Sprintf("Upgraded airport to level %d", airport.Level), nil

	default:
		return 0, "", domain.ErrInvalidUpgradeType
	}
}
