package service

import (
	"context"
	"fmt"
	"math"
	"math/rand"
	"time"

	"github.com/rs/zerolog"

	"github.com/skyrise-games/airport-tycoon/internal/api/metrics"
	"github.com/skyrise-games/airport-tycoon/internal/core/domain"
	"github.com/skyrise-games/airport-tycoon/internal/core/ports"
)

// speedUnitsPerHour converts route distance to flight time: every 100 map
// units take one hour.
const speedUnitsPerHour = 100

// FleetService owns the aircraft lifecycle state machine and route economics.
type FleetService struct {
	profiles     ports.ProfileRepository
	airports     ports.AirportRepository
	aircraft     ports.AircraftRepository
	transactions ports.TransactionRepository
	uow          ports.UnitOfWork
	log          zerolog.Logger

	// randFloat injects the revenue-variance draw; overridden in tests.
	randFloat func() float64
	randInt   func(n int) int
}

func NewFleetService(
	profiles ports.ProfileRepository,
	airports ports.AirportRepository,
	aircraft ports.AircraftRepository,
	transactions ports.TransactionRepository,
	uow ports.UnitOfWork,
	log zerolog.Logger,
) *FleetService {
	return &FleetService{
		profiles:     profiles,
		airports:     airports,
		aircraft:     aircraft,
		transactions: transactions,
		uow:          uow,
		log:          log,
		randFloat:    rand.Float64,
		randInt:      rand.Intn,
	}
}

// Purchase buys a catalog model for the user. The aircraft document is
// created before the profile debit is persisted, so a failure in between
// leaves a paid-for aircraft rather than a vanished payment; the whole
// sequence runs inside the unit of work regardless.
func (s *FleetService) Purchase(ctx context.Context, in ports.PurchaseInput) (*ports.PurchaseResult, error) {
	spec, ok := domain.LookupModel(in.Model)
	if !ok {
		return nil, domain.ErrInvalidModel
	}

	profile, err := s.profiles.FindByUser(ctx, in.UserID)
	if err != nil {
		return nil, err
	}
	if !profile.CanAfford(spec.Price) {
		return nil, domain.ErrInsufficientFunds
	}

	homeAirport, err := s.airports.FindFirstByOwner(ctx, in.UserID)
	if err != nil {
		return nil, err
	}

	name := in.Name
	if name == "" {
		name = fmt.Sprintf("%s-%d", in.Model, s.randInt(1000))
	}

	now := time.Now().UTC()
	aircraft := &domain.Aircraft{
		OwnerID:         in.UserID,
		Model:           in.Model,
		Name:            name,
		PurchasePrice:   spec.Price,
		Capacity:        spec.Capacity,
		MaintenanceCost: spec.MaintenanceCost,
		Condition:       100,
		CurrentLocation: homeAirport.ID,
		Status:          domain.StatusParked,
		CreatedAt:       now,
		UpdatedAt:       now,
	}

	var result ports.PurchaseResult
	err = s.uow.Execute(ctx, func(ctx context.Context) error {
		created, err := s.aircraft.Create(ctx, aircraft)
		if err != nil {
			return fmt.Errorf("create aircraft: %w", err)
		}

		profile.Balance -= spec.Price
		profile.Statistics.AircraftPurchased++
		profile.UpdatedAt = now
		if err := s.profiles.Save(ctx, profile); err != nil {
			return fmt.Errorf("debit buyer: %w", err)
		}

		tx := &domain.Transaction{
			Type:        domain.TxPurchase,
			FromUserID:  in.UserID,
			Amount:      spec.Price,
			AircraftID:  created.ID,
			Description: fmt.Sprintf("Purchased %s aircraft named %q", in.Model, created.Name),
			CreatedAt:   now,
		}
		if err := s.transactions.Append(ctx, tx); err != nil {
			return fmt.Errorf("record purchase: %w", err)
		}

		result = ports.PurchaseResult{Aircraft: created, Balance: profile.Balance}
		return nil
	})
	if err != nil {
		return nil, err
	}

	metrics.AircraftPurchasedTotal.WithLabelValues(in.Model).Inc()
	metrics.TransactionsRecordedTotal.WithLabelValues(string(domain.TxPurchase)).Inc()
	s.log.Info().
		Str("user_id", in.UserID).
		Str("model", in.Model).
		Float64("price", spec.Price).
		Msg("aircraft purchased")

	return &result, nil
}

// SetRoute assigns a flight plan to a parked aircraft and moves it to
// in-flight. No funds move here; income is realised at arrival settlement.
func (s *FleetService) SetRoute(ctx context.Context, in ports.SetRouteInput) (*ports.SetRouteResult, error) {
	aircraft, err := s.aircraft.FindOwned(ctx, in.AircraftID, in.UserID)
	if err != nil {
		return nil, err
	}
	if !aircraft.Status.CanTransitionTo(domain.StatusInFlight) || aircraft.Status != domain.StatusParked {
		return nil, domain.ErrInvalidState
	}

	destination, err := s.airports.FindByID(ctx, in.DestinationID)
	if err != nil {
		return nil, err
	}
	source, err := s.airports.FindByID(ctx, aircraft.CurrentLocation)
	if err != nil {
		return nil, err
	}

	distance := euclideanDistance(source.Location, destination.Location)
	flightHours := distance / speedUnitsPerHour
	arrival := in.DepartureTime.Add(time.Duration(flightHours * float64(time.Hour)))

	spec := domain.Catalog[aircraft.Model]
	hourlyRate := spec.DailyIncome / 24
	// Revenue variance: each flight's income is scaled by a uniform draw
	// from [0.8, 1.2).
	income := math.Floor(hourlyRate * flightHours * (0.8 + s.randFloat()*0.4))

	aircraft.ActiveRoute = &domain.Route{
		SourceID:      source.ID,
		DestinationID: destination.ID,
		DepartureTime: in.DepartureTime,
		ArrivalTime:   arrival,
		Income:        income,
		Distance:      distance,
	}
	aircraft.Status = domain.StatusInFlight
	aircraft.UpdatedAt = time.Now().UTC()

	if err := s.aircraft.Save(ctx, aircraft); err != nil {
		return nil, fmt.Errorf("save route: %w", err)
	}

	s.log.Info().
		Str("aircraft_id", aircraft.ID).
		Str("destination_id", destination.ID).
		Float64("distance", distance).
		Float64("income", income).
		Msg("route set")

	return &ports.SetRouteResult{Route: aircraft.ActiveRoute, Aircraft: aircraft}, nil
}

// SettleArrivals completes every due flight: the aircraft parks at its
// destination and the owner is credited the income computed at departure.
// Failures are isolated per aircraft.
func (s *FleetService) SettleArrivals(ctx context.Context, now time.Time) (int, error) {
	due, err := s.aircraft.FindDueArrivals(ctx, now)
	if err != nil {
		return 0, fmt.Errorf("find due arrivals: %w", err)
	}

	settled := 0
	for _, a := range due {
		if err := s.settleOne(ctx, a, now); err != nil {
			s.log.Error().Err(err).Str("aircraft_id", a.ID).Msg("arrival settlement failed")
			continue
		}
		settled++
		metrics.ArrivalsSettledTotal.Inc()
	}
	return settled, nil
}

func (s *FleetService) settleOne(ctx context.Context, aircraft *domain.Aircraft, now time.Time) error {
	route := aircraft.ActiveRoute
	if route == nil {
		// Inconsistent document; park it without income rather than leave it
		// stuck in-flight forever.
		return s.aircraft.MarkFreeFloating(ctx, aircraft.ID)
	}

	return s.uow.Execute(ctx, func(ctx context.Context) error {
		profile, err := s.profiles.FindByUser(ctx, aircraft.OwnerID)
		if err != nil {
			return err
		}
		profile.Balance += route.Income
		profile.Statistics.TotalRevenue += route.Income
		profile.Statistics.RoutesCompleted++
		profile.UpdatedAt = now
		if err := s.profiles.Save(ctx, profile); err != nil {
			return fmt.Errorf("credit route income: %w", err)
		}

		aircraft.Status = domain.StatusParked
		aircraft.CurrentLocation = route.DestinationID
		aircraft.Earnings.Total += route.Income
		aircraft.ActiveRoute = nil
		aircraft.UpdatedAt = now
		if err := s.aircraft.Save(ctx, aircraft); err != nil {
			return fmt.Errorf("park arrived aircraft: %w", err)
		}

		tx := &domain.Transaction{
			Type:        domain.TxRouteIncome,
			ToUserID:    aircraft.OwnerID,
			Amount:      route.Income,
			AircraftID:  aircraft.ID,
			AirportID:   route.DestinationID,
			Description: fmt.Sprintf("Route income for %s", aircraft.Name),
			CreatedAt:   now,
		}
		if err := s.transactions.Append(ctx, tx); err != nil {
			return fmt.Errorf("record route income: %w", err)
		}
		metrics.TransactionsRecordedTotal.WithLabelValues(string(domain.TxRouteIncome)).Inc()
		return nil
	})
}

func euclideanDistance(a, b domain.Location) float64 {
	dx := float64(b.X - a.X)
	dy := float64(b.Y - a.Y)
	return math.Sqrt(dx*dx + dy*dy)
}
