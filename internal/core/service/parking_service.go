package service

import (
	"context"
	"errors"
	"fmt"
	"math"
	"math/rand"
	"time"

	"github.com/rs/zerolog"

	"github.com/skyrise-games/airport-tycoon/internal/api/metrics"
	"github.com/skyrise-games/airport-tycoon/internal/core/domain"
	"github.com/skyrise-games/airport-tycoon/internal/core/ports"
)

const (
	minParkingHours = 1
	maxParkingHours = 72

	// dailyServiceRate is the flat landlord service rate: the amount actually
	// charged to the renter and credited to the landlord, per 24h parked. The
	// per-spot listed fee is display data only.
	dailyServiceRate = 300

	// Dividend draw bounds, per 24h parked. The dividend is system-minted
	// passenger-traffic revenue paid to the renter; the landlord is never
	// debited for it.
	dividendMin = 100
	dividendMax = 500

	// airportLeaseTTL bounds how long a Park or sweep operation may hold an
	// airport's mutual-exclusion lease.
	airportLeaseTTL = 15 * time.Second
)

// ParkingService owns per-airport spot inventory: listing, allocation with
// fee settlement, and occupancy expiry.
type ParkingService struct {
	users        ports.UserRepository
	profiles     ports.ProfileRepository
	airports     ports.AirportRepository
	aircraft     ports.AircraftRepository
	transactions ports.TransactionRepository
	uow          ports.UnitOfWork
	locker       ports.AirportLocker
	log          zerolog.Logger

	randFloat func() float64
}

func NewParkingService(
	users ports.UserRepository,
	profiles ports.ProfileRepository,
	airports ports.AirportRepository,
	aircraft ports.AircraftRepository,
	transactions ports.TransactionRepository,
	uow ports.UnitOfWork,
	locker ports.AirportLocker,
	log zerolog.Logger,
) *ParkingService {
	return &ParkingService{
		users:        users,
		profiles:     profiles,
		airports:     airports,
		aircraft:     aircraft,
		transactions: transactions,
		uow:          uow,
		locker:       locker,
		log:          log,
		randFloat:    rand.Float64,
	}
}

// ListAvailable returns every airport the user does not own, annotated with
// free-spot counts, listed fees, and facility summaries.
func (s *ParkingService) ListAvailable(ctx context.Context, userID string) ([]ports.AvailableAirport, error) {
	airports, err := s.airports.FindNotOwnedBy(ctx, userID)
	if err != nil {
		return nil, err
	}

	ownerIDs := make([]string, 0, len(airports))
	for _, a := range airports {
		ownerIDs = append(ownerIDs, a.OwnerID)
	}
	names, err := s.users.UsernamesByIDs(ctx, ownerIDs)
	if err != nil {
		return nil, err
	}

	out := make([]ports.AvailableAirport, 0, len(airports))
	for _, a := range airports {
		facilities := make([]ports.FacilitySummary, 0, len(a.Facilities))
		for _, f := range a.Facilities {
			facilities = append(facilities, ports.FacilitySummary{Type: f.Type, Level: f.Level})
		}
		out = append(out, ports.AvailableAirport{
			ID:             a.ID,
			Name:           a.Name,
			OwnerName:      names[a.OwnerID],
			Level:          a.Level,
			Location:       a.Location,
			AvailableSpots: a.AvailableSpotCount(),
			Facilities:     facilities,
			ParkingFees: map[domain.SpotType]float64{
				domain.SpotStandard:  a.ListedFee(domain.SpotStandard),
				domain.SpotPremium:   a.ListedFee(domain.SpotPremium),
				domain.SpotExclusive: a.ListedFee(domain.SpotExclusive),
			},
		})
	}
	return out, nil
}

// Park allocates a spot at a foreign airport and settles the fees: the renter
// pays the landlord the flat service fee and receives a system-minted
// dividend. The six-step mutation runs inside one unit of work; the spot
// itself is taken by an atomic conditional update so two concurrent requests
// can never occupy the same spot.
func (s *ParkingService) Park(ctx context.Context, in ports.ParkInput) (*ports.ParkResult, error) {
	if !in.SpotType.Valid() {
		return nil, fmt.Errorf("%w: unknown spot type %q", domain.ErrInvalidInput, in.SpotType)
	}
	if in.DurationHours < minParkingHours || in.DurationHours > maxParkingHours {
		return nil, fmt.Errorf("%w: duration must be between %d and %d hours", domain.ErrInvalidInput, minParkingHours, maxParkingHours)
	}

	aircraft, err := s.aircraft.FindOwned(ctx, in.AircraftID, in.UserID)
	if err != nil {
		return nil, err
	}
	if aircraft.Status != domain.StatusParked {
		return nil, domain.ErrInvalidState
	}

	airport, err := s.airports.FindByID(ctx, in.AirportID)
	if err != nil {
		return nil, err
	}
	if airport.OwnerID == in.UserID {
		return nil, fmt.Errorf("%w: cannot park at your own airport", domain.ErrInvalidInput)
	}

	spotIdx := airport.FirstAvailableSpot(in.SpotType)
	if spotIdx < 0 {
		return nil, domain.ErrNoAvailableSpot
	}

	duration := float64(in.DurationHours)
	totalFee := airport.ParkingSpots[spotIdx].Fee * duration

	renter, err := s.profiles.FindByUser(ctx, in.UserID)
	if err != nil {
		return nil, err
	}
	// Affordability is checked against the full listed price even though the
	// actual charge is the flat service rate.
	if !renter.CanAfford(totalFee) {
		return nil, domain.ErrInsufficientFunds
	}

	serviceFee := dailyServiceRate * duration / 24
	dividend := math.Floor(dividendMin+s.randFloat()*(dividendMax-dividendMin)) * duration / 24

	now := time.Now().UTC()
	until := now.Add(time.Duration(in.DurationHours) * time.Hour)

	// Per-airport lease serialises this allocation against the sweeper and
	// other Park calls. The conditional OccupySpot update below is the hard
	// guarantee; losing the lease race is reported as a conflict immediately.
	acquired, lockErr := s.locker.TryLock(ctx, airport.ID, airportLeaseTTL)
	if lockErr != nil {
		s.log.Warn().Err(lockErr).Str("airport_id", airport.ID).Msg("airport lease unavailable, relying on conditional update")
	} else if !acquired {
		metrics.ParkingConflictsTotal.Inc()
		return nil, domain.ErrSpotConflict
	} else {
		defer func() {
			if err := s.locker.Unlock(context.WithoutCancel(ctx), airport.ID); err != nil {
				s.log.Warn().Err(err).Str("airport_id", airport.ID).Msg("failed to release airport lease")
			}
		}()
	}

	var result ports.ParkResult
	err = s.uow.Execute(ctx, func(ctx context.Context) error {
		if err := s.airports.OccupySpot(ctx, airport.ID, in.SpotType, aircraft.ID, until, serviceFee); err != nil {
			return err
		}

		aircraft.CurrentLocation = airport.ID
		aircraft.Status = domain.StatusParked
		aircraft.UpdatedAt = now
		if err := s.aircraft.Save(ctx, aircraft); err != nil {
			return fmt.Errorf("relocate aircraft: %w", err)
		}

		renter.Balance -= serviceFee
		renter.Balance += dividend
		renter.Statistics.AircraftParked++
		renter.Statistics.TotalRevenue += dividend
		renter.UpdatedAt = now
		if err := s.profiles.Save(ctx, renter); err != nil {
			return fmt.Errorf("settle renter: %w", err)
		}

		landlord, err := s.profiles.FindByUser(ctx, airport.OwnerID)
		if err != nil {
			return fmt.Errorf("load landlord profile: %w", err)
		}
		landlord.Balance += serviceFee
		landlord.Statistics.TotalRevenue += serviceFee
		landlord.UpdatedAt = now
		if err := s.profiles.Save(ctx, landlord); err != nil {
			return fmt.Errorf("settle landlord: %w", err)
		}

		feeTx := &domain.Transaction{
			Type:        domain.TxParkingFee,
			FromUserID:  in.UserID,
			ToUserID:    airport.OwnerID,
			Amount:      serviceFee,
			AircraftID:  aircraft.ID,
			AirportID:   airport.ID,
			Description: fmt.Sprintf("Service fee for parking %s at %s for %d hours", aircraft.Name, airport.Name, in.DurationHours),
			CreatedAt:   now,
		}
		if err := s.transactions.Append(ctx, feeTx); err != nil {
			return fmt.Errorf("record parking fee: %w", err)
		}

		// The dividend is recorded landlord→renter for the audit trail even
		// though the landlord's balance is never debited for it.
		dividendTx := &domain.Transaction{
			Type:        domain.TxService,
			FromUserID:  airport.OwnerID,
			ToUserID:    in.UserID,
			Amount:      dividend,
			AircraftID:  aircraft.ID,
			AirportID:   airport.ID,
			Description: fmt.Sprintf("Dividend for %s parked at %s (passenger traffic revenue)", aircraft.Name, airport.Name),
			CreatedAt:   now,
		}
		if err := s.transactions.Append(ctx, dividendTx); err != nil {
			return fmt.Errorf("record dividend: %w", err)
		}

		result = ports.ParkResult{
			AirportName: airport.Name,
			SpotType:    in.SpotType,
			ServiceFee:  serviceFee,
			Dividend:    dividend,
			EndTime:     until,
			Balance:     renter.Balance,
		}
		return nil
	})
	if err != nil {
		if errors.Is(err, domain.ErrSpotConflict) || errors.Is(err, domain.ErrNoAvailableSpot) {
			metrics.ParkingConflictsTotal.Inc()
		}
		return nil, err
	}

	metrics.TransactionsRecordedTotal.WithLabelValues(string(domain.TxParkingFee)).Inc()
	metrics.TransactionsRecordedTotal.WithLabelValues(string(domain.TxService)).Inc()
	s.log.Info().
		Str("user_id", in.UserID).
		Str("airport_id", airport.ID).
		Str("spot_type", string(in.SpotType)).
		Float64("service_fee", serviceFee).
		Float64("dividend", dividend).
		Msg("aircraft parked")

	return &result, nil
}

// ReleaseExpired reclaims expired spots on one airport: each overstaying
// aircraft becomes free-floating (parked, no location) and its spot is
// cleared. The airport document is persisted once per sweep, not per spot,
// and the clearing update only touches spots still expired at write time, so
// re-running is a no-op.
func (s *ParkingService) ReleaseExpired(ctx context.Context, airportID string, now time.Time) (int, error) {
	acquired, lockErr := s.locker.TryLock(ctx, airportID, airportLeaseTTL)
	if lockErr != nil {
		s.log.Warn().Err(lockErr).Str("airport_id", airportID).Msg("airport lease unavailable for sweep, proceeding")
	} else if !acquired {
		// An in-flight Park holds the lease; the next sweep will catch this
		// airport.
		return 0, nil
	} else {
		defer func() {
			if err := s.locker.Unlock(context.WithoutCancel(ctx), airportID); err != nil {
				s.log.Warn().Err(err).Str("airport_id", airportID).Msg("failed to release airport lease")
			}
		}()
	}

	airport, err := s.airports.FindByID(ctx, airportID)
	if err != nil {
		return 0, err
	}

	var overdue []string
	for _, spot := range airport.ParkingSpots {
		if spot.Expired(now) && spot.OccupiedBy != "" {
			overdue = append(overdue, spot.OccupiedBy)
		}
	}
	if len(overdue) == 0 {
		return 0, nil
	}

	err = s.uow.Execute(ctx, func(ctx context.Context) error {
		for _, aircraftID := range overdue {
			if err := s.aircraft.MarkFreeFloating(ctx, aircraftID); err != nil {
				return fmt.Errorf("free aircraft %s: %w", aircraftID, err)
			}
		}
		if err := s.airports.ClearExpiredSpots(ctx, airportID, now); err != nil {
			return fmt.Errorf("clear spots: %w", err)
		}
		return nil
	})
	if err != nil {
		return 0, err
	}

	released := len(overdue)
	metrics.SpotsReleasedTotal.Add(float64(released))
	s.log.Info().Str("airport_id", airportID).Int("released", released).Msg("expired parking spots reclaimed")
	return released, nil
}
