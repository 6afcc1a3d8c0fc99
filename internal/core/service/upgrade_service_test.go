package service

import (
	"context"
	"errors"
	"testing"

	"github.com/skyrise-games/airport-tycoon/internal/core/domain"
	"github.com/skyrise-games/airport-tycoon/internal/core/ports"
)

func newUpgradeService(w *world) *UpgradeService {
	return NewUpgradeService(w.profiles, w.airports, w.transactions, w.uow, discardLogger)
}

func TestUpgradeService_Upgrade_Runway(t *testing.T) {
	w := newWorld()
	userID, airportID := w.seedPlayer("alice", 10000)
	svc := newUpgradeService(w)

	result, err := svc.Upgrade(context.Background(), ports.UpgradeInput{
		UserID: userID, AirportID: airportID,
		Type: ports.UpgradeRunway, SubType: "medium",
	})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if result.Cost != 5000 {
		t.Errorf("cost: want 5000, got %v", result.Cost)
	}
	if result.Balance != 5000 {
		t.Errorf("balance: want 5000, got %v", result.Balance)
	}
	if len(result.Airport.Runways) != 2 || result.Airport.Runways[1].Type != "medium" {
		t.Errorf("runways wrong: %+v", result.Airport.Runways)
	}

	upgrades := w.transactions.ofType(domain.TxUpgrade)
	if len(upgrades) != 1 || upgrades[0].FromUserID != userID || upgrades[0].Amount != 5000 {
		t.Errorf("upgrade tx wrong: %+v", upgrades)
	}
}

func TestUpgradeService_Upgrade_ParkingSpot(t *testing.T) {
	w := newWorld()
	userID, airportID := w.seedPlayer("alice", 10000)
	svc := newUpgradeService(w)

	result, err := svc.Upgrade(context.Background(), ports.UpgradeInput{
		UserID: userID, AirportID: airportID,
		Type: ports.UpgradeParking, SubType: "premium",
	})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if result.Cost != 1000 {
		t.Errorf("cost: want 1000, got %v", result.Cost)
	}
	spots := result.Airport.ParkingSpots
	added := spots[len(spots)-1]
	if added.Type != domain.SpotPremium || added.Occupied {
		t.Errorf("added spot wrong: %+v", added)
	}
	if added.Fee != domain.SpotFee(domain.SpotPremium) {
		t.Errorf("added spot fee: want %v, got %v", domain.SpotFee(domain.SpotPremium), added.Fee)
	}
}

func TestUpgradeService_Upgrade_ParkingSpot_UnknownType(t *testing.T) {
	w := newWorld()
	userID, airportID := w.seedPlayer("alice", 10000)
	svc := newUpgradeService(w)

	_, err := svc.Upgrade(context.Background(), ports.UpgradeInput{
		UserID: userID, AirportID: airportID,
		Type: ports.UpgradeParking, SubType: "luxury",
	})
	if !errors.Is(err, domain.ErrInvalidInput) {
		t.Errorf("expected ErrInvalidInput, got %v", err)
	}
}

func TestUpgradeService_Upgrade_NewFacility(t *testing.T) {
	w := newWorld()
	userID, airportID := w.seedPlayer("alice", 10000)
	svc := newUpgradeService(w)

	result, err := svc.Upgrade(context.Background(), ports.UpgradeInput{
		UserID: userID, AirportID: airportID,
		Type: ports.UpgradeFacility, SubType: "hangar",
	})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if result.Cost != 3000 {
		t.Errorf("new facility cost: want 3000, got %v", result.Cost)
	}
	added := result.Airport.FindFacility("hangar")
	if added == nil || added.Level != 1 {
		t.Errorf("hangar must exist at level 1, got %+v", added)
	}
}

func TestUpgradeService_Upgrade_ExistingFacility(t *testing.T) {
	w := newWorld()
	userID, airportID := w.seedPlayer("alice", 10000)
	svc := newUpgradeService(w)

	// Seeded terminal is level 1 with capacity 200.
	result, err := svc.Upgrade(context.Background(), ports.UpgradeInput{
		UserID: userID, AirportID: airportID,
		Type: ports.UpgradeFacility, SubType: domain.FacilityTerminal,
	})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if result.Cost != 2000 {
		t.Errorf("level-1 upgrade cost: want 2000, got %v", result.Cost)
	}
	terminal := result.Airport.FindFacility(domain.FacilityTerminal)
	if terminal.Level != 2 {
		t.Errorf("terminal level: want 2, got %d", terminal.Level)
	}
	if terminal.Capacity != 300 {
		t.Errorf("capacity must grow by half: want 300, got %v", terminal.Capacity)
	}
}

func TestUpgradeService_Upgrade_FacilityAtMaxLevel(t *testing.T) {
	w := newWorld()
	userID, airportID := w.seedPlayer("alice", 100000)
	airport := w.airports.byID[airportID]
	airport.Facilities[0].Level = domain.FacilityMaxLevel
	svc := newUpgradeService(w)

	_, err := svc.Upgrade(context.Background(), ports.UpgradeInput{
		UserID: userID, AirportID: airportID,
		Type: ports.UpgradeFacility, SubType: domain.FacilityTerminal,
	})
	if !errors.Is(err, domain.ErrMaxLevel) {
		t.Errorf("expected ErrMaxLevel, got %v", err)
	}
}

func TestUpgradeService_Upgrade_AirportLevel(t *testing.T) {
	w := newWorld()
	userID, airportID := w.seedPlayer("alice", 25000)
	svc := newUpgradeService(w)

	// Level 1 → 2 costs 10000, level 2 → 3 costs 20000.
	first, err := svc.Upgrade(context.Background(), ports.UpgradeInput{
		UserID: userID, AirportID: airportID, Type: ports.UpgradeAirport,
	})
	if err != nil {
		t.Fatalf("first upgrade: %v", err)
	}
	if first.Cost != 10000 || first.Airport.Level != 2 {
		t.Errorf("first upgrade wrong: cost=%v level=%d", first.Cost, first.Airport.Level)
	}

	_, err = svc.Upgrade(context.Background(), ports.UpgradeInput{
		UserID: userID, AirportID: airportID, Type: ports.UpgradeAirport,
	})
	if !errors.Is(err, domain.ErrInsufficientFunds) {
		t.Errorf("second upgrade must fail on funds (15000 < 20000), got %v", err)
	}
}

func TestUpgradeService_Upgrade_ForeignAirport(t *testing.T) {
	w := newWorld()
	userID, _ := w.seedPlayer("alice", 10000)
	_, bobAirport := w.seedPlayer("bob", 10000)
	svc := newUpgradeService(w)

	_, err := svc.Upgrade(context.Background(), ports.UpgradeInput{
		UserID: userID, AirportID: bobAirport, Type: ports.UpgradeRunway,
	})
	if !errors.Is(err, domain.ErrAirportNotFound) {
		t.Errorf("expected ErrAirportNotFound for foreign airport, got %v", err)
	}
}

func TestUpgradeService_Upgrade_UnknownType(t *testing.T) {
	w := newWorld()
	userID, airportID := w.seedPlayer("alice", 10000)
	svc := newUpgradeService(w)

	_, err := svc.Upgrade(context.Background(), ports.UpgradeInput{
		UserID: userID, AirportID: airportID, Type: "helipad",
	})
	if !errors.Is(err, domain.ErrInvalidUpgradeType) {
		t.Errorf("expected ErrInvalidUpgradeType, got %v", err)
	}
}

func TestUpgradeService_Upgrade_InsufficientFundsLeavesStateUntouched(t *testing.T) {
	w := newWorld()
	userID, airportID := w.seedPlayer("alice", 500)
	svc := newUpgradeService(w)

	_, err := svc.Upgrade(context.Background(), ports.UpgradeInput{
		UserID: userID, AirportID: airportID, Type: ports.UpgradeRunway,
	})
	if !errors.Is(err, domain.ErrInsufficientFunds) {
		t.Fatalf("expected ErrInsufficientFunds, got %v", err)
	}

	airport, _ := w.airports.FindByID(context.Background(), airportID)
	if len(airport.Runways) != 1 {
		t.Errorf("runway must not be persisted, got %d", len(airport.Runways))
	}
	profile, _ := w.profiles.FindByUser(context.Background(), userID)
	if profile.Balance != 500 {
		t.Errorf("balance must be untouched, got %v", profile.Balance)
	}
	if len(w.transactions.appended) != 0 {
		t.Errorf("no transaction should be recorded, got %d", len(w.transactions.appended))
	}
}
