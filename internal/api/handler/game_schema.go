package handler

import (
	"time"

	"github.com/skyrise-games/airport-tycoon/internal/core/domain"
)

// --- Request types ---

type purchaseAircraftRequest struct {
	Model string `json:"model" validate:"required"`
	Name  string `json:"name"  validate:"max=64"`
}

type setRouteRequest struct {
	DestinationID string `json:"destinationId" validate:"required"`
	// DepartureTime is optional; the route departs immediately when omitted.
	DepartureTime *time.Time `json:"departureTime"`
}

type parkAircraftRequest struct {
	AircraftID    string `json:"aircraftId" validate:"required"`
	AirportID     string `json:"airportId"  validate:"required"`
	SpotType      string `json:"spotType"   validate:"required,oneof=standard premium exclusive"`
	DurationHours int    `json:"duration"   validate:"required,min=1,max=72"`
}

type upgradeAirportRequest struct {
	Type string `json:"upgradeType" validate:"required,oneof=runway parking facility airport"`
	// SubType qualifies the upgrade: runway size, spot type, or facility kind.
	SubType string `json:"upgradeSubType" validate:"max=32"`
}

// --- Response types ---
// Response-only types are kept separate from ports/domain types where the JSON
// contract differs from the internal shape; domain entities already carry
// their JSON form and are returned directly.

type initializeResponse struct {
	Profile *domain.GameProfile `json:"profile"`
	Airport *domain.Airport     `json:"airport"`
}

type purchaseAircraftResponse struct {
	Aircraft *domain.Aircraft `json:"aircraft"`
	Balance  float64          `json:"balance"`
}

type setRouteResponse struct {
	Aircraft *domain.Aircraft `json:"aircraft"`
	Route    *domain.Route    `json:"route"`
}

type parkAircraftResponse struct {
	AirportName string    `json:"airport_name"`
	SpotType    string    `json:"spot_type"`
	ServiceFee  float64   `json:"service_fee"`
	Dividend    float64   `json:"dividend"`
	EndTime     time.Time `json:"end_time"`
	Balance     float64   `json:"balance"`
}

type upgradeAirportResponse struct {
	Airport     *domain.Airport `json:"airport"`
	Cost        float64         `json:"cost"`
	Description string          `json:"description"`
	Balance     float64         `json:"balance"`
}

type facilitySummaryResponse struct {
	Type  string `json:"type"`
	Level int    `json:"level"`
}

type availableAirportResponse struct {
	ID             string                    `json:"id"`
	Name           string                    `json:"name"`
	OwnerName      string                    `json:"owner_name"`
	Level          int                       `json:"level"`
	Location       domain.Location           `json:"location"`
	AvailableSpots int                       `json:"available_spots"`
	Facilities     []facilitySummaryResponse `json:"facilities"`
	ParkingFees    map[string]float64        `json:"parking_fees"`
}

type transactionViewResponse struct {
	ID          string    `json:"id"`
	Type        string    `json:"type"`
	From        string    `json:"from,omitempty"`
	To          string    `json:"to,omitempty"`
	Amount      float64   `json:"amount"`
	AircraftID  string    `json:"aircraft_id,omitempty"`
	AirportID   string    `json:"airport_id,omitempty"`
	Description string    `json:"description"`
	CreatedAt   time.Time `json:"created_at"`
}

type dashboardResponse struct {
	Profile      *domain.GameProfile       `json:"profile"`
	Airports     []*domain.Airport         `json:"airports"`
	Aircraft     []*domain.Aircraft        `json:"aircraft"`
	Transactions []transactionViewResponse `json:"recent_transactions"`
}

type wealthRankResponse struct {
	Username string  `json:"username"`
	Balance  float64 `json:"balance"`
	Level    int     `json:"level"`
}

type airportRankResponse struct {
	AirportName string  `json:"airport_name"`
	OwnerName   string  `json:"owner_name"`
	Level       int     `json:"level"`
	Income      float64 `json:"income"`
}

type fleetRankResponse struct {
	Username      string `json:"username"`
	AircraftCount int    `json:"aircraft_count"`
}

type leaderboardResponse struct {
	Wealth   []wealthRankResponse  `json:"wealth"`
	Airports []airportRankResponse `json:"airports"`
	Fleets   []fleetRankResponse   `json:"fleets"`
}
