package ports

import (
	"context"

	"github.com/skyrise-games/airport-tycoon/internal/core/domain"
)

// Upgrade types accepted by UpgradeService.
const (
	UpgradeRunway   = "runway"
	UpgradeParking  = "parking"
	UpgradeFacility = "facility"
	UpgradeAirport  = "airport"
)

// UpgradeInput carries a capital improvement request for an owned airport.
type UpgradeInput struct {
	UserID    string
	AirportID string
	Type      string
	// SubType qualifies the upgrade: runway size, spot type, or facility kind.
	SubType string
}

// UpgradeResult reports the applied upgrade.
type UpgradeResult struct {
	Airport     *domain.Airport
	Cost        float64
	Description string
	Balance     float64
}

// UpgradeService owns per-airport capital improvement rules.
type UpgradeService interface {
	Upgrade(ctx context.Context, in UpgradeInput) (*UpgradeResult, error)
}
