package domain

import "time"

// StartingBalance is granted to every newly initialised game profile.
const StartingBalance = 10000

// ProfileStatistics aggregates lifetime counters for a player. The counters
// only ever grow; they are display data, not balance ground truth (that is
// the transaction log).
type ProfileStatistics struct {
	TotalRevenue      float64 `json:"total_revenue" bson:"total_revenue"`
	TotalExpenses     float64 `json:"total_expenses" bson:"total_expenses"`
	AircraftPurchased int     `json:"aircraft_purchased" bson:"aircraft_purchased"`
	RoutesCompleted   int     `json:"routes_completed" bson:"routes_completed"`
	AircraftParked    int     `json:"aircraft_parked" bson:"aircraft_parked"`
}

// GameProfile is the per-player economic state, owned 1:1 by a User.
// Balance must never be driven below zero by a validated operation.
type GameProfile struct {
	ID         string            `json:"id" bson:"_id,omitempty"`
	UserID     string            `json:"user_id" bson:"user_id"`
	Balance    float64           `json:"balance" bson:"balance"`
	Experience int               `json:"experience" bson:"experience"`
	Level      int               `json:"level" bson:"level"`
	Statistics ProfileStatistics `json:"statistics" bson:"statistics"`
	LastLogin  time.Time         `json:"last_login" bson:"last_login"`
	CreatedAt  time.Time         `json:"created_at" bson:"created_at"`
	UpdatedAt  time.Time         `json:"updated_at" bson:"updated_at"`
}

// CanAfford reports whether the balance covers the given amount.
func (p *GameProfile) CanAfford(amount float64) bool {
	return p.Balance >= amount
}
