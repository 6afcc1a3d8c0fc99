package domain

import "time"

// AircraftStatus is the lifecycle state of an aircraft.
type AircraftStatus string

const (
	StatusParked      AircraftStatus = "parked"
	StatusInFlight    AircraftStatus = "in-flight"
	StatusMaintenance AircraftStatus = "maintenance"
)

// validTransitions defines the allowed lifecycle transitions.
var validTransitions = map[AircraftStatus][]AircraftStatus{
	StatusParked:      {StatusInFlight, StatusMaintenance},
	StatusInFlight:    {StatusParked},
	StatusMaintenance: {StatusParked},
}

// CanTransitionTo reports whether moving from the current status to next is a
// legal lifecycle transition.
func (s AircraftStatus) CanTransitionTo(next AircraftStatus) bool {
	for _, allowed := range validTransitions[s] {
		if allowed == next {
			return true
		}
	}
	return false
}

// Route is the active flight plan of an in-flight aircraft. Income is
// computed when the route is set and credited when the flight arrives.
type Route struct {
	SourceID      string    `json:"source_id" bson:"source_id"`
	DestinationID string    `json:"destination_id" bson:"destination_id"`
	DepartureTime time.Time `json:"departure_time" bson:"departure_time"`
	ArrivalTime   time.Time `json:"arrival_time" bson:"arrival_time"`
	Income        float64   `json:"income" bson:"income"`
	Distance      float64   `json:"route_distance" bson:"route_distance"`
}

// Earnings tracks realised route income for an aircraft.
type Earnings struct {
	Daily float64 `json:"daily" bson:"daily"`
	Total float64 `json:"total" bson:"total"`
}

// Aircraft is owned by exactly one user.
//
// Invariants: status is in-flight iff ActiveRoute is present; a parked
// aircraft references a valid airport, except transiently after spot
// reclamation, when it floats free (CurrentLocation empty) until parked again.
type Aircraft struct {
	ID              string         `json:"id" bson:"_id,omitempty"`
	OwnerID         string         `json:"owner_id" bson:"owner_id"`
	Model           string         `json:"model" bson:"model"`
	Name            string         `json:"name" bson:"name"`
	PurchasePrice   float64        `json:"purchase_price" bson:"purchase_price"`
	Capacity        int            `json:"capacity" bson:"capacity"`
	MaintenanceCost float64        `json:"maintenance_cost" bson:"maintenance_cost"`
	Condition       int            `json:"condition" bson:"condition"`
	CurrentLocation string         `json:"current_location,omitempty" bson:"current_location,omitempty"`
	Status          AircraftStatus `json:"status" bson:"status"`
	ActiveRoute     *Route         `json:"active_route,omitempty" bson:"active_route,omitempty"`
	Earnings        Earnings       `json:"earnings" bson:"earnings"`
	CreatedAt       time.Time      `json:"created_at" bson:"created_at"`
	UpdatedAt       time.Time      `json:"updated_at" bson:"updated_at"`
}
