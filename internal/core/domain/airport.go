package domain

import "time"

// SpotType classifies a parking spot and drives its listed fee.
type SpotType string

const (
	SpotStandard  SpotType = "standard"
	SpotPremium   SpotType = "premium"
	SpotExclusive SpotType = "exclusive"
)

// Valid reports whether the spot type is one of the known kinds.
func (t SpotType) Valid() bool {
	switch t {
	case SpotStandard, SpotPremium, SpotExclusive:
		return true
	}
	return false
}

// SpotFee is the listed per-hour fee for a newly built spot of each type.
func SpotFee(t SpotType) float64 {
	switch t {
	case SpotPremium:
		return 200
	case SpotExclusive:
		return 300
	default:
		return 100
	}
}

const (
	FacilityTerminal    = "terminal"
	FacilityMaintenance = "maintenance"
	FacilityCatering    = "catering"
	FacilityFuel        = "fuel"

	// FacilityMaxLevel caps per-facility upgrades.
	FacilityMaxLevel = 5
)

// FacilityBaseCapacity is the capacity of a freshly built facility.
// Unknown facility types start at zero capacity.
func FacilityBaseCapacity(facilityType string) float64 {
	switch facilityType {
	case FacilityTerminal:
		return 200
	case FacilityMaintenance:
		return 5
	case FacilityCatering:
		return 100
	case FacilityFuel:
		return 1000
	default:
		return 0
	}
}

// RunwayLength returns the length for a newly built runway of the given size.
func RunwayLength(runwayType string) int {
	switch runwayType {
	case "medium":
		return 3000
	case "large":
		return 4000
	default: // "small"
		return 2000
	}
}

// ParkingSpot is a single slot on an airport.
//
// Occupancy invariant: Occupied is true iff OccupiedBy and OccupiedUntil are
// both set, and OccupiedUntil is strictly in the future at the moment the
// spot is taken.
type ParkingSpot struct {
	Type          SpotType   `json:"type" bson:"type"`
	Fee           float64    `json:"fee" bson:"fee"`
	Occupied      bool       `json:"occupied" bson:"occupied"`
	OccupiedBy    string     `json:"occupied_by,omitempty" bson:"occupied_by,omitempty"`
	OccupiedUntil *time.Time `json:"occupied_until,omitempty" bson:"occupied_until,omitempty"`
}

// OccupancyConsistent reports whether the spot satisfies the occupancy
// invariant (ignoring the strictly-in-future condition, which only holds at
// allocation time).
func (s ParkingSpot) OccupancyConsistent() bool {
	return s.Occupied == (s.OccupiedBy != "" && s.OccupiedUntil != nil)
}

// Expired reports whether an occupied spot's lease has run out.
func (s ParkingSpot) Expired(now time.Time) bool {
	return s.Occupied && s.OccupiedUntil != nil && s.OccupiedUntil.Before(now)
}

// Facility is a capital improvement on an airport (terminal, fuel depot, ...).
type Facility struct {
	Type     string  `json:"type" bson:"type"`
	Level    int     `json:"level" bson:"level"`
	Capacity float64 `json:"capacity" bson:"capacity"`
}

// Runway belongs to an airport; length is fixed at construction.
type Runway struct {
	Type   string `json:"type" bson:"type"`
	Length int    `json:"length" bson:"length"`
}

// Location is a fixed 2D map coordinate.
type Location struct {
	X int `json:"x" bson:"x"`
	Y int `json:"y" bson:"y"`
}

// AirportStatistics aggregates landlord-side income counters.
type AirportStatistics struct {
	DailyIncome  float64 `json:"daily_income" bson:"daily_income"`
	TotalIncome  float64 `json:"total_income" bson:"total_income"`
	TrafficCount int     `json:"traffic_count" bson:"traffic_count"`
}

// Airport is owned by exactly one user, who collects parking service fees as
// landlord. The parking spot set is append-only: upgrades add spots, nothing
// removes them.
type Airport struct {
	ID           string            `json:"id" bson:"_id,omitempty"`
	OwnerID      string            `json:"owner_id" bson:"owner_id"`
	Name         string            `json:"name" bson:"name"`
	Level        int               `json:"level" bson:"level"`
	Runways      []Runway          `json:"runways" bson:"runways"`
	ParkingSpots []ParkingSpot     `json:"parking_spots" bson:"parking_spots"`
	Facilities   []Facility        `json:"facilities" bson:"facilities"`
	Location     Location          `json:"location" bson:"location"`
	Statistics   AirportStatistics `json:"statistics" bson:"statistics"`
	CreatedAt    time.Time         `json:"created_at" bson:"created_at"`
	UpdatedAt    time.Time         `json:"updated_at" bson:"updated_at"`
}

// FirstAvailableSpot returns the index of the first unoccupied spot of the
// given type, or -1 when every spot of that type is taken. The index is only
// a hint: the persistence layer re-checks occupancy atomically on write.
func (a *Airport) FirstAvailableSpot(t SpotType) int {
	for i, s := range a.ParkingSpots {
		if s.Type == t && !s.Occupied {
			return i
		}
	}
	return -1
}

// AvailableSpotCount counts unoccupied spots across all types.
func (a *Airport) AvailableSpotCount() int {
	n := 0
	for _, s := range a.ParkingSpots {
		if !s.Occupied {
			n++
		}
	}
	return n
}

// ListedFee returns the advertised fee for a spot type, zero when the airport
// has no spot of that type. The listed fee is informational; the charged
// amount is the flat landlord service rate.
func (a *Airport) ListedFee(t SpotType) float64 {
	for _, s := range a.ParkingSpots {
		if s.Type == t {
			return s.Fee
		}
	}
	return 0
}

// FindFacility returns a pointer to the facility of the given type, or nil.
func (a *Airport) FindFacility(facilityType string) *Facility {
	for i := range a.Facilities {
		if a.Facilities[i].Type == facilityType {
			return &a.Facilities[i]
		}
	}
	return nil
}
