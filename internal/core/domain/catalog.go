package domain

// AircraftModelSpec holds the economic constants of a purchasable model.
type AircraftModelSpec struct {
	Capacity        int
	Price           float64
	MaintenanceCost float64
	DailyIncome     float64
}

// Catalog is the fixed table of purchasable aircraft models. It is read-only
// configuration loaded once at process start; nothing mutates it.
var Catalog = map[string]AircraftModelSpec{
	"ARJ21-700": {Capacity: 70, Price: 2000, MaintenanceCost: 100, DailyIncome: 200},
	"ARJ21-900": {Capacity: 90, Price: 2800, MaintenanceCost: 140, DailyIncome: 300},
	"C919-A":    {Capacity: 150, Price: 2800, MaintenanceCost: 180, DailyIncome: 350},
	"C919-B":    {Capacity: 180, Price: 3500, MaintenanceCost: 220, DailyIncome: 450},
	"A320":      {Capacity: 200, Price: 3500, MaintenanceCost: 250, DailyIncome: 500},
	"A330":      {Capacity: 300, Price: 4200, MaintenanceCost: 320, DailyIncome: 600},
	"A350":      {Capacity: 350, Price: 5000, MaintenanceCost: 380, DailyIncome: 700},
}

// LookupModel returns the catalog entry for a model name.
func LookupModel(model string) (AircraftModelSpec, bool) {
	spec, ok := Catalog[model]
	return spec, ok
}
