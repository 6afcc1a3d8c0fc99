package domain

import "testing"

func TestAircraftStatus_CanTransitionTo(t *testing.T) {
	cases := []struct {
		from, to AircraftStatus
		want     bool
	}{
		{StatusParked, StatusInFlight, true},
		{StatusParked, StatusMaintenance, true},
		{StatusParked, StatusParked, false},
		{StatusInFlight, StatusParked, true},
		{StatusInFlight, StatusMaintenance, false},
		{StatusInFlight, StatusInFlight, false},
		{StatusMaintenance, StatusParked, true},
		{StatusMaintenance, StatusInFlight, false},
		{AircraftStatus("scrapped"), StatusParked, false},
	}
	for _, tc := range cases {
		if got := tc.from.CanTransitionTo(tc.to); got != tc.want {
			t.Errorf("%s -> %s: want %v, got %v", tc.from, tc.to, tc.want, got)
		}
	}
}

func TestLookupModel(t *testing.T) {
	spec, ok := LookupModel("A320")
	if !ok {
		t.Fatal("A320 must be in the catalog")
	}
	if spec.Price != 3500 || spec.Capacity != 200 || spec.DailyIncome != 500 {
		t.Errorf("A320 spec wrong: %+v", spec)
	}

	if _, ok := LookupModel("B747"); ok {
		t.Error("unknown model must not resolve")
	}
}
