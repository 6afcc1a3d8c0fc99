package handler

import (
	"context"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/labstack/echo/v4"

	"github.com/skyrise-games/airport-tycoon/internal/core/domain"
	"github.com/skyrise-games/airport-tycoon/internal/core/ports"
)

type fakeParkingService struct {
	lastPark ports.ParkInput
}

func (s *fakeParkingService) ListAvailable(context.Context, string) ([]ports.AvailableAirport, error) {
	return nil, nil
}

func (s *fakeParkingService) Park(_ context.Context, in ports.ParkInput) (*ports.ParkResult, error) {
	s.lastPark = in
	return &ports.ParkResult{
		AirportName: "Bob International",
		SpotType:    in.SpotType,
		ServiceFee:  300,
		Dividend:    100,
		EndTime:     time.Now().UTC(),
		Balance:     9800,
	}, nil
}

func (s *fakeParkingService) ReleaseExpired(context.Context, string, time.Time) (int, error) {
	return 0, nil
}

type fakeUpgradeService struct {
	lastUpgrade ports.UpgradeInput
}

func (s *fakeUpgradeService) Upgrade(_ context.Context, in ports.UpgradeInput) (*ports.UpgradeResult, error) {
	s.lastUpgrade = in
	return &ports.UpgradeResult{Airport: &domain.Airport{ID: in.AirportID}, Cost: 5000, Balance: 5000}, nil
}

type fakeFleetService struct {
	lastRoute ports.SetRouteInput
}

func (s *fakeFleetService) Purchase(context.Context, ports.PurchaseInput) (*ports.PurchaseResult, error) {
	return &ports.PurchaseResult{Aircraft: &domain.Aircraft{ID: "aircraft-1"}, Balance: 8000}, nil
}

func (s *fakeFleetService) SetRoute(_ context.Context, in ports.SetRouteInput) (*ports.SetRouteResult, error) {
	s.lastRoute = in
	return &ports.SetRouteResult{Aircraft: &domain.Aircraft{ID: in.AircraftID}, Route: &domain.Route{}}, nil
}

func (s *fakeFleetService) SettleArrivals(context.Context, time.Time) (int, error) {
	return 0, nil
}

func newGameContext(t *testing.T, body string) (echo.Context, *httptest.ResponseRecorder) {
	t.Helper()
	e := echo.New()
	e.Validator = NewValidator()
	req := httptest.NewRequest(http.MethodPost, "/", strings.NewReader(body))
	req.Header.Set(echo.HeaderContentType, echo.MIMEApplicationJSON)
	rec := httptest.NewRecorder()
	c := e.NewContext(req, rec)
	c.Set("user_id", "user-1")
	return c, rec
}

func TestGameHandler_ParkAircraft_BodyContract(t *testing.T) {
	parking := &fakeParkingService{}
	h := NewGameHandler(nil, nil, parking, nil, nil)

	c, rec := newGameContext(t, `{"aircraftId":"aircraft-1","airportId":"airport-2","spotType":"premium","duration":24}`)
	if err := h.ParkAircraft(c); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if rec.Code != http.StatusOK {
		t.Errorf("status: want 200, got %d", rec.Code)
	}

	got := parking.lastPark
	if got.UserID != "user-1" || got.AircraftID != "aircraft-1" || got.AirportID != "airport-2" {
		t.Errorf("park input ids wrong: %+v", got)
	}
	if got.SpotType != domain.SpotPremium || got.DurationHours != 24 {
		t.Errorf("park input spot/duration wrong: %+v", got)
	}
}

func TestGameHandler_ParkAircraft_MissingAircraftID(t *testing.T) {
	h := NewGameHandler(nil, nil, &fakeParkingService{}, nil, nil)

	c, _ := newGameContext(t, `{"airportId":"airport-2","spotType":"standard","duration":24}`)
	err := h.ParkAircraft(c)
	httpErr, ok := err.(*echo.HTTPError)
	if !ok || httpErr.Code != http.StatusUnprocessableEntity {
		t.Errorf("want 422 when aircraftId is absent, got %v", err)
	}
}

func TestGameHandler_SetRoute_PathAndBodyContract(t *testing.T) {
	fleet := &fakeFleetService{}
	h := NewGameHandler(nil, fleet, nil, nil, nil)

	c, _ := newGameContext(t, `{"destinationId":"airport-2"}`)
	c.SetParamNames("aircraftId")
	c.SetParamValues("aircraft-1")

	if err := h.SetRoute(c); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	got := fleet.lastRoute
	if got.AircraftID != "aircraft-1" || got.DestinationID != "airport-2" {
		t.Errorf("route input wrong: %+v", got)
	}
	if got.DepartureTime.IsZero() {
		t.Error("omitted departure must default to now")
	}
}

func TestGameHandler_UpgradeAirport_PathAndBodyContract(t *testing.T) {
	upgrades := &fakeUpgradeService{}
	h := NewGameHandler(nil, nil, nil, upgrades, nil)

	c, _ := newGameContext(t, `{"upgradeType":"runway","upgradeSubType":"medium"}`)
	c.SetParamNames("airportId")
	c.SetParamValues("airport-1")

	if err := h.UpgradeAirport(c); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	got := upgrades.lastUpgrade
	if got.AirportID != "airport-1" || got.Type != "runway" || got.SubType != "medium" {
		t.Errorf("upgrade input wrong: %+v", got)
	}
}
