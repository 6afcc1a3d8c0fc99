package handler

import (
	"net/http"
	"time"

	"github.com/labstack/echo/v4"

	"github.com/skyrise-games/airport-tycoon/internal/core/domain"
	"github.com/skyrise-games/airport-tycoon/internal/core/ports"
)

// GameHandler handles every authenticated gameplay route: initialisation,
// fleet operations, parking, upgrades, and the read-only projections.
type GameHandler struct {
	game      ports.GameService
	fleet     ports.FleetService
	parking   ports.ParkingService
	upgrades  ports.UpgradeService
	dashboard ports.DashboardService
}

func NewGameHandler(
	game ports.GameService,
	fleet ports.FleetService,
	parking ports.ParkingService,
	upgrades ports.UpgradeService,
	dashboard ports.DashboardService,
) *GameHandler {
	return &GameHandler{
		game:      game,
		fleet:     fleet,
		parking:   parking,
		upgrades:  upgrades,
		dashboard: dashboard,
	}
}

// Initialize creates the caller's game profile and starter airport.
//
// @Summary      Initialise game state
// @Tags         game
// @Produce      json
// @Security     BearerAuth
// @Success      201  {object}  initializeResponse
// @Failure      409  {object}  map[string]string
// @Router       /game/initialize [post]
func (h *GameHandler) Initialize(c echo.Context) error {
	userID, err := ctxUserID(c)
	if err != nil {
		return err
	}

	result, err := h.game.Initialize(c.Request().Context(), userID)
	if err != nil {
		return err
	}

	return c.JSON(http.StatusCreated, initializeResponse{
		Profile: result.Profile,
		Airport: result.Airport,
	})
}

// PurchaseAircraft buys a catalog model for the caller.
//
// @Summary      Purchase an aircraft
// @Tags         game
// @Accept       json
// @Produce      json
// @Security     BearerAuth
// @Param        body  body      purchaseAircraftRequest  true  "Catalog model and optional name"
// @Success      201   {object}  purchaseAircraftResponse
// @Failure      400   {object}  map[string]string
// @Failure      402   {object}  map[string]string
// @Router       /game/aircraft/purchase [post]
func (h *GameHandler) PurchaseAircraft(c echo.Context) error {
	userID, err := ctxUserID(c)
	if err != nil {
		return err
	}

	var req purchaseAircraftRequest
	if err := c.Bind(&req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "invalid payload")
	}
	if err := c.Validate(&req); err != nil {
		return echo.NewHTTPError(http.StatusUnprocessableEntity, err.Error())
	}

	result, err := h.fleet.Purchase(c.Request().Context(), ports.PurchaseInput{
		UserID: userID,
		Model:  req.Model,
		Name:   req.Name,
	})
	if err != nil {
		return err
	}

	return c.JSON(http.StatusCreated, purchaseAircraftResponse{
		Aircraft: result.Aircraft,
		Balance:  result.Balance,
	})
}

// SetRoute sends a parked aircraft on a flight to another airport.
//
// @Summary      Assign a flight route
// @Tags         game
// @Accept       json
// @Produce      json
// @Security     BearerAuth
// @Param        aircraftId  path      string           true  "Aircraft id"
// @Param        body        body      setRouteRequest  true  "Destination airport"
// @Success      200         {object}  setRouteResponse
// @Failure      400         {object}  map[string]string
// @Failure      404         {object}  map[string]string
// @Router       /game/aircraft/{aircraftId}/route [post]
func (h *GameHandler) SetRoute(c echo.Context) error {
	userID, err := ctxUserID(c)
	if err != nil {
		return err
	}

	var req setRouteRequest
	if err := c.Bind(&req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "invalid payload")
	}
	if err := c.Validate(&req); err != nil {
		return echo.NewHTTPError(http.StatusUnprocessableEntity, err.Error())
	}

	departure := time.Now().UTC()
	if req.DepartureTime != nil {
		departure = req.DepartureTime.UTC()
	}

	result, err := h.fleet.SetRoute(c.Request().Context(), ports.SetRouteInput{
		UserID:        userID,
		AircraftID:    c.Param("aircraftId"),
		DestinationID: req.DestinationID,
		DepartureTime: departure,
	})
	if err != nil {
		return err
	}

	return c.JSON(http.StatusOK, setRouteResponse{
		Aircraft: result.Aircraft,
		Route:    result.Route,
	})
}

// ListAvailableAirports lists every airport the caller can park at.
//
// @Summary      List foreign airports with free spots
// @Tags         game
// @Produce      json
// @Security     BearerAuth
// @Success      200  {array}  availableAirportResponse
// @Router       /game/airports/available [get]
func (h *GameHandler) ListAvailableAirports(c echo.Context) error {
	userID, err := ctxUserID(c)
	if err != nil {
		return err
	}

	airports, err := h.parking.ListAvailable(c.Request().Context(), userID)
	if err != nil {
		return err
	}

	resp := make([]availableAirportResponse, 0, len(airports))
	for _, a := range airports {
		facilities := make([]facilitySummaryResponse, 0, len(a.Facilities))
		for _, f := range a.Facilities {
			facilities = append(facilities, facilitySummaryResponse{Type: f.Type, Level: f.Level})
		}
		fees := make(map[string]float64, len(a.ParkingFees))
		for t, fee := range a.ParkingFees {
			fees[string(t)] = fee
		}
		resp = append(resp, availableAirportResponse{
			ID:             a.ID,
			Name:           a.Name,
			OwnerName:      a.OwnerName,
			Level:          a.Level,
			Location:       a.Location,
			AvailableSpots: a.AvailableSpots,
			Facilities:     facilities,
			ParkingFees:    fees,
		})
	}
	return c.JSON(http.StatusOK, resp)
}

// ParkAircraft rents a spot at a foreign airport for a fixed duration.
//
// @Summary      Park an aircraft at a foreign airport
// @Tags         game
// @Accept       json
// @Produce      json
// @Security     BearerAuth
// @Param        body  body      parkAircraftRequest  true  "Aircraft, airport, spot type and duration"
// @Success      200   {object}  parkAircraftResponse
// @Failure      400   {object}  map[string]string
// @Failure      402   {object}  map[string]string
// @Failure      409   {object}  map[string]string
// @Router       /game/aircraft/park [post]
func (h *GameHandler) ParkAircraft(c echo.Context) error {
	userID, err := ctxUserID(c)
	if err != nil {
		return err
	}

	var req parkAircraftRequest
	if err := c.Bind(&req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "invalid payload")
	}
	if err := c.Validate(&req); err != nil {
		return echo.NewHTTPError(http.StatusUnprocessableEntity, err.Error())
	}

	result, err := h.parking.Park(c.Request().Context(), ports.ParkInput{
		UserID:        userID,
		AircraftID:    req.AircraftID,
		AirportID:     req.AirportID,
		SpotType:      domain.SpotType(req.SpotType),
		DurationHours: req.DurationHours,
	})
	if err != nil {
		return err
	}

	return c.JSON(http.StatusOK, parkAircraftResponse{
		AirportName: result.AirportName,
		SpotType:    string(result.SpotType),
		ServiceFee:  result.ServiceFee,
		Dividend:    result.Dividend,
		EndTime:     result.EndTime,
		Balance:     result.Balance,
	})
}

// UpgradeAirport applies a capital improvement to an owned airport.
//
// @Summary      Upgrade an owned airport
// @Tags         game
// @Accept       json
// @Produce      json
// @Security     BearerAuth
// @Param        airportId  path      string                 true  "Airport id"
// @Param        body       body      upgradeAirportRequest  true  "Upgrade type and sub-type"
// @Success      200        {object}  upgradeAirportResponse
// @Failure      400        {object}  map[string]string
// @Failure      402        {object}  map[string]string
// @Failure      404        {object}  map[string]string
// @Router       /game/airport/{airportId}/upgrade [post]
func (h *GameHandler) UpgradeAirport(c echo.Context) error {
	userID, err := ctxUserID(c)
	if err != nil {
		return err
	}

	var req upgradeAirportRequest
	if err := c.Bind(&req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "invalid payload")
	}
	if err := c.Validate(&req); err != nil {
		return echo.NewHTTPError(http.StatusUnprocessableEntity, err.Error())
	}

	result, err := h.upgrades.Upgrade(c.Request().Context(), ports.UpgradeInput{
		UserID:    userID,
		AirportID: c.Param("airportId"),
		Type:      req.Type,
		SubType:   req.SubType,
	})
	if err != nil {
		return err
	}

	return c.JSON(http.StatusOK, upgradeAirportResponse{
		Airport:     result.Airport,
		Cost:        result.Cost,
		Description: result.Description,
		Balance:     result.Balance,
	})
}

// Dashboard returns the caller's profile, holdings and recent transactions.
//
// @Summary      Player dashboard
// @Tags         game
// @Produce      json
// @Security     BearerAuth
// @Success      200  {object}  dashboardResponse
// @Failure      404  {object}  map[string]string
// @Router       /game/dashboard [get]
func (h *GameHandler) Dashboard(c echo.Context) error {
	userID, err := ctxUserID(c)
	if err != nil {
		return err
	}

	d, err := h.dashboard.Dashboard(c.Request().Context(), userID)
	if err != nil {
		return err
	}

	txs := make([]transactionViewResponse, 0, len(d.Transactions))
	for _, v := range d.Transactions {
		txs = append(txs, transactionViewResponse{
			ID:          v.Transaction.ID,
			Type:        string(v.Transaction.Type),
			From:        v.FromName,
			To:          v.ToName,
			Amount:      v.Transaction.Amount,
			AircraftID:  v.Transaction.AircraftID,
			AirportID:   v.Transaction.AirportID,
			Description: v.Transaction.Description,
			CreatedAt:   v.Transaction.CreatedAt,
		})
	}

	return c.JSON(http.StatusOK, dashboardResponse{
		Profile:      d.Profile,
		Airports:     d.Airports,
		Aircraft:     d.Aircraft,
		Transactions: txs,
	})
}

// Leaderboard returns the three global top-10 rankings.
//
// @Summary      Global leaderboards
// @Tags         game
// @Produce      json
// @Security     BearerAuth
// @Success      200  {object}  leaderboardResponse
// @Router       /game/leaderboard [get]
func (h *GameHandler) Leaderboard(c echo.Context) error {
	if _, err := ctxUserID(c); err != nil {
		return err
	}

	board, err := h.dashboard.Leaderboard(c.Request().Context())
	if err != nil {
		return err
	}

	resp := leaderboardResponse{
		Wealth:   make([]wealthRankResponse, 0, len(board.Wealth)),
		Airports: make([]airportRankResponse, 0, len(board.Airports)),
		Fleets:   make([]fleetRankResponse, 0, len(board.Fleets)),
	}
	for _, w := range board.Wealth {
		resp.Wealth = append(resp.Wealth, wealthRankResponse{Username: w.Username, Balance: w.Balance, Level: w.Level})
	}
	for _, a := range board.Airports {
		resp.Airports = append(resp.Airports, airportRankResponse{
			AirportName: a.AirportName,
			OwnerName:   a.OwnerName,
			Level:       a.Level,
			Income:      a.Income,
		})
	}
	for _, f := range board.Fleets {
		resp.Fleets = append(resp.Fleets, fleetRankResponse{Username: f.Username, AircraftCount: f.AircraftCount})
	}
	return c.JSON(http.StatusOK, resp)
}
