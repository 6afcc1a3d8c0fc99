package api

import (
	"github.com/labstack/echo-contrib/echoprometheus"
	"github.com/labstack/echo/v4"
	echomiddleware "github.com/labstack/echo/v4/middleware"
	"github.com/rs/zerolog"

	"github.com/skyrise-games/airport-tycoon/internal/api/handler"
	"github.com/skyrise-games/airport-tycoon/internal/api/middleware"
	"github.com/skyrise-games/airport-tycoon/internal/core/domain"
)

// NewRouter builds and returns the Echo instance with all routes registered.
func NewRouter(
	authHandler *handler.AuthHandler,
	gameHandler *handler.GameHandler,
	adminHandler *handler.AdminHandler,
	healthHandler *handler.HealthHandler,
	jwtSecret string,
	log zerolog.Logger,
) *echo.Echo {
	e := echo.New()
	e.HideBanner = true
	e.Validator = handler.NewValidator()
	e.HTTPErrorHandler = NewHTTPErrorHandler(log)

	// --- Global middleware ---
	e.Use(echomiddleware.Recover())
	e.Use(echomiddleware.RequestID())
	e.Use(echomiddleware.Logger())
	e.Use(echoprometheus.NewMiddleware("airtycoon"))

	// --- Public routes ---
	e.POST("/auth/register", authHandler.Register)
	e.POST("/auth/login", authHandler.Login)

	e.GET("/health", healthHandler.Liveness)        // liveness  – is the process alive?
	e.GET("/health/ready", healthHandler.Readiness) // readiness – are dependencies up?
	e.GET("/metrics", echoprometheus.NewHandler())

	// --- Authenticated gameplay routes ---
	auth := middleware.Auth(jwtSecret)

	game := e.Group("/game", auth)
	game.POST("/initialize", gameHandler.Initialize)
	game.GET("/dashboard", gameHandler.Dashboard)
	game.GET("/leaderboard", gameHandler.Leaderboard)
	game.POST("/aircraft/purchase", gameHandler.PurchaseAircraft)
	game.POST("/aircraft/park", gameHandler.ParkAircraft)
	game.POST("/aircraft/:aircraftId/route", gameHandler.SetRoute)
	game.GET("/airports/available", gameHandler.ListAvailableAirports)
	game.POST("/airport/:airportId/upgrade", gameHandler.UpgradeAirport)

	// --- Admin routes ---
	admin := e.Group("/admin", auth, middleware.RBAC(domain.RoleAdmin))
	admin.GET("/users", adminHandler.ListUsers)
	admin.GET("/users/:id", adminHandler.GetUser)
	admin.PUT("/users/:id/status", adminHandler.UpdateUserStatus)
	admin.DELETE("/users/:id", adminHandler.DeleteUser)
	admin.GET("/settings", adminHandler.ListSettings)
	admin.GET("/settings/:key", adminHandler.GetSetting)
	admin.PUT("/settings/:key", adminHandler.UpdateSetting)

	return e
}
