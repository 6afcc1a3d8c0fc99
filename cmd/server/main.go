package main

import (
	"context"
	"errors"
	"log/slog"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/skyrise-games/airport-tycoon/internal/api"
	"github.com/skyrise-games/airport-tycoon/internal/api/handler"
	"github.com/skyrise-games/airport-tycoon/internal/core/service"
	"github.com/skyrise-games/airport-tycoon/internal/infrastructure/config"
	mongodb "github.com/skyrise-games/airport-tycoon/internal/infrastructure/db/mongo"
	redisdb "github.com/skyrise-games/airport-tycoon/internal/infrastructure/db/redis"
	"github.com/skyrise-games/airport-tycoon/internal/scheduler"
	"github.com/skyrise-games/airport-tycoon/pkg/logger"
)

const shutdownTimeout = 10 * time.Second

func main() {
	cfg := config.Load(slog.Default())
	if cfg.JWTSecret == "" {
		slog.Error("JWT_SECRET is required")
		os.Exit(1)
	}

	log := logger.Init(logger.Options{
		Level:  cfg.LogLevel,
		Pretty: cfg.Env == "development",
	})

	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	// --- Stores ---
	mongoClient, db, err := mongodb.Connect(ctx, mongodb.Config{
		URI:      cfg.Mongo.URI,
		Database: cfg.Mongo.Database,
	})
	if err != nil {
		log.Fatal().Err(err).Msg("mongo connection failed")
	}
	defer func() {
		disconnectCtx, cancel := context.WithTimeout(context.Background(), shutdownTimeout)
		defer cancel()
		_ = mongoClient.Disconnect(disconnectCtx)
	}()

	rdb, err := redisdb.Connect(ctx, redisdb.Config{
		Addr: cfg.Redis.Addr,
		DB:   cfg.Redis.DB,
	})
	if err != nil {
		log.Fatal().Err(err).Msg("redis connection failed")
	}
	defer func() { _ = rdb.Close() }()

	// --- Repositories ---
	userRepo := mongodb.NewUserRepository(db)
	profileRepo := mongodb.NewProfileRepository(db)
	airportRepo := mongodb.NewAirportRepository(db)
	aircraftRepo := mongodb.NewAircraftRepository(db)
	transactionRepo := mongodb.NewTransactionRepository(db)
	settingRepo := mongodb.NewSettingRepository(db)

	for name, idx := range map[string]interface {
		EnsureIndexes(ctx context.Context) error
	}{
		"users":        userRepo,
		"profiles":     profileRepo,
		"airports":     airportRepo,
		"aircraft":     aircraftRepo,
		"transactions": transactionRepo,
		"settings":     settingRepo,
	} {
		if err := idx.EnsureIndexes(ctx); err != nil {
			log.Fatal().Err(err).Str("collection", name).Msg("index creation failed")
		}
	}

	uow := mongodb.NewUnitOfWork(mongoClient, cfg.Mongo.Transactions, logger.Component("uow"))
	locker := redisdb.NewAirportLock(rdb)

	// --- Services ---
	settingsService := service.NewSettingsService(settingRepo, logger.Component("settings"))
	if err := settingsService.EnsureDefaults(ctx); err != nil {
		log.Fatal().Err(err).Msg("settings initialisation failed")
	}

	authService := service.NewAuthService(userRepo, settingsService, cfg.JWTSecret, cfg.TokenTTL, logger.Component("auth"))
	gameService := service.NewGameService(userRepo, profileRepo, airportRepo, uow, logger.Component("game"))
	fleetService := service.NewFleetService(profileRepo, airportRepo, aircraftRepo, transactionRepo, uow, logger.Component("fleet"))
	parkingService := service.NewParkingService(userRepo, profileRepo, airportRepo, aircraftRepo, transactionRepo, uow, locker, logger.Component("parking"))
	upgradeService := service.NewUpgradeService(profileRepo, airportRepo, transactionRepo, uow, logger.Component("upgrade"))
	dashboardService := service.NewDashboardService(userRepo, profileRepo, airportRepo, aircraftRepo, transactionRepo, logger.Component("dashboard"))
	userAdminService := service.NewUserAdminService(userRepo, logger.Component("admin"))

	// --- Background schedulers ---
	sweeper := scheduler.NewSweeper(airportRepo, parkingService, cfg.Game.SweepInterval, cfg.Game.SweepWorkers, logger.Component("sweeper"))
	sweeper.Start(ctx)

	arrivals := scheduler.NewArrivalRunner(fleetService, cfg.Game.ArrivalInterval, logger.Component("arrivals"))
	arrivals.Start(ctx)

	// --- HTTP ---
	e := api.NewRouter(
		handler.NewAuthHandler(authService),
		handler.NewGameHandler(gameService, fleetService, parkingService, upgradeService, dashboardService),
		handler.NewAdminHandler(userAdminService, settingsService),
		handler.NewHealthHandler(db, rdb),
		cfg.JWTSecret,
		logger.Component("api"),
	)

	go func() {
		log.Info().Str("port", cfg.Port).Str("env", cfg.Env).Msg("server starting")
		if err := e.Start(":" + cfg.Port); err != nil && !errors.Is(err, http.ErrServerClosed) {
			log.Fatal().Err(err).Msg("server start failed")
		}
	}()

	<-ctx.Done()
	log.Info().Msg("shutting down")

	shutdownCtx, cancel := context.WithTimeout(context.Background(), shutdownTimeout)
	defer cancel()
	if err := e.Shutdown(shutdownCtx); err != nil {
		log.Error().Err(err).Msg("forced shutdown")
	}
	log.Info().Msg("server exited")
}
