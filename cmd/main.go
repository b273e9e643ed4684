package main

import (
	"context"
	"os"
	"strconv"

	"github.com/cristianortiz/iplAuctioneer/internal/auction/application"
	"github.com/cristianortiz/iplAuctioneer/internal/auction/domain"
	"github.com/cristianortiz/iplAuctioneer/internal/auction/infra/repository/postgres"
	auctionws "github.com/cristianortiz/iplAuctioneer/internal/auction/infra/websocket"
	"github.com/cristianortiz/iplAuctioneer/internal/shared/db"
	"github.com/cristianortiz/iplAuctioneer/internal/shared/db/migrations"
	"github.com/cristianortiz/iplAuctioneer/internal/shared/httpserver"
	"github.com/cristianortiz/iplAuctioneer/internal/shared/logger"
	sharedws "github.com/cristianortiz/iplAuctioneer/internal/shared/websocket"
	"github.com/joho/godotenv"
	"go.uber.org/zap"
)

func main() {
	// Inicializa logger
	log := logger.GetLogger()
	defer log.Sync()

	log.Info("Starting iplAuctioneer server...")

	// Ejecuta migraciones de base de datos
	log.Info("Running database migrations...")
	if err := migrations.RunMigrations(); err != nil {
		log.Fatal("Database migration failed", zap.Error(err))
	}
	log.Info("Database migrations completed successfully.")

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	// Conexión a la base de datos (singleton)
	pool, err := db.GetPostgresDBPool(ctx)
	if err != nil {
		log.Fatal("Database connection failed", zap.Error(err))
	}
	defer pool.Close()

	// capa de persistencia
	sessionRepo := postgres.NewSessionRepository(pool)
	assignmentRepo := postgres.NewAssignmentRepository(pool)
	store := postgres.NewStore(sessionRepo, assignmentRepo, pool)

	// capa de aplicación
	startUC := application.NewStartSessionUseCase(store)
	commitUC := application.NewCommitAssignmentUseCase(store)
	correctUC := application.NewCorrectAssignmentUseCase(store)
	auctionService := application.NewAuctionService(startUC, commitUC, correctUC)

	// websocket hub + handler del módulo de subasta
	hub := sharedws.NewHub()
	go hub.Run(ctx)

	wsHandler := auctionws.NewAuctionWSHandler(auctionService, hub)
	go wsHandler.ListenForMessages(ctx)

	// Arranca el servidor HTTP
	server := httpserver.NewServer(auctionService, hub, sessionConfigFromEnv())
	if err := server.Start(":9000"); err != nil {
		log.Fatal("HTTP server failed", zap.Error(err))
	}
}

// sessionConfigFromEnv reads the AUCTION_* overrides, anything unset or
// unparsable keeps its default value
func sessionConfigFromEnv() domain.SessionConfig {
	_ = godotenv.Load()
	cfg := domain.DefaultSessionConfig()

	if v, err := strconv.ParseFloat(os.Getenv("AUCTION_STARTING_PURSE"), 64); err == nil {
		cfg.StartingPurse = v
	}
	if v, err := strconv.Atoi(os.Getenv("AUCTION_TOTAL_SLOTS")); err == nil {
		cfg.TotalSlots = v
	}
	if v, err := strconv.Atoi(os.Getenv("AUCTION_BATTER_SLOTS")); err == nil {
		cfg.BatterSlots = v
	}
	if v, err := strconv.Atoi(os.Getenv("AUCTION_BOWLER_SLOTS")); err == nil {
		cfg.BowlerSlots = v
	}
	if v, err := strconv.Atoi(os.Getenv("AUCTION_FOREIGN_SLOTS")); err == nil {
		cfg.ForeignSlots = v
	}
	return cfg
}
