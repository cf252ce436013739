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

	"github.com/joho/godotenv"

	"github.com/dartsliga/league-system/config"
	"github.com/dartsliga/league-system/db"
	"github.com/dartsliga/league-system/handlers"
	"github.com/dartsliga/league-system/live"
	"github.com/dartsliga/league-system/repositories"
	"github.com/dartsliga/league-system/routes"
	"github.com/dartsliga/league-system/services"
	"github.com/dartsliga/league-system/storage"
)

const (
	dbConnectTimeout = 10 * time.Second
	shutdownTimeout  = 15 * time.Second
)

func main() {
	logger := slog.New(slog.NewJSONHandler(os.Stdout, nil))
	slog.SetDefault(logger)

	if err := godotenv.Load(); err != nil {
		logger.Info("no .env file found, relying on environment")
	}

	cfg, err := config.Load()
	if err != nil {
		logger.Error("invalid configuration", slog.String("error", err.Error()))
		os.Exit(1)
	}

	pool, err := db.Connect(cfg.DatabaseURL, dbConnectTimeout)
	if err != nil {
		logger.Error("database connection failed", slog.String("error", err.Error()))
		os.Exit(1)
	}
	defer pool.Close()
	logger.Info("database connected")

	var uploader storage.FileUploader
	if cfg.R2Configured() {
		uploader, err = storage.NewCloudflareR2Uploader(storage.CloudflareR2UploaderConfig{
			AccountID:       cfg.R2AccountID,
			AccessKeyID:     cfg.R2AccessKeyID,
			SecretAccessKey: cfg.R2SecretAccessKey,
			BucketName:      cfg.R2BucketName,
			PublicBaseURL:   cfg.R2PublicBaseURL,
		})
		if err != nil {
			logger.Error("object storage init failed", slog.String("error", err.Error()))
			os.Exit(1)
		}
		logger.Info("object storage configured")
	} else {
		logger.Warn("object storage not configured, uploads disabled")
	}

	// Repositories
	txManager := repositories.NewTxManager(pool)
	seasonRepo := repositories.NewPostgresSeasonRepository(pool)
	teamRepo := repositories.NewPostgresTeamRepository(pool)
	playerRepo := repositories.NewPostgresPlayerRepository(pool)
	statsRepo := repositories.NewPostgresPlayerStatsRepository(pool)
	matchRepo := repositories.NewPostgresMatchRepository(pool)
	gameRepo := repositories.NewPostgresGameRepository(pool)
	eventRepo := repositories.NewPostgresGameEventRepository(pool)
	postRepo := repositories.NewPostgresPostRepository(pool)
	userRepo := repositories.NewPostgresUserRepository(pool)

	// Live feed
	hub := live.NewHub()
	go hub.Run()

	// Services
	authService := services.NewAuthService(userRepo, teamRepo, cfg.JWTSecretKey, cfg.TokenTTL, logger)
	seasonService := services.NewSeasonService(seasonRepo, txManager, logger)
	teamService := services.NewTeamService(teamRepo, playerRepo, uploader, logger)
	playerService := services.NewPlayerService(playerRepo, teamRepo, logger)
	matchService := services.NewMatchService(matchRepo, teamRepo, gameRepo, eventRepo, logger)
	resultService := services.NewResultService(txManager, matchRepo, gameRepo, eventRepo, statsRepo, hub, logger)
	standingsService := services.NewStandingsService(seasonRepo, teamRepo, matchRepo)
	statsService := services.NewStatsService(statsRepo, playerRepo)
	postService := services.NewPostService(postRepo, uploader, logger)
	userService := services.NewUserService(userRepo)
	exportService := services.NewExportService(matchService, standingsService, seasonService, playerService)

	router := routes.Setup(routes.Handlers{
		Auth:      handlers.NewAuthHandler(authService),
		Season:    handlers.NewSeasonHandler(seasonService),
		Team:      handlers.NewTeamHandler(teamService),
		Player:    handlers.NewPlayerHandler(playerService),
		Match:     handlers.NewMatchHandler(matchService, resultService),
		Standings: handlers.NewStandingsHandler(standingsService),
		Stats:     handlers.NewStatsHandler(statsService),
		Post:      handlers.NewPostHandler(postService),
		User:      handlers.NewUserHandler(userService, authService),
		Export:    handlers.NewExportHandler(exportService),
		Live:      handlers.NewLiveHandler(hub, logger),
	}, cfg.JWTSecretKey, cfg.CORSAllowedOrigins)

	server := &http.Server{
		Addr:         ":" + cfg.ServerPort,
		Handler:      router,
		ReadTimeout:  15 * time.Second,
		WriteTimeout: 30 * time.Second,
		IdleTimeout:  60 * time.Second,
	}

	errCh := make(chan error, 1)
	go func() {
		logger.Info("server starting", slog.String("port", cfg.ServerPort))
		errCh <- server.ListenAndServe()
	}()

	stop := make(chan os.Signal, 1)
	signal.Notify(stop, os.Interrupt, syscall.SIGTERM)

	select {
	case err := <-errCh:
		if err != nil && !errors.Is(err, http.ErrServerClosed) {
			logger.Error("server failed", slog.String("error", err.Error()))
			os.Exit(1)
		}
	case sig := <-stop:
		logger.Info("shutting down", slog.String("signal", sig.String()))
		ctx, cancel := context.WithTimeout(context.Background(), shutdownTimeout)
		defer cancel()
		if err := server.Shutdown(ctx); err != nil {
			logger.Error("graceful shutdown failed", slog.String("error", err.Error()))
			os.Exit(1)
		}
	}

	logger.Info("server stopped")
}
