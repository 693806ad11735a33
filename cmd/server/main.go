// cmd/server/main.go
package main

import (
	"context"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/joho/godotenv"

	"github.com/pharmastock/pharmastock/internal/api"
	"github.com/pharmastock/pharmastock/internal/cache"
	"github.com/pharmastock/pharmastock/internal/config"
	"github.com/pharmastock/pharmastock/internal/engine"
	"github.com/pharmastock/pharmastock/internal/forecast"
	"github.com/pharmastock/pharmastock/internal/repository/postgres"
	"github.com/pharmastock/pharmastock/internal/service"
	"github.com/pharmastock/pharmastock/pkg/logger"
)

func main() {
	_ = godotenv.Load()

	cfg := config.Load()

	logger.SetLevel(cfg.Server.Mode)
	if cfg.Server.Mode == "debug" {
		gin.SetMode(gin.DebugMode)
	} else {
		gin.SetMode(gin.ReleaseMode)
	}

	db, err := postgres.NewDB(&cfg.Database)
	if err != nil {
		logger.Log.Fatal().Err(err).Msg("Failed to connect to database")
	}
	defer db.Close()

	recCache, err := cache.NewRecommendationCache(cfg.Cache)
	if err != nil {
		logger.Log.Warn().Err(err).Msg("Cache unavailable, serving without it")
		recCache = cache.NewNoopRecommendationCache()
	}

	repo := postgres.NewSignalRepository(db)
	eng := engine.New(repo, cfg.Engine)
	recService := service.NewRecommendationService(repo, eng, recCache)

	services := &api.Services{
		RecommendationService: recService,
	}
	if cfg.Forecast.Enabled {
		forecastClient, err := forecast.NewClient(cfg.Forecast)
		if err != nil {
			logger.Log.Warn().Err(err).Msg("Forecast client disabled")
		} else {
			services.ForecastClient = forecastClient
		}
	}

	router := api.NewRouter(services, cfg.Server.AllowedOrigins)
	srv := &http.Server{
		Addr:         ":" + cfg.Server.Port,
		Handler:      router,
		ReadTimeout:  time.Duration(cfg.Server.ReadTimeout) * time.Second,
		WriteTimeout: time.Duration(cfg.Server.WriteTimeout) * time.Second,
	}

	go func() {
		logger.Log.Info().Str("port", cfg.Server.Port).Msg("Starting server")
		if err := srv.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			logger.Log.Fatal().Err(err).Msg("Failed to start server")
		}
	}()

	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit
	logger.Log.Info().Msg("Shutting down server...")

	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()

	if err := srv.Shutdown(ctx); err != nil {
		logger.Log.Fatal().Err(err).Msg("Server forced to shutdown")
	}

	logger.Log.Info().Msg("Server exiting")
}
