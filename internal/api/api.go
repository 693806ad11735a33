// internal/api/api.go
package api

import (
	"net/http"
	"strings"
	"time"

	"github.com/gin-contrib/cors"
	"github.com/gin-gonic/gin"

	"github.com/pharmastock/pharmastock/internal/api/handlers"
	"github.com/pharmastock/pharmastock/internal/api/middleware"
	"github.com/pharmastock/pharmastock/internal/forecast"
	"github.com/pharmastock/pharmastock/internal/service"
)

type Services struct {
	RecommendationService *service.RecommendationService
	ForecastClient        *forecast.Client
}

func NewRouter(services *Services, allowedOrigins []string) *gin.Engine {
	router := gin.New()

	router.Use(middleware.Logger())
	router.Use(middleware.Recovery())
	defaultOrigins := []string{"http://localhost:3000", "http://127.0.0.1:3000"}
	corsConfig := cors.Config{
		AllowOrigins:     defaultOrigins,
		AllowMethods:     []string{"GET", "POST", "PUT", "DELETE", "OPTIONS"},
		AllowHeaders:     []string{"Origin", "Content-Type", "Accept", "Authorization"},
		ExposeHeaders:    []string{"Content-Length"},
		AllowCredentials: true,
		MaxAge:           12 * time.Hour,
	}
	if len(allowedOrigins) > 0 {
		normalizedOrigins, allowAll := normalizeAllowedOrigins(allowedOrigins)
		if allowAll {
			corsConfig.AllowOrigins = nil
			corsConfig.AllowOriginFunc = func(origin string) bool { return true }
		} else if len(normalizedOrigins) > 0 {
			corsConfig.AllowOrigins = normalizedOrigins
		}
	}
	router.Use(cors.New(corsConfig))

	router.GET("/health", func(c *gin.Context) {
		c.JSON(http.StatusOK, gin.H{"status": "ok"})
	})

	apiGroup := router.Group("/api/v1")

	if services != nil {
		if services.RecommendationService != nil {
			recHandler := handlers.NewRecommendationHandler(services.RecommendationService)
			recGroup := apiGroup.Group("/recommendations")
			{
				recGroup.GET("", recHandler.GetRecommendations)
				recGroup.GET("/summary", recHandler.GetSummary)
				recGroup.POST("/refresh", recHandler.Refresh)
			}
		}

		if services.ForecastClient != nil {
			forecastHandler := handlers.NewForecastHandler(services.ForecastClient)
			apiGroup.GET("/forecast/:drug_id", forecastHandler.GetForecast)
		}
	}

	return router
}

func normalizeAllowedOrigins(origins []string) ([]string, bool) {
	var (
		parsed   []string
		allowAll bool
	)
	for _, origin := range origins {
		parts := strings.Split(origin, ",")
		for _, part := range parts {
			trimmed := strings.TrimSpace(part)
			if trimmed == "" {
				continue
			}
			if trimmed == "*" {
				allowAll = true
				continue
			}
			parsed = append(parsed, trimmed)
		}
	}
	return parsed, allowAll
}
