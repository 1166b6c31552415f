package api

import (
	"net/http"
	"strings"
	"time"

	"github.com/andresuchdata/panaderia-reports/internal/api/handlers"
	"github.com/andresuchdata/panaderia-reports/internal/api/middleware"
	"github.com/andresuchdata/panaderia-reports/internal/service"
	"github.com/gin-contrib/cors"
	"github.com/gin-gonic/gin"
)

type Services struct {
	ReportService   *service.ReportService
	FavoriteService *service.FavoriteService
	SnapshotService *service.SnapshotService
}

func NewRouter(services *Services, allowedOrigins []string) *gin.Engine {
	router := gin.New()

	router.Use(middleware.RequestID())
	router.Use(middleware.Logger())
	router.Use(middleware.Recovery())
	defaultOrigins := []string{"http://localhost:3000", "http://127.0.0.1:3000"}
	corsConfig := cors.Config{
		AllowOrigins:     defaultOrigins,
		AllowMethods:     []string{"GET", "POST", "OPTIONS"},
		AllowHeaders:     []string{"Origin", "Content-Type", "Accept", "Authorization", middleware.RequestIDHeader},
		ExposeHeaders:    []string{"Content-Length", middleware.RequestIDHeader},
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
		if services.ReportService != nil {
			reportHandler := handlers.NewReportHandler(services.ReportService, services.FavoriteService)
			reportGroup := apiGroup.Group("/reports")
			{
				reportGroup.GET("", reportHandler.GetReports)
				reportGroup.GET("/years", reportHandler.GetYears)
				reportGroup.GET("/year/:year", reportHandler.GetReportsForYear)
				reportGroup.GET("/month/:dateKey", reportHandler.GetReportsForMonth)
				reportGroup.GET("/chart", reportHandler.GetChart)
				reportGroup.GET("/stats", reportHandler.GetStats)
				reportGroup.GET("/search", reportHandler.Search)
				reportGroup.GET("/top-products", reportHandler.GetTopProducts)
				reportGroup.GET("/insight/:id", reportHandler.GetInsight)
			}

			adminGroup := apiGroup.Group("/admin")
			{
				adminGroup.POST("/reload", reportHandler.Reload)
				adminGroup.GET("/collisions", reportHandler.GetCollisions)
			}
		}

		if services.SnapshotService != nil {
			snapshotHandler := handlers.NewSnapshotHandler(services.SnapshotService)
			snapshotGroup := apiGroup.Group("/admin")
			{
				snapshotGroup.GET("/snapshot", snapshotHandler.GetSnapshot)
				snapshotGroup.POST("/sync", snapshotHandler.Sync)
			}
		}

		if services.FavoriteService != nil {
			favoriteHandler := handlers.NewFavoriteHandler(services.FavoriteService)
			favoriteGroup := apiGroup.Group("/favorites")
			{
				favoriteGroup.GET("", favoriteHandler.GetFavorites)
				favoriteGroup.POST("/:kind/:id/toggle", favoriteHandler.ToggleFavorite)
			}
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
