// internal/api/api.go
package api

import (
	"net/http"
	"strings"
	"time"

	"github.com/andresuchdata/tariff-risk/backend-go/internal/api/handlers"
	"github.com/andresuchdata/tariff-risk/backend-go/internal/api/middleware"
	"github.com/andresuchdata/tariff-risk/backend-go/internal/service"
	"github.com/gin-contrib/cors"
	"github.com/gin-gonic/gin"
	"github.com/prometheus/client_golang/prometheus/promhttp"
)

type Services struct {
	CatalogService *service.CatalogService
	SessionService *service.SessionService
	ReportService  *service.ReportService
}

func NewRouter(services *Services, allowedOrigins []string) *gin.Engine {
	router := gin.New()

	router.Use(middleware.Logger())
	router.Use(middleware.Recovery())
	router.Use(middleware.Metrics())
	defaultOrigins := []string{"http://localhost:3000", "http://127.0.0.1:3000", "http://localhost:5173"}
	corsConfig := cors.Config{
		AllowOrigins:     defaultOrigins,
		AllowMethods:     []string{"GET", "POST", "PUT", "DELETE", "OPTIONS"},
		AllowHeaders:     []string{"Origin", "Content-Type", "Accept", "Authorization"},
		ExposeHeaders:    []string{"Content-Length", "Content-Disposition"},
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
		body := gin.H{"status": "ok"}
		if services != nil && services.SessionService != nil {
			body["sessions"] = services.SessionService.Count()
		}
		c.JSON(http.StatusOK, body)
	})
	router.GET("/metrics", gin.WrapH(promhttp.Handler()))

	apiGroup := router.Group("/api/v1")

	if services == nil {
		return router
	}

	if services.CatalogService != nil {
		overviewHandler := handlers.NewOverviewHandler(services.CatalogService)
		overviewGroup := apiGroup.Group("/overview")
		{
			overviewGroup.GET("/kpis", overviewHandler.GetKPIs)
			overviewGroup.GET("/categories", overviewHandler.GetCategories)
			overviewGroup.GET("/search", overviewHandler.Search)
			overviewGroup.GET("/new-sku-options", overviewHandler.GetNewSKUOptions)
		}

		skuHandler := handlers.NewSKUHandler(services.CatalogService)
		skuGroup := apiGroup.Group("/skus")
		{
			skuGroup.GET("", skuHandler.List)
			skuGroup.GET("/:id", skuHandler.Get)
			skuGroup.GET("/:id/alternatives", skuHandler.GetAlternatives)
			skuGroup.GET("/:id/scenario", skuHandler.GetScenario)
			skuGroup.GET("/:id/charts", skuHandler.GetCharts)
		}

		adminHandler := handlers.NewAdminHandler(services.CatalogService)
		adminGroup := apiGroup.Group("/admin")
		{
			adminGroup.GET("/feeds", adminHandler.ListFeeds)
			adminGroup.POST("/feeds/:id/refresh", adminHandler.RefreshFeed)
		}
	}

	if services.SessionService != nil {
		sessionHandler := handlers.NewSessionHandler(services.SessionService)
		alertHandler := handlers.NewAlertHandler(services.SessionService)

		apiGroup.GET("/alerts/conditions", alertHandler.Conditions)

		sessionGroup := apiGroup.Group("/sessions")
		{
			sessionGroup.POST("", sessionHandler.Create)
			sessionGroup.GET("/:id", sessionHandler.Get)
			sessionGroup.DELETE("/:id", sessionHandler.Delete)
			sessionGroup.POST("/:id/dashboard", sessionHandler.Dispatch)
			sessionGroup.POST("/:id/search", sessionHandler.Search)
			sessionGroup.GET("/:id/search", sessionHandler.GetSearch)
			sessionGroup.POST("/:id/search/close", sessionHandler.CloseSearch)
			sessionGroup.PUT("/:id/scenario", sessionHandler.SetScenario)

			alertGroup := sessionGroup.Group("/:id/alerts")
			{
				alertGroup.GET("", alertHandler.List)
				alertGroup.POST("", alertHandler.Create)
				alertGroup.POST("/evaluate", alertHandler.Evaluate)
				alertGroup.PUT("/:alertId", alertHandler.Update)
				alertGroup.DELETE("/:alertId", alertHandler.Delete)
				alertGroup.POST("/:alertId/toggle", alertHandler.Toggle)
			}
		}
	}

	if services.ReportService != nil {
		exportHandler := handlers.NewExportHandler(services.ReportService)
		exportGroup := apiGroup.Group("/exports")
		{
			exportGroup.GET("/high-risk-skus.csv", exportHandler.HighRiskSKUs)
			exportGroup.GET("/category-analysis.csv", exportHandler.CategoryAnalysis)
			exportGroup.GET("/supplier-alternatives.csv", exportHandler.SupplierAlternatives)
			exportGroup.GET("/executive-summary.pdf", exportHandler.ExecutiveSummary)
			exportGroup.GET("/sourcing-report/:id", exportHandler.SourcingReport)
			exportGroup.GET("/sourcing-report/:id/document", exportHandler.SourcingDocument)
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
