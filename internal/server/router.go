package server

import (
	"github.com/gin-contrib/cors"
	"github.com/gin-gonic/gin"
	"go.opentelemetry.io/contrib/instrumentation/github.com/gin-gonic/gin/otelgin"

	"github.com/panelgrid/panelgrid-backend/internal/handlers"
	"github.com/panelgrid/panelgrid-backend/internal/middleware"
)

type RouterConfig struct {
	ServiceName    string
	AllowedOrigins []string
	AuthMiddleware *middleware.AuthMiddleware
	CentreHandler  *handlers.CentreHandler
	AssetHandler   *handlers.AssetHandler
}

func NewRouter(cfg RouterConfig) *gin.Engine {
	router := gin.Default()

	router.Use(otelgin.Middleware(cfg.ServiceName))
	router.Use(cors.New(cors.Config{
		AllowOrigins:     cfg.AllowedOrigins,
		AllowMethods:     []string{"GET", "POST", "PUT", "DELETE", "PATCH", "OPTIONS"},
		AllowHeaders:     []string{"Authorization", "Content-Type", "X-Requested-With"},
		AllowCredentials: true,
	}))

	router.GET("/healthcheck", handlers.HealthCheck)

	api := router.Group("/api")
	api.Use(cfg.AuthMiddleware.RequireAuth())

	// Centres
	api.POST("/centres", cfg.CentreHandler.CreateCentre)
	api.GET("/centres", cfg.CentreHandler.ListCentres)
	api.GET("/centres/:id", cfg.CentreHandler.GetCentre)
	api.PATCH("/centres/:id", cfg.CentreHandler.UpdateCentre)
	api.DELETE("/centres/:id", cfg.CentreHandler.DeleteCentre)
	// Locations
	api.POST("/centres/:id/locations", cfg.CentreHandler.AddLocation)
	api.GET("/centres/:id/locations", cfg.CentreHandler.ListLocations)
	api.PATCH("/centres/:id/locations/:locationId", cfg.CentreHandler.UpdateLocation)
	api.DELETE("/centres/:id/locations/:locationId", cfg.CentreHandler.RemoveLocation)
	// Assets
	api.POST("/assets", cfg.AssetHandler.CreateAsset)
	api.GET("/assets", cfg.AssetHandler.ListAssets)
	api.GET("/assets/:id", cfg.AssetHandler.GetAsset)
	api.PATCH("/assets/:id", cfg.AssetHandler.UpdateAsset)
	api.DELETE("/assets/:id", cfg.AssetHandler.DeleteAsset)
	// Allocation
	api.POST("/assets/:id/allocate", cfg.AssetHandler.Allocate)
	api.POST("/assets/:id/deallocate", cfg.AssetHandler.Deallocate)
	api.GET("/assets/:id/allocation", cfg.AssetHandler.GetAllocation)

	return router
}
