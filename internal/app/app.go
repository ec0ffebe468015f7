package app

import (
	"github.com/gin-gonic/gin"
	"gorm.io/gorm"

	"github.com/panelgrid/panelgrid-backend/internal/handlers"
	"github.com/panelgrid/panelgrid-backend/internal/middleware"
	"github.com/panelgrid/panelgrid-backend/internal/pkg/logger"
	"github.com/panelgrid/panelgrid-backend/internal/server"
)

// App holds the wired application graph.
type App struct {
	Config   Config
	Repos    Repos
	Services Services
	Router   *gin.Engine
}

func New(db *gorm.DB, log *logger.Logger) *App {
	cfg := LoadConfig(log)
	r := wireRepos(db, log)
	svcs := wireServices(r, log)

	centreHandler := handlers.NewCentreHandler(log, svcs.Centre)
	assetHandler := handlers.NewAssetHandler(log, svcs.Asset)
	authMiddleware := middleware.NewAuthMiddleware(log, cfg.JWTSecretKey)

	router := server.NewRouter(server.RouterConfig{
		ServiceName:    cfg.ServiceName,
		AllowedOrigins: cfg.AllowedOrigins,
		AuthMiddleware: authMiddleware,
		CentreHandler:  centreHandler,
		AssetHandler:   assetHandler,
	})

	return &App{
		Config:   cfg,
		Repos:    r,
		Services: svcs,
		Router:   router,
	}
}
