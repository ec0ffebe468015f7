package app

import (
	"github.com/panelgrid/panelgrid-backend/internal/domain"
	"github.com/panelgrid/panelgrid-backend/internal/pkg/ids"
	"github.com/panelgrid/panelgrid-backend/internal/pkg/logger"
	"github.com/panelgrid/panelgrid-backend/internal/services"
)

type Services struct {
	ChangeLog services.ChangeLogRecorder
	Centre    services.CentreService
	Asset     services.AssetService
}

func wireServices(r Repos, log *logger.Logger) Services {
	log.Info("Wiring services...")
	gen := ids.NewUUIDv7Generator()
	factory := domain.NewFactory(gen)
	changeLog := services.NewChangeLogRecorder(log, gen, r.ChangeLog)
	return Services{
		ChangeLog: changeLog,
		Centre:    services.NewCentreService(r.Tx, log, factory, r.Centre, r.Location, r.Allocation, changeLog),
		Asset:     services.NewAssetService(r.Tx, log, factory, r.Asset, r.Centre, r.Location, r.Allocation, changeLog),
	}
}
