package app

import (
	"gorm.io/gorm"

	"github.com/panelgrid/panelgrid-backend/internal/pkg/logger"
	"github.com/panelgrid/panelgrid-backend/internal/repos"
)

type Repos struct {
	Tx         repos.TxManager
	Centre     repos.CentreRepo
	Location   repos.LocationRepo
	Asset      repos.AssetRepo
	Allocation repos.AllocationRepo
	ChangeLog  repos.ChangeLogRepo
}

func wireRepos(db *gorm.DB, log *logger.Logger) Repos {
	log.Info("Wiring repos...")
	return Repos{
		Tx:         repos.NewTxManager(db),
		Centre:     repos.NewCentreRepo(db, log),
		Location:   repos.NewLocationRepo(db, log),
		Asset:      repos.NewAssetRepo(db, log),
		Allocation: repos.NewAllocationRepo(db, log),
		ChangeLog:  repos.NewChangeLogRepo(db, log),
	}
}
