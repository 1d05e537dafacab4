package app

import (
	"gorm.io/gorm"

	repos "github.com/yungbote/contractpay-backend/internal/data/repos/ledger"
	"github.com/yungbote/contractpay-backend/internal/platform/logger"
)

type Repos struct {
	Profile  repos.ProfileRepo
	Contract repos.ContractRepo
	Job      repos.JobRepo
}

func wireRepos(db *gorm.DB, log *logger.Logger) Repos {
	log.Info("Wiring repos...")
	return Repos{
		Profile:  repos.NewProfileRepo(db, log),
		Contract: repos.NewContractRepo(db, log),
		Job:      repos.NewJobRepo(db, log),
	}
}
