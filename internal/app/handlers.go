package app

import (
	"gorm.io/gorm"

	httpH "github.com/yungbote/contractpay-backend/internal/http/handlers"
	"github.com/yungbote/contractpay-backend/internal/platform/logger"
)

type Handlers struct {
	Health   *httpH.HealthHandler
	Contract *httpH.ContractHandler
	Job      *httpH.JobHandler
	Balance  *httpH.BalanceHandler
	Admin    *httpH.AdminHandler
}

func wireHandlers(db *gorm.DB, log *logger.Logger, services Services) Handlers {
	log.Info("Wiring handlers...")
	return Handlers{
		Health:   httpH.NewHealthHandler(db),
		Contract: httpH.NewContractHandler(services.Contract),
		Job:      httpH.NewJobHandler(services.Settlement, services.Contract),
		Balance:  httpH.NewBalanceHandler(services.Deposit),
		Admin:    httpH.NewAdminHandler(services.Report),
	}
}
