package app

import (
	"gorm.io/gorm"

	"github.com/yungbote/contractpay-backend/internal/clients/redis"
	"github.com/yungbote/contractpay-backend/internal/data/aggregates"
	"github.com/yungbote/contractpay-backend/internal/observability"
	"github.com/yungbote/contractpay-backend/internal/platform/logger"
	"github.com/yungbote/contractpay-backend/internal/services"
)

type Services struct {
	Profile    services.ProfileService
	Contract   services.ContractService
	Settlement services.SettlementService
	Deposit    services.DepositService
	Report     services.ReportService

	// ReportCache is nil when REDIS_ADDR is unset or unreachable.
	ReportCache redis.Cache
}

func wireServices(db *gorm.DB, log *logger.Logger, cfg Config, reposet Repos, metrics *observability.Metrics) Services {
	log.Info("Wiring services...")

	base := aggregates.BaseDeps{
		DB:        db,
		Log:       log,
		Hooks:     aggregates.NewObservabilityHooks(metrics),
		TxTimeout: cfg.TxTimeout,
	}
	settlementAgg := aggregates.NewSettlementAggregate(aggregates.SettlementDeps{
		BaseDeps: base,
		Jobs:     reposet.Job,
		Profiles: reposet.Profile,
	})
	depositAgg := aggregates.NewDepositAggregate(aggregates.DepositDeps{
		BaseDeps: base,
		Profiles: reposet.Profile,
	})

	var cache redis.Cache
	if cfg.RedisAddr != "" && cfg.ReportCacheTTL > 0 {
		c, err := redis.NewCache(log, cfg.RedisAddr, cfg.RedisPrefix)
		if err != nil {
			log.Warn("Report cache disabled", "addr", cfg.RedisAddr, "error", err)
		} else {
			cache = c
		}
	}

	reports := services.NewReportService(db, log, reposet.Job)
	reports = services.NewCachedReportService(reports, cache, cfg.ReportCacheTTL, metrics, log)

	return Services{
		Profile:     services.NewProfileService(db, log, reposet.Profile),
		Contract:    services.NewContractService(db, log, reposet.Contract, reposet.Job),
		Settlement:  services.NewSettlementService(db, log, reposet.Job, reposet.Profile, settlementAgg),
		Deposit:     services.NewDepositService(db, log, reposet.Job, reposet.Profile, depositAgg),
		Report:      reports,
		ReportCache: cache,
	}
}
