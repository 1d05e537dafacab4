package app

import (
	apphttp "github.com/yungbote/contractpay-backend/internal/http"
	"github.com/yungbote/contractpay-backend/internal/observability"
	"github.com/yungbote/contractpay-backend/internal/platform/logger"
)

func wireRouter(log *logger.Logger, cfg Config, metrics *observability.Metrics, handlers Handlers, mw Middleware) *apphttp.Server {
	log.Info("Wiring router...")
	serviceName := ""
	if cfg.Otel.Enabled {
		serviceName = cfg.Otel.ServiceName
	}
	return apphttp.NewServer(apphttp.RouterConfig{
		Log:               log,
		Metrics:           metrics,
		ServiceName:       serviceName,
		CORSOrigins:       cfg.CORSOrigins,
		ProfileMiddleware: mw.Profile,
		RateLimiter:       mw.RateLimiter,
		ContractHandler:   handlers.Contract,
		JobHandler:        handlers.Job,
		BalanceHandler:    handlers.Balance,
		AdminHandler:      handlers.Admin,
		HealthHandler:     handlers.Health,
	})
}
