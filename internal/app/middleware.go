package app

import (
	"time"

	httpMW "github.com/yungbote/contractpay-backend/internal/http/middleware"
	"github.com/yungbote/contractpay-backend/internal/platform/logger"
)

const limiterIdleTTL = 10 * time.Minute

type Middleware struct {
	Profile     *httpMW.ProfileMiddleware
	RateLimiter *httpMW.LimiterStore
}

func wireMiddleware(log *logger.Logger, cfg Config, services Services) Middleware {
	log.Info("Wiring middleware...")
	var limiter *httpMW.LimiterStore
	if cfg.RateLimitRPS > 0 {
		limiter = httpMW.NewLimiterStore(cfg.RateLimitRPS, cfg.RateLimitBurst, limiterIdleTTL)
	}
	return Middleware{
		Profile:     httpMW.NewProfileMiddleware(log, services.Profile),
		RateLimiter: limiter,
	}
}
