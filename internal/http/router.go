package http

import (
	"github.com/gin-gonic/gin"
	"go.opentelemetry.io/contrib/instrumentation/github.com/gin-gonic/gin/otelgin"

	httpH "github.com/yungbote/contractpay-backend/internal/http/handlers"
	httpMW "github.com/yungbote/contractpay-backend/internal/http/middleware"
	"github.com/yungbote/contractpay-backend/internal/observability"
	"github.com/yungbote/contractpay-backend/internal/platform/logger"
)

type RouterConfig struct {
	Log         *logger.Logger
	Metrics     *observability.Metrics
	ServiceName string
	CORSOrigins []string

	ProfileMiddleware *httpMW.ProfileMiddleware
	RateLimiter       *httpMW.LimiterStore

	ContractHandler *httpH.ContractHandler
	JobHandler      *httpH.JobHandler
	BalanceHandler  *httpH.BalanceHandler
	AdminHandler    *httpH.AdminHandler
	HealthHandler   *httpH.HealthHandler
}

func NewRouter(cfg RouterConfig) *gin.Engine {
	r := gin.New()
	r.Use(gin.Recovery())
	if cfg.ServiceName != "" {
		r.Use(otelgin.Middleware(cfg.ServiceName))
	}
	r.Use(httpMW.AttachTraceContext())
	r.Use(httpMW.RequestLogger(cfg.Log))
	r.Use(httpMW.Metrics(cfg.Metrics))
	r.Use(httpMW.CORS(cfg.CORSOrigins))

	// Health
	if cfg.HealthHandler != nil {
		r.GET("/healthcheck", cfg.HealthHandler.HealthCheck)
	}
	if cfg.Metrics != nil {
		r.GET("/metrics", gin.WrapH(cfg.Metrics.Handler()))
	}

	protected := r.Group("/")
	{
		if cfg.ProfileMiddleware != nil {
			protected.Use(cfg.ProfileMiddleware.RequireProfile())
		}
		protected.Use(httpMW.RateLimit(cfg.RateLimiter, cfg.Metrics))

		// Contracts
		if cfg.ContractHandler != nil {
			protected.GET("/contracts/:id", cfg.ContractHandler.GetContract)
			protected.GET("/contracts", cfg.ContractHandler.ListContracts)
		}

		// Jobs
		if cfg.JobHandler != nil {
			protected.GET("/jobs/unpaid", cfg.JobHandler.ListUnpaid)
			protected.POST("/jobs/:id/pay", cfg.JobHandler.PayJob)
		}

		// Balances
		if cfg.BalanceHandler != nil {
			protected.POST("/balances/deposit/:id", cfg.BalanceHandler.Deposit)
		}

		// Admin reports
		if cfg.AdminHandler != nil {
			protected.GET("/admin/best-profession", cfg.AdminHandler.BestProfession)
			protected.GET("/admin/best-clients", cfg.AdminHandler.BestClients)
		}
	}

	return r
}
