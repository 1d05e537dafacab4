package middleware

import (
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/require"

	domainagg "github.com/yungbote/contractpay-backend/internal/domain/aggregates"
	"github.com/yungbote/contractpay-backend/internal/http/response"
	"github.com/yungbote/contractpay-backend/internal/observability"
)

func TestMetricsCountsLedgerErrorsByRoute(t *testing.T) {
	gin.SetMode(gin.TestMode)
	m := observability.New()

	r := gin.New()
	r.Use(Metrics(m))
	r.POST("/jobs/:id/pay", func(c *gin.Context) {
		response.RespondAPIError(c, domainagg.NewError(domainagg.CodeAlreadySettled, "pay", "job already paid", nil))
	})
	r.GET("/ok", func(c *gin.Context) { c.Status(http.StatusOK) })

	for _, path := range []string{"/jobs/a/pay", "/jobs/b/pay", "/ok"} {
		method := http.MethodPost
		if path == "/ok" {
			method = http.MethodGet
		}
		r.ServeHTTP(httptest.NewRecorder(), httptest.NewRequest(method, path, nil))
	}

	rec := httptest.NewRecorder()
	m.Handler().ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/metrics", nil))
	body := rec.Body.String()
	require.Contains(t, body, `cp_api_ledger_errors_total{code="already_settled",route="/jobs/:id/pay"} 2`)
	require.Contains(t, body, `cp_api_requests_total{method="GET",route="/ok",status="200"} 1`)
	require.NotContains(t, body, `route="/ok",code`)
}
