package middleware

import (
	"strconv"
	"time"

	"github.com/gin-gonic/gin"

	domainagg "github.com/yungbote/contractpay-backend/internal/domain/aggregates"
	"github.com/yungbote/contractpay-backend/internal/observability"
)

// Metrics records per-route latency and, for requests that ended in a ledger
// error, the error code. Routes are labelled by template, never by raw path.
func Metrics(m *observability.Metrics) gin.HandlerFunc {
	if m == nil {
		return func(c *gin.Context) { c.Next() }
	}
	return func(c *gin.Context) {
		m.ApiInflightInc()
		start := time.Now()
		c.Next()
		elapsed := time.Since(start)
		m.ApiInflightDec()

		route := c.FullPath()
		if route == "" {
			route = "unmatched"
		}
		m.ObserveAPI(c.Request.Method, route, strconv.Itoa(c.Writer.Status()), elapsed)
		if last := c.Errors.Last(); last != nil {
			if code := domainagg.CodeOf(last.Err); code != "" {
				m.IncLedgerError(route, string(code))
			}
		}
	}
}
