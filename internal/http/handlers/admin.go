package handlers

import (
	"net/http"
	"strconv"
	"strings"

	"github.com/gin-gonic/gin"

	domainagg "github.com/yungbote/contractpay-backend/internal/domain/aggregates"
	"github.com/yungbote/contractpay-backend/internal/http/response"
	"github.com/yungbote/contractpay-backend/internal/services"
)

type AdminHandler struct {
	reports services.ReportService
}

func NewAdminHandler(reports services.ReportService) *AdminHandler {
	return &AdminHandler{reports: reports}
}

// GET /admin/best-profession?start=&end=
func (h *AdminHandler) BestProfession(c *gin.Context) {
	start, end, ok := reportWindow(c)
	if !ok {
		return
	}
	best, err := h.reports.BestProfession(c.Request.Context(), start, end)
	if err != nil {
		response.RespondAPIError(c, err)
		return
	}
	response.RespondOK(c, best)
}

// GET /admin/best-clients?start=&end=&limit=
func (h *AdminHandler) BestClients(c *gin.Context) {
	start, end, ok := reportWindow(c)
	if !ok {
		return
	}
	limit := 0
	if raw := strings.TrimSpace(c.Query("limit")); raw != "" {
		n, err := strconv.Atoi(raw)
		if err != nil || n <= 0 {
			response.RespondError(c, http.StatusBadRequest, string(domainagg.CodeInvalidArgument), errBadLimit)
			return
		}
		limit = n
	}
	clients, err := h.reports.BestClients(c.Request.Context(), start, end, limit)
	if err != nil {
		response.RespondAPIError(c, err)
		return
	}
	response.RespondOK(c, clients)
}
