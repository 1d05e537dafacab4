package handlers

import (
	"github.com/gin-gonic/gin"

	"github.com/yungbote/contractpay-backend/internal/http/response"
	"github.com/yungbote/contractpay-backend/internal/services"
)

type JobHandler struct {
	settlement services.SettlementService
	contracts  services.ContractService
}

func NewJobHandler(settlement services.SettlementService, contracts services.ContractService) *JobHandler {
	return &JobHandler{settlement: settlement, contracts: contracts}
}

// GET /jobs/unpaid
func (h *JobHandler) ListUnpaid(c *gin.Context) {
	profileID, ok := callerID(c)
	if !ok {
		return
	}
	jobs, err := h.contracts.UnpaidJobs(c.Request.Context(), profileID)
	if err != nil {
		response.RespondAPIError(c, err)
		return
	}
	response.RespondOK(c, jobs)
}

// POST /jobs/:id/pay
func (h *JobHandler) PayJob(c *gin.Context) {
	profileID, ok := callerID(c)
	if !ok {
		return
	}
	jobID, ok := pathUUID(c, "id")
	if !ok {
		return
	}
	job, err := h.settlement.PayJob(c.Request.Context(), jobID, profileID)
	if err != nil {
		response.RespondAPIError(c, err)
		return
	}
	response.RespondOK(c, job)
}
