package handlers

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/shopspring/decimal"

	domainagg "github.com/yungbote/contractpay-backend/internal/domain/aggregates"
	"github.com/yungbote/contractpay-backend/internal/http/response"
	"github.com/yungbote/contractpay-backend/internal/services"
)

type BalanceHandler struct {
	deposits services.DepositService
}

func NewBalanceHandler(deposits services.DepositService) *BalanceHandler {
	return &BalanceHandler{deposits: deposits}
}

type depositRequest struct {
	Amount *decimal.Decimal `json:"amount"`
}

// POST /balances/deposit/:id
func (h *BalanceHandler) Deposit(c *gin.Context) {
	if _, ok := callerID(c); !ok {
		return
	}
	clientID, ok := pathUUID(c, "id")
	if !ok {
		return
	}
	var req depositRequest
	if c.Request.ContentLength != 0 {
		if err := c.ShouldBindJSON(&req); err != nil {
			response.RespondError(c, http.StatusBadRequest, string(domainagg.CodeMissingAmount), errBadAmount)
			return
		}
	}
	profile, err := h.deposits.DepositClient(c.Request.Context(), clientID, req.Amount)
	if err != nil {
		response.RespondAPIError(c, err)
		return
	}
	response.RespondOK(c, profile)
}
