package handlers

import (
	"github.com/gin-gonic/gin"

	"github.com/yungbote/contractpay-backend/internal/http/response"
	"github.com/yungbote/contractpay-backend/internal/services"
)

type ContractHandler struct {
	contracts services.ContractService
}

func NewContractHandler(contracts services.ContractService) *ContractHandler {
	return &ContractHandler{contracts: contracts}
}

// GET /contracts/:id
func (h *ContractHandler) GetContract(c *gin.Context) {
	profileID, ok := callerID(c)
	if !ok {
		return
	}
	contractID, ok := pathUUID(c, "id")
	if !ok {
		return
	}
	contract, err := h.contracts.ContractByID(c.Request.Context(), contractID, profileID)
	if err != nil {
		response.RespondAPIError(c, err)
		return
	}
	response.RespondOK(c, contract)
}

// GET /contracts
func (h *ContractHandler) ListContracts(c *gin.Context) {
	profileID, ok := callerID(c)
	if !ok {
		return
	}
	contracts, err := h.contracts.ContractsFor(c.Request.Context(), profileID)
	if err != nil {
		response.RespondAPIError(c, err)
		return
	}
	response.RespondOK(c, contracts)
}
