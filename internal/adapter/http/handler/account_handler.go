package handler

import (
	"strconv"

	"credit-arcade/internal/adapter/http/dto"
	"credit-arcade/internal/adapter/http/middleware"
	"credit-arcade/internal/core/ports"
	"credit-arcade/pkg/apperror"
	"credit-arcade/pkg/response"

	"github.com/gin-gonic/gin"
)

// AccountHandler serves the dashboard's balance and ledger views.
type AccountHandler struct {
	accountSvc ports.AccountService
}

// NewAccountHandler creates a new AccountHandler.
func NewAccountHandler(accountSvc ports.AccountService) *AccountHandler {
	return &AccountHandler{accountSvc: accountSvc}
}

// GetBalance handles GET /api/v1/account/balance.
func (h *AccountHandler) GetBalance(c *gin.Context) {
	identity := middleware.Identity(c)

	balance, err := h.accountSvc.GetBalance(c.Request.Context(), identity)
	if err != nil {
		response.Error(c, err)
		return
	}

	response.OK(c, dto.BalanceResponse{
		DiscordID: identity,
		Balance:   dto.Money(balance),
	})
}

// ListLedger handles GET /api/v1/account/ledger?limit=N.
func (h *AccountHandler) ListLedger(c *gin.Context) {
	limit := 0
	if raw := c.Query("limit"); raw != "" {
		n, err := strconv.Atoi(raw)
		if err != nil || n < 0 {
			response.Error(c, apperror.Validation("limit must be a non-negative integer"))
			return
		}
		limit = n
	}

	entries, err := h.accountSvc.ListLedger(c.Request.Context(), middleware.Identity(c), limit)
	if err != nil {
		response.Error(c, err)
		return
	}

	response.OK(c, dto.NewLedgerListResponse(entries))
}
