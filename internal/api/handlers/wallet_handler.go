package handlers

import (
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"
	"github.com/uppi/backend/internal/api/dto"
)

// GetBalance handles GET /v1/wallet/balance
func (h *Handlers) GetBalance(c *gin.Context) {
	userID, ok := h.currentUser(c)
	if !ok {
		return
	}

	balance, err := h.Payments.Balance(c.Request.Context(), userID)
	if err != nil {
		h.respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, dto.BalanceResponse{Balance: balance})
}

// GetWalletHistory handles GET /v1/wallet/transactions
func (h *Handlers) GetWalletHistory(c *gin.Context) {
	userID, ok := h.currentUser(c)
	if !ok {
		return
	}
	limit, _ := strconv.Atoi(c.Query("limit"))

	txs, err := h.Payments.History(c.Request.Context(), userID, limit)
	if err != nil {
		h.respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"transactions": txs})
}

// Deposit handles POST /v1/wallet/deposit
func (h *Handlers) Deposit(c *gin.Context) {
	h.walletOperation(c, true)
}

// Withdraw handles POST /v1/wallet/withdraw
func (h *Handlers) Withdraw(c *gin.Context) {
	h.walletOperation(c, false)
}

func (h *Handlers) walletOperation(c *gin.Context, deposit bool) {
	userID, ok := h.currentUser(c)
	if !ok {
		return
	}

	var req dto.WalletOperationRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid request payload", "details": err.Error()})
		return
	}

	idempotencyKey := c.GetHeader("Idempotency-Key")

	var (
		tx  interface{}
		err error
	)
	if deposit {
		tx, err = h.Payments.Deposit(c.Request.Context(), userID, req.Amount, req.Description, idempotencyKey)
	} else {
		tx, err = h.Payments.Withdraw(c.Request.Context(), userID, req.Amount, req.Description, idempotencyKey)
	}
	if err != nil {
		h.respondError(c, err)
		return
	}
	c.JSON(http.StatusCreated, tx)
}
