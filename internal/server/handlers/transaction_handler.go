package handlers

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"

	"github.com/warewise/slotkeeper/internal/domain/models"
	"github.com/warewise/slotkeeper/internal/service/transactions"
)

// TransactionHandler exposes the mutation surface of the transaction engine.
type TransactionHandler struct {
	engine *transactions.Engine
	logger *zap.Logger
}

// NewTransactionHandler constructs the mutation HTTP adapter.
func NewTransactionHandler(engine *transactions.Engine, logger *zap.Logger) *TransactionHandler {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &TransactionHandler{engine: engine, logger: logger}
}

// Enter creates a single lot, stacking onto occupied coordinates when needed.
func (h *TransactionHandler) Enter(c *gin.Context) {
	var req models.EntryRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		h.logger.Warn("invalid entry payload", zap.Error(err))
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid request body"})
		return
	}

	lot, err := h.engine.Enter(c.Request.Context(), actorFrom(c), req)
	if err != nil {
		h.logger.Warn("entry rejected", zap.Error(err))
		c.JSON(statusFor(err), gin.H{"error": err.Error()})
		return
	}

	c.JSON(http.StatusCreated, lot)
}

// EnterBulk creates one lot per selected position and reports partial outcomes.
func (h *TransactionHandler) EnterBulk(c *gin.Context) {
	var req models.BulkEntryRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		h.logger.Warn("invalid bulk entry payload", zap.Error(err))
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid request body"})
		return
	}

	result, err := h.engine.EnterBulk(c.Request.Context(), actorFrom(c), req)
	if err != nil {
		h.logger.Warn("bulk entry rejected", zap.Error(err))
		c.JSON(statusFor(err), gin.H{"error": err.Error()})
		return
	}

	c.JSON(http.StatusOK, result)
}

// Remove deletes one lot entirely.
func (h *TransactionHandler) Remove(c *gin.Context) {
	lot, err := h.engine.Remove(c.Request.Context(), actorFrom(c), c.Param("id"))
	if err != nil {
		h.logger.Warn("removal rejected", zap.String("lot_id", c.Param("id")), zap.Error(err))
		c.JSON(statusFor(err), gin.H{"error": err.Error()})
		return
	}

	c.JSON(http.StatusOK, lot)
}

// Withdraw takes part (or all) of a lot's quantity.
func (h *TransactionHandler) Withdraw(c *gin.Context) {
	var req models.WithdrawRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		h.logger.Warn("invalid withdrawal payload", zap.Error(err))
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid request body"})
		return
	}

	lot, removed, err := h.engine.Withdraw(c.Request.Context(), actorFrom(c), c.Param("id"), req.Quantity)
	if err != nil {
		h.logger.Warn("withdrawal rejected", zap.String("lot_id", c.Param("id")), zap.Error(err))
		c.JSON(statusFor(err), gin.H{"error": err.Error()})
		return
	}

	c.JSON(http.StatusOK, gin.H{"lot": lot, "removed": removed})
}

// RemoveBulk clears every lot at each selected position.
func (h *TransactionHandler) RemoveBulk(c *gin.Context) {
	var req models.BulkRemovalRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		h.logger.Warn("invalid bulk removal payload", zap.Error(err))
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid request body"})
		return
	}

	result, err := h.engine.RemoveBulk(c.Request.Context(), actorFrom(c), req)
	if err != nil {
		h.logger.Warn("bulk removal rejected", zap.Error(err))
		c.JSON(statusFor(err), gin.H{"error": err.Error()})
		return
	}

	c.JSON(http.StatusOK, result)
}
