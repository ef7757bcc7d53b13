package handlers

import (
	"net/http"
	"strconv"
	"time"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"

	"github.com/warewise/slotkeeper/internal/domain/models"
	"github.com/warewise/slotkeeper/internal/repository/mongodb"
)

// AuditHandler serves the append-only audit trail.
type AuditHandler struct {
	repo   mongodb.Repository
	logger *zap.Logger
}

// NewAuditHandler constructs the audit HTTP adapter.
func NewAuditHandler(repo mongodb.Repository, logger *zap.Logger) *AuditHandler {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &AuditHandler{repo: repo, logger: logger}
}

// List returns audit records newest-first, narrowed by query parameters:
// actor, action, since (RFC 3339) and limit.
func (h *AuditHandler) List(c *gin.Context) {
	filter := models.AuditFilter{
		Actor:  c.Query("actor"),
		Action: models.AuditAction(c.Query("action")),
	}

	if since := c.Query("since"); since != "" {
		parsed, err := time.Parse(time.RFC3339, since)
		if err != nil {
			c.JSON(http.StatusBadRequest, gin.H{"error": "since must be RFC 3339"})
			return
		}
		filter.Since = parsed
	}

	if limit := c.Query("limit"); limit != "" {
		parsed, err := strconv.ParseInt(limit, 10, 64)
		if err != nil || parsed < 1 {
			c.JSON(http.StatusBadRequest, gin.H{"error": "limit must be a positive integer"})
			return
		}
		filter.Limit = parsed
	}

	records, err := h.repo.ListAudit(c.Request.Context(), filter)
	if err != nil {
		h.logger.Error("failed listing audit records", zap.Error(err))
		c.JSON(http.StatusBadGateway, gin.H{"error": "unable to load audit trail"})
		return
	}

	c.JSON(http.StatusOK, records)
}
