package handlers

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"

	"github.com/warewise/slotkeeper/internal/service/reporting"
)

// ReportHandler serves the consolidated stock report.
type ReportHandler struct {
	svc    *reporting.Service
	logger *zap.Logger
}

// NewReportHandler constructs the reporting HTTP adapter.
func NewReportHandler(svc *reporting.Service, logger *zap.Logger) *ReportHandler {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &ReportHandler{svc: svc, logger: logger}
}

// Stock returns the live consolidated stock report.
func (h *ReportHandler) Stock(c *gin.Context) {
	report, err := h.svc.ConsolidatedReport(c.Request.Context())
	if err != nil {
		h.logger.Error("failed building stock report", zap.Error(err))
		c.JSON(http.StatusBadGateway, gin.H{"error": "unable to build report"})
		return
	}

	c.JSON(http.StatusOK, report)
}

// Snapshot triggers an immediate snapshot, same as the scheduled run.
func (h *ReportHandler) Snapshot(c *gin.Context) {
	if err := h.svc.SnapshotDaily(c.Request.Context()); err != nil {
		h.logger.Error("failed storing snapshot", zap.Error(err))
		c.JSON(http.StatusBadGateway, gin.H{"error": "unable to store snapshot"})
		return
	}

	c.Status(http.StatusAccepted)
}
