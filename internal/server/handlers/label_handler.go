package handlers

import (
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"

	"github.com/warewise/slotkeeper/internal/domain/label"
	"github.com/warewise/slotkeeper/internal/domain/layout"
	"github.com/warewise/slotkeeper/internal/domain/models"
	"github.com/warewise/slotkeeper/pkg/clients/labelprint"
)

// LabelHandler encodes and decodes location tokens and forwards print jobs
// to the external render service.
type LabelHandler struct {
	layout *layout.Layout
	client labelprint.Client
	logger *zap.Logger
}

// NewLabelHandler constructs the label HTTP adapter. The print client may be
// nil when no print service is configured.
func NewLabelHandler(l *layout.Layout, client labelprint.Client, logger *zap.Logger) *LabelHandler {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &LabelHandler{layout: l, client: client, logger: logger}
}

// RackTokens returns the printable token for every unblocked coordinate of a
// rack, optionally narrowed to one level. This feeds bulk label printing.
func (h *LabelHandler) RackTokens(c *gin.Context) {
	rack := c.Param("rack")
	levels := h.layout.Levels(rack)
	if len(levels) == 0 {
		c.JSON(http.StatusNotFound, gin.H{"error": "unknown rack"})
		return
	}

	if only := c.Query("level"); only != "" {
		parsed, err := strconv.Atoi(only)
		if err != nil || parsed < 1 || parsed > len(levels) {
			c.JSON(http.StatusBadRequest, gin.H{"error": "level out of range"})
			return
		}
		levels = []int{parsed}
	}

	var out []labelprint.Label
	for _, level := range levels {
		for pos := 1; pos <= h.layout.PositionCount(rack); pos++ {
			if h.layout.IsBlocked(rack, level, pos) {
				continue
			}
			coord := models.Coordinate{Rack: rack, Level: level, Position: pos}
			out = append(out, labelprint.Label{
				Token:   label.Encode(coord),
				Caption: coord.Label(),
			})
		}
	}

	c.JSON(http.StatusOK, out)
}

type decodeRequest struct {
	Token string `json:"token" binding:"required"`
}

// Decode parses a scanned token into its coordinate or floor lot id.
func (h *LabelHandler) Decode(c *gin.Context) {
	var req decodeRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid request body"})
		return
	}

	token, err := label.Decode(req.Token)
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	if token.Floor {
		c.JSON(http.StatusOK, gin.H{"floor": true, "lotId": token.LotID})
		return
	}

	c.JSON(http.StatusOK, gin.H{"floor": false, "coordinate": token.Coordinate})
}

type printRequest struct {
	Labels []labelprint.Label `json:"labels" binding:"required,min=1"`
}

// Print forwards a batch of labels to the external render service.
func (h *LabelHandler) Print(c *gin.Context) {
	if h.client == nil {
		c.JSON(http.StatusServiceUnavailable, gin.H{"error": "label printing is not configured"})
		return
	}

	var req printRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid request body"})
		return
	}

	job, err := h.client.SubmitJob(c.Request.Context(), labelprint.PrintJobRequest{Labels: req.Labels})
	if err != nil {
		h.logger.Error("failed submitting print job", zap.Error(err))
		c.JSON(http.StatusBadGateway, gin.H{"error": "unable to submit print job"})
		return
	}

	c.JSON(http.StatusAccepted, job)
}
