package handlers

import (
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"

	"github.com/warewise/slotkeeper/internal/domain/layout"
	"github.com/warewise/slotkeeper/internal/repository/mongodb"
	"github.com/warewise/slotkeeper/internal/service/occupancy"
)

// InventoryHandler serves read-only occupancy and layout queries.
type InventoryHandler struct {
	repo   mongodb.Repository
	layout *layout.Layout
	logger *zap.Logger
}

// NewInventoryHandler constructs the read-path HTTP adapter.
func NewInventoryHandler(repo mongodb.Repository, l *layout.Layout, logger *zap.Logger) *InventoryHandler {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &InventoryHandler{repo: repo, layout: l, logger: logger}
}

// rackInfo describes one rack for the UI: its geometry and blocked positions.
type rackInfo struct {
	ID            string `json:"id"`
	Family        string `json:"family"`
	Levels        []int  `json:"levels"`
	PositionCount int    `json:"positionCount"`
	BlockedCount  int    `json:"blockedCount"`
}

// Racks returns the configured warehouse geometry.
func (h *InventoryHandler) Racks(c *gin.Context) {
	var out []rackInfo
	for _, rack := range h.layout.Racks() {
		out = append(out, rackInfo{
			ID:            rack,
			Family:        string(h.layout.Family(rack)),
			Levels:        h.layout.Levels(rack),
			PositionCount: h.layout.PositionCount(rack),
			BlockedCount:  h.layout.BlockedCount(rack),
		})
	}
	c.JSON(http.StatusOK, out)
}

// ListLots returns the full lot collection.
func (h *InventoryHandler) ListLots(c *gin.Context) {
	lots, err := h.repo.ListLots(c.Request.Context())
	if err != nil {
		h.logger.Error("failed listing lots", zap.Error(err))
		c.JSON(http.StatusBadGateway, gin.H{"error": "unable to load lots"})
		return
	}
	c.JSON(http.StatusOK, lots)
}

// LotsAt returns every lot stacked at one exact coordinate.
func (h *InventoryHandler) LotsAt(c *gin.Context) {
	rack := c.Param("rack")
	level, err1 := strconv.Atoi(c.Param("level"))
	position, err2 := strconv.Atoi(c.Param("position"))
	if err1 != nil || err2 != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "level and position must be integers"})
		return
	}

	lots, err := h.repo.ListLots(c.Request.Context())
	if err != nil {
		h.logger.Error("failed listing lots", zap.Error(err))
		c.JSON(http.StatusBadGateway, gin.H{"error": "unable to load lots"})
		return
	}

	idx := occupancy.NewIndex(h.layout, lots)
	at := idx.LotsAt(rack, level, position)

	c.JSON(http.StatusOK, gin.H{
		"lots":     at,
		"occupied": len(at) > 0,
		"blocked":  h.layout.IsBlocked(rack, level, position),
	})
}

// Stats returns capacity/occupancy statistics over the pallet family.
func (h *InventoryHandler) Stats(c *gin.Context) {
	lots, err := h.repo.ListLots(c.Request.Context())
	if err != nil {
		h.logger.Error("failed listing lots", zap.Error(err))
		c.JSON(http.StatusBadGateway, gin.H{"error": "unable to load lots"})
		return
	}

	c.JSON(http.StatusOK, occupancy.NewIndex(h.layout, lots).Stats())
}

// FIFO returns lots matching the product search term, oldest first.
func (h *InventoryHandler) FIFO(c *gin.Context) {
	lots, err := h.repo.ListLots(c.Request.Context())
	if err != nil {
		h.logger.Error("failed listing lots", zap.Error(err))
		c.JSON(http.StatusBadGateway, gin.H{"error": "unable to load lots"})
		return
	}

	idx := occupancy.NewIndex(h.layout, lots)
	c.JSON(http.StatusOK, idx.FIFO(occupancy.MatchProduct(c.Query("product"))))
}
