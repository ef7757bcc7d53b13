package handlers

import (
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"

	"github.com/warewise/slotkeeper/internal/domain/models"
	"github.com/warewise/slotkeeper/internal/repository/mongodb"
)

// CatalogHandler exposes the self-service master product catalog.
type CatalogHandler struct {
	repo   mongodb.Repository
	logger *zap.Logger
}

// NewCatalogHandler constructs the catalog HTTP adapter.
func NewCatalogHandler(repo mongodb.Repository, logger *zap.Logger) *CatalogHandler {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &CatalogHandler{repo: repo, logger: logger}
}

// List returns every master product.
func (h *CatalogHandler) List(c *gin.Context) {
	products, err := h.repo.ListCatalog(c.Request.Context())
	if err != nil {
		h.logger.Error("failed listing catalog", zap.Error(err))
		c.JSON(http.StatusBadGateway, gin.H{"error": "unable to load catalog"})
		return
	}
	c.JSON(http.StatusOK, products)
}

// Upsert creates or replaces a master product.
func (h *CatalogHandler) Upsert(c *gin.Context) {
	var product models.MasterProduct
	if err := c.ShouldBindJSON(&product); err != nil {
		h.logger.Warn("invalid catalog payload", zap.Error(err))
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid request body"})
		return
	}

	if err := h.repo.UpsertCatalogEntry(c.Request.Context(), product); err != nil {
		h.logger.Error("failed upserting catalog entry", zap.Error(err))
		c.JSON(http.StatusBadGateway, gin.H{"error": "unable to save catalog entry"})
		return
	}

	c.JSON(http.StatusOK, product)
}

// Delete removes a master product.
func (h *CatalogHandler) Delete(c *gin.Context) {
	err := h.repo.DeleteCatalogEntry(c.Request.Context(), c.Param("id"))
	if errors.Is(err, mongodb.ErrNotFound) {
		c.JSON(http.StatusNotFound, gin.H{"error": "catalog entry not found"})
		return
	}
	if err != nil {
		h.logger.Error("failed deleting catalog entry", zap.Error(err))
		c.JSON(http.StatusBadGateway, gin.H{"error": "unable to delete catalog entry"})
		return
	}

	c.Status(http.StatusNoContent)
}
