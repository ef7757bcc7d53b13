package router

import (
	"time"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"

	"github.com/warewise/slotkeeper/internal/server/handlers"
)

// Handlers bundles the HTTP adapters wired into the engine.
type Handlers struct {
	Inventory    *handlers.InventoryHandler
	Transactions *handlers.TransactionHandler
	Reports      *handlers.ReportHandler
	Catalog      *handlers.CatalogHandler
	Audit        *handlers.AuditHandler
	Labels       *handlers.LabelHandler
}

// New wires the Gin engine with required routes and middlewares.
func New(h Handlers, logger *zap.Logger) *gin.Engine {
	gin.SetMode(gin.ReleaseMode)

	r := gin.New()
	r.Use(gin.Recovery())
	r.Use(zapLoggerMiddleware(logger))

	r.GET("/healthz", func(c *gin.Context) {
		c.JSON(200, gin.H{"status": "ok"})
	})

	r.GET("/racks", h.Inventory.Racks)
	r.GET("/lots", h.Inventory.ListLots)
	r.GET("/lots/fifo", h.Inventory.FIFO)
	r.GET("/locations/:rack/:level/:position/lots", h.Inventory.LotsAt)
	r.GET("/stats", h.Inventory.Stats)

	r.POST("/entries", h.Transactions.Enter)
	r.POST("/entries/bulk", h.Transactions.EnterBulk)
	r.DELETE("/lots/:id", h.Transactions.Remove)
	r.POST("/lots/:id/withdrawals", h.Transactions.Withdraw)
	r.POST("/removals/bulk", h.Transactions.RemoveBulk)

	r.GET("/reports/stock", h.Reports.Stock)
	r.POST("/reports/snapshot", h.Reports.Snapshot)

	r.GET("/catalog", h.Catalog.List)
	r.POST("/catalog", h.Catalog.Upsert)
	r.DELETE("/catalog/:id", h.Catalog.Delete)

	r.GET("/audit", h.Audit.List)

	r.GET("/labels/:rack", h.Labels.RackTokens)
	r.POST("/labels/decode", h.Labels.Decode)
	r.POST("/labels/print", h.Labels.Print)

	if logger != nil {
		logger.Info("router initialized")
	}

	return r
}

func zapLoggerMiddleware(logger *zap.Logger) gin.HandlerFunc {
	if logger == nil {
		logger = zap.NewNop()
	}

	return func(c *gin.Context) {
		start := time.Now()
		c.Next()

		logger.Info("request completed",
			zap.String("method", c.Request.Method),
			zap.String("path", c.Request.URL.Path),
			zap.Int("status", c.Writer.Status()),
			zap.Duration("duration", time.Since(start)),
			zap.String("client_ip", c.ClientIP()))
	}
}
