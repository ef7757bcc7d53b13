package reporting

import (
	"context"
	"fmt"
	"strings"
	"time"

	"go.uber.org/zap"

	"github.com/warewise/slotkeeper/internal/domain/layout"
	"github.com/warewise/slotkeeper/internal/domain/models"
	"github.com/warewise/slotkeeper/internal/repository/mongodb"
	"github.com/warewise/slotkeeper/internal/repository/sheets"
	"github.com/warewise/slotkeeper/internal/service/occupancy"
)

const (
	dateLayout      = "2006-01-02"
	stockSheetRange = "Stock!A:F"
)

// Service builds consolidated stock reports and daily snapshots. Every read
// works on a freshly listed lot collection; nothing is cached in between.
type Service struct {
	repo     mongodb.Repository
	layout   *layout.Layout
	exporter sheets.Exporter
	logger   *zap.Logger
	now      func() time.Time
}

// NewService wires a reporting service. The exporter may be nil when
// spreadsheet export is not configured.
func NewService(repository mongodb.Repository, l *layout.Layout, exporter sheets.Exporter, logger *zap.Logger) *Service {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &Service{
		repo:     repository,
		layout:   l,
		exporter: exporter,
		logger:   logger,
		now:      time.Now,
	}
}

// ConsolidatedReport re-reads the lot collection and derives the current
// warehouse state: capacity statistics plus per-product totals.
func (s *Service) ConsolidatedReport(ctx context.Context) (models.StockSnapshot, error) {
	lots, err := s.repo.ListLots(ctx)
	if err != nil {
		return models.StockSnapshot{}, fmt.Errorf("load lots: %w", err)
	}

	idx := occupancy.NewIndex(s.layout, lots)

	var floorLots int
	for _, lot := range lots {
		if lot.Rack == models.RackFloor {
			floorLots++
		}
	}

	now := s.now().UTC()
	return models.StockSnapshot{
		Date:      time.Date(now.Year(), now.Month(), now.Day(), 0, 0, 0, 0, time.UTC),
		Stats:     idx.Stats(),
		TotalLots: len(lots),
		FloorLots: floorLots,
		Products:  idx.GroupByProduct(),
		CreatedAt: now,
	}, nil
}

// SnapshotDaily stores the current consolidated state and, when an exporter
// is configured, appends one spreadsheet row per product.
func (s *Service) SnapshotDaily(ctx context.Context) error {
	snapshot, err := s.ConsolidatedReport(ctx)
	if err != nil {
		return err
	}

	if err := s.repo.SaveSnapshot(ctx, snapshot); err != nil {
		return fmt.Errorf("store snapshot: %w", err)
	}

	s.logger.Info("stock snapshot stored",
		zap.Int("capacity", snapshot.Stats.Capacity),
		zap.Int("occupied", snapshot.Stats.Occupied),
		zap.Int("total_lots", snapshot.TotalLots))

	if s.exporter == nil {
		return nil
	}

	date := snapshot.Date.Format(dateLayout)
	for _, product := range snapshot.Products {
		row := []interface{}{
			date,
			product.ProductID,
			product.ProductName,
			product.TotalQuantity,
			len(product.Locations),
			strings.Join(product.Locations, ", "),
		}
		if err := s.exporter.AppendRow(ctx, stockSheetRange, row); err != nil {
			// Export is best effort; the snapshot itself already persisted.
			s.logger.Warn("sheet export failed", zap.String("product", product.ProductID), zap.Error(err))
		}
	}

	return nil
}
