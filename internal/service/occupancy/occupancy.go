// Package occupancy answers "what is stored where" over a freshly supplied
// lot collection. The index never caches across reads; callers rebuild it
// from the persistence layer whenever they need current state.
package occupancy

import (
	"math"
	"sort"
	"strings"

	"github.com/warewise/slotkeeper/internal/domain/layout"
	"github.com/warewise/slotkeeper/internal/domain/models"
)

// Index resolves occupancy questions for one snapshot of the lot collection.
type Index struct {
	layout *layout.Layout
	lots   []models.Lot
	byKey  map[string][]models.Lot
}

// NewIndex builds an index over the provided lots. Input order is preserved
// per coordinate, so stacked lots come back in insertion order.
func NewIndex(l *layout.Layout, lots []models.Lot) *Index {
	idx := &Index{
		layout: l,
		lots:   lots,
		byKey:  make(map[string][]models.Lot),
	}

	for _, lot := range lots {
		key := lot.Coordinate().Key()
		idx.byKey[key] = append(idx.byKey[key], lot)
	}

	return idx
}

// LotsAt returns every lot at the exact coordinate, zero or more.
func (idx *Index) LotsAt(rack string, level, position int) []models.Lot {
	c := models.Coordinate{Rack: rack, Level: level, Position: position}
	return idx.byKey[c.Key()]
}

// IsOccupied reports whether at least one lot sits at the coordinate.
func (idx *Index) IsOccupied(rack string, level, position int) bool {
	return len(idx.LotsAt(rack, level, position)) > 0
}

// Stats derives capacity accounting over the pallet family. Vertical racks
// and floor lots are excluded from capacity by business rule. A coordinate
// with stacked lots counts once; a lot marked as consuming two slots still
// counts its coordinate once (known inconsistency carried over deliberately).
func (idx *Index) Stats() models.OccupancyStats {
	var capacity int
	for _, rack := range idx.layout.CapacityRacks() {
		capacity += idx.layout.PositionCount(rack)*len(idx.layout.Levels(rack)) - idx.layout.BlockedCount(rack)
	}

	occupiedKeys := make(map[string]struct{})
	for _, lot := range idx.lots {
		if idx.layout.Family(lot.Rack) != layout.FamilyPallet {
			continue
		}
		// Lots at coordinates outside the geometry (or on blocked ones) carry
		// no capacity unit to occupy, so they cannot push occupied past capacity.
		coord := lot.Coordinate()
		if !idx.layout.Contains(coord) || idx.layout.IsBlocked(coord.Rack, coord.Level, coord.Position) {
			continue
		}
		occupiedKeys[coord.Key()] = struct{}{}
	}
	occupied := len(occupiedKeys)

	free := capacity - occupied
	if free < 0 {
		free = 0
	}

	var utilization float64
	if capacity > 0 {
		utilization = math.Round(float64(occupied)/float64(capacity)*1000) / 10
	}

	return models.OccupancyStats{
		Capacity:       capacity,
		Occupied:       occupied,
		Free:           free,
		UtilizationPct: utilization,
	}
}

// GroupByProduct consolidates lots into per-product totals, floor included,
// sorted by product name ascending (case-insensitive). Lots without a
// product reference are skipped.
func (idx *Index) GroupByProduct() []models.ProductSummary {
	grouped := make(map[string]*models.ProductSummary)
	var order []string

	for _, lot := range idx.lots {
		if lot.ProductID == "" {
			continue
		}

		summary, ok := grouped[lot.ProductID]
		if !ok {
			summary = &models.ProductSummary{
				ProductID:   lot.ProductID,
				ProductName: lot.ProductName,
			}
			grouped[lot.ProductID] = summary
			order = append(order, lot.ProductID)
		}

		summary.TotalQuantity += lot.Quantity
		summary.Locations = append(summary.Locations, lot.Coordinate().Label())
	}

	out := make([]models.ProductSummary, 0, len(order))
	for _, id := range order {
		out = append(out, *grouped[id])
	}

	sort.SliceStable(out, func(i, j int) bool {
		return strings.ToLower(out[i].ProductName) < strings.ToLower(out[j].ProductName)
	})

	return out
}

// FIFO returns the lots accepted by the filter, oldest first. A nil filter
// accepts everything.
func (idx *Index) FIFO(filter func(models.Lot) bool) []models.Lot {
	var out []models.Lot
	for _, lot := range idx.lots {
		if filter == nil || filter(lot) {
			out = append(out, lot)
		}
	}

	sort.SliceStable(out, func(i, j int) bool {
		return out[i].CreatedAt.Before(out[j].CreatedAt)
	})

	return out
}

// MatchProduct builds a FIFO filter matching a free-text product search term
// against product id and name.
func MatchProduct(term string) func(models.Lot) bool {
	term = strings.ToLower(strings.TrimSpace(term))
	return func(lot models.Lot) bool {
		if term == "" {
			return true
		}
		return strings.Contains(strings.ToLower(lot.ProductID), term) ||
			strings.Contains(strings.ToLower(lot.ProductName), term)
	}
}
