package transactions

import (
	"context"
	"errors"
	"fmt"
	"sort"
	"strings"
	"time"

	"github.com/google/uuid"
	"go.uber.org/zap"

	"github.com/warewise/slotkeeper/internal/domain/layout"
	"github.com/warewise/slotkeeper/internal/domain/models"
	"github.com/warewise/slotkeeper/internal/repository/mongodb"
	"github.com/warewise/slotkeeper/internal/service/occupancy"
)

// Config carries the engine's tunable business rules.
type Config struct {
	// StrictBulkOccupancy makes bulk entry reject already-occupied
	// capacity-counted coordinates instead of stacking onto them. The
	// reference behavior stacks, so this defaults to off.
	StrictBulkOccupancy bool
}

// Engine executes inventory mutations. Every successful mutation appends one
// audit record. Each call is atomic per coordinate from the caller's point of
// view; bulk operations iterate sequentially by ascending position and report
// partial outcomes instead of rolling back.
type Engine struct {
	repo   mongodb.Repository
	layout *layout.Layout
	authz  Authorizer
	cfg    Config
	logger *zap.Logger
	now    func() time.Time
	newID  func() string
}

// NewEngine wires a transaction engine.
func NewEngine(repo mongodb.Repository, l *layout.Layout, authz Authorizer, cfg Config, logger *zap.Logger) *Engine {
	if logger == nil {
		logger = zap.NewNop()
	}
	if authz == nil {
		authz = RoleAuthorizer{}
	}
	return &Engine{
		repo:   repo,
		layout: l,
		authz:  authz,
		cfg:    cfg,
		logger: logger,
		now:    time.Now,
		newID:  func() string { return strings.Split(uuid.NewString(), "-")[0] },
	}
}

// Enter creates one lot at the requested coordinate. Stacking onto an
// occupied coordinate is allowed; entry never fails merely because other
// lots already sit there.
func (e *Engine) Enter(ctx context.Context, actor Actor, req models.EntryRequest) (models.Lot, error) {
	coord, slots, err := e.normalizeEntry(req.Rack, req.Level, req.Position, req.Quantity, req.Slots)
	if err != nil {
		return models.Lot{}, err
	}

	if e.layout.IsBlocked(coord.Rack, coord.Level, coord.Position) {
		return models.Lot{}, fmt.Errorf("%w: %s is blocked", ErrConflict, coord.Label())
	}

	idx, err := e.currentIndex(ctx)
	if err != nil {
		return models.Lot{}, err
	}

	if req.Manual && !coord.IsFloor() && !idx.IsOccupied(coord.Rack, coord.Level, coord.Position) {
		if !e.authz.CanCreateAt(actor, coord) {
			return models.Lot{}, fmt.Errorf("%w: manual creation at empty %s", ErrForbidden, coord.Label())
		}
	}

	lot := e.buildLot(coord, req.ProductID, req.ProductName, req.Quantity, slots)
	if err := e.repo.UpsertLot(ctx, lot); err != nil {
		return models.Lot{}, fmt.Errorf("%w: %v", ErrPersistence, err)
	}

	e.audit(ctx, actor, models.ActionEntry, coord, fmt.Sprintf("ENTRY +%d %s", lot.Quantity, lot.ProductName))
	e.logger.Info("lot created",
		zap.String("lot_id", lot.ID),
		zap.String("location", coord.Label()),
		zap.Int("quantity", lot.Quantity))

	return lot, nil
}

// EnterBulk creates one lot per listed position on a single rack level.
// Duplicate positions collapse into one. Creations are independent; earlier
// successes stay committed when a later position fails, and the result
// reports completed versus requested.
func (e *Engine) EnterBulk(ctx context.Context, actor Actor, req models.BulkEntryRequest) (models.BulkResult, error) {
	if err := e.validateSelection(req.Rack, req.Level, len(req.Positions)); err != nil {
		return models.BulkResult{}, err
	}
	if req.Quantity <= 0 {
		return models.BulkResult{}, fmt.Errorf("%w: quantity must be positive", ErrValidation)
	}
	slots := normalizeSlots(req.Slots)
	if slots != 1 && slots != 2 {
		return models.BulkResult{}, fmt.Errorf("%w: slots must be 1 or 2", ErrValidation)
	}

	idx, err := e.currentIndex(ctx)
	if err != nil {
		return models.BulkResult{}, err
	}

	positions := distinctPositions(req.Positions)
	result := models.BulkResult{Requested: len(positions)}
	capacityCounted := e.layout.Family(req.Rack) == layout.FamilyPallet

	for _, pos := range positions {
		coord := models.Coordinate{Rack: req.Rack, Level: req.Level, Position: pos}

		switch {
		case !e.layout.Contains(coord):
			result.Fail(pos, "position out of range")
		case e.layout.IsBlocked(coord.Rack, coord.Level, coord.Position):
			result.Fail(pos, "coordinate is blocked")
		case e.cfg.StrictBulkOccupancy && capacityCounted && idx.IsOccupied(coord.Rack, coord.Level, coord.Position):
			result.Fail(pos, "coordinate already occupied")
		default:
			lot := e.buildLot(coord, req.ProductID, req.ProductName, req.Quantity, slots)
			if err := e.repo.UpsertLot(ctx, lot); err != nil {
				e.logger.Warn("bulk entry position failed", zap.Int("position", pos), zap.Error(err))
				result.Fail(pos, err.Error())
				continue
			}
			e.audit(ctx, actor, models.ActionBulkEntry, coord, fmt.Sprintf("ENTRY +%d %s", lot.Quantity, lot.ProductName))
			result.Succeeded++
		}
	}

	return result, nil
}

// Remove deletes exactly one lot by id and returns the removed lot.
func (e *Engine) Remove(ctx context.Context, actor Actor, id string) (models.Lot, error) {
	lot, err := e.fetchLot(ctx, id)
	if err != nil {
		return models.Lot{}, err
	}

	if err := e.repo.DeleteLot(ctx, id); err != nil {
		if errors.Is(err, mongodb.ErrNotFound) {
			return models.Lot{}, fmt.Errorf("%w: %s", ErrNotFound, id)
		}
		return models.Lot{}, fmt.Errorf("%w: %v", ErrPersistence, err)
	}

	coord := lot.Coordinate()
	e.audit(ctx, actor, models.ActionExit, coord, fmt.Sprintf("EXIT -%d %s", lot.Quantity, lot.ProductName))
	e.logger.Info("lot removed", zap.String("lot_id", id), zap.String("location", coord.Label()))

	return lot, nil
}

// Withdraw takes quantity out of a lot. Withdrawing the full quantity behaves
// exactly like Remove: the lot disappears rather than lingering at zero. The
// returned bool reports whether the lot was removed.
func (e *Engine) Withdraw(ctx context.Context, actor Actor, id string, quantity int) (models.Lot, bool, error) {
	if quantity <= 0 {
		return models.Lot{}, false, fmt.Errorf("%w: withdrawal quantity must be positive", ErrValidation)
	}

	lot, err := e.fetchLot(ctx, id)
	if err != nil {
		return models.Lot{}, false, err
	}

	if quantity > lot.Quantity {
		return models.Lot{}, false, fmt.Errorf("%w: withdrawal of %d exceeds stored %d", ErrValidation, quantity, lot.Quantity)
	}

	if quantity == lot.Quantity {
		removed, err := e.Remove(ctx, actor, id)
		return removed, true, err
	}

	lot.Quantity -= quantity
	lot.LastUpdated = e.now()
	if err := e.repo.UpsertLot(ctx, lot); err != nil {
		return models.Lot{}, false, fmt.Errorf("%w: %v", ErrPersistence, err)
	}

	coord := lot.Coordinate()
	e.audit(ctx, actor, models.ActionPartialExit, coord, fmt.Sprintf("EXIT -%d %s (%d left)", quantity, lot.ProductName, lot.Quantity))
	e.logger.Info("partial withdrawal",
		zap.String("lot_id", id),
		zap.Int("withdrawn", quantity),
		zap.Int("remaining", lot.Quantity))

	return lot, false, nil
}

// RemoveBulk clears every stacked lot at each listed position. Duplicate
// positions collapse into one; empty positions are silent no-ops. Every
// deleted lot gets its own audit record.
func (e *Engine) RemoveBulk(ctx context.Context, actor Actor, req models.BulkRemovalRequest) (models.BulkResult, error) {
	if err := e.validateSelection(req.Rack, req.Level, len(req.Positions)); err != nil {
		return models.BulkResult{}, err
	}

	idx, err := e.currentIndex(ctx)
	if err != nil {
		return models.BulkResult{}, err
	}

	positions := distinctPositions(req.Positions)
	result := models.BulkResult{Requested: len(positions)}

	for _, pos := range positions {
		coord := models.Coordinate{Rack: req.Rack, Level: req.Level, Position: pos}

		var failed bool
		for _, lot := range idx.LotsAt(coord.Rack, coord.Level, coord.Position) {
			err := e.repo.DeleteLot(ctx, lot.ID)
			if errors.Is(err, mongodb.ErrNotFound) {
				// Already gone (the index is a snapshot); nothing to audit.
				continue
			}
			if err != nil {
				e.logger.Warn("bulk removal position failed", zap.Int("position", pos), zap.Error(err))
				result.Fail(pos, err.Error())
				failed = true
				break
			}
			e.audit(ctx, actor, models.ActionBulkExit, coord, fmt.Sprintf("EXIT -%d %s", lot.Quantity, lot.ProductName))
		}
		if !failed {
			result.Succeeded++
		}
	}

	return result, nil
}

func (e *Engine) normalizeEntry(rack string, level, position, quantity, slots int) (models.Coordinate, int, error) {
	if quantity <= 0 {
		return models.Coordinate{}, 0, fmt.Errorf("%w: quantity must be positive", ErrValidation)
	}

	slots = normalizeSlots(slots)
	if slots != 1 && slots != 2 {
		return models.Coordinate{}, 0, fmt.Errorf("%w: slots must be 1 or 2", ErrValidation)
	}

	coord := models.Coordinate{Rack: rack, Level: level, Position: position}
	if coord.IsFloor() {
		coord.Level, coord.Position = 0, 0
		return coord, slots, nil
	}

	if !e.layout.Contains(coord) {
		return models.Coordinate{}, 0, fmt.Errorf("%w: %s is outside the warehouse layout", ErrValidation, coord.Label())
	}
	return coord, slots, nil
}

func (e *Engine) validateSelection(rack string, level, positions int) error {
	if positions == 0 {
		return fmt.Errorf("%w: no positions selected", ErrValidation)
	}
	levels := e.layout.Levels(rack)
	if len(levels) == 0 {
		return fmt.Errorf("%w: unknown rack %q", ErrValidation, rack)
	}
	if level < 1 || level > len(levels) {
		return fmt.Errorf("%w: level %d out of range for rack %s", ErrValidation, level, rack)
	}
	return nil
}

func (e *Engine) currentIndex(ctx context.Context) (*occupancy.Index, error) {
	lots, err := e.repo.ListLots(ctx)
	if err != nil {
		return nil, fmt.Errorf("%w: %v", ErrPersistence, err)
	}
	return occupancy.NewIndex(e.layout, lots), nil
}

func (e *Engine) fetchLot(ctx context.Context, id string) (models.Lot, error) {
	lot, err := e.repo.FindLot(ctx, id)
	if errors.Is(err, mongodb.ErrNotFound) {
		return models.Lot{}, fmt.Errorf("%w: %s", ErrNotFound, id)
	}
	if err != nil {
		return models.Lot{}, fmt.Errorf("%w: %v", ErrPersistence, err)
	}
	return lot, nil
}

func (e *Engine) buildLot(coord models.Coordinate, productID, productName string, quantity, slots int) models.Lot {
	now := e.now()
	return models.Lot{
		// Coordinate plus timestamp plus random suffix keeps ids unique even
		// when several lots stack on the same coordinate.
		ID:          fmt.Sprintf("%s-%d-%d-%d-%s", coord.Rack, coord.Level, coord.Position, now.UnixMilli(), e.newID()),
		Rack:        coord.Rack,
		Level:       coord.Level,
		Position:    coord.Position,
		ProductID:   productID,
		ProductName: productName,
		Quantity:    quantity,
		Slots:       slots,
		CreatedAt:   now,
		LastUpdated: now,
	}
}

func (e *Engine) audit(ctx context.Context, actor Actor, action models.AuditAction, coord models.Coordinate, detail string) {
	record := models.AuditRecord{
		ID:        uuid.NewString(),
		Actor:     actor.ID,
		Action:    action,
		Detail:    detail,
		Location:  coord.Label(),
		CreatedAt: e.now(),
	}

	if err := e.repo.AppendAudit(ctx, record); err != nil {
		// The mutation itself already committed; losing the trace is logged
		// loudly but does not fail the call.
		e.logger.Error("failed to append audit record", zap.Error(err), zap.String("detail", detail))
	}
}

func normalizeSlots(slots int) int {
	if slots == 0 {
		return 1
	}
	return slots
}

func distinctPositions(positions []int) []int {
	seen := make(map[int]struct{}, len(positions))
	out := make([]int, 0, len(positions))
	for _, pos := range positions {
		if _, ok := seen[pos]; ok {
			continue
		}
		seen[pos] = struct{}{}
		out = append(out, pos)
	}
	sort.Ints(out)
	return out
}
