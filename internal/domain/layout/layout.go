package layout

import (
	"sort"

	"github.com/warewise/slotkeeper/internal/domain/models"
)

// Family partitions racks by their physical geometry.
type Family string

const (
	// FamilyPallet racks hold many positions per level across few levels.
	// This is the only family counted toward warehouse capacity.
	FamilyPallet Family = "pallet"
	// FamilyVertical racks hold a single position per level across many levels.
	FamilyVertical Family = "vertical"
	// FamilyFloor is the unracked external pool.
	FamilyFloor Family = "floor"
)

const (
	palletLevels   = 5
	verticalLevels = 8
)

// RackSpec describes one physical rack. PositionCount is a per-rack value:
// real warehouses have irregular rack widths, so there is no global constant.
type RackSpec struct {
	ID            string
	Family        Family
	PositionCount int
}

// Block reserves a set of positions on one rack level. Blocked coordinates
// never accept a lot and never count toward capacity.
type Block struct {
	Rack      string
	Level     int
	Positions []int
}

// Config is the injectable warehouse geometry. Layout copies it on
// construction, so a Layout is immutable for its lifetime.
type Config struct {
	Racks  []RackSpec
	Blocks []Block
}

// Layout resolves coordinates against the configured warehouse geometry.
type Layout struct {
	racks   map[string]RackSpec
	order   []string
	blocked map[string]struct{}
}

// DefaultConfig is the reference warehouse: pallet racks A-E with 66
// positions over 5 levels, vertical racks S1-S2 with one position over
// 8 levels, and no administrative blocks.
func DefaultConfig() Config {
	return Config{
		Racks: []RackSpec{
			{ID: "A", Family: FamilyPallet, PositionCount: 66},
			{ID: "B", Family: FamilyPallet, PositionCount: 66},
			{ID: "C", Family: FamilyPallet, PositionCount: 66},
			{ID: "D", Family: FamilyPallet, PositionCount: 66},
			{ID: "E", Family: FamilyPallet, PositionCount: 66},
			{ID: "S1", Family: FamilyVertical, PositionCount: 1},
			{ID: "S2", Family: FamilyVertical, PositionCount: 1},
		},
	}
}

// New builds an immutable Layout from the provided geometry.
func New(cfg Config) *Layout {
	l := &Layout{
		racks:   make(map[string]RackSpec, len(cfg.Racks)),
		blocked: make(map[string]struct{}),
	}

	for _, spec := range cfg.Racks {
		if _, ok := l.racks[spec.ID]; ok {
			continue
		}
		l.racks[spec.ID] = spec
		l.order = append(l.order, spec.ID)
	}

	for _, b := range cfg.Blocks {
		for _, pos := range b.Positions {
			c := models.Coordinate{Rack: b.Rack, Level: b.Level, Position: pos}
			l.blocked[c.Key()] = struct{}{}
		}
	}

	return l
}

// Default returns a Layout over DefaultConfig.
func Default() *Layout {
	return New(DefaultConfig())
}

// Racks returns the configured rack identifiers in declaration order.
func (l *Layout) Racks() []string {
	out := make([]string, len(l.order))
	copy(out, l.order)
	return out
}

// Family returns the family of a rack. Unknown racks (other than the floor
// pseudo-rack) resolve to the empty family.
func (l *Layout) Family(rack string) Family {
	if rack == models.RackFloor {
		return FamilyFloor
	}
	if spec, ok := l.racks[rack]; ok {
		return spec.Family
	}
	return ""
}

// Levels returns the ordered level sequence for a rack: five levels for the
// pallet family, eight for the vertical family, none for anything else.
func (l *Layout) Levels(rack string) []int {
	var count int
	switch l.Family(rack) {
	case FamilyPallet:
		count = palletLevels
	case FamilyVertical:
		count = verticalLevels
	default:
		return nil
	}

	levels := make([]int, count)
	for i := range levels {
		levels[i] = i + 1
	}
	return levels
}

// PositionCount returns the maximum valid position index for a rack.
func (l *Layout) PositionCount(rack string) int {
	if spec, ok := l.racks[rack]; ok {
		return spec.PositionCount
	}
	return 0
}

// Contains reports whether the coordinate lies inside the rack's geometry.
// Floor coordinates are always contained.
func (l *Layout) Contains(c models.Coordinate) bool {
	if c.IsFloor() {
		return true
	}

	levels := l.Levels(c.Rack)
	if len(levels) == 0 {
		return false
	}
	if c.Level < 1 || c.Level > len(levels) {
		return false
	}
	return c.Position >= 1 && c.Position <= l.PositionCount(c.Rack)
}

// IsBlocked reports whether the coordinate is administratively reserved.
func (l *Layout) IsBlocked(rack string, level, position int) bool {
	c := models.Coordinate{Rack: rack, Level: level, Position: position}
	_, ok := l.blocked[c.Key()]
	return ok
}

// BlockedCount returns how many blocked coordinates a rack carries.
func (l *Layout) BlockedCount(rack string) int {
	var n int
	for _, level := range l.Levels(rack) {
		for pos := 1; pos <= l.PositionCount(rack); pos++ {
			if l.IsBlocked(rack, level, pos) {
				n++
			}
		}
	}
	return n
}

// CapacityRacks returns the capacity-counted racks (pallet family) sorted by id.
func (l *Layout) CapacityRacks() []string {
	var out []string
	for _, id := range l.order {
		if l.racks[id].Family == FamilyPallet {
			out = append(out, id)
		}
	}
	sort.Strings(out)
	return out
}
