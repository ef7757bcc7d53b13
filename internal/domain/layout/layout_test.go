package layout

import (
	"testing"

	"github.com/warewise/slotkeeper/internal/domain/models"
)

func testConfig() Config {
	return Config{
		Racks: []RackSpec{
			{ID: "A", Family: FamilyPallet, PositionCount: 66},
			{ID: "S1", Family: FamilyVertical, PositionCount: 1},
		},
		Blocks: []Block{
			{Rack: "A", Level: 2, Positions: []int{10, 11}},
		},
	}
}

func TestLevels_PalletFamilyHasFive(t *testing.T) {
	l := New(testConfig())

	levels := l.Levels("A")
	if len(levels) != 5 {
		t.Fatalf("expected 5 pallet levels, got %d", len(levels))
	}
	for i, level := range levels {
		if level != i+1 {
			t.Errorf("expected level %d at index %d, got %d", i+1, i, level)
		}
	}
}

func TestLevels_VerticalFamilyHasEight(t *testing.T) {
	l := New(testConfig())

	if got := len(l.Levels("S1")); got != 8 {
		t.Fatalf("expected 8 vertical levels, got %d", got)
	}
}

func TestLevels_UnknownRack(t *testing.T) {
	l := New(testConfig())

	if got := l.Levels("Z"); got != nil {
		t.Errorf("expected nil levels for unknown rack, got %v", got)
	}
	if got := l.Levels(models.RackFloor); got != nil {
		t.Errorf("expected nil levels for floor, got %v", got)
	}
}

func TestPositionCount_PerRackLookup(t *testing.T) {
	l := New(Config{Racks: []RackSpec{
		{ID: "A", Family: FamilyPallet, PositionCount: 66},
		{ID: "B", Family: FamilyPallet, PositionCount: 40},
	}})

	if got := l.PositionCount("A"); got != 66 {
		t.Errorf("expected 66 positions for A, got %d", got)
	}
	if got := l.PositionCount("B"); got != 40 {
		t.Errorf("expected 40 positions for B, got %d", got)
	}
	if got := l.PositionCount("Z"); got != 0 {
		t.Errorf("expected 0 positions for unknown rack, got %d", got)
	}
}

func TestIsBlocked(t *testing.T) {
	l := New(testConfig())

	if !l.IsBlocked("A", 2, 10) || !l.IsBlocked("A", 2, 11) {
		t.Error("expected configured positions to be blocked")
	}
	if l.IsBlocked("A", 2, 12) {
		t.Error("expected position 12 to be free")
	}
	if l.IsBlocked("A", 3, 10) {
		t.Error("block on level 2 must not leak into level 3")
	}
}

func TestBlockedCount(t *testing.T) {
	l := New(testConfig())

	if got := l.BlockedCount("A"); got != 2 {
		t.Errorf("expected 2 blocked coordinates, got %d", got)
	}
	if got := l.BlockedCount("S1"); got != 0 {
		t.Errorf("expected no blocked coordinates on S1, got %d", got)
	}
}

func TestContains(t *testing.T) {
	l := New(testConfig())

	cases := []struct {
		name  string
		coord models.Coordinate
		want  bool
	}{
		{"first position", models.Coordinate{Rack: "A", Level: 1, Position: 1}, true},
		{"last position", models.Coordinate{Rack: "A", Level: 5, Position: 66}, true},
		{"level too high", models.Coordinate{Rack: "A", Level: 6, Position: 1}, false},
		{"position too high", models.Coordinate{Rack: "A", Level: 1, Position: 67}, false},
		{"zero position", models.Coordinate{Rack: "A", Level: 1, Position: 0}, false},
		{"vertical top level", models.Coordinate{Rack: "S1", Level: 8, Position: 1}, true},
		{"vertical second position", models.Coordinate{Rack: "S1", Level: 1, Position: 2}, false},
		{"unknown rack", models.Coordinate{Rack: "Z", Level: 1, Position: 1}, false},
		{"floor always contained", models.Coordinate{Rack: models.RackFloor}, true},
	}

	for _, tc := range cases {
		if got := l.Contains(tc.coord); got != tc.want {
			t.Errorf("%s: Contains(%+v) = %v, want %v", tc.name, tc.coord, got, tc.want)
		}
	}
}

func TestCapacityRacks_PalletOnly(t *testing.T) {
	l := New(testConfig())

	racks := l.CapacityRacks()
	if len(racks) != 1 || racks[0] != "A" {
		t.Errorf("expected capacity racks [A], got %v", racks)
	}
}

func TestDefaultLayout(t *testing.T) {
	l := Default()

	if got := len(l.Racks()); got != 7 {
		t.Fatalf("expected 7 racks in the default layout, got %d", got)
	}
	if got := len(l.CapacityRacks()); got != 5 {
		t.Errorf("expected 5 pallet racks, got %d", got)
	}
	if l.Family("S2") != FamilyVertical {
		t.Errorf("expected S2 to be vertical, got %s", l.Family("S2"))
	}
	if l.Family(models.RackFloor) != FamilyFloor {
		t.Errorf("expected floor family for %s", models.RackFloor)
	}
}
