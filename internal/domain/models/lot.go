package models

import (
	"fmt"
	"time"
)

// RackFloor is the pseudo-rack for unracked stock kept on the external floor.
// Floor lots carry no level/position and are identified by lot id only.
const RackFloor = "FLOOR"

// Coordinate identifies one physical slot as a rack/level/position triple.
// Floor lots use the zero level/position convention.
type Coordinate struct {
	Rack     string `json:"rack"`
	Level    int    `json:"level"`
	Position int    `json:"position"`
}

// IsFloor reports whether the coordinate addresses the external floor pool.
func (c Coordinate) IsFloor() bool {
	return c.Rack == RackFloor
}

// Key returns the canonical map key for the coordinate.
func (c Coordinate) Key() string {
	return fmt.Sprintf("%s:%d:%d", c.Rack, c.Level, c.Position)
}

// Label renders the coordinate the way operators read it on printed labels.
func (c Coordinate) Label() string {
	if c.IsFloor() {
		return "Floor"
	}
	return fmt.Sprintf("%s-%d L%d", c.Rack, c.Position, c.Level)
}

// Lot is one stored quantity of one product at one coordinate. Several lots
// may share a coordinate (stacking); uniqueness holds on ID only.
type Lot struct {
	ID          string    `bson:"_id" json:"id"`
	Rack        string    `bson:"rack" json:"rack"`
	Level       int       `bson:"level" json:"level"`
	Position    int       `bson:"position" json:"position"`
	ProductID   string    `bson:"product_id" json:"productId"`
	ProductName string    `bson:"product_name" json:"productName"`
	Quantity    int       `bson:"quantity" json:"quantity"`
	Slots       int       `bson:"slots" json:"slots"`
	CreatedAt   time.Time `bson:"created_at" json:"createdAt"`
	LastUpdated time.Time `bson:"last_updated" json:"lastUpdated"`
}

// Coordinate returns the lot's slot coordinate.
func (l Lot) Coordinate() Coordinate {
	return Coordinate{Rack: l.Rack, Level: l.Level, Position: l.Position}
}
