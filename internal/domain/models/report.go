package models

import "time"

// ProductSummary is one row of the consolidated stock report: total quantity
// for a product across every lot (racked and floor), with the contributing
// location labels.
type ProductSummary struct {
	ProductID     string   `bson:"product_id" json:"productId"`
	ProductName   string   `bson:"product_name" json:"productName"`
	TotalQuantity int      `bson:"total_quantity" json:"totalQuantity"`
	Locations     []string `bson:"locations" json:"locations"`
}

// OccupancyStats aggregates capacity accounting over the capacity-counted
// rack family. Occupied counts distinct coordinates, not lots.
type OccupancyStats struct {
	Capacity       int     `bson:"capacity" json:"capacity"`
	Occupied       int     `bson:"occupied" json:"occupied"`
	Free           int     `bson:"free" json:"free"`
	UtilizationPct float64 `bson:"utilization_pct" json:"utilizationPercent"`
}

// StockSnapshot is the daily consolidated state stored by the scheduler.
type StockSnapshot struct {
	Date      time.Time        `bson:"date" json:"date"`
	Stats     OccupancyStats   `bson:"stats" json:"stats"`
	TotalLots int              `bson:"total_lots" json:"totalLots"`
	FloorLots int              `bson:"floor_lots" json:"floorLots"`
	Products  []ProductSummary `bson:"products" json:"products"`
	CreatedAt time.Time        `bson:"created_at" json:"createdAt"`
}
