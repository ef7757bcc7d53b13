package models

// MasterProduct is a catalog entry referenced by lots. The catalog is
// self-service: operators maintain it through the small CRUD surface.
type MasterProduct struct {
	ID          string `bson:"_id" json:"id" binding:"required"`
	Name        string `bson:"name" json:"name" binding:"required"`
	StandardQty int    `bson:"standard_qty" json:"standardQty"`
}
