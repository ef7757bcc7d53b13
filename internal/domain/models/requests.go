package models

// EntryRequest creates one lot at a coordinate (or on the floor).
type EntryRequest struct {
	Rack        string `json:"rack" binding:"required"`
	Level       int    `json:"level"`
	Position    int    `json:"position"`
	ProductID   string `json:"productId" binding:"required"`
	ProductName string `json:"productName" binding:"required"`
	Quantity    int    `json:"quantity" binding:"required,gt=0"`
	Slots       int    `json:"slots"`
	// Manual is true when the operator typed the coordinate instead of
	// scanning a printed label; manual creation at an empty coordinate is
	// gated by the authorization hook.
	Manual bool `json:"manual"`
}

// BulkEntryRequest creates one lot per listed position on a single rack level.
type BulkEntryRequest struct {
	Rack        string `json:"rack" binding:"required"`
	Level       int    `json:"level" binding:"required,gte=1"`
	Positions   []int  `json:"positions" binding:"required,min=1"`
	ProductID   string `json:"productId" binding:"required"`
	ProductName string `json:"productName" binding:"required"`
	Quantity    int    `json:"quantity" binding:"required,gt=0"`
	Slots       int    `json:"slots"`
}

// WithdrawRequest removes part (or all) of a lot's quantity.
type WithdrawRequest struct {
	Quantity int `json:"quantity" binding:"required"`
}

// BulkRemovalRequest clears every lot at each listed position of a rack level.
type BulkRemovalRequest struct {
	Rack      string `json:"rack" binding:"required"`
	Level     int    `json:"level" binding:"required,gte=1"`
	Positions []int  `json:"positions" binding:"required,min=1"`
}

// BulkFailure describes one failed item inside a bulk operation.
type BulkFailure struct {
	Position int    `json:"position"`
	Reason   string `json:"reason"`
}

// BulkResult summarizes a bulk operation. Bulk mutations never roll back
// earlier successes, so partial outcomes are reported, not hidden.
type BulkResult struct {
	Requested int           `json:"requested"`
	Succeeded int           `json:"succeeded"`
	Failed    int           `json:"failed"`
	Failures  []BulkFailure `json:"failures,omitempty"`
}

// Fail records one failed item in the summary.
func (r *BulkResult) Fail(position int, reason string) {
	r.Failed++
	r.Failures = append(r.Failures, BulkFailure{Position: position, Reason: reason})
}
