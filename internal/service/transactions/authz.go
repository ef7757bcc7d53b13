package transactions

import "github.com/warewise/slotkeeper/internal/domain/models"

// Actor identifies who is issuing a mutation. Authentication itself is an
// external concern; handlers pass identity through from request headers.
type Actor struct {
	ID   string
	Role string
}

// RoleAdmin may manually create lots at empty rack coordinates.
const RoleAdmin = "admin"

// Authorizer is the capability hook consulted before manual lot creation at
// an empty coordinate. Scanned-label entries and withdrawals are open to
// every role and never reach this hook.
type Authorizer interface {
	CanCreateAt(actor Actor, coord models.Coordinate) bool
}

// RoleAuthorizer implements the reference rule: floor entries are open to
// everyone, empty rack coordinates require the admin role.
type RoleAuthorizer struct{}

// CanCreateAt reports whether the actor may manually create at the coordinate.
func (RoleAuthorizer) CanCreateAt(actor Actor, coord models.Coordinate) bool {
	if coord.IsFloor() {
		return true
	}
	return actor.Role == RoleAdmin
}
