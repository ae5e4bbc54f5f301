// Package authz holds the pure role/ownership predicates gating every
// mutation. Handlers and services call these instead of sprinkling inline
// role checks.
package authz

import "goldlink-backend/internal/domain"

// Actor is the authenticated caller of an operation.
type Actor struct {
	ID   int32
	Role domain.UserRole
}

func (a Actor) IsAdmin() bool {
	return a.Role == domain.UserRoleAdmin
}

// CanReadBooking allows the renter, the jewelry owner, or an admin.
func CanReadBooking(actor Actor, renterID, ownerID int32) bool {
	return actor.ID == renterID || actor.ID == ownerID || actor.IsAdmin()
}

// CanUpdateBookingStatus allows only the jewelry owner or an admin. The
// renter never changes status directly.
func CanUpdateBookingStatus(actor Actor, ownerID int32) bool {
	return actor.ID == ownerID || actor.IsAdmin()
}

// CanCreateListing requires a seller, jeweler or admin role.
func CanCreateListing(actor Actor) bool {
	switch actor.Role {
	case domain.UserRoleSeller, domain.UserRoleJeweler, domain.UserRoleAdmin:
		return true
	}
	return false
}

// CanMutateListing allows the listing owner or an admin to update/delete.
func CanMutateListing(actor Actor, ownerID int32) bool {
	return actor.ID == ownerID || actor.IsAdmin()
}

// CanAdministerUsers gates the admin-only user operations (listing all
// users, role changes, deletions).
func CanAdministerUsers(actor Actor) bool {
	return actor.IsAdmin()
}

// CanChangeRole forbids an admin demoting themselves away from ADMIN.
func CanChangeRole(actor Actor, targetID int32, newRole domain.UserRole) bool {
	if !actor.IsAdmin() {
		return false
	}
	if actor.ID == targetID && newRole != domain.UserRoleAdmin {
		return false
	}
	return true
}

// CanDeleteUser forbids self-deletion even for admins.
func CanDeleteUser(actor Actor, targetID int32) bool {
	return actor.IsAdmin() && actor.ID != targetID
}
