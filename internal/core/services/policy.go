package services

import "github.com/SscSPs/waste_approval_app/internal/core/domain"

// CanDecide is the role gate in front of every decision.
func CanDecide(actor domain.Actor) bool {
	return actor.Role == domain.RoleAdmin || actor.Role == domain.RoleApprover
}

// CanAct reports whether actor may decide at a level. assigned is whether the
// actor holds an assignment to that level.
func CanAct(actor domain.Actor, assigned bool) bool {
	return actor.IsAdmin() || assigned
}

// CanApprove annotates list rows: the entry is pending and the viewer may act
// at its current level. assignedOrders are the level orders the viewer is assigned to.
func CanApprove(viewer domain.Actor, entry domain.WasteEntry, assignedOrders map[int]struct{}) bool {
	if entry.ApprovalStatus != domain.StatusPending {
		return false
	}
	if viewer.IsAdmin() {
		return true
	}
	_, ok := assignedOrders[entry.CurrentApprovalLevel]
	return ok
}

// CanSetFormApproval reports whether actor may toggle form approval for an entry on line.
// A nil line (unknown line id) only admits admins.
func CanSetFormApproval(actor domain.Actor, line *domain.ProductionLine) bool {
	if actor.IsAdmin() {
		return true
	}
	return line != nil && line.FormApproverID != nil && *line.FormApproverID == actor.UserID
}
