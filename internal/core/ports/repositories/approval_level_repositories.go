package repositories

import (
	"context"

	"github.com/SscSPs/waste_approval_app/internal/core/domain"
)

// ApprovalLevelReader defines read operations for approval levels
type ApprovalLevelReader interface {
	// ListLevels returns every level ordered by level_order, each with its approvers.
	ListLevels(ctx context.Context) ([]domain.ApprovalLevel, error)

	// FindLevelByID retrieves a level without its approvers.
	FindLevelByID(ctx context.Context, levelID string) (*domain.ApprovalLevel, error)

	// ListActiveLevels returns the active ladder ordered by level_order.
	ListActiveLevels(ctx context.Context) (domain.Ladder, error)

	// ListLevelsByApprover returns the levels a user is assigned to.
	ListLevelsByApprover(ctx context.Context, userID string) ([]domain.ApprovalLevel, error)

	// IsApproverAssigned reports whether userID is assigned to levelID.
	IsApproverAssigned(ctx context.Context, levelID, userID string) (bool, error)
}

// ApprovalLevelWriter defines write operations for approval levels
type ApprovalLevelWriter interface {
	// SaveLevelWithNextOrder assigns level_order = max+1 (1 when empty) and inserts the level.
	// The chosen order is written back into level.
	SaveLevelWithNextOrder(ctx context.Context, level *domain.ApprovalLevel) error

	// UpdateLevel persists name, type and active flag using the level's version for optimistic locking.
	UpdateLevel(ctx context.Context, level domain.ApprovalLevel) error

	// DeleteLevel hard-deletes a level. Missing ids are not an error.
	DeleteLevel(ctx context.Context, levelID string) error
}

// ApprovalAssignmentManager defines operations on level/approver assignments
type ApprovalAssignmentManager interface {
	// SaveAssignment inserts an assignment; an existing (level, user) pair yields apperrors.ErrDuplicate.
	SaveAssignment(ctx context.Context, assignment domain.ApprovalLevelAssignment) error

	// DeleteAssignment removes an assignment. Missing ids are not an error.
	DeleteAssignment(ctx context.Context, assignmentID string) error
}

// ApprovalLevelRepositoryFacade combines all approval-level repository interfaces
type ApprovalLevelRepositoryFacade interface {
	ApprovalLevelReader
	ApprovalLevelWriter
	ApprovalAssignmentManager
}
