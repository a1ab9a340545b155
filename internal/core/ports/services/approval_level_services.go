package services

import (
	"context"

	"github.com/SscSPs/waste_approval_app/internal/core/domain"
	"github.com/SscSPs/waste_approval_app/internal/dto"
)

// ApprovalLevelReaderSvc defines read operations on the approval ladder
type ApprovalLevelReaderSvc interface {
	// ListLevels returns every level ascending by order, each with its approvers.
	ListLevels(ctx context.Context, actor domain.Actor) ([]domain.ApprovalLevel, error)
}

// ApprovalLevelWriterSvc defines ladder configuration operations. All of them are admin-only.
type ApprovalLevelWriterSvc interface {
	// CreateLevel appends a level at the end of the ladder.
	CreateLevel(ctx context.Context, actor domain.Actor, req dto.CreateApprovalLevelRequest) (*domain.ApprovalLevel, error)

	// UpdateLevel applies a partial update to a level.
	UpdateLevel(ctx context.Context, actor domain.Actor, levelID string, req dto.UpdateApprovalLevelRequest) (*domain.ApprovalLevel, error)

	// DeleteLevel removes a level. Deleting a missing level succeeds.
	DeleteLevel(ctx context.Context, actor domain.Actor, levelID string) error
}

// ApproverAssignmentSvc defines operations on level approvers. All of them are admin-only.
type ApproverAssignmentSvc interface {
	// AssignApprover assigns a user to a level and returns the enriched assignment.
	AssignApprover(ctx context.Context, actor domain.Actor, levelID string, req dto.AssignApproverRequest) (*domain.LevelApprover, error)

	// RemoveAssignment removes an assignment. Removing a missing assignment succeeds.
	RemoveAssignment(ctx context.Context, actor domain.Actor, assignmentID string) error
}

// ApprovalLevelSvcFacade combines all approval level service interfaces
type ApprovalLevelSvcFacade interface {
	ApprovalLevelReaderSvc
	ApprovalLevelWriterSvc
	ApproverAssignmentSvc
}
