package dto

import (
	"time"

	"github.com/SscSPs/waste_approval_app/internal/core/domain"
)

// CreateApprovalLevelRequest defines the data needed to create an approval level.
// ApprovalType is optional and falls back to sequential when missing or unknown.
type CreateApprovalLevelRequest struct {
	Name          string  `json:"name" binding:"required"`
	NameLocalized *string `json:"nameLocalized"`
	ApprovalType  string  `json:"approvalType"`
}

// UpdateApprovalLevelRequest defines the fields that may be changed on a level.
// Use pointers to distinguish between zero-value updates and fields not provided.
type UpdateApprovalLevelRequest struct {
	Name          *string `json:"name"`
	NameLocalized *string `json:"nameLocalized"`
	ApprovalType  *string `json:"approvalType"`
	IsActive      *bool   `json:"isActive"`
}

// AssignApproverRequest names the user to assign to a level.
type AssignApproverRequest struct {
	UserID string `json:"userID" binding:"required"`
}

// LevelApproverResponse is one approver of a level.
type LevelApproverResponse struct {
	AssignmentID string  `json:"assignmentID"`
	LevelID      string  `json:"levelID"`
	UserID       string  `json:"userID"`
	Name         *string `json:"name"`
	Email        *string `json:"email"`
}

// ApprovalLevelResponse defines the data returned for an approval level.
type ApprovalLevelResponse struct {
	LevelID       string                  `json:"levelID"`
	Name          string                  `json:"name"`
	NameLocalized *string                 `json:"nameLocalized"`
	LevelOrder    int                     `json:"levelOrder"`
	ApprovalType  domain.ApprovalType     `json:"approvalType"`
	IsActive      bool                    `json:"isActive"`
	Approvers     []LevelApproverResponse `json:"approvers"`
	CreatedAt     time.Time               `json:"createdAt"`
	LastUpdatedAt time.Time               `json:"lastUpdatedAt"`
	Version       int                     `json:"version"`
}

// ToLevelApproverResponse converts a domain.LevelApprover to its DTO.
func ToLevelApproverResponse(a domain.LevelApprover) LevelApproverResponse {
	return LevelApproverResponse{
		AssignmentID: a.AssignmentID,
		LevelID:      a.LevelID,
		UserID:       a.UserID,
		Name:         a.Name,
		Email:        a.Email,
	}
}

// ToApprovalLevelResponse converts a domain.ApprovalLevel to its DTO.
func ToApprovalLevelResponse(l *domain.ApprovalLevel) ApprovalLevelResponse {
	approvers := make([]LevelApproverResponse, len(l.Approvers))
	for i, a := range l.Approvers {
		approvers[i] = ToLevelApproverResponse(a)
	}
	return ApprovalLevelResponse{
		LevelID:       l.LevelID,
		Name:          l.Name,
		NameLocalized: l.NameLocalized,
		LevelOrder:    l.LevelOrder,
		ApprovalType:  l.ApprovalType,
		IsActive:      l.IsActive,
		Approvers:     approvers,
		CreatedAt:     l.CreatedAt,
		LastUpdatedAt: l.LastUpdatedAt,
		Version:       l.Version,
	}
}

// ToListApprovalLevelResponse converts a slice of levels.
func ToListApprovalLevelResponse(levels []domain.ApprovalLevel) []ApprovalLevelResponse {
	res := make([]ApprovalLevelResponse, len(levels))
	for i := range levels {
		res[i] = ToApprovalLevelResponse(&levels[i])
	}
	return res
}
