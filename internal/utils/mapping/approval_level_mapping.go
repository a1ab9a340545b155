package mapping

import (
	"github.com/SscSPs/waste_approval_app/internal/core/domain"
	"github.com/SscSPs/waste_approval_app/internal/models"
)

// ToModelApprovalLevel converts a domain ApprovalLevel to a model ApprovalLevel
func ToModelApprovalLevel(d domain.ApprovalLevel) models.ApprovalLevel {
	return models.ApprovalLevel{
		LevelID:       d.LevelID,
		Name:          d.Name,
		NameLocalized: d.NameLocalized,
		LevelOrder:    d.LevelOrder,
		ApprovalType:  string(d.ApprovalType),
		IsActive:      d.IsActive,
		AuditFields:   ToModelAuditFields(d.AuditFields),
	}
}

// ToDomainApprovalLevel converts a model ApprovalLevel to a domain ApprovalLevel.
// Approvers are left empty; callers attach them separately.
func ToDomainApprovalLevel(m models.ApprovalLevel) domain.ApprovalLevel {
	return domain.ApprovalLevel{
		LevelID:       m.LevelID,
		Name:          m.Name,
		NameLocalized: m.NameLocalized,
		LevelOrder:    m.LevelOrder,
		ApprovalType:  domain.ParseApprovalTypeOrDefault(m.ApprovalType),
		IsActive:      m.IsActive,
		AuditFields:   ToDomainAuditFields(m.AuditFields),
		Approvers:     []domain.LevelApprover{},
	}
}

// ToDomainApprovalLevels converts a slice of model levels.
func ToDomainApprovalLevels(ms []models.ApprovalLevel) []domain.ApprovalLevel {
	levels := make([]domain.ApprovalLevel, len(ms))
	for i, m := range ms {
		levels[i] = ToDomainApprovalLevel(m)
	}
	return levels
}

// ToModelAssignment converts a domain assignment to a model assignment
func ToModelAssignment(d domain.ApprovalLevelAssignment) models.ApprovalLevelAssignment {
	return models.ApprovalLevelAssignment{
		AssignmentID: d.AssignmentID,
		LevelID:      d.LevelID,
		UserID:       d.UserID,
		AuditFields:  ToModelAuditFields(d.AuditFields),
	}
}

// ToDomainLevelApprover converts a joined approver row.
func ToDomainLevelApprover(m models.LevelApproverRow) domain.LevelApprover {
	return domain.LevelApprover{
		AssignmentID: m.AssignmentID,
		LevelID:      m.LevelID,
		UserID:       m.UserID,
		Name:         m.Name,
		Email:        m.Email,
	}
}

// AttachApprovers groups approver rows onto their levels, keeping row order.
func AttachApprovers(levels []domain.ApprovalLevel, rows []models.LevelApproverRow) {
	index := make(map[string]int, len(levels))
	for i := range levels {
		index[levels[i].LevelID] = i
	}
	for _, row := range rows {
		if i, ok := index[row.LevelID]; ok {
			levels[i].Approvers = append(levels[i].Approvers, ToDomainLevelApprover(row))
		}
	}
}
