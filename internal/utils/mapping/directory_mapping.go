package mapping

import (
	"github.com/SscSPs/waste_approval_app/internal/core/domain"
	"github.com/SscSPs/waste_approval_app/internal/models"
)

// ToDomainUserProfile converts a users row.
func ToDomainUserProfile(m models.User) domain.UserProfile {
	return domain.UserProfile{
		UserID: m.UserID,
		Name:   m.Name,
		Email:  m.Email,
		Role:   domain.UserRole(m.Role),
	}
}

// ToDomainProductionLine converts a production_lines row.
func ToDomainProductionLine(m models.ProductionLine) domain.ProductionLine {
	return domain.ProductionLine{
		LineID:         m.LineID,
		Name:           m.Name,
		FormApproverID: m.FormApproverID,
	}
}
