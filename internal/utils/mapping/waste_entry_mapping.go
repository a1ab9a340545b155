package mapping

import (
	"github.com/SscSPs/waste_approval_app/internal/core/domain"
	"github.com/SscSPs/waste_approval_app/internal/models"
)

// ToModelWasteEntry converts a domain WasteEntry to a model WasteEntry
func ToModelWasteEntry(d domain.WasteEntry) models.WasteEntry {
	return models.WasteEntry{
		EntryID:              d.EntryID,
		LineID:               d.LineID,
		ProductID:            d.ProductID,
		ReasonID:             d.ReasonID,
		Quantity:             d.Quantity,
		Unit:                 d.Unit,
		Notes:                d.Notes,
		CurrentApprovalLevel: d.CurrentApprovalLevel,
		ApprovalStatus:       string(d.ApprovalStatus),
		AppApproved:          d.AppApproved,
		FormApproved:         d.FormApproved,
		AuditFields:          ToModelAuditFields(d.AuditFields),
	}
}

// ToDomainWasteEntry converts a model WasteEntry to a domain WasteEntry
func ToDomainWasteEntry(m models.WasteEntry) domain.WasteEntry {
	return domain.WasteEntry{
		EntryID:              m.EntryID,
		LineID:               m.LineID,
		ProductID:            m.ProductID,
		ReasonID:             m.ReasonID,
		Quantity:             m.Quantity,
		Unit:                 m.Unit,
		Notes:                m.Notes,
		CurrentApprovalLevel: m.CurrentApprovalLevel,
		ApprovalStatus:       domain.ApprovalStatus(m.ApprovalStatus),
		AppApproved:          m.AppApproved,
		FormApproved:         m.FormApproved,
		AuditFields:          ToDomainAuditFields(m.AuditFields),
	}
}

// ToDomainWasteEntryViews converts joined list rows.
func ToDomainWasteEntryViews(rows []models.WasteEntryListRow) []domain.WasteEntryView {
	views := make([]domain.WasteEntryView, len(rows))
	for i, r := range rows {
		views[i] = domain.WasteEntryView{
			WasteEntry:  ToDomainWasteEntry(r.WasteEntry),
			CreatorName: r.CreatorName,
			LineName:    r.LineName,
		}
	}
	return views
}

// ToModelWasteApproval converts a domain ledger row to a model row
func ToModelWasteApproval(d domain.WasteApproval) models.WasteApproval {
	return models.WasteApproval{
		ApprovalID:  d.ApprovalID,
		EntryID:     d.EntryID,
		LevelID:     d.LevelID,
		Status:      string(d.Status),
		ApprovedBy:  d.ApprovedBy,
		Comments:    d.Comments,
		DecidedAt:   d.DecidedAt,
		AuditFields: ToModelAuditFields(d.AuditFields),
	}
}

// ToDomainWasteApproval converts a model ledger row to a domain row
func ToDomainWasteApproval(m models.WasteApproval) domain.WasteApproval {
	return domain.WasteApproval{
		ApprovalID:  m.ApprovalID,
		EntryID:     m.EntryID,
		LevelID:     m.LevelID,
		Status:      domain.ApprovalStatus(m.Status),
		ApprovedBy:  m.ApprovedBy,
		Comments:    m.Comments,
		DecidedAt:   m.DecidedAt,
		AuditFields: ToDomainAuditFields(m.AuditFields),
	}
}

// ToDomainWasteApprovals converts enriched ledger rows.
func ToDomainWasteApprovals(rows []models.WasteApprovalRow) []domain.WasteApproval {
	approvals := make([]domain.WasteApproval, len(rows))
	for i, r := range rows {
		a := ToDomainWasteApproval(r.WasteApproval)
		a.LevelName = r.LevelName
		a.LevelOrder = r.LevelOrder
		a.ApproverName = r.ApproverName
		approvals[i] = a
	}
	return approvals
}
