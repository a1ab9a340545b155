package dto

import (
	"time"

	"github.com/SscSPs/waste_approval_app/internal/core/domain"
	"github.com/shopspring/decimal"
)

// CreateWasteEntryRequest defines the data needed to submit a waste entry.
type CreateWasteEntryRequest struct {
	LineID    string          `json:"lineID" binding:"required"`
	ProductID string          `json:"productID" binding:"required"`
	ReasonID  *string         `json:"reasonID"`
	Quantity  decimal.Decimal `json:"quantity" binding:"required,dgt0"`
	Unit      string          `json:"unit" binding:"required,max=16"`
	Notes     *string         `json:"notes"`
}

// ToFields converts the request into domain submission fields.
func (r CreateWasteEntryRequest) ToFields() domain.WasteEntryFields {
	return domain.WasteEntryFields{
		LineID:    r.LineID,
		ProductID: r.ProductID,
		ReasonID:  r.ReasonID,
		Quantity:  r.Quantity,
		Unit:      r.Unit,
		Notes:     r.Notes,
	}
}

// DecisionRequest carries an approver's decision.
type DecisionRequest struct {
	Decision string  `json:"decision" binding:"required,oneof=approved rejected"`
	Comments *string `json:"comments"`
}

// FormApprovalRequest toggles the form approval flag. A pointer keeps false distinguishable from missing.
type FormApprovalRequest struct {
	Approved *bool `json:"approved" binding:"required"`
}

// ListApprovableParams defines query parameters for the approvals list.
type ListApprovableParams struct {
	Status string `form:"status"`
}

// WasteEntryResponse defines the data returned for a waste entry.
type WasteEntryResponse struct {
	EntryID              string                  `json:"entryID"`
	LineID               string                  `json:"lineID"`
	LineName             *string                 `json:"lineName,omitempty"`
	ProductID            string                  `json:"productID"`
	ReasonID             *string                 `json:"reasonID"`
	Quantity             decimal.Decimal         `json:"quantity"`
	Unit                 string                  `json:"unit"`
	Notes                *string                 `json:"notes"`
	CurrentApprovalLevel int                     `json:"currentApprovalLevel"`
	ApprovalStatus       domain.ApprovalStatus   `json:"approvalStatus"`
	AppApproved          bool                    `json:"appApproved"`
	FormApproved         bool                    `json:"formApproved"`
	CreatedBy            string                  `json:"createdBy"`
	CreatorName          *string                 `json:"creatorName,omitempty"`
	CreatedAt            time.Time               `json:"createdAt"`
	LastUpdatedAt        time.Time               `json:"lastUpdatedAt"`
	Version              int                     `json:"version"`
	CanApprove           *bool                   `json:"canApprove,omitempty"`
	Approvals            []WasteApprovalResponse `json:"approvals,omitempty"`
}

// WasteApprovalResponse is one ledger row of an entry.
type WasteApprovalResponse struct {
	ApprovalID   string                `json:"approvalID"`
	LevelID      string                `json:"levelID"`
	LevelName    *string               `json:"levelName"`
	LevelOrder   *int                  `json:"levelOrder"`
	Status       domain.ApprovalStatus `json:"status"`
	ApprovedBy   *string               `json:"approvedBy"`
	ApproverName *string               `json:"approverName"`
	Comments     *string               `json:"comments"`
	DecidedAt    *time.Time            `json:"decidedAt"`
}

// DecisionResponse reports the outcome of a decision.
type DecisionResponse struct {
	EntryID              string                `json:"entryID"`
	ApprovalStatus       domain.ApprovalStatus `json:"approvalStatus"`
	CurrentApprovalLevel *int                  `json:"currentApprovalLevel,omitempty"`
	Message              string                `json:"message"`
}

// ToWasteEntryResponse converts a domain.WasteEntry to its DTO.
func ToWasteEntryResponse(e *domain.WasteEntry) WasteEntryResponse {
	return WasteEntryResponse{
		EntryID:              e.EntryID,
		LineID:               e.LineID,
		ProductID:            e.ProductID,
		ReasonID:             e.ReasonID,
		Quantity:             e.Quantity,
		Unit:                 e.Unit,
		Notes:                e.Notes,
		CurrentApprovalLevel: e.CurrentApprovalLevel,
		ApprovalStatus:       e.ApprovalStatus,
		AppApproved:          e.AppApproved,
		FormApproved:         e.FormApproved,
		CreatedBy:            e.CreatedBy,
		CreatedAt:            e.CreatedAt,
		LastUpdatedAt:        e.LastUpdatedAt,
		Version:              e.Version,
	}
}

// ToWasteEntryViewResponse converts an enriched view, including can-approve and ledger rows.
func ToWasteEntryViewResponse(v *domain.WasteEntryView) WasteEntryResponse {
	res := ToWasteEntryResponse(&v.WasteEntry)
	res.LineName = v.LineName
	res.CreatorName = v.CreatorName
	canApprove := v.CanApprove
	res.CanApprove = &canApprove
	if len(v.Approvals) > 0 {
		res.Approvals = make([]WasteApprovalResponse, len(v.Approvals))
		for i, a := range v.Approvals {
			res.Approvals[i] = ToWasteApprovalResponse(a)
		}
	}
	return res
}

// ToListWasteEntryViewResponse converts a slice of views.
func ToListWasteEntryViewResponse(views []domain.WasteEntryView) []WasteEntryResponse {
	res := make([]WasteEntryResponse, len(views))
	for i := range views {
		res[i] = ToWasteEntryViewResponse(&views[i])
	}
	return res
}

// ToWasteApprovalResponse converts a ledger row.
func ToWasteApprovalResponse(a domain.WasteApproval) WasteApprovalResponse {
	return WasteApprovalResponse{
		ApprovalID:   a.ApprovalID,
		LevelID:      a.LevelID,
		LevelName:    a.LevelName,
		LevelOrder:   a.LevelOrder,
		Status:       a.Status,
		ApprovedBy:   a.ApprovedBy,
		ApproverName: a.ApproverName,
		Comments:     a.Comments,
		DecidedAt:    a.DecidedAt,
	}
}

// ToDecisionResponse converts a domain.DecisionResult.
func ToDecisionResponse(r *domain.DecisionResult) DecisionResponse {
	return DecisionResponse{
		EntryID:              r.EntryID,
		ApprovalStatus:       r.ApprovalStatus,
		CurrentApprovalLevel: r.CurrentApprovalLevel,
		Message:              r.Message,
	}
}
