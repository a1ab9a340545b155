package domain

import "time"

// WasteApproval is one ledger row: the decision of one level for one entry.
type WasteApproval struct {
	ApprovalID string         `json:"approvalID"`
	EntryID    string         `json:"entryID"`
	LevelID    string         `json:"levelID"`
	Status     ApprovalStatus `json:"status"`
	ApprovedBy *string        `json:"approvedBy"`
	Comments   *string        `json:"comments"`
	DecidedAt  *time.Time     `json:"decidedAt"`
	AuditFields

	// Read-side enrichment; nil when the level or user no longer resolves.
	LevelName    *string `json:"levelName,omitempty"`
	LevelOrder   *int    `json:"levelOrder,omitempty"`
	ApproverName *string `json:"approverName,omitempty"`
}
