package models

import (
	"time"

	"github.com/shopspring/decimal"
)

// WasteEntry is a row of waste_entries.
type WasteEntry struct {
	EntryID              string          `db:"entry_id" gorm:"column:entry_id;primaryKey"`
	LineID               string          `db:"line_id" gorm:"column:line_id"`
	ProductID            string          `db:"product_id" gorm:"column:product_id"`
	ReasonID             *string         `db:"reason_id" gorm:"column:reason_id"`
	Quantity             decimal.Decimal `db:"quantity" gorm:"column:quantity;type:numeric"`
	Unit                 string          `db:"unit" gorm:"column:unit"`
	Notes                *string         `db:"notes" gorm:"column:notes"`
	CurrentApprovalLevel int             `db:"current_approval_level" gorm:"column:current_approval_level"`
	ApprovalStatus       string          `db:"approval_status" gorm:"column:approval_status"`
	AppApproved          bool            `db:"app_approved" gorm:"column:app_approved"`
	FormApproved         bool            `db:"form_approved" gorm:"column:form_approved"`
	AuditFields
}

// TableName sets the gorm table name.
func (WasteEntry) TableName() string { return "waste_entries" }

// WasteEntryListRow is an entry joined with creator and line names.
type WasteEntryListRow struct {
	WasteEntry
	CreatorName *string `db:"creator_name" gorm:"column:creator_name"`
	LineName    *string `db:"line_name" gorm:"column:line_name"`
}

// WasteApproval is a row of waste_approvals, the per-level ledger.
type WasteApproval struct {
	ApprovalID string     `db:"approval_id" gorm:"column:approval_id;primaryKey"`
	EntryID    string     `db:"entry_id" gorm:"column:entry_id"`
	LevelID    string     `db:"level_id" gorm:"column:level_id"`
	Status     string     `db:"status" gorm:"column:status"`
	ApprovedBy *string    `db:"approved_by" gorm:"column:approved_by"`
	Comments   *string    `db:"comments" gorm:"column:comments"`
	DecidedAt  *time.Time `db:"decided_at" gorm:"column:decided_at"`
	AuditFields
}

// TableName sets the gorm table name.
func (WasteApproval) TableName() string { return "waste_approvals" }

// WasteApprovalRow is a ledger row joined with its level and approver.
type WasteApprovalRow struct {
	WasteApproval
	LevelName    *string `db:"level_name" gorm:"column:level_name"`
	LevelOrder   *int    `db:"level_order" gorm:"column:level_order"`
	ApproverName *string `db:"approver_name" gorm:"column:approver_name"`
}
