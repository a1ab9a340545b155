package domain

import (
	"time"

	"github.com/shopspring/decimal"
)

// ApprovalStatus is the workflow status of an entry or of one ledger row.
type ApprovalStatus string

const (
	StatusPending  ApprovalStatus = "pending"
	StatusApproved ApprovalStatus = "approved"
	StatusRejected ApprovalStatus = "rejected"
)

// IsTerminal reports whether no further ladder decision may change s.
func (s ApprovalStatus) IsTerminal() bool {
	return s == StatusApproved || s == StatusRejected
}

// Decision is what an approver records for a level.
type Decision string

const (
	DecisionApproved Decision = "approved"
	DecisionRejected Decision = "rejected"
)

// IsValid reports whether d is approved or rejected.
func (d Decision) IsValid() bool {
	return d == DecisionApproved || d == DecisionRejected
}

// WasteEntry is a submitted waste record and its workflow position.
type WasteEntry struct {
	EntryID   string          `json:"entryID"`
	LineID    string          `json:"lineID"`
	ProductID string          `json:"productID"`
	ReasonID  *string         `json:"reasonID"`
	Quantity  decimal.Decimal `json:"quantity"`
	Unit      string          `json:"unit"`
	Notes     *string         `json:"notes"`

	CurrentApprovalLevel int            `json:"currentApprovalLevel"`
	ApprovalStatus       ApprovalStatus `json:"approvalStatus"`
	AppApproved          bool           `json:"appApproved"`
	FormApproved         bool           `json:"formApproved"`

	AuditFields
}

// WasteEntryFields are the business fields supplied on submission.
type WasteEntryFields struct {
	LineID    string
	ProductID string
	ReasonID  *string
	Quantity  decimal.Decimal
	Unit      string
	Notes     *string
}

// WasteEntryView is an entry annotated for a particular viewer.
type WasteEntryView struct {
	WasteEntry
	CreatorName *string         `json:"creatorName"`
	LineName    *string         `json:"lineName"`
	CanApprove  bool            `json:"canApprove"`
	Approvals   []WasteApproval `json:"approvals,omitempty"`
}

// EntryStatusFilter selects entries by overall status in list views.
type EntryStatusFilter string

const (
	FilterPending  EntryStatusFilter = "pending"
	FilterApproved EntryStatusFilter = "approved"
	FilterRejected EntryStatusFilter = "rejected"
	FilterAll      EntryStatusFilter = "all"
)

// ParseEntryStatusFilter validates s; empty means pending.
func ParseEntryStatusFilter(s string) (EntryStatusFilter, bool) {
	switch f := EntryStatusFilter(s); f {
	case "":
		return FilterPending, true
	case FilterPending, FilterApproved, FilterRejected, FilterAll:
		return f, true
	}
	return "", false
}

// EntryListQuery narrows a list of entries. A nil LevelOrders means no level restriction.
type EntryListQuery struct {
	Status      EntryStatusFilter
	LevelOrders []int
}

// DecisionResult is returned by the workflow after a decision is applied.
type DecisionResult struct {
	EntryID              string         `json:"entryID"`
	ApprovalStatus       ApprovalStatus `json:"approvalStatus"`
	CurrentApprovalLevel *int           `json:"currentApprovalLevel,omitempty"`
	Message              string         `json:"message"`
	DecidedAt            time.Time      `json:"decidedAt"`
}
