package domain

import "time"

// WorkflowEventType names a workflow transition that is published after commit.
type WorkflowEventType string

const (
	EventEntrySubmitted      WorkflowEventType = "entry_submitted"
	EventEntryAdvanced       WorkflowEventType = "entry_advanced"
	EventEntryApproved       WorkflowEventType = "entry_approved"
	EventEntryRejected       WorkflowEventType = "entry_rejected"
	EventFormApprovalChanged WorkflowEventType = "form_approval_changed"
)

// WorkflowEvent is the payload published for every committed transition.
type WorkflowEvent struct {
	Type                 WorkflowEventType `json:"type"`
	EntryID              string            `json:"entryID"`
	ActorID              string            `json:"actorID"`
	ApprovalStatus       ApprovalStatus    `json:"approvalStatus"`
	CurrentApprovalLevel int               `json:"currentApprovalLevel"`
	FormApproved         bool              `json:"formApproved"`
	OccurredAt           time.Time         `json:"occurredAt"`
}
