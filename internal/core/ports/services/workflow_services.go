package services

import (
	"context"

	"github.com/SscSPs/waste_approval_app/internal/core/domain"
	"github.com/SscSPs/waste_approval_app/internal/dto"
)

// WasteEntrySubmitterSvc handles waste entry submission
type WasteEntrySubmitterSvc interface {
	// SubmitEntry creates an entry positioned at the first active level, with one pending ledger row per active level.
	SubmitEntry(ctx context.Context, actor domain.Actor, req dto.CreateWasteEntryRequest) (*domain.WasteEntry, error)
}

// WasteEntryReaderSvc defines read operations over entries
type WasteEntryReaderSvc interface {
	// ListApprovableEntries lists entries visible to the actor, annotated with can-approve.
	ListApprovableEntries(ctx context.Context, actor domain.Actor, status string) ([]domain.WasteEntryView, error)

	// GetEntry returns one entry with its ledger rows.
	GetEntry(ctx context.Context, actor domain.Actor, entryID string) (*domain.WasteEntryView, error)
}

// WasteEntryDeciderSvc applies approver decisions
type WasteEntryDeciderSvc interface {
	// Decide records a decision for the entry's current level and advances or finalizes the entry.
	Decide(ctx context.Context, actor domain.Actor, entryID string, req dto.DecisionRequest) (*domain.DecisionResult, error)
}

// FormApprovalSvc controls the second-stage form approval flag
type FormApprovalSvc interface {
	// SetFormApproval sets or clears form approval on an app-approved entry.
	SetFormApproval(ctx context.Context, actor domain.Actor, entryID string, approved bool) (*domain.WasteEntry, error)
}

// WorkflowSvcFacade combines all workflow service interfaces
type WorkflowSvcFacade interface {
	WasteEntrySubmitterSvc
	WasteEntryReaderSvc
	WasteEntryDeciderSvc
	FormApprovalSvc
}

// WorkflowNotifier publishes committed workflow transitions.
type WorkflowNotifier interface {
	Publish(ctx context.Context, event domain.WorkflowEvent) error
}
