package repositories

import (
	"context"

	"github.com/SscSPs/waste_approval_app/internal/core/domain"
)

// WasteEntryReader defines read operations for waste entries
type WasteEntryReader interface {
	// FindEntryByID retrieves an entry by its ID.
	FindEntryByID(ctx context.Context, entryID string) (*domain.WasteEntry, error)

	// ListEntries returns entries matching the query, newest first, enriched with creator and line names.
	ListEntries(ctx context.Context, query domain.EntryListQuery) ([]domain.WasteEntryView, error)
}

// WasteEntryWriter defines write operations for waste entries
type WasteEntryWriter interface {
	// SaveEntry inserts a new entry.
	SaveEntry(ctx context.Context, entry domain.WasteEntry) error

	// UpdateEntryWorkflow writes the workflow fields (status, level, app/form approval)
	// only if the stored version still equals entry.Version. A lost race yields apperrors.ErrConflict.
	UpdateEntryWorkflow(ctx context.Context, entry domain.WasteEntry) error
}

// WasteEntryLocker locks an entry row for the rest of the enclosing transaction.
type WasteEntryLocker interface {
	FindEntryByIDForUpdate(ctx context.Context, entryID string) (*domain.WasteEntry, error)
}

// WasteEntryRepositoryFacade combines the reader and writer
type WasteEntryRepositoryFacade interface {
	WasteEntryReader
	WasteEntryWriter
}

// WasteEntryRepositoryWithLock is the transaction-bound variant used by the workflow.
type WasteEntryRepositoryWithLock interface {
	WasteEntryRepositoryFacade
	WasteEntryLocker
}

// WasteApprovalReader defines read operations on the per-level ledger
type WasteApprovalReader interface {
	// FindApproval returns the ledger row for (entry, level).
	FindApproval(ctx context.Context, entryID, levelID string) (*domain.WasteApproval, error)

	// ListApprovalsByEntry returns an entry's ledger rows ordered by level_order, enriched with names.
	ListApprovalsByEntry(ctx context.Context, entryID string) ([]domain.WasteApproval, error)

	// ListLedgerLevels returns the still-existing levels an entry's ledger rows reference, ordered by level_order.
	ListLedgerLevels(ctx context.Context, entryID string) (domain.Ladder, error)
}

// WasteApprovalWriter defines write operations on the per-level ledger
type WasteApprovalWriter interface {
	// SaveApprovals bulk-inserts ledger rows.
	SaveApprovals(ctx context.Context, approvals []domain.WasteApproval) error

	// RecordDecision updates a pending ledger row; a row that is no longer pending yields apperrors.ErrConflict.
	RecordDecision(ctx context.Context, approval domain.WasteApproval) error
}

// WasteApprovalRepositoryFacade combines the ledger reader and writer
type WasteApprovalRepositoryFacade interface {
	WasteApprovalReader
	WasteApprovalWriter
}
