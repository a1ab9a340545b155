package services

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"strings"
	"time"

	"github.com/SscSPs/waste_approval_app/internal/apperrors"
	"github.com/SscSPs/waste_approval_app/internal/core/domain"
	portsrepo "github.com/SscSPs/waste_approval_app/internal/core/ports/repositories"
	portssvc "github.com/SscSPs/waste_approval_app/internal/core/ports/services"
	"github.com/SscSPs/waste_approval_app/internal/dto"
	"github.com/google/uuid"
	"github.com/shopspring/decimal"
)

const maxUnitLength = 16

// quantity is stored as NUMERIC(18,4)
const (
	maxQuantityScale         = 4
	maxQuantityIntegerDigits = 14
)

var quantityLimit = decimal.New(1, maxQuantityIntegerDigits)

// workflowService implements the WorkflowSvcFacade interface
type workflowService struct {
	BaseService
	uow           portsrepo.UnitOfWork
	levelRepo     portsrepo.ApprovalLevelReader
	entryRepo     portsrepo.WasteEntryReader
	approvalRepo  portsrepo.WasteApprovalReader
	userDirectory portsrepo.UserDirectory
	lineDirectory portsrepo.LineDirectory
	notifier      portssvc.WorkflowNotifier
	ladderMode    domain.LadderMode
	now           func() time.Time
}

// WorkflowOption is a functional option for configuring the workflow service
type WorkflowOption func(*workflowService)

// WithLadderMode selects live or frozen ladder traversal. Unknown modes are ignored.
func WithLadderMode(mode domain.LadderMode) WorkflowOption {
	return func(s *workflowService) {
		if mode.IsValid() {
			s.ladderMode = mode
		}
	}
}

// WithNotifier adds a publisher for committed transitions
func WithNotifier(n portssvc.WorkflowNotifier) WorkflowOption {
	return func(s *workflowService) {
		s.notifier = n
	}
}

// WithClock overrides the time source
func WithClock(now func() time.Time) WorkflowOption {
	return func(s *workflowService) {
		s.now = now
	}
}

// NewWorkflowService creates the workflow engine over the given repositories.
func NewWorkflowService(repos portsrepo.RepositoryProvider, options ...WorkflowOption) portssvc.WorkflowSvcFacade {
	svc := &workflowService{
		uow:           repos.UnitOfWork,
		levelRepo:     repos.ApprovalLevelRepo,
		entryRepo:     repos.WasteEntryRepo,
		approvalRepo:  repos.WasteApprovalRepo,
		userDirectory: repos.UserDirectory,
		lineDirectory: repos.LineDirectory,
		ladderMode:    domain.LadderLive,
		now:           func() time.Time { return time.Now().UTC() },
	}

	for _, option := range options {
		option(svc)
	}

	return svc
}

// Ensure workflowService implements the WorkflowSvcFacade interface
var _ portssvc.WorkflowSvcFacade = (*workflowService)(nil)

func (s *workflowService) SubmitEntry(ctx context.Context, actor domain.Actor, req dto.CreateWasteEntryRequest) (*domain.WasteEntry, error) {
	fields := req.ToFields()
	if err := validateEntryFields(fields); err != nil {
		return nil, err
	}

	now := s.now()
	entry := domain.WasteEntry{
		EntryID:        uuid.NewString(),
		LineID:         strings.TrimSpace(fields.LineID),
		ProductID:      strings.TrimSpace(fields.ProductID),
		ReasonID:       trimmedOrNil(fields.ReasonID),
		Quantity:       fields.Quantity,
		Unit:           strings.TrimSpace(fields.Unit),
		Notes:          fields.Notes,
		ApprovalStatus: domain.StatusPending,
		AuditFields: domain.AuditFields{
			CreatedAt:     now,
			CreatedBy:     actor.UserID,
			LastUpdatedAt: now,
			LastUpdatedBy: actor.UserID,
			Version:       1,
		},
	}

	var seeded int
	err := s.uow.Within(ctx, func(ctx context.Context, repos portsrepo.TxRepositories) error {
		ladder, err := repos.Levels.ListActiveLevels(ctx)
		if err != nil {
			return fmt.Errorf("failed to snapshot active levels: %w", err)
		}
		entry.CurrentApprovalLevel = ladder.FirstOrder()

		if err := repos.Entries.SaveEntry(ctx, entry); err != nil {
			return fmt.Errorf("failed to save waste entry: %w", err)
		}

		if len(ladder) == 0 {
			return nil
		}
		approvals := make([]domain.WasteApproval, len(ladder))
		for i, lvl := range ladder {
			approvals[i] = domain.WasteApproval{
				ApprovalID:  uuid.NewString(),
				EntryID:     entry.EntryID,
				LevelID:     lvl.LevelID,
				Status:      domain.StatusPending,
				AuditFields: entry.AuditFields,
			}
		}
		if err := repos.Approvals.SaveApprovals(ctx, approvals); err != nil {
			return fmt.Errorf("failed to seed approval ledger: %w", err)
		}
		seeded = len(approvals)
		return nil
	})
	if err != nil {
		s.LogError(ctx, err, "Failed to submit waste entry", slog.String("line_id", entry.LineID))
		return nil, err
	}

	s.LogInfo(ctx, "Waste entry submitted",
		slog.String("entry_id", entry.EntryID),
		slog.Int("current_approval_level", entry.CurrentApprovalLevel),
		slog.Int("ledger_rows", seeded))
	s.publish(ctx, domain.EventEntrySubmitted, actor, entry)
	return &entry, nil
}

func (s *workflowService) Decide(ctx context.Context, actor domain.Actor, entryID string, req dto.DecisionRequest) (*domain.DecisionResult, error) {
	if !CanDecide(actor) {
		s.LogWarn(ctx, "Role not allowed to decide", slog.String("role", string(actor.Role)))
		return nil, apperrors.NewForbiddenError("only admins and approvers may decide on entries")
	}
	decision := domain.Decision(req.Decision)
	if !decision.IsValid() {
		return nil, apperrors.NewValidationFailedError(fmt.Sprintf("invalid decision %q", req.Decision))
	}

	var (
		result  domain.DecisionResult
		updated domain.WasteEntry
		event   domain.WorkflowEventType
	)
	err := s.uow.Within(ctx, func(ctx context.Context, repos portsrepo.TxRepositories) error {
		entry, err := repos.Entries.FindEntryByIDForUpdate(ctx, entryID)
		if err != nil {
			if errors.Is(err, apperrors.ErrNotFound) {
				return apperrors.NewNotFoundError("waste entry " + entryID)
			}
			return fmt.Errorf("failed to load waste entry: %w", err)
		}
		if entry.ApprovalStatus.IsTerminal() {
			return apperrors.NewConflictError(fmt.Sprintf("waste entry is already %s", entry.ApprovalStatus))
		}

		ladder, err := s.resolveLadder(ctx, repos, entryID)
		if err != nil {
			return err
		}

		now := s.now()
		current, found := ladder.Find(entry.CurrentApprovalLevel)
		if !found && s.ladderMode == domain.LadderFrozen {
			// the current level was deleted; the next snapshotted level takes over
			current, found = ladder.Next(entry.CurrentApprovalLevel)
			if found {
				s.LogInfo(ctx, "Current level no longer exists, moving to next ledger level",
					slog.String("entry_id", entryID),
					slog.Int("current_approval_level", entry.CurrentApprovalLevel),
					slog.Int("next_approval_level", current.LevelOrder))
				entry.CurrentApprovalLevel = current.LevelOrder
			}
		}
		if !found {
			applyFinalDecision(entry, decision)
			result.Message = fmt.Sprintf("entry %s directly, no approval level is configured", decision)
			s.LogInfo(ctx, "No current level, decision applied directly",
				slog.String("entry_id", entryID),
				slog.Int("current_approval_level", entry.CurrentApprovalLevel))
		} else {
			assigned := false
			if !actor.IsAdmin() {
				assigned, err = repos.Levels.IsApproverAssigned(ctx, current.LevelID, actor.UserID)
				if err != nil {
					return fmt.Errorf("failed to check approver assignment: %w", err)
				}
			}
			if !CanAct(actor, assigned) {
				return apperrors.NewForbiddenError("you are not an approver for level " + current.Name)
			}

			if err := s.recordLedgerDecision(ctx, repos, entryID, current, decision, actor, req.Comments, now); err != nil {
				return err
			}

			next, hasNext := ladder.Next(current.LevelOrder)
			switch {
			case decision == domain.DecisionRejected:
				applyFinalDecision(entry, decision)
				result.Message = "entry rejected at level " + current.Name
			case hasNext:
				entry.CurrentApprovalLevel = next.LevelOrder
				level := next.LevelOrder
				result.CurrentApprovalLevel = &level
				result.Message = fmt.Sprintf("approved at level %s, moved to level %s", current.Name, next.Name)
			default:
				applyFinalDecision(entry, decision)
				result.Message = "entry fully approved"
			}
		}

		entry.LastUpdatedAt = now
		entry.LastUpdatedBy = actor.UserID
		if err := repos.Entries.UpdateEntryWorkflow(ctx, *entry); err != nil {
			return fmt.Errorf("failed to update waste entry: %w", err)
		}
		entry.Version++

		result.EntryID = entry.EntryID
		result.ApprovalStatus = entry.ApprovalStatus
		result.DecidedAt = now
		updated = *entry
		return nil
	})
	if err != nil {
		if apperrors.StatusCode(err) >= 500 {
			s.LogError(ctx, err, "Failed to apply decision", slog.String("entry_id", entryID))
		} else {
			s.LogWarn(ctx, "Decision refused", slog.String("entry_id", entryID), slog.String("reason", err.Error()))
		}
		return nil, err
	}

	switch updated.ApprovalStatus {
	case domain.StatusApproved:
		event = domain.EventEntryApproved
	case domain.StatusRejected:
		event = domain.EventEntryRejected
	default:
		event = domain.EventEntryAdvanced
	}
	s.LogInfo(ctx, "Decision applied",
		slog.String("entry_id", entryID),
		slog.String("decision", string(decision)),
		slog.String("approval_status", string(updated.ApprovalStatus)),
		slog.Int("current_approval_level", updated.CurrentApprovalLevel))
	s.publish(ctx, event, actor, updated)
	return &result, nil
}

// resolveLadder returns the levels a decision traverses for the configured mode.
func (s *workflowService) resolveLadder(ctx context.Context, repos portsrepo.TxRepositories, entryID string) (domain.Ladder, error) {
	if s.ladderMode == domain.LadderFrozen {
		ladder, err := repos.Approvals.ListLedgerLevels(ctx, entryID)
		if err != nil {
			return nil, fmt.Errorf("failed to load ledger levels: %w", err)
		}
		return ladder, nil
	}
	ladder, err := repos.Levels.ListActiveLevels(ctx)
	if err != nil {
		return nil, fmt.Errorf("failed to snapshot active levels: %w", err)
	}
	return ladder, nil
}

// recordLedgerDecision writes the decision into the (entry, level) ledger row.
// A level activated after submission has no row; the decision still applies to the entry.
func (s *workflowService) recordLedgerDecision(
	ctx context.Context,
	repos portsrepo.TxRepositories,
	entryID string,
	level domain.ApprovalLevel,
	decision domain.Decision,
	actor domain.Actor,
	comments *string,
	now time.Time,
) error {
	row, err := repos.Approvals.FindApproval(ctx, entryID, level.LevelID)
	if err != nil {
		if errors.Is(err, apperrors.ErrNotFound) {
			s.LogWarn(ctx, "No ledger row for current level, skipping ledger write",
				slog.String("entry_id", entryID),
				slog.String("level_id", level.LevelID))
			return nil
		}
		return fmt.Errorf("failed to load ledger row: %w", err)
	}
	if row.Status != domain.StatusPending {
		return apperrors.NewConflictError("level " + level.Name + " has already been decided")
	}

	approvedBy := actor.UserID
	decidedAt := now
	row.Status = domain.ApprovalStatus(decision)
	row.ApprovedBy = &approvedBy
	row.Comments = comments
	row.DecidedAt = &decidedAt
	row.LastUpdatedAt = now
	row.LastUpdatedBy = actor.UserID
	if err := repos.Approvals.RecordDecision(ctx, *row); err != nil {
		return fmt.Errorf("failed to record ledger decision: %w", err)
	}
	return nil
}

func applyFinalDecision(entry *domain.WasteEntry, decision domain.Decision) {
	if decision == domain.DecisionApproved {
		entry.ApprovalStatus = domain.StatusApproved
		entry.AppApproved = true
		return
	}
	entry.ApprovalStatus = domain.StatusRejected
}

func (s *workflowService) ListApprovableEntries(ctx context.Context, actor domain.Actor, status string) ([]domain.WasteEntryView, error) {
	filter, ok := domain.ParseEntryStatusFilter(status)
	if !ok {
		return nil, apperrors.NewValidationFailedError(fmt.Sprintf("invalid status filter %q", status))
	}

	query := domain.EntryListQuery{Status: filter}
	assigned, err := s.assignedOrders(ctx, actor)
	if err != nil {
		return nil, err
	}
	if !actor.IsAdmin() {
		if len(assigned) == 0 {
			return []domain.WasteEntryView{}, nil
		}
		query.LevelOrders = make([]int, 0, len(assigned))
		for order := range assigned {
			query.LevelOrders = append(query.LevelOrders, order)
		}
	}

	views, err := s.entryRepo.ListEntries(ctx, query)
	if err != nil {
		s.LogError(ctx, err, "Failed to list waste entries", slog.String("status", string(filter)))
		return nil, fmt.Errorf("failed to list waste entries: %w", err)
	}
	for i := range views {
		views[i].CanApprove = CanApprove(actor, views[i].WasteEntry, assigned)
	}
	if views == nil {
		return []domain.WasteEntryView{}, nil
	}
	return views, nil
}

func (s *workflowService) GetEntry(ctx context.Context, actor domain.Actor, entryID string) (*domain.WasteEntryView, error) {
	entry, err := s.entryRepo.FindEntryByID(ctx, entryID)
	if err != nil {
		if errors.Is(err, apperrors.ErrNotFound) {
			return nil, apperrors.NewNotFoundError("waste entry " + entryID)
		}
		s.LogError(ctx, err, "Failed to load waste entry", slog.String("entry_id", entryID))
		return nil, fmt.Errorf("failed to load waste entry: %w", err)
	}

	approvals, err := s.approvalRepo.ListApprovalsByEntry(ctx, entryID)
	if err != nil {
		s.LogError(ctx, err, "Failed to load approval ledger", slog.String("entry_id", entryID))
		return nil, fmt.Errorf("failed to load approval ledger: %w", err)
	}

	assigned, err := s.assignedOrders(ctx, actor)
	if err != nil {
		return nil, err
	}

	view := &domain.WasteEntryView{
		WasteEntry: *entry,
		Approvals:  approvals,
		CanApprove: CanApprove(actor, *entry, assigned),
	}
	if s.userDirectory != nil {
		if profile, err := s.userDirectory.FindProfile(ctx, entry.CreatedBy); err == nil {
			view.CreatorName = profile.Name
		} else if !errors.Is(err, apperrors.ErrNotFound) {
			s.LogError(ctx, err, "Failed to load creator profile", slog.String("user_id", entry.CreatedBy))
		}
	}
	if line := s.lookupLine(ctx, entry.LineID); line != nil {
		name := line.Name
		view.LineName = &name
	}
	return view, nil
}

// assignedOrders returns the level orders the actor approves at. Admins get nil.
func (s *workflowService) assignedOrders(ctx context.Context, actor domain.Actor) (map[int]struct{}, error) {
	if actor.IsAdmin() {
		return nil, nil
	}
	levels, err := s.levelRepo.ListLevelsByApprover(ctx, actor.UserID)
	if err != nil {
		s.LogError(ctx, err, "Failed to load approver levels", slog.String("user_id", actor.UserID))
		return nil, fmt.Errorf("failed to load approver levels: %w", err)
	}
	orders := make(map[int]struct{}, len(levels))
	for _, lvl := range levels {
		orders[lvl.LevelOrder] = struct{}{}
	}
	return orders, nil
}

// lookupLine degrades to nil when the line is unknown or the directory fails.
func (s *workflowService) lookupLine(ctx context.Context, lineID string) *domain.ProductionLine {
	if s.lineDirectory == nil {
		return nil
	}
	line, err := s.lineDirectory.FindLineByID(ctx, lineID)
	if err != nil {
		if !errors.Is(err, apperrors.ErrNotFound) {
			s.LogError(ctx, err, "Failed to load production line", slog.String("line_id", lineID))
		}
		return nil
	}
	return line
}

func (s *workflowService) publish(ctx context.Context, eventType domain.WorkflowEventType, actor domain.Actor, entry domain.WasteEntry) {
	if s.notifier == nil {
		return
	}
	event := domain.WorkflowEvent{
		Type:                 eventType,
		EntryID:              entry.EntryID,
		ActorID:              actor.UserID,
		ApprovalStatus:       entry.ApprovalStatus,
		CurrentApprovalLevel: entry.CurrentApprovalLevel,
		FormApproved:         entry.FormApproved,
		OccurredAt:           s.now(),
	}
	if err := s.notifier.Publish(ctx, event); err != nil {
		s.LogError(ctx, err, "Failed to publish workflow event",
			slog.String("event", string(eventType)),
			slog.String("entry_id", entry.EntryID))
	}
}

func validateEntryFields(f domain.WasteEntryFields) error {
	switch {
	case strings.TrimSpace(f.LineID) == "":
		return apperrors.NewValidationFailedError("line id is required")
	case strings.TrimSpace(f.ProductID) == "":
		return apperrors.NewValidationFailedError("product id is required")
	case !f.Quantity.IsPositive():
		return apperrors.NewValidationFailedError("quantity must be greater than zero")
	case !f.Quantity.Equal(f.Quantity.Truncate(maxQuantityScale)):
		return apperrors.NewValidationFailedError(fmt.Sprintf("quantity must have at most %d decimal places", maxQuantityScale))
	case f.Quantity.GreaterThanOrEqual(quantityLimit):
		return apperrors.NewValidationFailedError(fmt.Sprintf("quantity must have at most %d integer digits", maxQuantityIntegerDigits))
	case strings.TrimSpace(f.Unit) == "":
		return apperrors.NewValidationFailedError("unit is required")
	case len(strings.TrimSpace(f.Unit)) > maxUnitLength:
		return apperrors.NewValidationFailedError(fmt.Sprintf("unit must be at most %d characters", maxUnitLength))
	}
	return nil
}
