package services

import (
	"context"
	"errors"
	"fmt"
	"log/slog"

	"github.com/SscSPs/waste_approval_app/internal/apperrors"
	"github.com/SscSPs/waste_approval_app/internal/core/domain"
	portsrepo "github.com/SscSPs/waste_approval_app/internal/core/ports/repositories"
)

func (s *workflowService) SetFormApproval(ctx context.Context, actor domain.Actor, entryID string, approved bool) (*domain.WasteEntry, error) {
	var updated domain.WasteEntry
	err := s.uow.Within(ctx, func(ctx context.Context, repos portsrepo.TxRepositories) error {
		entry, err := repos.Entries.FindEntryByIDForUpdate(ctx, entryID)
		if err != nil {
			if errors.Is(err, apperrors.ErrNotFound) {
				return apperrors.NewNotFoundError("waste entry " + entryID)
			}
			return fmt.Errorf("failed to load waste entry: %w", err)
		}
		if !entry.AppApproved {
			return apperrors.NewPreconditionFailedError("entry has not completed app approval")
		}

		var line *domain.ProductionLine
		if !actor.IsAdmin() {
			line, err = s.findLine(ctx, entry.LineID)
			if err != nil {
				return err
			}
		}
		if !CanSetFormApproval(actor, line) {
			return apperrors.NewForbiddenError("only admins or the line's form approver may set form approval")
		}

		entry.FormApproved = approved
		entry.LastUpdatedAt = s.now()
		entry.LastUpdatedBy = actor.UserID
		if err := repos.Entries.UpdateEntryWorkflow(ctx, *entry); err != nil {
			return fmt.Errorf("failed to update form approval: %w", err)
		}
		entry.Version++
		updated = *entry
		return nil
	})
	if err != nil {
		if apperrors.StatusCode(err) >= 500 {
			s.LogError(ctx, err, "Failed to set form approval", slog.String("entry_id", entryID))
		} else {
			s.LogWarn(ctx, "Form approval refused", slog.String("entry_id", entryID), slog.String("reason", err.Error()))
		}
		return nil, err
	}

	s.LogInfo(ctx, "Form approval changed", slog.String("entry_id", entryID), slog.Bool("form_approved", approved))
	s.publish(ctx, domain.EventFormApprovalChanged, actor, updated)
	return &updated, nil
}

// findLine treats an unknown line as having no form approver.
func (s *workflowService) findLine(ctx context.Context, lineID string) (*domain.ProductionLine, error) {
	if s.lineDirectory == nil {
		return nil, nil
	}
	line, err := s.lineDirectory.FindLineByID(ctx, lineID)
	if err != nil {
		if errors.Is(err, apperrors.ErrNotFound) {
			return nil, nil
		}
		return nil, fmt.Errorf("failed to load production line: %w", err)
	}
	return line, nil
}
