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
)

// approvalLevelService implements the ApprovalLevelSvcFacade interface
type approvalLevelService struct {
	BaseService
	levelRepo     portsrepo.ApprovalLevelRepositoryFacade
	userDirectory portsrepo.UserDirectory
}

// NewApprovalLevelService creates the approval ladder registry.
func NewApprovalLevelService(levelRepo portsrepo.ApprovalLevelRepositoryFacade, users portsrepo.UserDirectory) portssvc.ApprovalLevelSvcFacade {
	return &approvalLevelService{
		levelRepo:     levelRepo,
		userDirectory: users,
	}
}

// Ensure approvalLevelService implements the ApprovalLevelSvcFacade interface
var _ portssvc.ApprovalLevelSvcFacade = (*approvalLevelService)(nil)

func (s *approvalLevelService) ListLevels(ctx context.Context, actor domain.Actor) ([]domain.ApprovalLevel, error) {
	if err := s.RequireAdmin(ctx, actor, "list approval levels"); err != nil {
		return nil, err
	}

	levels, err := s.levelRepo.ListLevels(ctx)
	if err != nil {
		s.LogError(ctx, err, "Failed to list approval levels")
		return nil, fmt.Errorf("failed to list approval levels: %w", err)
	}
	if levels == nil {
		return []domain.ApprovalLevel{}, nil
	}
	return levels, nil
}

func (s *approvalLevelService) CreateLevel(ctx context.Context, actor domain.Actor, req dto.CreateApprovalLevelRequest) (*domain.ApprovalLevel, error) {
	if err := s.RequireAdmin(ctx, actor, "create approval levels"); err != nil {
		return nil, err
	}

	name := strings.TrimSpace(req.Name)
	if name == "" {
		return nil, apperrors.NewValidationFailedError("level name is required")
	}

	now := time.Now().UTC()
	level := domain.ApprovalLevel{
		LevelID:       uuid.NewString(),
		Name:          name,
		NameLocalized: trimmedOrNil(req.NameLocalized),
		ApprovalType:  domain.ParseApprovalTypeOrDefault(req.ApprovalType),
		IsActive:      true,
		AuditFields: domain.AuditFields{
			CreatedAt:     now,
			CreatedBy:     actor.UserID,
			LastUpdatedAt: now,
			LastUpdatedBy: actor.UserID,
			Version:       1,
		},
		Approvers: []domain.LevelApprover{},
	}

	if err := s.levelRepo.SaveLevelWithNextOrder(ctx, &level); err != nil {
		s.LogError(ctx, err, "Failed to save approval level", slog.String("name", name))
		return nil, fmt.Errorf("failed to create approval level: %w", err)
	}

	s.LogInfo(ctx, "Approval level created",
		slog.String("level_id", level.LevelID),
		slog.Int("level_order", level.LevelOrder),
		slog.String("approval_type", string(level.ApprovalType)))
	return &level, nil
}

func (s *approvalLevelService) UpdateLevel(ctx context.Context, actor domain.Actor, levelID string, req dto.UpdateApprovalLevelRequest) (*domain.ApprovalLevel, error) {
	if err := s.RequireAdmin(ctx, actor, "update approval levels"); err != nil {
		return nil, err
	}

	patch := domain.ApprovalLevelPatch{
		Name:          req.Name,
		NameLocalized: req.NameLocalized,
		ApprovalType:  req.ApprovalType,
		IsActive:      req.IsActive,
	}
	if patch.Name != nil && strings.TrimSpace(*patch.Name) == "" {
		return nil, apperrors.NewValidationFailedError("level name must not be empty")
	}
	if patch.ApprovalType != nil && !domain.ApprovalType(*patch.ApprovalType).IsValid() {
		return nil, apperrors.NewValidationFailedError(fmt.Sprintf("invalid approval type %q", *patch.ApprovalType))
	}

	level, err := s.levelRepo.FindLevelByID(ctx, levelID)
	if err != nil {
		if errors.Is(err, apperrors.ErrNotFound) {
			return nil, apperrors.NewNotFoundError("approval level " + levelID)
		}
		s.LogError(ctx, err, "Failed to load approval level", slog.String("level_id", levelID))
		return nil, fmt.Errorf("failed to load approval level: %w", err)
	}

	if patch.Name != nil {
		level.Name = strings.TrimSpace(*patch.Name)
	}
	if patch.NameLocalized != nil {
		level.NameLocalized = trimmedOrNil(patch.NameLocalized)
	}
	if patch.ApprovalType != nil {
		level.ApprovalType = domain.ApprovalType(*patch.ApprovalType)
	}
	if patch.IsActive != nil {
		level.IsActive = *patch.IsActive
	}
	level.LastUpdatedAt = time.Now().UTC()
	level.LastUpdatedBy = actor.UserID

	if err := s.levelRepo.UpdateLevel(ctx, *level); err != nil {
		s.LogError(ctx, err, "Failed to update approval level", slog.String("level_id", levelID))
		return nil, fmt.Errorf("failed to update approval level: %w", err)
	}
	level.Version++

	s.LogInfo(ctx, "Approval level updated", slog.String("level_id", levelID))
	return level, nil
}

func (s *approvalLevelService) DeleteLevel(ctx context.Context, actor domain.Actor, levelID string) error {
	if err := s.RequireAdmin(ctx, actor, "delete approval levels"); err != nil {
		return err
	}

	if err := s.levelRepo.DeleteLevel(ctx, levelID); err != nil {
		s.LogError(ctx, err, "Failed to delete approval level", slog.String("level_id", levelID))
		return fmt.Errorf("failed to delete approval level: %w", err)
	}

	s.LogInfo(ctx, "Approval level deleted", slog.String("level_id", levelID))
	return nil
}

func (s *approvalLevelService) AssignApprover(ctx context.Context, actor domain.Actor, levelID string, req dto.AssignApproverRequest) (*domain.LevelApprover, error) {
	if err := s.RequireAdmin(ctx, actor, "assign approvers"); err != nil {
		return nil, err
	}

	userID := strings.TrimSpace(req.UserID)
	if userID == "" {
		return nil, apperrors.NewValidationFailedError("user id is required")
	}

	if _, err := s.levelRepo.FindLevelByID(ctx, levelID); err != nil {
		if errors.Is(err, apperrors.ErrNotFound) {
			return nil, apperrors.NewNotFoundError("approval level " + levelID)
		}
		s.LogError(ctx, err, "Failed to load approval level", slog.String("level_id", levelID))
		return nil, fmt.Errorf("failed to load approval level: %w", err)
	}

	now := time.Now().UTC()
	assignment := domain.ApprovalLevelAssignment{
		AssignmentID: uuid.NewString(),
		LevelID:      levelID,
		UserID:       userID,
		AuditFields: domain.AuditFields{
			CreatedAt:     now,
			CreatedBy:     actor.UserID,
			LastUpdatedAt: now,
			LastUpdatedBy: actor.UserID,
			Version:       1,
		},
	}
	if err := s.levelRepo.SaveAssignment(ctx, assignment); err != nil {
		if errors.Is(err, apperrors.ErrDuplicate) {
			s.LogWarn(ctx, "Duplicate approver assignment", slog.String("level_id", levelID), slog.String("user_id", userID))
			return nil, apperrors.NewDuplicateError("user is already assigned to this level")
		}
		s.LogError(ctx, err, "Failed to save approver assignment", slog.String("level_id", levelID), slog.String("user_id", userID))
		return nil, fmt.Errorf("failed to assign approver: %w", err)
	}

	approver := &domain.LevelApprover{
		AssignmentID: assignment.AssignmentID,
		LevelID:      levelID,
		UserID:       userID,
	}
	if profile := s.lookupProfile(ctx, userID); profile != nil {
		approver.Name = profile.Name
		approver.Email = profile.Email
	}

	s.LogInfo(ctx, "Approver assigned", slog.String("level_id", levelID), slog.String("user_id", userID))
	return approver, nil
}

func (s *approvalLevelService) RemoveAssignment(ctx context.Context, actor domain.Actor, assignmentID string) error {
	if err := s.RequireAdmin(ctx, actor, "remove approver assignments"); err != nil {
		return err
	}

	if err := s.levelRepo.DeleteAssignment(ctx, assignmentID); err != nil {
		s.LogError(ctx, err, "Failed to delete approver assignment", slog.String("assignment_id", assignmentID))
		return fmt.Errorf("failed to remove assignment: %w", err)
	}

	s.LogInfo(ctx, "Approver assignment removed", slog.String("assignment_id", assignmentID))
	return nil
}

// lookupProfile degrades to nil when the directory has no row or fails.
func (s *approvalLevelService) lookupProfile(ctx context.Context, userID string) *domain.UserProfile {
	if s.userDirectory == nil {
		return nil
	}
	profile, err := s.userDirectory.FindProfile(ctx, userID)
	if err != nil {
		if !errors.Is(err, apperrors.ErrNotFound) {
			s.LogError(ctx, err, "Failed to load user profile", slog.String("user_id", userID))
		}
		return nil
	}
	return profile
}

func trimmedOrNil(s *string) *string {
	if s == nil {
		return nil
	}
	v := strings.TrimSpace(*s)
	if v == "" {
		return nil
	}
	return &v
}
