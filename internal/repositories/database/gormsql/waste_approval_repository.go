package gormsql

import (
	"context"

	"github.com/SscSPs/waste_approval_app/internal/apperrors"
	"github.com/SscSPs/waste_approval_app/internal/core/domain"
	portsrepo "github.com/SscSPs/waste_approval_app/internal/core/ports/repositories"
	"github.com/SscSPs/waste_approval_app/internal/models"
	"github.com/SscSPs/waste_approval_app/internal/utils/mapping"
	"gorm.io/gorm"
)

// ledgerBatchSize bounds one multi-row INSERT when seeding ledger rows.
const ledgerBatchSize = 100

type GormWasteApprovalRepository struct {
	BaseRepository
}

func newGormWasteApprovalRepository(db *gorm.DB) *GormWasteApprovalRepository {
	return &GormWasteApprovalRepository{BaseRepository: BaseRepository{DB: db}}
}

// Ensure GormWasteApprovalRepository implements portsrepo.WasteApprovalRepositoryFacade
var _ portsrepo.WasteApprovalRepositoryFacade = (*GormWasteApprovalRepository)(nil)

func (r *GormWasteApprovalRepository) FindApproval(ctx context.Context, entryID, levelID string) (*domain.WasteApproval, error) {
	var m models.WasteApproval
	if err := r.db(ctx).Where("entry_id = ? AND level_id = ?", entryID, levelID).First(&m).Error; err != nil {
		if isNotFound(err) {
			return nil, apperrors.ErrNotFound
		}
		return nil, storeError("failed to read ledger row", err)
	}
	approval := mapping.ToDomainWasteApproval(m)
	return &approval, nil
}

func (r *GormWasteApprovalRepository) ListApprovalsByEntry(ctx context.Context, entryID string) ([]domain.WasteApproval, error) {
	var rows []models.WasteApprovalRow
	err := r.db(ctx).Table("waste_approvals AS a").
		Select("a.*, l.name AS level_name, l.level_order, u.name AS approver_name").
		Joins("LEFT JOIN approval_levels l ON l.level_id = a.level_id").
		Joins("LEFT JOIN users u ON u.user_id = a.approved_by").
		Where("a.entry_id = ?", entryID).
		Order("l.level_order NULLS LAST, a.created_at").
		Scan(&rows).Error
	if err != nil {
		return nil, storeError("failed to query ledger", err)
	}
	return mapping.ToDomainWasteApprovals(rows), nil
}

func (r *GormWasteApprovalRepository) ListLedgerLevels(ctx context.Context, entryID string) (domain.Ladder, error) {
	var rows []models.ApprovalLevel
	err := r.db(ctx).Table("approval_levels AS l").
		Select("l.*").
		Joins("JOIN waste_approvals a ON a.level_id = l.level_id").
		Where("a.entry_id = ?", entryID).
		Order("l.level_order").
		Scan(&rows).Error
	if err != nil {
		return nil, storeError("failed to query ledger levels", err)
	}
	return domain.Ladder(mapping.ToDomainApprovalLevels(rows)), nil
}

func (r *GormWasteApprovalRepository) SaveApprovals(ctx context.Context, approvals []domain.WasteApproval) error {
	if len(approvals) == 0 {
		return nil
	}
	rows := make([]models.WasteApproval, len(approvals))
	for i, a := range approvals {
		rows[i] = mapping.ToModelWasteApproval(a)
	}
	if err := r.db(ctx).CreateInBatches(&rows, ledgerBatchSize).Error; err != nil {
		if isDuplicate(err) {
			return apperrors.NewDuplicateError("ledger row already exists")
		}
		return storeError("failed to seed ledger rows", err)
	}
	return nil
}

func (r *GormWasteApprovalRepository) RecordDecision(ctx context.Context, approval domain.WasteApproval) error {
	m := mapping.ToModelWasteApproval(approval)
	res := r.db(ctx).Model(&models.WasteApproval{}).
		Where("approval_id = ? AND status = ?", m.ApprovalID, string(domain.StatusPending)).
		Updates(map[string]any{
			"status":          m.Status,
			"approved_by":     m.ApprovedBy,
			"comments":        m.Comments,
			"decided_at":      m.DecidedAt,
			"last_updated_at": m.LastUpdatedAt,
			"last_updated_by": m.LastUpdatedBy,
			"version":         gorm.Expr("version + 1"),
		})
	if res.Error != nil {
		return storeError("failed to record decision "+m.ApprovalID, res.Error)
	}
	if res.RowsAffected == 0 {
		return apperrors.NewConflictError("ledger row " + m.ApprovalID + " is no longer pending")
	}
	return nil
}
