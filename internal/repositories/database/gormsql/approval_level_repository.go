package gormsql

import (
	"context"
	"errors"

	"github.com/SscSPs/waste_approval_app/internal/apperrors"
	"github.com/SscSPs/waste_approval_app/internal/core/domain"
	portsrepo "github.com/SscSPs/waste_approval_app/internal/core/ports/repositories"
	"github.com/SscSPs/waste_approval_app/internal/models"
	"github.com/SscSPs/waste_approval_app/internal/utils/mapping"
	"gorm.io/gorm"
)

// levelOrderLockKey matches the pgx backend so both can share one database.
const levelOrderLockKey int64 = 0x5741535445

type GormApprovalLevelRepository struct {
	BaseRepository
}

func newGormApprovalLevelRepository(db *gorm.DB) *GormApprovalLevelRepository {
	return &GormApprovalLevelRepository{BaseRepository: BaseRepository{DB: db}}
}

// Ensure GormApprovalLevelRepository implements portsrepo.ApprovalLevelRepositoryFacade
var _ portsrepo.ApprovalLevelRepositoryFacade = (*GormApprovalLevelRepository)(nil)

func (r *GormApprovalLevelRepository) findLevels(ctx context.Context, scope func(*gorm.DB) *gorm.DB) ([]domain.ApprovalLevel, error) {
	var rows []models.ApprovalLevel
	if err := scope(r.db(ctx).Model(&models.ApprovalLevel{})).Order("level_order").Find(&rows).Error; err != nil {
		return nil, storeError("failed to query approval levels", err)
	}
	return mapping.ToDomainApprovalLevels(rows), nil
}

func (r *GormApprovalLevelRepository) ListLevels(ctx context.Context) ([]domain.ApprovalLevel, error) {
	levels, err := r.findLevels(ctx, func(db *gorm.DB) *gorm.DB { return db })
	if err != nil {
		return nil, err
	}

	var approvers []models.LevelApproverRow
	err = r.db(ctx).Table("approval_level_assignments AS a").
		Select("a.assignment_id, a.level_id, a.user_id, u.name, u.email").
		Joins("LEFT JOIN users u ON u.user_id = a.user_id").
		Order("a.created_at, a.assignment_id").
		Scan(&approvers).Error
	if err != nil {
		return nil, storeError("failed to query approvers", err)
	}

	mapping.AttachApprovers(levels, approvers)
	return levels, nil
}

func (r *GormApprovalLevelRepository) FindLevelByID(ctx context.Context, levelID string) (*domain.ApprovalLevel, error) {
	var m models.ApprovalLevel
	if err := r.db(ctx).Where("level_id = ?", levelID).First(&m).Error; err != nil {
		if isNotFound(err) {
			return nil, apperrors.ErrNotFound
		}
		return nil, storeError("failed to read approval level "+levelID, err)
	}
	level := mapping.ToDomainApprovalLevel(m)
	return &level, nil
}

func (r *GormApprovalLevelRepository) ListActiveLevels(ctx context.Context) (domain.Ladder, error) {
	levels, err := r.findLevels(ctx, func(db *gorm.DB) *gorm.DB { return db.Where("is_active = ?", true) })
	if err != nil {
		return nil, err
	}
	return domain.Ladder(levels), nil
}

func (r *GormApprovalLevelRepository) ListLevelsByApprover(ctx context.Context, userID string) ([]domain.ApprovalLevel, error) {
	return r.findLevels(ctx, func(db *gorm.DB) *gorm.DB {
		return db.Where(`EXISTS (
			SELECT 1 FROM approval_level_assignments a
			WHERE a.level_id = approval_levels.level_id AND a.user_id = ?
		)`, userID)
	})
}

func (r *GormApprovalLevelRepository) IsApproverAssigned(ctx context.Context, levelID, userID string) (bool, error) {
	var count int64
	err := r.db(ctx).Model(&models.ApprovalLevelAssignment{}).
		Where("level_id = ? AND user_id = ?", levelID, userID).
		Count(&count).Error
	if err != nil {
		return false, storeError("failed to check approver assignment", err)
	}
	return count > 0, nil
}

func (r *GormApprovalLevelRepository) SaveLevelWithNextOrder(ctx context.Context, level *domain.ApprovalLevel) error {
	return r.db(ctx).Transaction(func(tx *gorm.DB) error {
		if err := tx.Exec("SELECT pg_advisory_xact_lock(?)", levelOrderLockKey).Error; err != nil {
			return storeError("failed to lock level order", err)
		}

		var next int
		if err := tx.Raw("SELECT COALESCE(MAX(level_order), 0) + 1 FROM approval_levels").Scan(&next).Error; err != nil {
			return storeError("failed to compute next level order", err)
		}
		level.LevelOrder = next

		m := mapping.ToModelApprovalLevel(*level)
		if err := tx.Create(&m).Error; err != nil {
			if isDuplicate(err) {
				return apperrors.NewConflictError("level order already taken, retry")
			}
			return storeError("failed to save approval level "+m.LevelID, err)
		}
		return nil
	})
}

func (r *GormApprovalLevelRepository) UpdateLevel(ctx context.Context, level domain.ApprovalLevel) error {
	m := mapping.ToModelApprovalLevel(level)
	res := r.db(ctx).Model(&models.ApprovalLevel{}).
		Where("level_id = ? AND version = ?", m.LevelID, m.Version).
		Updates(map[string]any{
			"name":            m.Name,
			"name_localized":  m.NameLocalized,
			"approval_type":   m.ApprovalType,
			"is_active":       m.IsActive,
			"last_updated_at": m.LastUpdatedAt,
			"last_updated_by": m.LastUpdatedBy,
			"version":         gorm.Expr("version + 1"),
		})
	if res.Error != nil {
		return storeError("failed to update approval level "+m.LevelID, res.Error)
	}
	if res.RowsAffected == 0 {
		if _, err := r.FindLevelByID(ctx, m.LevelID); errors.Is(err, apperrors.ErrNotFound) {
			return apperrors.ErrNotFound
		}
		return apperrors.NewConflictError("approval level " + m.LevelID + " was modified concurrently")
	}
	return nil
}

func (r *GormApprovalLevelRepository) DeleteLevel(ctx context.Context, levelID string) error {
	if err := r.db(ctx).Where("level_id = ?", levelID).Delete(&models.ApprovalLevel{}).Error; err != nil {
		return storeError("failed to delete approval level "+levelID, err)
	}
	return nil
}

func (r *GormApprovalLevelRepository) SaveAssignment(ctx context.Context, assignment domain.ApprovalLevelAssignment) error {
	m := mapping.ToModelAssignment(assignment)
	if err := r.db(ctx).Create(&m).Error; err != nil {
		switch {
		case isDuplicate(err):
			return apperrors.ErrDuplicate
		case errors.Is(err, gorm.ErrForeignKeyViolated):
			return apperrors.ErrNotFound
		}
		return storeError("failed to save assignment "+m.AssignmentID, err)
	}
	return nil
}

func (r *GormApprovalLevelRepository) DeleteAssignment(ctx context.Context, assignmentID string) error {
	if err := r.db(ctx).Where("assignment_id = ?", assignmentID).Delete(&models.ApprovalLevelAssignment{}).Error; err != nil {
		return storeError("failed to delete assignment "+assignmentID, err)
	}
	return nil
}
