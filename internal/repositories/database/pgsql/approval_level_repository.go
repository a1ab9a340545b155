package pgsql

import (
	"context"
	"errors"
	"net/http"

	"github.com/SscSPs/waste_approval_app/internal/apperrors"
	"github.com/SscSPs/waste_approval_app/internal/core/domain"
	portsrepo "github.com/SscSPs/waste_approval_app/internal/core/ports/repositories"
	"github.com/SscSPs/waste_approval_app/internal/models"
	"github.com/SscSPs/waste_approval_app/internal/utils/mapping"
	"github.com/jackc/pgx/v5"
)

// levelOrderLockKey serializes level_order allocation across concurrent creates.
const levelOrderLockKey int64 = 0x5741535445 // "WASTE"

type PgxApprovalLevelRepository struct {
	BaseRepository
}

// newPgxApprovalLevelRepository creates a new repository for the approval ladder.
func newPgxApprovalLevelRepository(db querier) *PgxApprovalLevelRepository {
	return &PgxApprovalLevelRepository{BaseRepository: BaseRepository{DB: db}}
}

// Ensure PgxApprovalLevelRepository implements portsrepo.ApprovalLevelRepositoryFacade
var _ portsrepo.ApprovalLevelRepositoryFacade = (*PgxApprovalLevelRepository)(nil)

const levelSelectQuery = `
SELECT
	l.level_id, l.name, l.name_localized, l.level_order, l.approval_type, l.is_active,
	l.created_at, l.created_by, l.last_updated_at, l.last_updated_by, l.version
FROM approval_levels l
`

// getLevels runs levelSelectQuery with the given filter.
func (r *PgxApprovalLevelRepository) getLevels(ctx context.Context, filterQuery string, args ...any) ([]domain.ApprovalLevel, error) {
	rows, err := r.DB.Query(ctx, levelSelectQuery+filterQuery, args...)
	if err != nil {
		return nil, apperrors.NewAppError(http.StatusInternalServerError, "failed to query approval levels", err)
	}
	modelLevels, err := pgx.CollectRows(rows, pgx.RowToStructByName[models.ApprovalLevel])
	if err != nil {
		return nil, apperrors.NewAppError(http.StatusInternalServerError, "failed to collect approval level rows", err)
	}
	return mapping.ToDomainApprovalLevels(modelLevels), nil
}

func (r *PgxApprovalLevelRepository) ListLevels(ctx context.Context) ([]domain.ApprovalLevel, error) {
	levels, err := r.getLevels(ctx, `ORDER BY l.level_order`)
	if err != nil {
		return nil, err
	}

	rows, err := r.DB.Query(ctx, `
		SELECT a.assignment_id, a.level_id, a.user_id, u.name, u.email
		FROM approval_level_assignments a
		LEFT JOIN users u ON u.user_id = a.user_id
		ORDER BY a.created_at, a.assignment_id`)
	if err != nil {
		return nil, apperrors.NewAppError(http.StatusInternalServerError, "failed to query approvers", err)
	}
	approvers, err := pgx.CollectRows(rows, pgx.RowToStructByName[models.LevelApproverRow])
	if err != nil {
		return nil, apperrors.NewAppError(http.StatusInternalServerError, "failed to collect approver rows", err)
	}

	mapping.AttachApprovers(levels, approvers)
	return levels, nil
}

func (r *PgxApprovalLevelRepository) FindLevelByID(ctx context.Context, levelID string) (*domain.ApprovalLevel, error) {
	levels, err := r.getLevels(ctx, `WHERE l.level_id = $1`, levelID)
	if err != nil {
		return nil, err
	}
	if len(levels) == 0 {
		return nil, apperrors.ErrNotFound
	}
	return &levels[0], nil
}

func (r *PgxApprovalLevelRepository) ListActiveLevels(ctx context.Context) (domain.Ladder, error) {
	levels, err := r.getLevels(ctx, `WHERE l.is_active ORDER BY l.level_order`)
	if err != nil {
		return nil, err
	}
	return domain.Ladder(levels), nil
}

func (r *PgxApprovalLevelRepository) ListLevelsByApprover(ctx context.Context, userID string) ([]domain.ApprovalLevel, error) {
	return r.getLevels(ctx, `
		WHERE EXISTS (
			SELECT 1 FROM approval_level_assignments a
			WHERE a.level_id = l.level_id AND a.user_id = $1
		)
		ORDER BY l.level_order`, userID)
}

func (r *PgxApprovalLevelRepository) IsApproverAssigned(ctx context.Context, levelID, userID string) (bool, error) {
	var assigned bool
	err := r.DB.QueryRow(ctx, `
		SELECT EXISTS (
			SELECT 1 FROM approval_level_assignments WHERE level_id = $1 AND user_id = $2
		)`, levelID, userID).Scan(&assigned)
	if err != nil {
		return false, apperrors.NewAppError(http.StatusInternalServerError, "failed to check approver assignment", err)
	}
	return assigned, nil
}

func (r *PgxApprovalLevelRepository) SaveLevelWithNextOrder(ctx context.Context, level *domain.ApprovalLevel) error {
	return r.withTx(ctx, func(tx pgx.Tx) error {
		if _, err := tx.Exec(ctx, `SELECT pg_advisory_xact_lock($1)`, levelOrderLockKey); err != nil {
			return apperrors.NewAppError(http.StatusInternalServerError, "failed to lock level order", err)
		}

		var next int
		if err := tx.QueryRow(ctx, `SELECT COALESCE(MAX(level_order), 0) + 1 FROM approval_levels`).Scan(&next); err != nil {
			return apperrors.NewAppError(http.StatusInternalServerError, "failed to compute next level order", err)
		}
		level.LevelOrder = next

		m := mapping.ToModelApprovalLevel(*level)
		_, err := tx.Exec(ctx, `
			INSERT INTO approval_levels (
				level_id, name, name_localized, level_order, approval_type, is_active,
				created_at, created_by, last_updated_at, last_updated_by, version
			)
			VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11)`,
			m.LevelID, m.Name, m.NameLocalized, m.LevelOrder, m.ApprovalType, m.IsActive,
			m.CreatedAt, m.CreatedBy, m.LastUpdatedAt, m.LastUpdatedBy, m.Version,
		)
		if err != nil {
			if code, _ := pgErrorCode(err); code == pgUniqueViolation {
				return apperrors.NewConflictError("level order already taken, retry")
			}
			return apperrors.NewAppError(http.StatusInternalServerError, "failed to save approval level "+m.LevelID, err)
		}
		return nil
	})
}

func (r *PgxApprovalLevelRepository) UpdateLevel(ctx context.Context, level domain.ApprovalLevel) error {
	m := mapping.ToModelApprovalLevel(level)
	tag, err := r.DB.Exec(ctx, `
		UPDATE approval_levels
		SET name = $2, name_localized = $3, approval_type = $4, is_active = $5,
			last_updated_at = $6, last_updated_by = $7, version = version + 1
		WHERE level_id = $1 AND version = $8`,
		m.LevelID, m.Name, m.NameLocalized, m.ApprovalType, m.IsActive,
		m.LastUpdatedAt, m.LastUpdatedBy, m.Version,
	)
	if err != nil {
		return apperrors.NewAppError(http.StatusInternalServerError, "failed to update approval level "+m.LevelID, err)
	}
	if tag.RowsAffected() == 0 {
		if _, findErr := r.FindLevelByID(ctx, m.LevelID); errors.Is(findErr, apperrors.ErrNotFound) {
			return apperrors.ErrNotFound
		}
		return apperrors.NewConflictError("approval level " + m.LevelID + " was modified concurrently")
	}
	return nil
}

func (r *PgxApprovalLevelRepository) DeleteLevel(ctx context.Context, levelID string) error {
	if _, err := r.DB.Exec(ctx, `DELETE FROM approval_levels WHERE level_id = $1`, levelID); err != nil {
		return apperrors.NewAppError(http.StatusInternalServerError, "failed to delete approval level "+levelID, err)
	}
	return nil
}

func (r *PgxApprovalLevelRepository) SaveAssignment(ctx context.Context, assignment domain.ApprovalLevelAssignment) error {
	m := mapping.ToModelAssignment(assignment)
	_, err := r.DB.Exec(ctx, `
		INSERT INTO approval_level_assignments (
			assignment_id, level_id, user_id,
			created_at, created_by, last_updated_at, last_updated_by, version
		)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8)`,
		m.AssignmentID, m.LevelID, m.UserID,
		m.CreatedAt, m.CreatedBy, m.LastUpdatedAt, m.LastUpdatedBy, m.Version,
	)
	if err != nil {
		switch code, _ := pgErrorCode(err); code {
		case pgUniqueViolation:
			return apperrors.ErrDuplicate
		case pgForeignKeyViolation:
			return apperrors.ErrNotFound
		}
		return apperrors.NewAppError(http.StatusInternalServerError, "failed to save assignment "+m.AssignmentID, err)
	}
	return nil
}

func (r *PgxApprovalLevelRepository) DeleteAssignment(ctx context.Context, assignmentID string) error {
	if _, err := r.DB.Exec(ctx, `DELETE FROM approval_level_assignments WHERE assignment_id = $1`, assignmentID); err != nil {
		return apperrors.NewAppError(http.StatusInternalServerError, "failed to delete assignment "+assignmentID, err)
	}
	return nil
}
