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

type PgxWasteApprovalRepository struct {
	BaseRepository
}

// newPgxWasteApprovalRepository creates a new repository for the approval ledger.
func newPgxWasteApprovalRepository(db querier) *PgxWasteApprovalRepository {
	return &PgxWasteApprovalRepository{BaseRepository: BaseRepository{DB: db}}
}

// Ensure PgxWasteApprovalRepository implements portsrepo.WasteApprovalRepositoryFacade
var _ portsrepo.WasteApprovalRepositoryFacade = (*PgxWasteApprovalRepository)(nil)

var approvalCopyColumns = []string{
	"approval_id", "entry_id", "level_id", "status", "approved_by", "comments", "decided_at",
	"created_at", "created_by", "last_updated_at", "last_updated_by", "version",
}

const approvalColumns = `
	a.approval_id, a.entry_id, a.level_id, a.status, a.approved_by, a.comments, a.decided_at,
	a.created_at, a.created_by, a.last_updated_at, a.last_updated_by, a.version`

func (r *PgxWasteApprovalRepository) FindApproval(ctx context.Context, entryID, levelID string) (*domain.WasteApproval, error) {
	rows, err := r.DB.Query(ctx, `SELECT `+approvalColumns+`
		FROM waste_approvals a
		WHERE a.entry_id = $1 AND a.level_id = $2`, entryID, levelID)
	if err != nil {
		return nil, apperrors.NewAppError(http.StatusInternalServerError, "failed to query ledger row", err)
	}
	m, err := pgx.CollectExactlyOneRow(rows, pgx.RowToStructByName[models.WasteApproval])
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, apperrors.ErrNotFound
		}
		return nil, apperrors.NewAppError(http.StatusInternalServerError, "failed to read ledger row", err)
	}
	approval := mapping.ToDomainWasteApproval(m)
	return &approval, nil
}

func (r *PgxWasteApprovalRepository) ListApprovalsByEntry(ctx context.Context, entryID string) ([]domain.WasteApproval, error) {
	rows, err := r.DB.Query(ctx, `SELECT `+approvalColumns+`,
			l.name AS level_name, l.level_order, u.name AS approver_name
		FROM waste_approvals a
		LEFT JOIN approval_levels l ON l.level_id = a.level_id
		LEFT JOIN users u ON u.user_id = a.approved_by
		WHERE a.entry_id = $1
		ORDER BY l.level_order NULLS LAST, a.created_at`, entryID)
	if err != nil {
		return nil, apperrors.NewAppError(http.StatusInternalServerError, "failed to query ledger", err)
	}
	ledger, err := pgx.CollectRows(rows, pgx.RowToStructByName[models.WasteApprovalRow])
	if err != nil {
		return nil, apperrors.NewAppError(http.StatusInternalServerError, "failed to collect ledger rows", err)
	}
	return mapping.ToDomainWasteApprovals(ledger), nil
}

func (r *PgxWasteApprovalRepository) ListLedgerLevels(ctx context.Context, entryID string) (domain.Ladder, error) {
	rows, err := r.DB.Query(ctx, levelSelectQuery+`
		JOIN waste_approvals a ON a.level_id = l.level_id
		WHERE a.entry_id = $1
		ORDER BY l.level_order`, entryID)
	if err != nil {
		return nil, apperrors.NewAppError(http.StatusInternalServerError, "failed to query ledger levels", err)
	}
	levels, err := pgx.CollectRows(rows, pgx.RowToStructByName[models.ApprovalLevel])
	if err != nil {
		return nil, apperrors.NewAppError(http.StatusInternalServerError, "failed to collect ledger levels", err)
	}
	return domain.Ladder(mapping.ToDomainApprovalLevels(levels)), nil
}

func (r *PgxWasteApprovalRepository) SaveApprovals(ctx context.Context, approvals []domain.WasteApproval) error {
	if len(approvals) == 0 {
		return nil
	}
	_, err := r.DB.CopyFrom(ctx, pgx.Identifier{"waste_approvals"}, approvalCopyColumns,
		pgx.CopyFromSlice(len(approvals), func(i int) ([]any, error) {
			m := mapping.ToModelWasteApproval(approvals[i])
			return []any{
				m.ApprovalID, m.EntryID, m.LevelID, m.Status, m.ApprovedBy, m.Comments, m.DecidedAt,
				m.CreatedAt, m.CreatedBy, m.LastUpdatedAt, m.LastUpdatedBy, m.Version,
			}, nil
		}),
	)
	if err != nil {
		if code, _ := pgErrorCode(err); code == pgUniqueViolation {
			return apperrors.NewDuplicateError("ledger row already exists")
		}
		return apperrors.NewAppError(http.StatusInternalServerError, "failed to seed ledger rows", err)
	}
	return nil
}

func (r *PgxWasteApprovalRepository) RecordDecision(ctx context.Context, approval domain.WasteApproval) error {
	m := mapping.ToModelWasteApproval(approval)
	tag, err := r.DB.Exec(ctx, `
		UPDATE waste_approvals
		SET status = $2, approved_by = $3, comments = $4, decided_at = $5,
			last_updated_at = $6, last_updated_by = $7, version = version + 1
		WHERE approval_id = $1 AND status = 'pending'`,
		m.ApprovalID, m.Status, m.ApprovedBy, m.Comments, m.DecidedAt,
		m.LastUpdatedAt, m.LastUpdatedBy,
	)
	if err != nil {
		return apperrors.NewAppError(http.StatusInternalServerError, "failed to record decision "+m.ApprovalID, err)
	}
	if tag.RowsAffected() == 0 {
		return apperrors.NewConflictError("ledger row " + m.ApprovalID + " is no longer pending")
	}
	return nil
}
