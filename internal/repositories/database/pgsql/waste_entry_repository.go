package pgsql

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"strings"

	"github.com/SscSPs/waste_approval_app/internal/apperrors"
	"github.com/SscSPs/waste_approval_app/internal/core/domain"
	portsrepo "github.com/SscSPs/waste_approval_app/internal/core/ports/repositories"
	"github.com/SscSPs/waste_approval_app/internal/models"
	"github.com/SscSPs/waste_approval_app/internal/utils/mapping"
	"github.com/jackc/pgx/v5"
)

type PgxWasteEntryRepository struct {
	BaseRepository
}

// newPgxWasteEntryRepository creates a new repository for waste entries.
func newPgxWasteEntryRepository(db querier) *PgxWasteEntryRepository {
	return &PgxWasteEntryRepository{BaseRepository: BaseRepository{DB: db}}
}

// Ensure PgxWasteEntryRepository implements portsrepo.WasteEntryRepositoryWithLock
var _ portsrepo.WasteEntryRepositoryWithLock = (*PgxWasteEntryRepository)(nil)

const entryColumns = `
	e.entry_id, e.line_id, e.product_id, e.reason_id, e.quantity, e.unit, e.notes,
	e.current_approval_level, e.approval_status, e.app_approved, e.form_approved,
	e.created_at, e.created_by, e.last_updated_at, e.last_updated_by, e.version`

func (r *PgxWasteEntryRepository) findEntry(ctx context.Context, entryID, suffix string) (*domain.WasteEntry, error) {
	rows, err := r.DB.Query(ctx, `SELECT `+entryColumns+` FROM waste_entries e WHERE e.entry_id = $1`+suffix, entryID)
	if err != nil {
		return nil, apperrors.NewAppError(http.StatusInternalServerError, "failed to query waste entry", err)
	}
	m, err := pgx.CollectExactlyOneRow(rows, pgx.RowToStructByName[models.WasteEntry])
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, apperrors.ErrNotFound
		}
		return nil, apperrors.NewAppError(http.StatusInternalServerError, "failed to read waste entry "+entryID, err)
	}
	entry := mapping.ToDomainWasteEntry(m)
	return &entry, nil
}

func (r *PgxWasteEntryRepository) FindEntryByID(ctx context.Context, entryID string) (*domain.WasteEntry, error) {
	return r.findEntry(ctx, entryID, "")
}

func (r *PgxWasteEntryRepository) FindEntryByIDForUpdate(ctx context.Context, entryID string) (*domain.WasteEntry, error) {
	return r.findEntry(ctx, entryID, " FOR UPDATE")
}

func (r *PgxWasteEntryRepository) ListEntries(ctx context.Context, query domain.EntryListQuery) ([]domain.WasteEntryView, error) {
	var (
		conditions []string
		args       []any
	)
	if query.Status != domain.FilterAll {
		args = append(args, string(query.Status))
		conditions = append(conditions, fmt.Sprintf("e.approval_status = $%d", len(args)))
	}
	if query.LevelOrders != nil {
		args = append(args, query.LevelOrders)
		conditions = append(conditions, fmt.Sprintf("e.current_approval_level = ANY($%d)", len(args)))
	}

	sql := `SELECT ` + entryColumns + `, u.name AS creator_name, pl.name AS line_name
		FROM waste_entries e
		LEFT JOIN users u ON u.user_id = e.created_by
		LEFT JOIN production_lines pl ON pl.line_id = e.line_id`
	if len(conditions) > 0 {
		sql += " WHERE " + strings.Join(conditions, " AND ")
	}
	sql += " ORDER BY e.created_at DESC, e.entry_id"

	rows, err := r.DB.Query(ctx, sql, args...)
	if err != nil {
		return nil, apperrors.NewAppError(http.StatusInternalServerError, "failed to query waste entries", err)
	}
	listRows, err := pgx.CollectRows(rows, pgx.RowToStructByName[models.WasteEntryListRow])
	if err != nil {
		return nil, apperrors.NewAppError(http.StatusInternalServerError, "failed to collect waste entry rows", err)
	}
	return mapping.ToDomainWasteEntryViews(listRows), nil
}

func (r *PgxWasteEntryRepository) SaveEntry(ctx context.Context, entry domain.WasteEntry) error {
	m := mapping.ToModelWasteEntry(entry)
	_, err := r.DB.Exec(ctx, `
		INSERT INTO waste_entries (
			entry_id, line_id, product_id, reason_id, quantity, unit, notes,
			current_approval_level, approval_status, app_approved, form_approved,
			created_at, created_by, last_updated_at, last_updated_by, version
		)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11, $12, $13, $14, $15, $16)`,
		m.EntryID, m.LineID, m.ProductID, m.ReasonID, m.Quantity, m.Unit, m.Notes,
		m.CurrentApprovalLevel, m.ApprovalStatus, m.AppApproved, m.FormApproved,
		m.CreatedAt, m.CreatedBy, m.LastUpdatedAt, m.LastUpdatedBy, m.Version,
	)
	if err != nil {
		if code, _ := pgErrorCode(err); code == pgUniqueViolation {
			return apperrors.NewDuplicateError("waste entry " + m.EntryID + " already exists")
		}
		return apperrors.NewAppError(http.StatusInternalServerError, "failed to save waste entry "+m.EntryID, err)
	}
	return nil
}

func (r *PgxWasteEntryRepository) UpdateEntryWorkflow(ctx context.Context, entry domain.WasteEntry) error {
	m := mapping.ToModelWasteEntry(entry)
	tag, err := r.DB.Exec(ctx, `
		UPDATE waste_entries
		SET current_approval_level = $2, approval_status = $3, app_approved = $4, form_approved = $5,
			last_updated_at = $6, last_updated_by = $7, version = version + 1
		WHERE entry_id = $1 AND version = $8`,
		m.EntryID, m.CurrentApprovalLevel, m.ApprovalStatus, m.AppApproved, m.FormApproved,
		m.LastUpdatedAt, m.LastUpdatedBy, m.Version,
	)
	if err != nil {
		return apperrors.NewAppError(http.StatusInternalServerError, "failed to update waste entry "+m.EntryID, err)
	}
	if tag.RowsAffected() == 0 {
		return apperrors.NewConflictError("waste entry " + m.EntryID + " was modified concurrently")
	}
	return nil
}
