package gormsql

import (
	"context"

	"github.com/SscSPs/waste_approval_app/internal/apperrors"
	"github.com/SscSPs/waste_approval_app/internal/core/domain"
	portsrepo "github.com/SscSPs/waste_approval_app/internal/core/ports/repositories"
	"github.com/SscSPs/waste_approval_app/internal/models"
	"github.com/SscSPs/waste_approval_app/internal/utils/mapping"
	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

type GormWasteEntryRepository struct {
	BaseRepository
}

func newGormWasteEntryRepository(db *gorm.DB) *GormWasteEntryRepository {
	return &GormWasteEntryRepository{BaseRepository: BaseRepository{DB: db}}
}

// Ensure GormWasteEntryRepository implements portsrepo.WasteEntryRepositoryWithLock
var _ portsrepo.WasteEntryRepositoryWithLock = (*GormWasteEntryRepository)(nil)

func (r *GormWasteEntryRepository) findEntry(db *gorm.DB, entryID string) (*domain.WasteEntry, error) {
	var m models.WasteEntry
	if err := db.Where("entry_id = ?", entryID).First(&m).Error; err != nil {
		if isNotFound(err) {
			return nil, apperrors.ErrNotFound
		}
		return nil, storeError("failed to read waste entry "+entryID, err)
	}
	entry := mapping.ToDomainWasteEntry(m)
	return &entry, nil
}

func (r *GormWasteEntryRepository) FindEntryByID(ctx context.Context, entryID string) (*domain.WasteEntry, error) {
	return r.findEntry(r.db(ctx), entryID)
}

func (r *GormWasteEntryRepository) FindEntryByIDForUpdate(ctx context.Context, entryID string) (*domain.WasteEntry, error) {
	return r.findEntry(r.db(ctx).Clauses(clause.Locking{Strength: "UPDATE"}), entryID)
}

func (r *GormWasteEntryRepository) ListEntries(ctx context.Context, query domain.EntryListQuery) ([]domain.WasteEntryView, error) {
	db := r.db(ctx).Table("waste_entries AS e").
		Select("e.*, u.name AS creator_name, pl.name AS line_name").
		Joins("LEFT JOIN users u ON u.user_id = e.created_by").
		Joins("LEFT JOIN production_lines pl ON pl.line_id = e.line_id")
	if query.Status != domain.FilterAll {
		db = db.Where("e.approval_status = ?", string(query.Status))
	}
	if query.LevelOrders != nil {
		db = db.Where("e.current_approval_level IN ?", query.LevelOrders)
	}

	var rows []models.WasteEntryListRow
	if err := db.Order("e.created_at DESC, e.entry_id").Scan(&rows).Error; err != nil {
		return nil, storeError("failed to query waste entries", err)
	}
	return mapping.ToDomainWasteEntryViews(rows), nil
}

func (r *GormWasteEntryRepository) SaveEntry(ctx context.Context, entry domain.WasteEntry) error {
	m := mapping.ToModelWasteEntry(entry)
	if err := r.db(ctx).Create(&m).Error; err != nil {
		if isDuplicate(err) {
			return apperrors.NewDuplicateError("waste entry " + m.EntryID + " already exists")
		}
		return storeError("failed to save waste entry "+m.EntryID, err)
	}
	return nil
}

func (r *GormWasteEntryRepository) UpdateEntryWorkflow(ctx context.Context, entry domain.WasteEntry) error {
	m := mapping.ToModelWasteEntry(entry)
	res := r.db(ctx).Model(&models.WasteEntry{}).
		Where("entry_id = ? AND version = ?", m.EntryID, m.Version).
		Updates(map[string]any{
			"current_approval_level": m.CurrentApprovalLevel,
			"approval_status":        m.ApprovalStatus,
			"app_approved":           m.AppApproved,
			"form_approved":          m.FormApproved,
			"last_updated_at":        m.LastUpdatedAt,
			"last_updated_by":        m.LastUpdatedBy,
			"version":                gorm.Expr("version + 1"),
		})
	if res.Error != nil {
		return storeError("failed to update waste entry "+m.EntryID, res.Error)
	}
	if res.RowsAffected == 0 {
		return apperrors.NewConflictError("waste entry " + m.EntryID + " was modified concurrently")
	}
	return nil
}
