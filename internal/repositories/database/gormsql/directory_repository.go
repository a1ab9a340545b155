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

// GormDirectoryRepository reads the user and production line directories.
type GormDirectoryRepository struct {
	BaseRepository
}

func newGormDirectoryRepository(db *gorm.DB) *GormDirectoryRepository {
	return &GormDirectoryRepository{BaseRepository: BaseRepository{DB: db}}
}

var (
	_ portsrepo.UserDirectory = (*GormDirectoryRepository)(nil)
	_ portsrepo.LineDirectory = (*GormDirectoryRepository)(nil)
)

func (r *GormDirectoryRepository) FindProfile(ctx context.Context, userID string) (*domain.UserProfile, error) {
	var m models.User
	if err := r.db(ctx).Where("user_id = ?", userID).First(&m).Error; err != nil {
		if isNotFound(err) {
			return nil, apperrors.ErrNotFound
		}
		return nil, storeError("failed to read user "+userID, err)
	}
	profile := mapping.ToDomainUserProfile(m)
	return &profile, nil
}

func (r *GormDirectoryRepository) FindLineByID(ctx context.Context, lineID string) (*domain.ProductionLine, error) {
	var m models.ProductionLine
	if err := r.db(ctx).Where("line_id = ?", lineID).First(&m).Error; err != nil {
		if isNotFound(err) {
			return nil, apperrors.ErrNotFound
		}
		return nil, storeError("failed to read production line "+lineID, err)
	}
	line := mapping.ToDomainProductionLine(m)
	return &line, nil
}
