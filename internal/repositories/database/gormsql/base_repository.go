package gormsql

import (
	"context"
	"errors"
	"net/http"

	"github.com/SscSPs/waste_approval_app/internal/apperrors"
	portsrepo "github.com/SscSPs/waste_approval_app/internal/core/ports/repositories"
	"gorm.io/gorm"
)

// BaseRepository holds the gorm handle every repository runs against. Inside
// a unit of work the handle is the open transaction.
type BaseRepository struct {
	DB *gorm.DB
}

func (r *BaseRepository) db(ctx context.Context) *gorm.DB {
	return r.DB.WithContext(ctx)
}

// storeError wraps an unexpected gorm failure as a 500 AppError.
func storeError(message string, err error) error {
	return apperrors.NewAppError(http.StatusInternalServerError, message, err)
}

func isNotFound(err error) bool {
	return errors.Is(err, gorm.ErrRecordNotFound)
}

func isDuplicate(err error) bool {
	return errors.Is(err, gorm.ErrDuplicatedKey)
}

// GormUnitOfWork binds the workflow repositories to one gorm transaction.
type GormUnitOfWork struct {
	BaseRepository
}

func newGormUnitOfWork(db *gorm.DB) *GormUnitOfWork {
	return &GormUnitOfWork{BaseRepository: BaseRepository{DB: db}}
}

// Ensure GormUnitOfWork implements portsrepo.UnitOfWork
var _ portsrepo.UnitOfWork = (*GormUnitOfWork)(nil)

// Within runs fn with repositories bound to a single transaction.
func (u *GormUnitOfWork) Within(ctx context.Context, fn func(ctx context.Context, repos portsrepo.TxRepositories) error) error {
	return u.db(ctx).Transaction(func(tx *gorm.DB) error {
		return fn(ctx, portsrepo.TxRepositories{
			Levels:    newGormApprovalLevelRepository(tx),
			Entries:   newGormWasteEntryRepository(tx),
			Approvals: newGormWasteApprovalRepository(tx),
		})
	})
}
