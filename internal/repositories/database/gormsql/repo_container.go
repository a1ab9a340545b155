package gormsql

import (
	portsrepo "github.com/SscSPs/waste_approval_app/internal/core/ports/repositories"
	"gorm.io/gorm"
)

// NewRepositoryProvider wires the gorm-backed repositories over one handle.
func NewRepositoryProvider(db *gorm.DB) portsrepo.RepositoryProvider {
	directory := newGormDirectoryRepository(db)

	return portsrepo.RepositoryProvider{
		ApprovalLevelRepo: newGormApprovalLevelRepository(db),
		WasteEntryRepo:    newGormWasteEntryRepository(db),
		WasteApprovalRepo: newGormWasteApprovalRepository(db),
		UserDirectory:     directory,
		LineDirectory:     directory,
		UnitOfWork:        newGormUnitOfWork(db),
	}
}
