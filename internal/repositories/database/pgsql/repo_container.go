package pgsql

import (
	portsrepo "github.com/SscSPs/waste_approval_app/internal/core/ports/repositories"
	"github.com/jackc/pgx/v5/pgxpool"
)

// NewRepositoryProvider wires the pgx-backed repositories over one pool.
func NewRepositoryProvider(dbPool *pgxpool.Pool) portsrepo.RepositoryProvider {
	directory := newPgxDirectoryRepository(dbPool)

	return portsrepo.RepositoryProvider{
		ApprovalLevelRepo: newPgxApprovalLevelRepository(dbPool),
		WasteEntryRepo:    newPgxWasteEntryRepository(dbPool),
		WasteApprovalRepo: newPgxWasteApprovalRepository(dbPool),
		UserDirectory:     directory,
		LineDirectory:     directory,
		UnitOfWork:        newPgxUnitOfWork(dbPool),
	}
}
