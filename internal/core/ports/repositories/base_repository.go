package repositories

import "context"

// TxRepositories is the set of repositories bound to one open transaction.
type TxRepositories struct {
	Levels    ApprovalLevelRepositoryFacade
	Entries   WasteEntryRepositoryWithLock
	Approvals WasteApprovalRepositoryFacade
}

// UnitOfWork runs a function inside a single store transaction.
// The transaction commits when fn returns nil and rolls back otherwise.
type UnitOfWork interface {
	Within(ctx context.Context, fn func(ctx context.Context, repos TxRepositories) error) error
}
