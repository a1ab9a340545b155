package repositories

// RepositoryProvider holds all repository interfaces needed by services.
// This makes passing dependencies to the service container constructor cleaner.
type RepositoryProvider struct {
	ApprovalLevelRepo ApprovalLevelRepositoryFacade
	WasteEntryRepo    WasteEntryRepositoryFacade
	WasteApprovalRepo WasteApprovalRepositoryFacade
	UserDirectory     UserDirectory
	LineDirectory     LineDirectory
	UnitOfWork        UnitOfWork
}
