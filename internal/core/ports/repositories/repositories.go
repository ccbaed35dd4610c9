package repositories

// Repositories gives a unit of work access to every entity repository.
type Repositories interface {
	Products() ProductRepositoryFacade
	Customers() CustomerRepositoryFacade
	LedgerEntries() LedgerEntryRepositoryFacade
	Invoices() InvoiceRepositoryFacade
	Payments() PaymentRepositoryFacade
	Expenses() ExpenseRepositoryFacade
	Users() UserRepositoryFacade
	CompanySettings() CompanySettingsRepository
	Session() SessionRepository
	System() SystemRepository
}

// RepositoryProvider holds the persistence dependencies needed by services.
// This makes passing dependencies to the service container constructor cleaner.
type RepositoryProvider struct {
	TxManager TransactionManager
	Snapshots SnapshotReader
}
