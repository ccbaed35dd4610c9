package services

import (
	portsrepo "github.com/SscSPs/shop_ledger_app/internal/core/ports/repositories"
	portssvc "github.com/SscSPs/shop_ledger_app/internal/core/ports/services"
	"github.com/SscSPs/shop_ledger_app/internal/platform/config"
)

// NewServiceContainer creates a new service container with properly initialized dependencies.
// sink may be nil, in which case backups report that they are not configured.
func NewServiceContainer(cfg *config.Config, repos portsrepo.RepositoryProvider, sink SnapshotSink, options ...ServiceOption) *portssvc.ServiceContainer {
	if cfg.Location != nil {
		options = append([]ServiceOption{WithLocation(cfg.Location)}, options...)
	}
	tx := repos.TxManager

	container := &portssvc.ServiceContainer{}

	container.Product = NewProductService(tx, options...)
	container.Customer = NewCustomerService(tx, options...)
	container.Ledger = NewLedgerService(tx, options...)
	container.Invoice = NewInvoiceService(tx, options...)
	container.Payment = NewPaymentService(tx, options...)
	container.Expense = NewExpenseService(tx, options...)
	container.CompanySettings = NewCompanySettingsService(tx, options...)

	// Auth depends on users, the session slot and token issuing
	container.User = NewUserService(tx, options...)
	container.Session = NewSessionService(tx, options...)
	container.Token = NewTokenService(cfg, options...)
	container.Auth = NewAuthService(container.User, container.Session, container.Token, options...)

	container.Reporting = NewReportingService(tx,
		WithReportingBase(options...),
		WithLowStockThreshold(cfg.LowStockThreshold),
	)
	container.Backup = NewBackupService(tx, repos.Snapshots, sink, options...)

	return container
}
