package services

// ServiceContainer holds instances of all the application services.
// This is the main entry point for accessing service functionality and
// is used throughout the application, particularly in the handlers.
type ServiceContainer struct {
	Product         ProductSvcFacade
	Customer        CustomerSvcFacade
	Ledger          LedgerSvcFacade
	Invoice         InvoiceSvcFacade
	Payment         PaymentSvcFacade
	Expense         ExpenseSvcFacade
	User            UserSvcFacade
	Auth            AuthSvc
	Token           TokenSvc
	Session         SessionSvc
	CompanySettings CompanySettingsSvc
	Reporting       ReportingService
	Backup          BackupSvc
}
