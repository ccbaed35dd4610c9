package kvrepo

// Storage keys. Each holds one JSON document.
const (
	KeyProducts        = "meatmaster_products"
	KeyCustomers       = "meatmaster_customers"
	KeyLedgers         = "meatmaster_ledgers"
	KeyInvoices        = "meatmaster_invoices"
	KeyPayments        = "meatmaster_payments"
	KeyExpenses        = "meatmaster_expenses"
	KeyUsers           = "meatmaster_users"
	KeySession         = "meatmaster_session"
	KeyCompanySettings = "meatmaster_company_settings"
	KeyLastBackup      = "meatmaster_last_backup"
)

// AllKeys lists every key in the order they are exported by Snapshot.
var AllKeys = []string{
	KeyProducts,
	KeyCustomers,
	KeyLedgers,
	KeyInvoices,
	KeyPayments,
	KeyExpenses,
	KeyUsers,
	KeySession,
	KeyCompanySettings,
	KeyLastBackup,
}
