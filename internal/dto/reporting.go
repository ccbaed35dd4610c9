package dto

import "github.com/SscSPs/shop_ledger_app/internal/core/domain"

// ReportParams are the query parameters shared by report endpoints.
type ReportParams struct {
	Range domain.ReportRange `form:"range,default=all" binding:"omitempty,oneof=today week month all"`
	Limit int                `form:"limit,default=10" binding:"omitempty,min=1,max=100"`
}

// DashboardResponse bundles the reports shown on the dashboard.
type DashboardResponse struct {
	Statistics  domain.Statistics         `json:"statistics"`
	Sales       domain.SalesSummary       `json:"sales"`
	Outstanding domain.OutstandingSummary `json:"outstanding"`
	Receivables domain.ReceivablesSummary `json:"receivables"`
	Stock       domain.StockSummary       `json:"stock"`
	Profit      domain.ProfitSummary      `json:"profit"`
}

// BackupResponse reports a completed backup.
type BackupResponse struct {
	Location string `json:"location"`
	Bytes    int    `json:"bytes"`
	TakenAt  string `json:"takenAt"`
}
