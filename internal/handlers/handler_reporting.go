package handlers

import (
	"log/slog"
	"net/http"

	portssvc "github.com/SscSPs/shop_ledger_app/internal/core/ports/services"
	"github.com/SscSPs/shop_ledger_app/internal/dto"
	"github.com/SscSPs/shop_ledger_app/internal/middleware"
	"github.com/gin-gonic/gin"
)

// reportingHandler serves the dashboard and the read-only reports.
type reportingHandler struct {
	reportingService portssvc.ReportingService
}

func newReportingHandler(rs portssvc.ReportingService) *reportingHandler {
	return &reportingHandler{reportingService: rs}
}

// registerReportingRoutes registers the report endpoints under /reports.
func registerReportingRoutes(rg *gin.RouterGroup, reportingService portssvc.ReportingService) {
	h := newReportingHandler(reportingService)

	reports := rg.Group("/reports")
	{
		reports.GET("/dashboard", h.getDashboard)
		reports.GET("/statistics", h.getStatistics)
		reports.GET("/sales", h.getSales)
		reports.GET("/companies", h.getTopCompanies)
		reports.GET("/outstanding", h.getOutstanding)
		reports.GET("/receivables", h.getReceivables)
		reports.GET("/profit", h.getProfit)
		reports.GET("/stock", h.getStock)
		reports.GET("/expenses", h.getExpenses)
	}
}

func bindReportParams(c *gin.Context, logger *slog.Logger) (dto.ReportParams, bool) {
	var params dto.ReportParams
	if err := c.ShouldBindQuery(&params); err != nil {
		badRequest(c, logger, err)
		return params, false
	}
	return params, true
}

// getDashboard godoc
// @Summary Dashboard
// @Description Statistics, sales, receivables, stock and profit in one response.
// @Tags reports
// @Produce json
// @Param range query string false "today, week, month or all" default(all)
// @Param limit query int false "Number of top debtors" default(10)
// @Success 200 {object} dto.DashboardResponse
// @Failure 400 {object} ErrorResponse
// @Failure 500 {object} ErrorResponse
// @Security BearerAuth
// @Router /reports/dashboard [get]
func (h *reportingHandler) getDashboard(c *gin.Context) {
	logger := middleware.GetLoggerFromCtx(c.Request.Context())
	params, ok := bindReportParams(c, logger)
	if !ok {
		return
	}

	ctx := c.Request.Context()
	stats, err := h.reportingService.GetStatistics(ctx)
	if err != nil {
		respondError(c, logger, err, "Failed to build dashboard")
		return
	}
	sales, err := h.reportingService.GetSalesSummary(ctx, params.Range)
	if err != nil {
		respondError(c, logger, err, "Failed to build dashboard")
		return
	}
	outstanding, err := h.reportingService.GetOutstanding(ctx)
	if err != nil {
		respondError(c, logger, err, "Failed to build dashboard")
		return
	}
	receivables, err := h.reportingService.GetReceivables(ctx, params.Limit)
	if err != nil {
		respondError(c, logger, err, "Failed to build dashboard")
		return
	}
	stock, err := h.reportingService.GetStockSummary(ctx)
	if err != nil {
		respondError(c, logger, err, "Failed to build dashboard")
		return
	}
	profit, err := h.reportingService.GetProfit(ctx, params.Range)
	if err != nil {
		respondError(c, logger, err, "Failed to build dashboard")
		return
	}

	c.JSON(http.StatusOK, dto.DashboardResponse{
		Statistics:  *stats,
		Sales:       *sales,
		Outstanding: *outstanding,
		Receivables: *receivables,
		Stock:       *stock,
		Profit:      *profit,
	})
}

// getStatistics godoc
// @Summary Store statistics
// @Tags reports
// @Produce json
// @Success 200 {object} domain.Statistics
// @Security BearerAuth
// @Router /reports/statistics [get]
func (h *reportingHandler) getStatistics(c *gin.Context) {
	logger := middleware.GetLoggerFromCtx(c.Request.Context())
	stats, err := h.reportingService.GetStatistics(c.Request.Context())
	if err != nil {
		respondError(c, logger, err, "Failed to compute statistics")
		return
	}
	c.JSON(http.StatusOK, stats)
}

// getSales godoc
// @Summary Sales summary
// @Tags reports
// @Produce json
// @Param range query string false "today, week, month or all" default(all)
// @Success 200 {object} domain.SalesSummary
// @Failure 400 {object} ErrorResponse
// @Security BearerAuth
// @Router /reports/sales [get]
func (h *reportingHandler) getSales(c *gin.Context) {
	logger := middleware.GetLoggerFromCtx(c.Request.Context())
	params, ok := bindReportParams(c, logger)
	if !ok {
		return
	}
	summary, err := h.reportingService.GetSalesSummary(c.Request.Context(), params.Range)
	if err != nil {
		respondError(c, logger, err, "Failed to compute sales summary")
		return
	}
	c.JSON(http.StatusOK, summary)
}

// getTopCompanies godoc
// @Summary Top companies by invoiced total
// @Tags reports
// @Produce json
// @Param range query string false "today, week, month or all" default(all)
// @Param limit query int false "Number of companies" default(10)
// @Success 200 {array} domain.CompanyTotal
// @Failure 400 {object} ErrorResponse
// @Security BearerAuth
// @Router /reports/companies [get]
func (h *reportingHandler) getTopCompanies(c *gin.Context) {
	logger := middleware.GetLoggerFromCtx(c.Request.Context())
	params, ok := bindReportParams(c, logger)
	if !ok {
		return
	}
	companies, err := h.reportingService.GetTopCompanies(c.Request.Context(), params.Range, params.Limit)
	if err != nil {
		respondError(c, logger, err, "Failed to compute company totals")
		return
	}
	c.JSON(http.StatusOK, companies)
}

// getOutstanding godoc
// @Summary Unpaid invoices
// @Tags reports
// @Produce json
// @Success 200 {object} domain.OutstandingSummary
// @Security BearerAuth
// @Router /reports/outstanding [get]
func (h *reportingHandler) getOutstanding(c *gin.Context) {
	logger := middleware.GetLoggerFromCtx(c.Request.Context())
	summary, err := h.reportingService.GetOutstanding(c.Request.Context())
	if err != nil {
		respondError(c, logger, err, "Failed to compute outstanding invoices")
		return
	}
	c.JSON(http.StatusOK, summary)
}

// getReceivables godoc
// @Summary Customer receivables
// @Tags reports
// @Produce json
// @Param limit query int false "Number of top debtors" default(10)
// @Success 200 {object} domain.ReceivablesSummary
// @Failure 400 {object} ErrorResponse
// @Security BearerAuth
// @Router /reports/receivables [get]
func (h *reportingHandler) getReceivables(c *gin.Context) {
	logger := middleware.GetLoggerFromCtx(c.Request.Context())
	params, ok := bindReportParams(c, logger)
	if !ok {
		return
	}
	summary, err := h.reportingService.GetReceivables(c.Request.Context(), params.Limit)
	if err != nil {
		respondError(c, logger, err, "Failed to compute receivables")
		return
	}
	c.JSON(http.StatusOK, summary)
}

// getProfit godoc
// @Summary Profit
// @Description Revenue minus expenses over the range.
// @Tags reports
// @Produce json
// @Param range query string false "today, week, month or all" default(all)
// @Success 200 {object} domain.ProfitSummary
// @Failure 400 {object} ErrorResponse
// @Security BearerAuth
// @Router /reports/profit [get]
func (h *reportingHandler) getProfit(c *gin.Context) {
	logger := middleware.GetLoggerFromCtx(c.Request.Context())
	params, ok := bindReportParams(c, logger)
	if !ok {
		return
	}
	summary, err := h.reportingService.GetProfit(c.Request.Context(), params.Range)
	if err != nil {
		respondError(c, logger, err, "Failed to compute profit")
		return
	}
	c.JSON(http.StatusOK, summary)
}

// getStock godoc
// @Summary Stock levels
// @Tags reports
// @Produce json
// @Success 200 {object} domain.StockSummary
// @Security BearerAuth
// @Router /reports/stock [get]
func (h *reportingHandler) getStock(c *gin.Context) {
	logger := middleware.GetLoggerFromCtx(c.Request.Context())
	summary, err := h.reportingService.GetStockSummary(c.Request.Context())
	if err != nil {
		respondError(c, logger, err, "Failed to compute stock summary")
		return
	}
	c.JSON(http.StatusOK, summary)
}

// getExpenses godoc
// @Summary Expense breakdown
// @Tags reports
// @Produce json
// @Param range query string false "today, week, month or all" default(all)
// @Success 200 {object} domain.ExpenseSummary
// @Failure 400 {object} ErrorResponse
// @Security BearerAuth
// @Router /reports/expenses [get]
func (h *reportingHandler) getExpenses(c *gin.Context) {
	logger := middleware.GetLoggerFromCtx(c.Request.Context())
	params, ok := bindReportParams(c, logger)
	if !ok {
		return
	}
	summary, err := h.reportingService.GetExpenseSummary(c.Request.Context(), params.Range)
	if err != nil {
		respondError(c, logger, err, "Failed to compute expense summary")
		return
	}
	c.JSON(http.StatusOK, summary)
}
