package handlers

import (
	"net/http"

	"github.com/SscSPs/shop_ledger_app/internal/apperrors"
	"github.com/SscSPs/shop_ledger_app/internal/core/domain"
	portssvc "github.com/SscSPs/shop_ledger_app/internal/core/ports/services"
	"github.com/SscSPs/shop_ledger_app/internal/dto"
	"github.com/SscSPs/shop_ledger_app/internal/middleware"
	"github.com/gin-gonic/gin"
)

type expenseHandler struct {
	expenseService portssvc.ExpenseSvcFacade
}

func newExpenseHandler(es portssvc.ExpenseSvcFacade) *expenseHandler {
	return &expenseHandler{expenseService: es}
}

// registerExpenseRoutes registers all expense-related routes.
func registerExpenseRoutes(rg *gin.RouterGroup, expenseService portssvc.ExpenseSvcFacade) {
	h := newExpenseHandler(expenseService)

	expenses := rg.Group("/expenses")
	{
		expenses.GET("", h.listExpenses)
		expenses.POST("", h.createExpense)
		expenses.GET("/:id", h.getExpense)
		expenses.PUT("/:id", h.updateExpense)
		expenses.DELETE("/:id", h.deleteExpense)
	}
}

// createExpense godoc
// @Summary Record an expense
// @Tags expenses
// @Accept json
// @Produce json
// @Param expense body dto.CreateExpenseRequest true "Expense details"
// @Success 201 {object} domain.Expense
// @Failure 400 {object} ErrorResponse
// @Security BearerAuth
// @Router /expenses [post]
func (h *expenseHandler) createExpense(c *gin.Context) {
	logger := middleware.GetLoggerFromCtx(c.Request.Context())
	var req dto.CreateExpenseRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		badRequest(c, logger, err)
		return
	}

	expense, err := h.expenseService.CreateExpense(c.Request.Context(), req)
	if err != nil {
		respondError(c, logger, err, "Failed to create expense")
		return
	}
	c.JSON(http.StatusCreated, expense)
}

// listExpenses godoc
// @Summary List expenses
// @Description Filters apply in order: period, then start/end, then category.
// @Tags expenses
// @Produce json
// @Param period query string false "today or month"
// @Param start query string false "First day (YYYY-MM-DD), requires end"
// @Param end query string false "Last day (YYYY-MM-DD), inclusive"
// @Param category query string false "Category"
// @Success 200 {array} domain.Expense
// @Failure 400 {object} ErrorResponse
// @Security BearerAuth
// @Router /expenses [get]
func (h *expenseHandler) listExpenses(c *gin.Context) {
	logger := middleware.GetLoggerFromCtx(c.Request.Context())
	var params dto.ListExpensesParams
	if err := c.ShouldBindQuery(&params); err != nil {
		badRequest(c, logger, err)
		return
	}

	ctx := c.Request.Context()
	var (
		expenses []domain.Expense
		err      error
	)
	switch {
	case params.Period == "today":
		expenses, err = h.expenseService.ListToday(ctx)
	case params.Period == "month":
		expenses, err = h.expenseService.ListThisMonth(ctx)
	case !params.Start.IsZero() || !params.End.IsZero():
		if params.Start.IsZero() || params.End.IsZero() {
			err = apperrors.NewValidationError("start", "and end must be given together")
			break
		}
		expenses, err = h.expenseService.ListByDateRange(ctx, params.Start, params.End)
	case params.Category != "":
		expenses, err = h.expenseService.ListByCategory(ctx, params.Category)
	default:
		expenses, err = h.expenseService.ListExpenses(ctx)
	}
	if err != nil {
		respondError(c, logger, err, "Failed to list expenses")
		return
	}
	c.JSON(http.StatusOK, expenses)
}

// getExpense godoc
// @Summary Get an expense
// @Tags expenses
// @Produce json
// @Param id path string true "Expense ID"
// @Success 200 {object} domain.Expense
// @Failure 404 {object} ErrorResponse
// @Security BearerAuth
// @Router /expenses/{id} [get]
func (h *expenseHandler) getExpense(c *gin.Context) {
	logger := middleware.GetLoggerFromCtx(c.Request.Context())
	expense, err := h.expenseService.GetExpenseByID(c.Request.Context(), c.Param("id"))
	if err != nil {
		respondError(c, logger, err, "Failed to retrieve expense")
		return
	}
	c.JSON(http.StatusOK, expense)
}

// updateExpense godoc
// @Summary Update an expense
// @Tags expenses
// @Accept json
// @Produce json
// @Param id path string true "Expense ID"
// @Param expense body dto.UpdateExpenseRequest true "Fields to update"
// @Success 200 {object} domain.Expense
// @Failure 400 {object} ErrorResponse
// @Failure 404 {object} ErrorResponse
// @Security BearerAuth
// @Router /expenses/{id} [put]
func (h *expenseHandler) updateExpense(c *gin.Context) {
	logger := middleware.GetLoggerFromCtx(c.Request.Context())
	var req dto.UpdateExpenseRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		badRequest(c, logger, err)
		return
	}

	expense, err := h.expenseService.UpdateExpense(c.Request.Context(), c.Param("id"), req)
	if err != nil {
		respondError(c, logger, err, "Failed to update expense")
		return
	}
	c.JSON(http.StatusOK, expense)
}

// deleteExpense godoc
// @Summary Delete an expense
// @Tags expenses
// @Param id path string true "Expense ID"
// @Success 204
// @Failure 404 {object} ErrorResponse
// @Security BearerAuth
// @Router /expenses/{id} [delete]
func (h *expenseHandler) deleteExpense(c *gin.Context) {
	logger := middleware.GetLoggerFromCtx(c.Request.Context())
	if err := h.expenseService.DeleteExpense(c.Request.Context(), c.Param("id")); err != nil {
		respondError(c, logger, err, "Failed to delete expense")
		return
	}
	c.Status(http.StatusNoContent)
}
