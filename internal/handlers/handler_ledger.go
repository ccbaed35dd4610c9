package handlers

import (
	"log/slog"
	"net/http"

	"github.com/SscSPs/shop_ledger_app/internal/core/domain"
	portssvc "github.com/SscSPs/shop_ledger_app/internal/core/ports/services"
	"github.com/SscSPs/shop_ledger_app/internal/dto"
	"github.com/SscSPs/shop_ledger_app/internal/middleware"
	"github.com/gin-gonic/gin"
)

// ledgerHandler handles HTTP requests related to customer ledgers.
type ledgerHandler struct {
	ledgerService portssvc.LedgerSvcFacade
}

func newLedgerHandler(ls portssvc.LedgerSvcFacade) *ledgerHandler {
	return &ledgerHandler{ledgerService: ls}
}

// registerLedgerRoutes registers ledger entry routes and the per-customer ledger views.
func registerLedgerRoutes(rg *gin.RouterGroup, ledgerService portssvc.LedgerSvcFacade) {
	h := newLedgerHandler(ledgerService)

	entries := rg.Group("/ledger-entries")
	{
		entries.GET("", h.listEntries)
		entries.POST("", h.createEntry)
		entries.GET("/:id", h.getEntry)
		entries.PUT("/:id", h.updateEntry)
		entries.DELETE("/:id", h.deleteEntry)
	}

	customer := rg.Group("/customers/:id")
	{
		customer.GET("/ledger", h.listByCustomer)
		customer.GET("/statement", h.statement)
		customer.POST("/recompute-balance", h.recomputeBalance)
	}

	rg.POST("/ledger/recompute", middleware.RequireRole(domain.RoleAdmin), h.recomputeAll)
}

// listEntries godoc
// @Summary List ledger entries
// @Tags ledger
// @Produce json
// @Success 200 {array} domain.LedgerEntry
// @Security BearerAuth
// @Router /ledger-entries [get]
func (h *ledgerHandler) listEntries(c *gin.Context) {
	logger := middleware.GetLoggerFromCtx(c.Request.Context())
	entries, err := h.ledgerService.ListEntries(c.Request.Context())
	if err != nil {
		respondError(c, logger, err, "Failed to list ledger entries")
		return
	}
	c.JSON(http.StatusOK, entries)
}

// createEntry godoc
// @Summary Post a ledger entry
// @Description Records a credit or debit and moves the customer's balance by it.
// @Tags ledger
// @Accept json
// @Produce json
// @Param entry body dto.CreateLedgerEntryRequest true "Entry"
// @Success 201 {object} domain.LedgerEntry
// @Failure 400 {object} ErrorResponse
// @Security BearerAuth
// @Router /ledger-entries [post]
func (h *ledgerHandler) createEntry(c *gin.Context) {
	logger := middleware.GetLoggerFromCtx(c.Request.Context())
	var req dto.CreateLedgerEntryRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		badRequest(c, logger, err)
		return
	}

	entry, err := h.ledgerService.CreateEntry(c.Request.Context(), req)
	if err != nil {
		respondError(c, logger, err, "Failed to create ledger entry")
		return
	}
	c.JSON(http.StatusCreated, entry)
}

// getEntry godoc
// @Summary Get a ledger entry
// @Tags ledger
// @Produce json
// @Param id path string true "Entry ID"
// @Success 200 {object} domain.LedgerEntry
// @Failure 404 {object} ErrorResponse
// @Security BearerAuth
// @Router /ledger-entries/{id} [get]
func (h *ledgerHandler) getEntry(c *gin.Context) {
	logger := middleware.GetLoggerFromCtx(c.Request.Context())
	entry, err := h.ledgerService.GetEntryByID(c.Request.Context(), c.Param("id"))
	if err != nil {
		respondError(c, logger, err, "Failed to retrieve ledger entry")
		return
	}
	c.JSON(http.StatusOK, entry)
}

// updateEntry godoc
// @Summary Update a ledger entry
// @Description Changing type or amount moves the balance by the difference.
// @Tags ledger
// @Accept json
// @Produce json
// @Param id path string true "Entry ID"
// @Param entry body dto.UpdateLedgerEntryRequest true "Fields to update"
// @Success 200 {object} domain.LedgerEntry
// @Failure 400 {object} ErrorResponse
// @Failure 404 {object} ErrorResponse
// @Security BearerAuth
// @Router /ledger-entries/{id} [put]
func (h *ledgerHandler) updateEntry(c *gin.Context) {
	logger := middleware.GetLoggerFromCtx(c.Request.Context())
	var req dto.UpdateLedgerEntryRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		badRequest(c, logger, err)
		return
	}

	entry, err := h.ledgerService.UpdateEntry(c.Request.Context(), c.Param("id"), req)
	if err != nil {
		respondError(c, logger, err, "Failed to update ledger entry")
		return
	}
	c.JSON(http.StatusOK, entry)
}

// deleteEntry godoc
// @Summary Delete a ledger entry
// @Description Removes the entry and reverses its effect on the balance.
// @Tags ledger
// @Param id path string true "Entry ID"
// @Success 204
// @Failure 404 {object} ErrorResponse
// @Security BearerAuth
// @Router /ledger-entries/{id} [delete]
func (h *ledgerHandler) deleteEntry(c *gin.Context) {
	logger := middleware.GetLoggerFromCtx(c.Request.Context())
	if err := h.ledgerService.DeleteEntry(c.Request.Context(), c.Param("id")); err != nil {
		respondError(c, logger, err, "Failed to delete ledger entry")
		return
	}
	c.Status(http.StatusNoContent)
}

// listByCustomer godoc
// @Summary Customer ledger
// @Description Entries for one customer, most recent first.
// @Tags ledger
// @Produce json
// @Param id path string true "Customer ID"
// @Success 200 {array} domain.LedgerEntry
// @Security BearerAuth
// @Router /customers/{id}/ledger [get]
func (h *ledgerHandler) listByCustomer(c *gin.Context) {
	logger := middleware.GetLoggerFromCtx(c.Request.Context())
	entries, err := h.ledgerService.ListByCustomer(c.Request.Context(), c.Param("id"))
	if err != nil {
		respondError(c, logger, err, "Failed to list customer ledger")
		return
	}
	c.JSON(http.StatusOK, entries)
}

// statement godoc
// @Summary Customer statement
// @Description Entries oldest first with running balances and totals.
// @Tags ledger
// @Produce json
// @Param id path string true "Customer ID"
// @Success 200 {object} domain.Statement
// @Failure 404 {object} ErrorResponse
// @Security BearerAuth
// @Router /customers/{id}/statement [get]
func (h *ledgerHandler) statement(c *gin.Context) {
	logger := middleware.GetLoggerFromCtx(c.Request.Context())
	stmt, err := h.ledgerService.Statement(c.Request.Context(), c.Param("id"))
	if err != nil {
		respondError(c, logger, err, "Failed to build statement")
		return
	}
	c.JSON(http.StatusOK, stmt)
}

// recomputeBalance godoc
// @Summary Recompute a customer balance
// @Description Sets the stored balance to the sum of the customer's ledger entries.
// @Tags ledger
// @Produce json
// @Param id path string true "Customer ID"
// @Success 200 {object} domain.BalanceCorrection
// @Failure 404 {object} ErrorResponse
// @Security BearerAuth
// @Router /customers/{id}/recompute-balance [post]
func (h *ledgerHandler) recomputeBalance(c *gin.Context) {
	logger := middleware.GetLoggerFromCtx(c.Request.Context())
	correction, err := h.ledgerService.RecomputeBalance(c.Request.Context(), c.Param("id"))
	if err != nil {
		respondError(c, logger, err, "Failed to recompute balance")
		return
	}
	c.JSON(http.StatusOK, correction)
}

// recomputeAll godoc
// @Summary Recompute every customer balance
// @Tags ledger
// @Produce json
// @Success 200 {object} dto.RecomputeAllResponse
// @Failure 403 {object} ErrorResponse
// @Security BearerAuth
// @Router /ledger/recompute [post]
func (h *ledgerHandler) recomputeAll(c *gin.Context) {
	logger := middleware.GetLoggerFromCtx(c.Request.Context())
	corrections, err := h.ledgerService.RecomputeAllBalances(c.Request.Context())
	if err != nil {
		respondError(c, logger, err, "Failed to recompute balances")
		return
	}

	resp := dto.RecomputeAllResponse{Checked: len(corrections), Corrected: []domain.BalanceCorrection{}}
	for _, correction := range corrections {
		if correction.Changed() {
			resp.Corrected = append(resp.Corrected, correction)
		}
	}
	logger.Info("Balances recomputed", slog.Int("checked", resp.Checked), slog.Int("corrected", len(resp.Corrected)))
	c.JSON(http.StatusOK, resp)
}
