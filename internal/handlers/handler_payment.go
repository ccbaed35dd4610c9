package handlers

import (
	"net/http"

	"github.com/SscSPs/shop_ledger_app/internal/core/domain"
	portssvc "github.com/SscSPs/shop_ledger_app/internal/core/ports/services"
	"github.com/SscSPs/shop_ledger_app/internal/dto"
	"github.com/SscSPs/shop_ledger_app/internal/middleware"
	"github.com/gin-gonic/gin"
)

type paymentHandler struct {
	paymentService portssvc.PaymentSvcFacade
}

func newPaymentHandler(ps portssvc.PaymentSvcFacade) *paymentHandler {
	return &paymentHandler{paymentService: ps}
}

// registerPaymentRoutes registers all payment-related routes.
func registerPaymentRoutes(rg *gin.RouterGroup, paymentService portssvc.PaymentSvcFacade) {
	h := newPaymentHandler(paymentService)

	payments := rg.Group("/payments")
	{
		payments.GET("", h.listPayments)
		payments.POST("", h.recordPayment)
		payments.GET("/:id", h.getPayment)
		payments.PUT("/:id", h.updatePayment)
		payments.DELETE("/:id", h.deletePayment)
	}
}

// recordPayment godoc
// @Summary Record a payment
// @Description Records a payment against an invoice, marks the invoice paid and debits the customer's ledger.
// @Tags payments
// @Accept json
// @Produce json
// @Param payment body dto.RecordPaymentRequest true "Payment details"
// @Success 201 {object} domain.PaymentRecord
// @Failure 400 {object} ErrorResponse
// @Failure 404 {object} ErrorResponse "Invoice not found"
// @Security BearerAuth
// @Router /payments [post]
func (h *paymentHandler) recordPayment(c *gin.Context) {
	logger := middleware.GetLoggerFromCtx(c.Request.Context())
	var req dto.RecordPaymentRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		badRequest(c, logger, err)
		return
	}

	payment, err := h.paymentService.RecordPayment(c.Request.Context(), req)
	if err != nil {
		respondError(c, logger, err, "Failed to record payment")
		return
	}
	c.JSON(http.StatusCreated, payment)
}

// listPayments godoc
// @Summary List payments
// @Tags payments
// @Produce json
// @Param invoiceId query string false "Invoice ID"
// @Param customerId query string false "Customer ID"
// @Success 200 {array} domain.PaymentRecord
// @Security BearerAuth
// @Router /payments [get]
func (h *paymentHandler) listPayments(c *gin.Context) {
	logger := middleware.GetLoggerFromCtx(c.Request.Context())
	var params dto.ListPaymentsParams
	if err := c.ShouldBindQuery(&params); err != nil {
		badRequest(c, logger, err)
		return
	}

	ctx := c.Request.Context()
	var (
		payments []domain.PaymentRecord
		err      error
	)
	switch {
	case params.InvoiceID != "":
		payments, err = h.paymentService.ListPaymentsByInvoice(ctx, params.InvoiceID)
	case params.CustomerID != "":
		payments, err = h.paymentService.ListPaymentsByCustomer(ctx, params.CustomerID)
	default:
		payments, err = h.paymentService.ListPayments(ctx)
	}
	if err != nil {
		respondError(c, logger, err, "Failed to list payments")
		return
	}
	c.JSON(http.StatusOK, payments)
}

// getPayment godoc
// @Summary Get a payment
// @Tags payments
// @Produce json
// @Param id path string true "Payment ID"
// @Success 200 {object} domain.PaymentRecord
// @Failure 404 {object} ErrorResponse
// @Security BearerAuth
// @Router /payments/{id} [get]
func (h *paymentHandler) getPayment(c *gin.Context) {
	logger := middleware.GetLoggerFromCtx(c.Request.Context())
	payment, err := h.paymentService.GetPaymentByID(c.Request.Context(), c.Param("id"))
	if err != nil {
		respondError(c, logger, err, "Failed to retrieve payment")
		return
	}
	c.JSON(http.StatusOK, payment)
}

// updatePayment godoc
// @Summary Update a payment
// @Tags payments
// @Accept json
// @Produce json
// @Param id path string true "Payment ID"
// @Param payment body dto.UpdatePaymentRequest true "Fields to update"
// @Success 200 {object} domain.PaymentRecord
// @Failure 400 {object} ErrorResponse
// @Failure 404 {object} ErrorResponse
// @Security BearerAuth
// @Router /payments/{id} [put]
func (h *paymentHandler) updatePayment(c *gin.Context) {
	logger := middleware.GetLoggerFromCtx(c.Request.Context())
	var req dto.UpdatePaymentRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		badRequest(c, logger, err)
		return
	}

	payment, err := h.paymentService.UpdatePayment(c.Request.Context(), c.Param("id"), req)
	if err != nil {
		respondError(c, logger, err, "Failed to update payment")
		return
	}
	c.JSON(http.StatusOK, payment)
}

// deletePayment godoc
// @Summary Delete a payment
// @Description Deletes the payment and returns its invoice to sent. The ledger debit stays.
// @Tags payments
// @Param id path string true "Payment ID"
// @Success 204
// @Failure 404 {object} ErrorResponse
// @Security BearerAuth
// @Router /payments/{id} [delete]
func (h *paymentHandler) deletePayment(c *gin.Context) {
	logger := middleware.GetLoggerFromCtx(c.Request.Context())
	if err := h.paymentService.DeletePayment(c.Request.Context(), c.Param("id")); err != nil {
		respondError(c, logger, err, "Failed to delete payment")
		return
	}
	c.Status(http.StatusNoContent)
}
