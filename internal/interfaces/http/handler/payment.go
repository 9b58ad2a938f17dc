package handler

import (
	"context"

	paymentapp "github.com/billing/backend/internal/application/payment"
	"github.com/billing/backend/internal/interfaces/http/middleware"
	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
)

// PaymentService is the payment use-case surface consumed by PaymentHandler
type PaymentService interface {
	Create(ctx context.Context, ownerID uuid.UUID, req paymentapp.CreatePaymentRequest) (*paymentapp.PaymentResponse, error)
	GetByID(ctx context.Context, id, ownerID uuid.UUID) (*paymentapp.PaymentResponse, error)
	List(ctx context.Context, ownerID uuid.UUID, filter paymentapp.ListPaymentsFilter) ([]paymentapp.PaymentResponse, int64, error)
	ListByInvoice(ctx context.Context, invoiceID, ownerID uuid.UUID) ([]paymentapp.PaymentResponse, error)
	Confirm(ctx context.Context, id, ownerID uuid.UUID, req paymentapp.ConfirmPaymentRequest) (*paymentapp.PaymentResponse, error)
	Fail(ctx context.Context, id, ownerID uuid.UUID, req paymentapp.FailPaymentRequest) (*paymentapp.PaymentResponse, error)
	Refund(ctx context.Context, id, ownerID uuid.UUID) (*paymentapp.PaymentResponse, error)
}

// PaymentHandler handles payment API endpoints
type PaymentHandler struct {
	BaseHandler
	paymentService PaymentService
}

// NewPaymentHandler creates a new PaymentHandler
func NewPaymentHandler(paymentService PaymentService) *PaymentHandler {
	return &PaymentHandler{paymentService: paymentService}
}

// Create godoc
// @ID           createPayment
// @Summary      Register a payment
// @Description  Registers a PENDING payment against a validated or sent invoice. The amount defaults to the invoice total.
// @Tags         payments
// @Accept       json
// @Produce      json
// @Param        request body paymentapp.CreatePaymentRequest true "Payment"
// @Success      201 {object} APIResponse[paymentapp.PaymentResponse]
// @Failure      400 {object} ErrorResponse
// @Failure      404 {object} ErrorResponse
// @Failure      422 {object} ErrorResponse
// @Security     BearerAuth
// @Router       /payments [post]
func (h *PaymentHandler) Create(c *gin.Context) {
	ownerID, ok := h.ownerID(c)
	if !ok {
		return
	}

	var req paymentapp.CreatePaymentRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		middleware.HandleValidationError(c, err)
		return
	}

	payment, err := h.paymentService.Create(c.Request.Context(), ownerID, req)
	if err != nil {
		h.HandleError(c, err)
		return
	}
	h.Created(c, payment)
}

// List godoc
// @ID           listPayments
// @Summary      List payments
// @Tags         payments
// @Produce      json
// @Param        page      query int    false "Page number" default(1)
// @Param        page_size query int    false "Page size" default(20) maximum(100)
// @Param        status    query string false "Status filter" Enums(PENDING, COMPLETED, FAILED, REFUNDED)
// @Success      200 {object} APIResponse[[]paymentapp.PaymentResponse]
// @Failure      400 {object} ErrorResponse
// @Security     BearerAuth
// @Router       /payments [get]
func (h *PaymentHandler) List(c *gin.Context) {
	ownerID, ok := h.ownerID(c)
	if !ok {
		return
	}

	var filter paymentapp.ListPaymentsFilter
	if err := c.ShouldBindQuery(&filter); err != nil {
		middleware.HandleValidationError(c, err)
		return
	}

	payments, total, err := h.paymentService.List(c.Request.Context(), ownerID, filter)
	if err != nil {
		h.HandleError(c, err)
		return
	}
	page, pageSize := pageOrDefault(filter.Page, filter.PageSize)
	h.SuccessWithMeta(c, payments, total, page, pageSize)
}

// GetByID godoc
// @ID           getPaymentById
// @Summary      Get payment by ID
// @Tags         payments
// @Produce      json
// @Param        id path string true "Payment ID" format(uuid)
// @Success      200 {object} APIResponse[paymentapp.PaymentResponse]
// @Failure      404 {object} ErrorResponse
// @Security     BearerAuth
// @Router       /payments/{id} [get]
func (h *PaymentHandler) GetByID(c *gin.Context) {
	ownerID, ok := h.ownerID(c)
	if !ok {
		return
	}
	id, ok := h.pathID(c, "id", "payment")
	if !ok {
		return
	}

	payment, err := h.paymentService.GetByID(c.Request.Context(), id, ownerID)
	if err != nil {
		h.HandleError(c, err)
		return
	}
	h.Success(c, payment)
}

// ListByInvoice godoc
// @ID           listPaymentsByInvoice
// @Summary      List the payments of an invoice
// @Tags         payments
// @Produce      json
// @Param        invoiceId path string true "Invoice ID" format(uuid)
// @Success      200 {object} APIResponse[[]paymentapp.PaymentResponse]
// @Failure      404 {object} ErrorResponse
// @Security     BearerAuth
// @Router       /payments/invoice/{invoiceId} [get]
func (h *PaymentHandler) ListByInvoice(c *gin.Context) {
	ownerID, ok := h.ownerID(c)
	if !ok {
		return
	}
	invoiceID, ok := h.pathID(c, "invoiceId", "invoice")
	if !ok {
		return
	}

	payments, err := h.paymentService.ListByInvoice(c.Request.Context(), invoiceID, ownerID)
	if err != nil {
		h.HandleError(c, err)
		return
	}
	h.Success(c, payments)
}

// Confirm godoc
// @ID           confirmPayment
// @Summary      Confirm a pending payment
// @Description  Completes the payment; the invoice is settled asynchronously
// @Tags         payments
// @Accept       json
// @Produce      json
// @Param        id      path string                           true  "Payment ID" format(uuid)
// @Param        request body paymentapp.ConfirmPaymentRequest false "Confirmation"
// @Success      200 {object} APIResponse[paymentapp.PaymentResponse]
// @Failure      404 {object} ErrorResponse
// @Failure      422 {object} ErrorResponse
// @Security     BearerAuth
// @Router       /payments/{id}/confirm [post]
func (h *PaymentHandler) Confirm(c *gin.Context) {
	ownerID, ok := h.ownerID(c)
	if !ok {
		return
	}
	id, ok := h.pathID(c, "id", "payment")
	if !ok {
		return
	}

	var req paymentapp.ConfirmPaymentRequest
	if !bindOptionalJSON(c, &req) {
		return
	}

	payment, err := h.paymentService.Confirm(c.Request.Context(), id, ownerID, req)
	if err != nil {
		h.HandleError(c, err)
		return
	}
	h.Success(c, payment)
}

// Fail godoc
// @ID           failPayment
// @Summary      Mark a pending payment as failed
// @Tags         payments
// @Accept       json
// @Produce      json
// @Param        id      path string                        true  "Payment ID" format(uuid)
// @Param        request body paymentapp.FailPaymentRequest false "Failure reason"
// @Success      200 {object} APIResponse[paymentapp.PaymentResponse]
// @Failure      404 {object} ErrorResponse
// @Failure      422 {object} ErrorResponse
// @Security     BearerAuth
// @Router       /payments/{id}/fail [post]
func (h *PaymentHandler) Fail(c *gin.Context) {
	ownerID, ok := h.ownerID(c)
	if !ok {
		return
	}
	id, ok := h.pathID(c, "id", "payment")
	if !ok {
		return
	}

	var req paymentapp.FailPaymentRequest
	if !bindOptionalJSON(c, &req) {
		return
	}

	payment, err := h.paymentService.Fail(c.Request.Context(), id, ownerID, req)
	if err != nil {
		h.HandleError(c, err)
		return
	}
	h.Success(c, payment)
}

// Refund godoc
// @ID           refundPayment
// @Summary      Refund a completed payment
// @Tags         payments
// @Produce      json
// @Param        id path string true "Payment ID" format(uuid)
// @Success      200 {object} APIResponse[paymentapp.PaymentResponse]
// @Failure      404 {object} ErrorResponse
// @Failure      422 {object} ErrorResponse
// @Security     BearerAuth
// @Router       /payments/{id}/refund [post]
func (h *PaymentHandler) Refund(c *gin.Context) {
	ownerID, ok := h.ownerID(c)
	if !ok {
		return
	}
	id, ok := h.pathID(c, "id", "payment")
	if !ok {
		return
	}

	payment, err := h.paymentService.Refund(c.Request.Context(), id, ownerID)
	if err != nil {
		h.HandleError(c, err)
		return
	}
	h.Success(c, payment)
}
