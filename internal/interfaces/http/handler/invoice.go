package handler

import (
	"context"

	invoicingapp "github.com/billing/backend/internal/application/invoicing"
	"github.com/billing/backend/internal/interfaces/http/middleware"
	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
)

// InvoiceService is the invoicing use-case surface consumed by InvoiceHandler
type InvoiceService interface {
	Create(ctx context.Context, ownerID uuid.UUID, req invoicingapp.CreateInvoiceRequest) (*invoicingapp.InvoiceResponse, error)
	GetByID(ctx context.Context, id, ownerID uuid.UUID) (*invoicingapp.InvoiceResponse, error)
	GetByNumber(ctx context.Context, ownerID uuid.UUID, number string) (*invoicingapp.InvoiceResponse, error)
	List(ctx context.Context, ownerID uuid.UUID, filter invoicingapp.ListInvoicesFilter) ([]invoicingapp.InvoiceListItemResponse, int64, error)
	Update(ctx context.Context, id, ownerID uuid.UUID, req invoicingapp.UpdateInvoiceRequest) (*invoicingapp.InvoiceResponse, error)
	Validate(ctx context.Context, id, ownerID uuid.UUID) (*invoicingapp.InvoiceResponse, error)
	Send(ctx context.Context, id, ownerID uuid.UUID) (*invoicingapp.InvoiceResponse, error)
	Cancel(ctx context.Context, id, ownerID uuid.UUID) (*invoicingapp.InvoiceResponse, error)
	MarkPaid(ctx context.Context, id, ownerID uuid.UUID) (*invoicingapp.InvoiceResponse, error)
	Delete(ctx context.Context, id, ownerID uuid.UUID) error
	RenderDocument(ctx context.Context, id, ownerID uuid.UUID) (*invoicingapp.DocumentResponse, error)
}

// InvoiceHandler handles invoice API endpoints
type InvoiceHandler struct {
	BaseHandler
	invoiceService InvoiceService
}

// NewInvoiceHandler creates a new InvoiceHandler
func NewInvoiceHandler(invoiceService InvoiceService) *InvoiceHandler {
	return &InvoiceHandler{invoiceService: invoiceService}
}

// Create godoc
// @ID           createInvoice
// @Summary      Create a draft invoice
// @Description  Creates a DRAFT invoice for the authenticated owner. Totals are computed server-side.
// @Tags         invoices
// @Accept       json
// @Produce      json
// @Param        request body invoicingapp.CreateInvoiceRequest true "Invoice content"
// @Success      201 {object} APIResponse[invoicingapp.InvoiceResponse]
// @Failure      400 {object} ErrorResponse
// @Failure      401 {object} ErrorResponse
// @Failure      500 {object} ErrorResponse
// @Security     BearerAuth
// @Router       /invoices [post]
func (h *InvoiceHandler) Create(c *gin.Context) {
	ownerID, ok := h.ownerID(c)
	if !ok {
		return
	}

	var req invoicingapp.CreateInvoiceRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		middleware.HandleValidationError(c, err)
		return
	}

	invoice, err := h.invoiceService.Create(c.Request.Context(), ownerID, req)
	if err != nil {
		h.HandleError(c, err)
		return
	}
	h.Created(c, invoice)
}

// List godoc
// @ID           listInvoices
// @Summary      List invoices
// @Description  Lists the owner's invoices, newest first unless ordered otherwise
// @Tags         invoices
// @Produce      json
// @Param        page      query int    false "Page number" default(1)
// @Param        page_size query int    false "Page size" default(20) maximum(100)
// @Param        status    query string false "Status filter" Enums(DRAFT, VALIDATED, SENT, PAID, CANCELLED)
// @Param        order_by  query string false "Sort field"
// @Param        order_dir query string false "Sort direction" Enums(asc, desc)
// @Success      200 {object} APIResponse[[]invoicingapp.InvoiceListItemResponse]
// @Failure      400 {object} ErrorResponse
// @Failure      401 {object} ErrorResponse
// @Security     BearerAuth
// @Router       /invoices [get]
func (h *InvoiceHandler) List(c *gin.Context) {
	ownerID, ok := h.ownerID(c)
	if !ok {
		return
	}

	var filter invoicingapp.ListInvoicesFilter
	if err := c.ShouldBindQuery(&filter); err != nil {
		middleware.HandleValidationError(c, err)
		return
	}

	invoices, total, err := h.invoiceService.List(c.Request.Context(), ownerID, filter)
	if err != nil {
		h.HandleError(c, err)
		return
	}
	page, pageSize := pageOrDefault(filter.Page, filter.PageSize)
	h.SuccessWithMeta(c, invoices, total, page, pageSize)
}

// GetByID godoc
// @ID           getInvoiceById
// @Summary      Get invoice by ID
// @Tags         invoices
// @Produce      json
// @Param        id path string true "Invoice ID" format(uuid)
// @Success      200 {object} APIResponse[invoicingapp.InvoiceResponse]
// @Failure      400 {object} ErrorResponse
// @Failure      404 {object} ErrorResponse
// @Security     BearerAuth
// @Router       /invoices/{id} [get]
func (h *InvoiceHandler) GetByID(c *gin.Context) {
	ownerID, ok := h.ownerID(c)
	if !ok {
		return
	}
	id, ok := h.pathID(c, "id", "invoice")
	if !ok {
		return
	}

	invoice, err := h.invoiceService.GetByID(c.Request.Context(), id, ownerID)
	if err != nil {
		h.HandleError(c, err)
		return
	}
	h.Success(c, invoice)
}

// GetByNumber godoc
// @ID           getInvoiceByNumber
// @Summary      Get invoice by number
// @Tags         invoices
// @Produce      json
// @Param        number path string true "Invoice number" example(FAC-2024-00001)
// @Success      200 {object} APIResponse[invoicingapp.InvoiceResponse]
// @Failure      404 {object} ErrorResponse
// @Security     BearerAuth
// @Router       /invoices/number/{number} [get]
func (h *InvoiceHandler) GetByNumber(c *gin.Context) {
	ownerID, ok := h.ownerID(c)
	if !ok {
		return
	}

	invoice, err := h.invoiceService.GetByNumber(c.Request.Context(), ownerID, c.Param("number"))
	if err != nil {
		h.HandleError(c, err)
		return
	}
	h.Success(c, invoice)
}

// Update godoc
// @ID           updateInvoice
// @Summary      Update a draft invoice
// @Description  Replaces client data, dates, tax rate and items. Only DRAFT invoices can be updated.
// @Tags         invoices
// @Accept       json
// @Produce      json
// @Param        id      path string                            true "Invoice ID" format(uuid)
// @Param        request body invoicingapp.UpdateInvoiceRequest true "Invoice content"
// @Success      200 {object} APIResponse[invoicingapp.InvoiceResponse]
// @Failure      400 {object} ErrorResponse
// @Failure      404 {object} ErrorResponse
// @Failure      409 {object} ErrorResponse
// @Failure      422 {object} ErrorResponse
// @Security     BearerAuth
// @Router       /invoices/{id} [put]
func (h *InvoiceHandler) Update(c *gin.Context) {
	ownerID, ok := h.ownerID(c)
	if !ok {
		return
	}
	id, ok := h.pathID(c, "id", "invoice")
	if !ok {
		return
	}

	var req invoicingapp.UpdateInvoiceRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		middleware.HandleValidationError(c, err)
		return
	}

	invoice, err := h.invoiceService.Update(c.Request.Context(), id, ownerID, req)
	if err != nil {
		h.HandleError(c, err)
		return
	}
	h.Success(c, invoice)
}

// Delete godoc
// @ID           deleteInvoice
// @Summary      Delete a draft invoice
// @Tags         invoices
// @Param        id path string true "Invoice ID" format(uuid)
// @Success      204
// @Failure      404 {object} ErrorResponse
// @Failure      422 {object} ErrorResponse
// @Security     BearerAuth
// @Router       /invoices/{id} [delete]
func (h *InvoiceHandler) Delete(c *gin.Context) {
	ownerID, ok := h.ownerID(c)
	if !ok {
		return
	}
	id, ok := h.pathID(c, "id", "invoice")
	if !ok {
		return
	}

	if err := h.invoiceService.Delete(c.Request.Context(), id, ownerID); err != nil {
		h.HandleError(c, err)
		return
	}
	h.NoContent(c)
}

type transitionFunc func(ctx context.Context, id, ownerID uuid.UUID) (*invoicingapp.InvoiceResponse, error)

func (h *InvoiceHandler) transition(c *gin.Context, fn transitionFunc) {
	ownerID, ok := h.ownerID(c)
	if !ok {
		return
	}
	id, ok := h.pathID(c, "id", "invoice")
	if !ok {
		return
	}

	invoice, err := fn(c.Request.Context(), id, ownerID)
	if err != nil {
		h.HandleError(c, err)
		return
	}
	h.Success(c, invoice)
}

// Validate godoc
// @ID           validateInvoice
// @Summary      Validate a draft invoice
// @Description  Assigns the next FAC-YYYY-NNNNN number and moves the invoice to VALIDATED
// @Tags         invoices
// @Produce      json
// @Param        id path string true "Invoice ID" format(uuid)
// @Success      200 {object} APIResponse[invoicingapp.InvoiceResponse]
// @Failure      404 {object} ErrorResponse
// @Failure      409 {object} ErrorResponse
// @Failure      422 {object} ErrorResponse
// @Security     BearerAuth
// @Router       /invoices/{id}/validate [post]
func (h *InvoiceHandler) Validate(c *gin.Context) {
	h.transition(c, h.invoiceService.Validate)
}

// Send godoc
// @ID           sendInvoice
// @Summary      Mark an invoice as sent
// @Tags         invoices
// @Produce      json
// @Param        id path string true "Invoice ID" format(uuid)
// @Success      200 {object} APIResponse[invoicingapp.InvoiceResponse]
// @Failure      404 {object} ErrorResponse
// @Failure      422 {object} ErrorResponse
// @Security     BearerAuth
// @Router       /invoices/{id}/send [post]
func (h *InvoiceHandler) Send(c *gin.Context) {
	h.transition(c, h.invoiceService.Send)
}

// Cancel godoc
// @ID           cancelInvoice
// @Summary      Cancel an invoice
// @Tags         invoices
// @Produce      json
// @Param        id path string true "Invoice ID" format(uuid)
// @Success      200 {object} APIResponse[invoicingapp.InvoiceResponse]
// @Failure      404 {object} ErrorResponse
// @Failure      422 {object} ErrorResponse
// @Security     BearerAuth
// @Router       /invoices/{id}/cancel [post]
func (h *InvoiceHandler) Cancel(c *gin.Context) {
	h.transition(c, h.invoiceService.Cancel)
}

// MarkPaid godoc
// @ID           markInvoicePaid
// @Summary      Mark an invoice as paid
// @Tags         invoices
// @Produce      json
// @Param        id path string true "Invoice ID" format(uuid)
// @Success      200 {object} APIResponse[invoicingapp.InvoiceResponse]
// @Failure      404 {object} ErrorResponse
// @Failure      422 {object} ErrorResponse
// @Security     BearerAuth
// @Router       /invoices/{id}/mark-paid [post]
func (h *InvoiceHandler) MarkPaid(c *gin.Context) {
	h.transition(c, h.invoiceService.MarkPaid)
}

// Document godoc
// @ID           getInvoiceDocument
// @Summary      Download the invoice document
// @Description  Renders the invoice as PDF; the file is named after the invoice number, or the ID for drafts
// @Tags         invoices
// @Produce      application/pdf
// @Param        id path string true "Invoice ID" format(uuid)
// @Success      200 {file} binary
// @Failure      404 {object} ErrorResponse
// @Failure      500 {object} ErrorResponse
// @Security     BearerAuth
// @Router       /invoices/{id}/pdf [get]
func (h *InvoiceHandler) Document(c *gin.Context) {
	ownerID, ok := h.ownerID(c)
	if !ok {
		return
	}
	id, ok := h.pathID(c, "id", "invoice")
	if !ok {
		return
	}

	doc, err := h.invoiceService.RenderDocument(c.Request.Context(), id, ownerID)
	if err != nil {
		h.HandleError(c, err)
		return
	}
	attachment(c, doc.Filename, doc.ContentType, doc.Content)
}
